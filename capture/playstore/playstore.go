// Package playstore encodes the Google Play screenshot grammar. Play is
// bound by edge limits rather than per-class pixel tables: every screenshot
// edge must lie within [320, 3840] device pixels, and TV listings require
// exact 16:9 frames.
package playstore

import (
	"fmt"

	"github.com/appdeploy/storeshots/capture/definitions"
)

const (
	// MinEdge and MaxEdge bound each screenshot dimension in device pixels.
	MinEdge = 320
	MaxEdge = 3840
)

// TVDisplayClass marks profiles submitted to the TV listing.
const TVDisplayClass = "tv"

// ValidateProfile checks the hard Play Console constraints for the profile's
// rendered pixel size.
func ValidateProfile(p definitions.DeviceProfile) error {
	if p.Platform != definitions.PlatformAndroid {
		return fmt.Errorf("profile %s: platform %s is not submitted to Google Play", p.Name, p.Platform)
	}
	w, h := p.PhysicalWidth(), p.PhysicalHeight()
	if w < MinEdge || h < MinEdge {
		return fmt.Errorf("profile %s: %dx%d px is below the %d px minimum edge", p.Name, w, h, MinEdge)
	}
	if w > MaxEdge || h > MaxEdge {
		return fmt.Errorf("profile %s: %dx%d px exceeds the %d px maximum edge", p.Name, w, h, MaxEdge)
	}
	if p.DisplayClass == TVDisplayClass && w*9 != h*16 {
		return fmt.Errorf("profile %s: TV screenshots must be 16:9, got %dx%d px", p.Name, w, h)
	}
	return nil
}

// Warnings reports soft constraints that will not reject an upload but
// degrade how Play presents the listing.
func Warnings(p definitions.DeviceProfile) []string {
	var out []string
	w, h := p.PhysicalWidth(), p.PhysicalHeight()
	long, short := w, h
	if h > w {
		long, short = h, w
	}
	if short > 0 && long > 2*short {
		out = append(out, fmt.Sprintf("aspect ratio of %dx%d px exceeds 2:1; Play letterboxes it in feature placements", w, h))
	}
	return out
}
