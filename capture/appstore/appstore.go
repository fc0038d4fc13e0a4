// Package appstore encodes the Apple App Store screenshot grammar: the
// display classes App Store Connect recognizes and the exact pixel sizes it
// accepts for each.
package appstore

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/appdeploy/storeshots/capture/definitions"
)

// pixelSize is a portrait device-pixel dimension pair.
type pixelSize struct {
	w, h int
}

// acceptedSizes lists the portrait pixel sizes App Store Connect accepts per
// display class, current at the time of writing. Landscape is the transpose.
var acceptedSizes = map[string][]pixelSize{
	"6.9-inch":  {{1320, 2868}, {1290, 2796}},
	"6.5-inch":  {{1242, 2688}, {1284, 2778}},
	"6.3-inch":  {{1206, 2622}, {1179, 2556}},
	"6.1-inch":  {{1179, 2556}, {1170, 2532}, {1125, 2436}},
	"5.5-inch":  {{1242, 2208}},
	"4.7-inch":  {{750, 1334}},
	"13-inch":   {{2064, 2752}, {2048, 2732}},
	"12.9-inch": {{2048, 2732}},
	"11-inch":   {{1668, 2388}, {1640, 2360}},
}

// classOrder keeps DisplayClasses deterministic, phones before tablets.
var classOrder = []string{
	"6.9-inch", "6.5-inch", "6.3-inch", "6.1-inch", "5.5-inch", "4.7-inch",
	"13-inch", "12.9-inch", "11-inch",
}

// DisplayClasses lists the recognized App Store display classes.
func DisplayClasses() []string {
	return append([]string(nil), classOrder...)
}

// ValidateProfile checks that the profile renders at a pixel size App Store
// Connect accepts for its display class, in either orientation.
func ValidateProfile(p definitions.DeviceProfile) error {
	if p.Platform != definitions.PlatformIOS {
		return fmt.Errorf("profile %s: platform %s is not submitted to the App Store", p.Name, p.Platform)
	}
	sizes, ok := acceptedSizes[p.DisplayClass]
	if !ok {
		return fmt.Errorf("profile %s: unknown App Store display class %q", p.Name, p.DisplayClass)
	}
	w, h := p.PhysicalWidth(), p.PhysicalHeight()
	matches := lo.ContainsBy(sizes, func(s pixelSize) bool {
		return (s.w == w && s.h == h) || (s.w == h && s.h == w)
	})
	if !matches {
		return fmt.Errorf("profile %s: %dx%d px is not an accepted size for the %s class",
			p.Name, w, h, p.DisplayClass)
	}
	return nil
}
