package capture

import (
	"context"

	"github.com/appdeploy/storeshots/capture/definitions"
)

// surfaceState snapshots the overridable display characteristics of a Surface.
type surfaceState struct {
	width, height int
	ratio         float64
	textScale     float64
	brightness    definitions.Brightness
	safeArea      definitions.EdgeInsets
}

func snapshotSurface(s Surface) surfaceState {
	w, h := s.PhysicalSize()
	return surfaceState{
		width:      w,
		height:     h,
		ratio:      s.PixelRatio(),
		textScale:  s.TextScale(),
		brightness: s.Brightness(),
		safeArea:   s.SafeArea(),
	}
}

func (st surfaceState) restore(s Surface) {
	s.SetPhysicalSize(st.width, st.height)
	s.SetPixelRatio(st.ratio)
	s.SetTextScale(st.textScale)
	s.SetBrightness(st.brightness)
	s.SetSafeArea(st.safeArea)
}

// RunWithOverride applies profile's simulated display characteristics to s,
// runs body, and restores the prior state on every exit path, including a
// panicking body. The body's error propagates unchanged after restoration.
//
// Nested overrides are not supported; the surface is a process-wide singleton
// and a second override before the first restores is last-write-wins.
// Callers must serialize device iterations.
func RunWithOverride(ctx context.Context, s Surface, profile definitions.DeviceProfile, body func(ctx context.Context) error) error {
	prior := snapshotSurface(s)
	defer prior.restore(s)

	s.SetPhysicalSize(profile.PhysicalWidth(), profile.PhysicalHeight())
	s.SetPixelRatio(profile.PixelRatio)
	s.SetTextScale(profile.EffectiveTextScale())
	s.SetBrightness(profile.EffectiveBrightness())
	s.SetSafeArea(profile.SafeArea)

	return body(ctx)
}
