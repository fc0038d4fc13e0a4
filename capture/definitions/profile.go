package definitions

import "fmt"

// Platform tags a device profile with the store family its screenshots are
// submitted to. The tag doubles as the first path segment of the grouped
// output layout.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Brightness selects the simulated platform brightness for a capture.
type Brightness string

const (
	BrightnessLight Brightness = "light"
	BrightnessDark  Brightness = "dark"
)

// EdgeInsets is the safe-area padding of a simulated display, in logical pixels.
type EdgeInsets struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// IsZero reports whether all four insets are zero.
func (e EdgeInsets) IsZero() bool {
	return e.Top == 0 && e.Left == 0 && e.Right == 0 && e.Bottom == 0
}

// DeviceProfile is one simulated device configuration. Profiles are immutable
// values; variants are produced with Derive rather than by mutation.
type DeviceProfile struct {
	Name          string     `json:"name"`
	LogicalWidth  float64    `json:"logical_width"`
	LogicalHeight float64    `json:"logical_height"`
	PixelRatio    float64    `json:"pixel_ratio"`
	DisplayClass  string     `json:"display_class"` // nominal store label, e.g. "6.9-inch"
	Platform      Platform   `json:"platform"`
	SafeArea      EdgeInsets `json:"safe_area"`
	TextScale     float64    `json:"text_scale"`
	Brightness    Brightness `json:"brightness"`
}

// PhysicalWidth is the rendered bitmap width in device pixels.
func (p DeviceProfile) PhysicalWidth() int {
	return int(p.LogicalWidth * p.PixelRatio)
}

// PhysicalHeight is the rendered bitmap height in device pixels.
func (p DeviceProfile) PhysicalHeight() int {
	return int(p.LogicalHeight * p.PixelRatio)
}

// EffectiveTextScale treats the zero value as the default 1.0 multiplier.
func (p DeviceProfile) EffectiveTextScale() float64 {
	if p.TextScale <= 0 {
		return 1.0
	}
	return p.TextScale
}

// EffectiveBrightness treats the zero value as light.
func (p DeviceProfile) EffectiveBrightness() Brightness {
	if p.Brightness == "" {
		return BrightnessLight
	}
	return p.Brightness
}

// Validate checks the profile invariants.
func (p DeviceProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("device profile has no name")
	}
	if p.LogicalWidth <= 0 || p.LogicalHeight <= 0 {
		return fmt.Errorf("device profile %s: logical size must be positive, got %gx%g",
			p.Name, p.LogicalWidth, p.LogicalHeight)
	}
	if p.PixelRatio <= 0 {
		return fmt.Errorf("device profile %s: pixel ratio must be positive, got %g", p.Name, p.PixelRatio)
	}
	if p.SafeArea.Top < 0 || p.SafeArea.Left < 0 || p.SafeArea.Right < 0 || p.SafeArea.Bottom < 0 {
		return fmt.Errorf("device profile %s: safe-area insets must not be negative", p.Name)
	}
	switch p.Platform {
	case PlatformIOS, PlatformAndroid:
	default:
		return fmt.Errorf("device profile %s: unknown platform %q", p.Name, p.Platform)
	}
	return nil
}

// ProfileOverrides carries the fields Derive replaces on a base profile.
// Zero-valued fields keep the base value.
type ProfileOverrides struct {
	Name         string
	DisplayClass string
	TextScale    float64
	Brightness   Brightness
	SafeArea     *EdgeInsets
}

// Derive returns a copy of p with the given overrides applied. The registry
// does not police name collisions between derived profiles; callers that feed
// derived profiles into a shared output root must keep names distinct.
func (p DeviceProfile) Derive(o ProfileOverrides) DeviceProfile {
	out := p
	if o.Name != "" {
		out.Name = o.Name
	}
	if o.DisplayClass != "" {
		out.DisplayClass = o.DisplayClass
	}
	if o.TextScale > 0 {
		out.TextScale = o.TextScale
	}
	if o.Brightness != "" {
		out.Brightness = o.Brightness
	}
	if o.SafeArea != nil {
		out.SafeArea = *o.SafeArea
	}
	return out
}

// DarkVariant derives a dark-brightness copy named "<name>_dark".
func (p DeviceProfile) DarkVariant() DeviceProfile {
	return p.Derive(ProfileOverrides{
		Name:       p.Name + "_dark",
		Brightness: BrightnessDark,
	})
}
