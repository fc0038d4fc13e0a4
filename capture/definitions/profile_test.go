package definitions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	good := DeviceProfile{
		Name: "phone", LogicalWidth: 360, LogicalHeight: 640, PixelRatio: 3,
		DisplayClass: "6.1-inch", Platform: PlatformAndroid,
	}
	assert.NoError(t, good.Validate())

	cases := []struct {
		name   string
		mutate func(*DeviceProfile)
	}{
		{"empty name", func(p *DeviceProfile) { p.Name = "" }},
		{"zero width", func(p *DeviceProfile) { p.LogicalWidth = 0 }},
		{"negative height", func(p *DeviceProfile) { p.LogicalHeight = -1 }},
		{"zero ratio", func(p *DeviceProfile) { p.PixelRatio = 0 }},
		{"negative inset", func(p *DeviceProfile) { p.SafeArea.Top = -5 }},
		{"unknown platform", func(p *DeviceProfile) { p.Platform = "windows_phone" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := good
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestEffectiveDefaults(t *testing.T) {
	var p DeviceProfile
	assert.Equal(t, 1.0, p.EffectiveTextScale())
	assert.Equal(t, BrightnessLight, p.EffectiveBrightness())

	p.TextScale = 1.3
	p.Brightness = BrightnessDark
	assert.Equal(t, 1.3, p.EffectiveTextScale())
	assert.Equal(t, BrightnessDark, p.EffectiveBrightness())
}

func TestPhysicalSizeRounding(t *testing.T) {
	p := DeviceProfile{LogicalWidth: 402, LogicalHeight: 874, PixelRatio: 3}
	assert.Equal(t, 1206, p.PhysicalWidth())
	assert.Equal(t, 2622, p.PhysicalHeight())
}

func TestErrorTaxonomy(t *testing.T) {
	var pre error = &PreconditionError{Reason: "empty device list"}
	assert.Contains(t, pre.Error(), "precondition failed")

	var target *PreconditionError
	assert.True(t, errors.As(pre, &target))

	assert.Contains(t, (&NoMatchError{Selector: "<custom selector>"}).Error(), "matched no elements")
	assert.Contains(t, (&NoRenderSurfaceError{Element: "content"}).Error(), "paint boundary")
	assert.Contains(t, (&EncodingError{Reason: "no data"}).Error(), "encoding")
}
