package playstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdeploy/storeshots/capture/definitions"
	"github.com/appdeploy/storeshots/devices"
)

func TestBuiltinAndroidProfilesAccepted(t *testing.T) {
	for _, p := range devices.ByPlatform(definitions.PlatformAndroid) {
		assert.NoError(t, ValidateProfile(p), p.Name)
	}
}

func TestIOSProfileRejected(t *testing.T) {
	p, ok := devices.Lookup("iphone_6_9in")
	require.True(t, ok)
	assert.Error(t, ValidateProfile(p))
}

func TestEdgeBounds(t *testing.T) {
	small := definitions.DeviceProfile{
		Name: "android_tiny", LogicalWidth: 100, LogicalHeight: 200, PixelRatio: 1,
		DisplayClass: "4-inch", Platform: definitions.PlatformAndroid,
	}
	assert.Error(t, ValidateProfile(small))

	huge := definitions.DeviceProfile{
		Name: "android_huge", LogicalWidth: 2000, LogicalHeight: 1000, PixelRatio: 2,
		DisplayClass: "huge", Platform: definitions.PlatformAndroid,
	}
	assert.Error(t, ValidateProfile(huge))
}

func TestTVRequiresSixteenNine(t *testing.T) {
	tv, ok := devices.Lookup("android_tv")
	require.True(t, ok)
	assert.NoError(t, ValidateProfile(tv))

	squished := tv.Derive(definitions.ProfileOverrides{Name: "android_tv_squished"})
	squished.LogicalHeight = 600
	assert.Error(t, ValidateProfile(squished))
}

func TestTallAspectWarns(t *testing.T) {
	tall, ok := devices.Lookup("android_phone_20_9")
	require.True(t, ok)
	assert.NotEmpty(t, Warnings(tall))

	square, ok := devices.Lookup("android_tablet")
	require.True(t, ok)
	assert.Empty(t, Warnings(square))
}
