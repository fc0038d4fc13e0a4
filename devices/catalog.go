// Package devices holds the built-in catalog of simulated device profiles.
// Logical sizes, densities and safe areas are tuned to match real hardware,
// so that rendered bitmaps land exactly on the pixel dimensions the stores
// accept for each display class.
package devices

import (
	"slices"

	"github.com/samber/lo"

	"github.com/appdeploy/storeshots/capture/definitions"
)

// catalog order is insertion order and is stable across releases. Consumers
// must not depend on any ordering beyond that.
var catalog = []definitions.DeviceProfile{
	// iPhone
	{
		Name: "iphone_6_9in", LogicalWidth: 440, LogicalHeight: 956, PixelRatio: 3,
		DisplayClass: "6.9-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 59, Bottom: 34},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "iphone_6_5in", LogicalWidth: 414, LogicalHeight: 896, PixelRatio: 3,
		DisplayClass: "6.5-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 44, Bottom: 34},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "iphone_6_3in", LogicalWidth: 402, LogicalHeight: 874, PixelRatio: 3,
		DisplayClass: "6.3-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 59, Bottom: 34},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "iphone_6_1in", LogicalWidth: 393, LogicalHeight: 852, PixelRatio: 3,
		DisplayClass: "6.1-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 59, Bottom: 34},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "iphone_5_5in", LogicalWidth: 414, LogicalHeight: 736, PixelRatio: 3,
		DisplayClass: "5.5-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 20},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "iphone_4_7in", LogicalWidth: 375, LogicalHeight: 667, PixelRatio: 2,
		DisplayClass: "4.7-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 20},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},

	// iPad
	{
		Name: "ipad_13in", LogicalWidth: 1032, LogicalHeight: 1376, PixelRatio: 2,
		DisplayClass: "13-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 24, Bottom: 20},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "ipad_12_9in", LogicalWidth: 1024, LogicalHeight: 1366, PixelRatio: 2,
		DisplayClass: "12.9-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 24, Bottom: 20},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "ipad_11in", LogicalWidth: 834, LogicalHeight: 1194, PixelRatio: 2,
		DisplayClass: "11-inch", Platform: definitions.PlatformIOS,
		SafeArea:  definitions.EdgeInsets{Top: 24, Bottom: 20},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},

	// Android phone, by aspect ratio
	{
		Name: "android_phone_16_9", LogicalWidth: 640, LogicalHeight: 360, PixelRatio: 3,
		DisplayClass: "6.1-inch", Platform: definitions.PlatformAndroid,
		SafeArea:  definitions.EdgeInsets{Top: 24},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "android_phone_9_16", LogicalWidth: 360, LogicalHeight: 640, PixelRatio: 3,
		DisplayClass: "6.1-inch", Platform: definitions.PlatformAndroid,
		SafeArea:  definitions.EdgeInsets{Top: 24},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "android_phone_18_9", LogicalWidth: 360, LogicalHeight: 720, PixelRatio: 3,
		DisplayClass: "6.3-inch", Platform: definitions.PlatformAndroid,
		SafeArea:  definitions.EdgeInsets{Top: 24},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "android_phone_20_9", LogicalWidth: 360, LogicalHeight: 800, PixelRatio: 3,
		DisplayClass: "6.7-inch", Platform: definitions.PlatformAndroid,
		SafeArea:  definitions.EdgeInsets{Top: 24, Bottom: 24},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},

	// Android tablet and TV
	{
		Name: "android_tablet", LogicalWidth: 800, LogicalHeight: 1280, PixelRatio: 2,
		DisplayClass: "10-inch", Platform: definitions.PlatformAndroid,
		SafeArea:  definitions.EdgeInsets{Top: 24},
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
	{
		Name: "android_tv", LogicalWidth: 960, LogicalHeight: 540, PixelRatio: 2,
		DisplayClass: "tv", Platform: definitions.PlatformAndroid,
		TextScale: 1, Brightness: definitions.BrightnessLight,
	},
}

// All returns every built-in profile in catalog order. The slice is a copy;
// mutating it does not affect the catalog.
func All() []definitions.DeviceProfile {
	return slices.Clone(catalog)
}

// ByPlatform filters the catalog to one platform tag, preserving order.
func ByPlatform(platform definitions.Platform) []definitions.DeviceProfile {
	return lo.Filter(catalog, func(p definitions.DeviceProfile, _ int) bool {
		return p.Platform == platform
	})
}

// ByDisplayClass filters the catalog to one display class, preserving order.
// Classes may repeat across platforms.
func ByDisplayClass(class string) []definitions.DeviceProfile {
	return lo.Filter(catalog, func(p definitions.DeviceProfile, _ int) bool {
		return p.DisplayClass == class
	})
}

// Lookup finds a built-in profile by name.
func Lookup(name string) (definitions.DeviceProfile, bool) {
	return lo.Find(catalog, func(p definitions.DeviceProfile) bool {
		return p.Name == name
	})
}

// Names lists the built-in profile names in catalog order.
func Names() []string {
	return lo.Map(catalog, func(p definitions.DeviceProfile, _ int) string {
		return p.Name
	})
}
