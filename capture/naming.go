package capture

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/appdeploy/storeshots/capture/definitions"
	"github.com/appdeploy/storeshots/constants"
)

// PathResolver maps a scenario name and a device profile to an output path.
// Resolvers must be pure: same inputs, same path, no clock or environment
// dependence, so repeated runs overwrite instead of accumulating.
type PathResolver func(scenario string, profile definitions.DeviceProfile) string

// GroupedPath is the canonical store layout:
//
//	{root}/{platform}/{displayLabel}_{deviceName}/{scenario}.png
//
// The per-platform grouping is what the store-upload tooling consumes.
func GroupedPath(root string) PathResolver {
	return func(scenario string, p definitions.DeviceProfile) string {
		dir := fmt.Sprintf("%s_%s", DisplayLabel(p.DisplayClass), p.Name)
		return filepath.Join(root, string(p.Platform), dir, scenario+constants.ImageExtension)
	}
}

// FlatPath is the ad-hoc layout for captures that skip platform grouping:
//
//	{root}/{deviceName}.{scenario}.png
func FlatPath(root string) PathResolver {
	return func(scenario string, p definitions.DeviceProfile) string {
		return filepath.Join(root, p.Name+"."+scenario+constants.ImageExtension)
	}
}

// TemplatePath builds a resolver from a fasttemplate pattern with the
// placeholders {platform}, {class}, {device} and {scenario}, joined under
// root. The extension is up to the template.
func TemplatePath(root, pattern string) PathResolver {
	tpl := fasttemplate.New(pattern, "{", "}")
	return func(scenario string, p definitions.DeviceProfile) string {
		rel := tpl.ExecuteString(map[string]any{
			"platform": string(p.Platform),
			"class":    DisplayLabel(p.DisplayClass),
			"device":   p.Name,
			"scenario": scenario,
		})
		return filepath.Join(root, filepath.FromSlash(rel))
	}
}

// DisplayLabel converts a display class to its path-segment form,
// "6.9-inch" -> "6.9". Classes without the suffix pass through unchanged.
func DisplayLabel(class string) string {
	return strings.TrimSuffix(class, constants.DisplayClassSuffix)
}
