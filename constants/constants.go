package constants

const (
	// DefaultOutputRoot is the directory tree the store-upload tooling reads.
	DefaultOutputRoot = "app_deploy_screenshots"

	// ImageExtension is appended by the path resolvers. Scenario names must
	// not carry it themselves; the double extension would break the expected
	// store directory structure.
	ImageExtension = ".png"

	// DisplayClassSuffix is stripped from display classes when they are used
	// as path segments ("6.9-inch" -> "6.9").
	DisplayClassSuffix = "-inch"
)
