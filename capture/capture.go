package capture

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/appdeploy/storeshots/capture/definitions"
	"github.com/appdeploy/storeshots/constants"
	"github.com/appdeploy/storeshots/devices"
)

// Config tunes a Capturer. The zero value selects the canonical defaults.
type Config struct {
	// OutputRoot is where resolved paths live. Defaults to
	// constants.DefaultOutputRoot.
	OutputRoot string
	// Resolver is the default path scheme. Defaults to GroupedPath over
	// OutputRoot; FlatPath is the explicit opt-in for ungrouped output.
	Resolver PathResolver
	// Logger overrides the global zerolog logger.
	Logger *zerolog.Logger
}

// Capturer drives screenshot capture across device profiles against one
// Surface. Devices are always processed sequentially: the surface's
// overridable state is a process-wide singleton and each override must be
// restored before the next is applied.
type Capturer struct {
	surface    Surface
	resolver   PathResolver
	outputRoot string
	log        zerolog.Logger
}

// NewCapturer wires a Capturer to the given surface. cfg may be nil.
func NewCapturer(surface Surface, cfg *Config) *Capturer {
	if cfg == nil {
		cfg = &Config{}
	}
	root := cfg.OutputRoot
	if root == "" {
		root = constants.DefaultOutputRoot
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = GroupedPath(root)
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Capturer{
		surface:    surface,
		resolver:   resolver,
		outputRoot: root,
		log:        logger,
	}
}

// CaptureOptions tunes a single capture call. The zero value captures the
// whole surface after settling to quiescence, waiting for pending images.
type CaptureOptions struct {
	// Selector picks the element to rasterize; nil captures the whole surface.
	Selector Selector
	// Settle overrides the default settle-to-quiescence strategy.
	Settle SettleStrategy
	// SkipAssetWait skips waiting for pending image decodes before capture.
	SkipAssetWait bool
	// PerDeviceSetup runs after the viewport override is applied and the
	// post-override settle cycles, and before capture. Scenario-specific
	// interaction (scrolling, opening a sheet) goes here.
	PerDeviceSetup func(ctx context.Context, profile definitions.DeviceProfile) error
	// Resolver overrides the Capturer's path scheme for this call.
	Resolver PathResolver
}

// CaptureScreen captures one scenario on a single device profile.
func (c *Capturer) CaptureScreen(ctx context.Context, scenario string, profile definitions.DeviceProfile, opts CaptureOptions) error {
	return c.CaptureScreens(ctx, scenario, []definitions.DeviceProfile{profile}, opts)
}

// CaptureScreenTo captures a single device render to an explicit output
// path, bypassing the path resolver entirely.
func (c *Capturer) CaptureScreenTo(ctx context.Context, outputPath string, profile definitions.DeviceProfile, opts CaptureOptions) error {
	if outputPath == "" {
		return &definitions.PreconditionError{Reason: "output path must not be empty"}
	}
	if err := profile.Validate(); err != nil {
		return &definitions.PreconditionError{Reason: err.Error()}
	}
	return c.captureDevice(ctx, outputPath, profile, opts)
}

// CaptureScreens captures one scenario across an explicit, non-empty list of
// device profiles. The first failing device aborts the remaining ones; a
// malformed selector is a scenario-wide authoring bug, not a per-device
// condition.
func (c *Capturer) CaptureScreens(ctx context.Context, scenario string, profiles []definitions.DeviceProfile, opts CaptureOptions) error {
	if err := checkScenarioName(scenario); err != nil {
		return err
	}
	if len(profiles) == 0 {
		return &definitions.PreconditionError{Reason: "device list must not be empty"}
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return &definitions.PreconditionError{Reason: err.Error()}
		}
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = c.resolver
	}

	for _, profile := range profiles {
		path := resolver(scenario, profile)
		if path == "" {
			return &definitions.PreconditionError{Reason: fmt.Sprintf("path resolver returned an empty path for device %s", profile.Name)}
		}
		if err := c.captureDevice(ctx, path, profile, opts); err != nil {
			return fmt.Errorf("capture %s on %s: %w", scenario, profile.Name, err)
		}
	}
	return nil
}

// CaptureAllPlatforms captures one scenario across the complete built-in
// catalog, all platforms included, with the platform-grouped naming scheme
// unless opts.Resolver names another one.
func (c *Capturer) CaptureAllPlatforms(ctx context.Context, scenario string, opts CaptureOptions) error {
	if opts.Resolver == nil {
		opts.Resolver = GroupedPath(c.outputRoot)
	}
	return c.CaptureScreens(ctx, scenario, devices.All(), opts)
}

// captureDevice runs one device's override/settle/setup/capture/restore cycle.
func (c *Capturer) captureDevice(ctx context.Context, path string, profile definitions.DeviceProfile, opts CaptureOptions) error {
	c.log.Debug().
		Str("device", profile.Name).
		Str("platform", string(profile.Platform)).
		Str("path", path).
		Msg("capturing screenshot")

	err := RunWithOverride(ctx, c.surface, profile, func(ctx context.Context) error {
		// Two settle cycles: some nodes schedule a second layout pass in
		// response to the viewport size change.
		if err := c.surface.Settle(ctx); err != nil {
			return fmt.Errorf("settle after override: %w", err)
		}
		if err := c.surface.Settle(ctx); err != nil {
			return fmt.Errorf("settle after override: %w", err)
		}
		if opts.PerDeviceSetup != nil {
			if err := opts.PerDeviceSetup(ctx, profile); err != nil {
				return fmt.Errorf("per-device setup: %w", err)
			}
		}
		return c.renderAndPersist(ctx, path, opts)
	})
	if err != nil {
		c.log.Error().Err(err).Str("device", profile.Name).Msg("capture failed")
		return err
	}

	c.log.Info().Str("device", profile.Name).Str("path", path).Msg("screenshot written")
	return nil
}

// checkScenarioName rejects names that already carry the image extension;
// resolvers append it, and a double extension would silently corrupt the
// store directory structure.
func checkScenarioName(scenario string) error {
	if scenario == "" {
		return &definitions.PreconditionError{Reason: "scenario name must not be empty"}
	}
	if strings.HasSuffix(strings.ToLower(scenario), constants.ImageExtension) {
		return &definitions.PreconditionError{
			Reason: fmt.Sprintf("scenario name %q must not end in %s", scenario, constants.ImageExtension),
		}
	}
	return nil
}
