package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/appdeploy/storeshots/capture"
	"github.com/appdeploy/storeshots/capture/appstore"
	"github.com/appdeploy/storeshots/capture/definitions"
	"github.com/appdeploy/storeshots/capture/playstore"
	"github.com/appdeploy/storeshots/capture/surface"
	"github.com/appdeploy/storeshots/constants"
	"github.com/appdeploy/storeshots/devices"
	"github.com/appdeploy/storeshots/manifest"
	"github.com/appdeploy/storeshots/utils"
)

// Config holds all the configuration values from command line arguments
type Config struct {
	OutputRoot  string `json:"output_root"`
	Platform    string `json:"platform"`
	ListDevices bool   `json:"list_devices"`
	Validate    bool   `json:"validate"`
	Resolve     string `json:"resolve"`
	Manifest    string `json:"manifest"`
	Scenario    string `json:"scenario"`
	Devices     string `json:"devices"`
	Dark        bool   `json:"dark"`
	Flat        bool   `json:"flat"`
	Quiet       bool   `json:"quiet"`
	Debug       bool   `json:"debug"`
}

var rootCmd = &cobra.Command{
	Use:   "storeshots",
	Short: "storeshots - app-store screenshot matrix runner",
	Long: `storeshots renders placeholder frames across the built-in device catalog
and writes them into the app-store-compliant directory layout. It is the
pipeline glue around the capture library; real UI renders plug in through
the capture.Surface interface.`,
	Example: `  # List the built-in device catalog
  storeshots --list-devices

  # Only Android profiles
  storeshots --list-devices --platform android

  # Show where a scenario's files would land, without rendering
  storeshots --resolve home

  # Check the catalog against both store grammars
  storeshots --validate

  # Run every scenario in a manifest
  storeshots --manifest screenshots.yaml

  # Ad-hoc capture of one scenario on two devices
  storeshots --scenario home --devices iphone_6_9in,android_phone_9_16

  # Same, plus dark variants, ungrouped layout
  storeshots --scenario home --devices iphone_6_9in --dark --flat`,
	Run: func(cmd *cobra.Command, args []string) {
		// Dispatch happens in main() after Execute returns; the hook only
		// exists so cobra does not print help on a flag-driven invocation.
	},
}

var config = &Config{}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as bool with default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.OutputRoot, "output-root",
		getEnv("STORESHOTS_OUTPUT_ROOT", constants.DefaultOutputRoot),
		"Root directory for generated screenshots")

	rootCmd.PersistentFlags().StringVar(&config.Platform, "platform",
		getEnv("STORESHOTS_PLATFORM", "all"),
		"Platform filter: ios, android or all")

	rootCmd.PersistentFlags().BoolVar(&config.ListDevices, "list-devices", false,
		"List the built-in device catalog and exit")

	rootCmd.PersistentFlags().BoolVar(&config.Validate, "validate", false,
		"Validate the catalog against both store grammars and exit")

	rootCmd.PersistentFlags().StringVar(&config.Resolve, "resolve", "",
		"Print the resolved output paths for a scenario name and exit")

	rootCmd.PersistentFlags().StringVarP(&config.Manifest, "manifest", "m", "",
		"Scenario manifest file (YAML or JSON) to run")

	rootCmd.PersistentFlags().StringVarP(&config.Scenario, "scenario", "s", "",
		"Scenario name for an ad-hoc capture run")

	rootCmd.PersistentFlags().StringVarP(&config.Devices, "devices", "d", "",
		"Comma-separated device names for an ad-hoc run (default: full catalog)")

	rootCmd.PersistentFlags().BoolVar(&config.Dark, "dark", false,
		"Also capture dark-brightness variants in ad-hoc runs")

	rootCmd.PersistentFlags().BoolVar(&config.Flat, "flat", false,
		"Use the ungrouped {device}.{scenario}.png layout")

	rootCmd.PersistentFlags().BoolVarP(&config.Quiet, "quiet", "q", false,
		"Suppress verbose output")

	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug",
		getEnvBool("STORESHOTS_DEBUG", false),
		"Enable debug logging")
}

func main() {
	parseArgs()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if config.Quiet {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	ctx := context.Background()

	if hitCmd := handleCatalogCommands(); hitCmd {
		return
	}

	switch {
	case config.Manifest != "":
		if err := runManifest(ctx, config.Manifest); err != nil {
			log.Error().Err(err).Msg("manifest run failed")
			os.Exit(1)
		}
	case config.Scenario != "":
		if err := runAdHoc(ctx); err != nil {
			log.Error().Err(err).Msg("capture run failed")
			os.Exit(1)
		}
	default:
		fmt.Printf("Configuration: %s\n", utils.JsonIndent(config))
		fmt.Println("Nothing to do: pass --manifest, --scenario, --list-devices, --resolve or --validate.")
	}
}

func parseArgs() *Config {
	rootCmd.PersistentPreRunE = validateArgs
	cobra.CheckErr(rootCmd.Execute())
	return config
}

func validateArgs(cmd *cobra.Command, args []string) error {
	switch config.Platform {
	case "ios", "android", "all":
	default:
		return fmt.Errorf("invalid platform: %s. Must be 'ios', 'android' or 'all'", config.Platform)
	}
	if config.Manifest != "" && config.Scenario != "" {
		return fmt.Errorf("--manifest and --scenario are mutually exclusive")
	}
	return nil
}

// handleCatalogCommands services the read-only catalog queries. Returns true
// when a command was handled and the process should exit.
func handleCatalogCommands() bool {
	if config.ListDevices {
		for _, p := range selectedProfiles() {
			log.Info().
				Str("device", p.Name).
				Str("platform", string(p.Platform)).
				Str("class", p.DisplayClass).
				Str("pixels", fmt.Sprintf("%dx%d", p.PhysicalWidth(), p.PhysicalHeight())).
				Msg("profile")
		}
		return true
	}

	if config.Resolve != "" {
		resolver := pathResolver()
		paths := lo.Map(selectedProfiles(), func(p definitions.DeviceProfile, _ int) string {
			return resolver(config.Resolve, p)
		})
		fmt.Println(utils.JsonIndent(paths))
		return true
	}

	if config.Validate {
		failed := false
		for _, p := range devices.ByPlatform(definitions.PlatformIOS) {
			if err := appstore.ValidateProfile(p); err != nil {
				log.Error().Err(err).Msg("❌ App Store check failed")
				failed = true
			}
		}
		for _, p := range devices.ByPlatform(definitions.PlatformAndroid) {
			if err := playstore.ValidateProfile(p); err != nil {
				log.Error().Err(err).Msg("❌ Play check failed")
				failed = true
			}
			for _, w := range playstore.Warnings(p) {
				log.Warn().Str("device", p.Name).Msg(w)
			}
		}
		if failed {
			os.Exit(1)
		}
		log.Info().Msg("✅ catalog passes both store grammars")
		return true
	}

	return false
}

func selectedProfiles() []definitions.DeviceProfile {
	switch config.Platform {
	case "ios":
		return devices.ByPlatform(definitions.PlatformIOS)
	case "android":
		return devices.ByPlatform(definitions.PlatformAndroid)
	default:
		return devices.All()
	}
}

func pathResolver() capture.PathResolver {
	if config.Flat {
		return capture.FlatPath(config.OutputRoot)
	}
	return capture.GroupedPath(config.OutputRoot)
}

func runManifest(ctx context.Context, path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	log.Debug().Str("manifest", utils.JsonString(m)).Msg("manifest loaded")
	root := config.OutputRoot
	if m.OutputRoot != "" {
		root = m.OutputRoot
	}
	resolver := capture.GroupedPath(root)
	if m.Flat || config.Flat {
		resolver = capture.FlatPath(root)
	}

	mem := surface.NewMemory()
	capturer := capture.NewCapturer(mem, &capture.Config{OutputRoot: root, Resolver: resolver})

	for _, scenario := range m.Scenarios {
		profiles, err := scenario.ResolveProfiles()
		if err != nil {
			return err
		}
		mem.MountLabel(scenario.Name)
		log.Info().Str("scenario", scenario.Name).Int("devices", len(profiles)).Msg("running scenario")
		if err := capturer.CaptureScreens(ctx, scenario.Name, profiles, capture.CaptureOptions{}); err != nil {
			return err
		}
	}
	return nil
}

func runAdHoc(ctx context.Context) error {
	var profiles []definitions.DeviceProfile
	if config.Devices == "" {
		profiles = selectedProfiles()
	} else {
		for _, name := range strings.Split(config.Devices, ",") {
			name = strings.TrimSpace(name)
			p, ok := devices.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown device %q (see --list-devices)", name)
			}
			profiles = append(profiles, p)
		}
	}
	if config.Dark {
		for _, p := range profiles[:len(profiles):len(profiles)] {
			profiles = append(profiles, p.DarkVariant())
		}
	}

	mem := surface.NewMemory()
	mem.MountLabel(config.Scenario)
	capturer := capture.NewCapturer(mem, &capture.Config{
		OutputRoot: config.OutputRoot,
		Resolver:   pathResolver(),
	})
	return capturer.CaptureScreens(ctx, config.Scenario, profiles, capture.CaptureOptions{})
}
