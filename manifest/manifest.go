// Package manifest loads the scenario manifests the CLI runs from: a YAML or
// JSON file naming an output root and the scenarios to capture.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/appdeploy/storeshots/capture/definitions"
	"github.com/appdeploy/storeshots/devices"
)

// Manifest describes a batch of screenshot scenarios.
type Manifest struct {
	// OutputRoot overrides the default output directory. Optional.
	OutputRoot string `yaml:"output_root" json:"output_root"`
	// Flat opts into the ungrouped {device}.{scenario}.png layout.
	Flat bool `yaml:"flat" json:"flat"`
	// Scenarios is the ordered list of captures to run.
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Scenario is one named screenshot moment and the devices it renders on.
type Scenario struct {
	Name string `yaml:"name" json:"name"`
	// Devices holds built-in profile names, or the single entry "all" for
	// the full catalog.
	Devices []string `yaml:"devices" json:"devices"`
	// DarkVariant additionally captures a dark-brightness derivation of
	// every listed device.
	DarkVariant bool `yaml:"dark_variant" json:"dark_variant"`
}

// Load reads and validates a manifest. JSON is selected by the .json
// extension; anything else parses as YAML.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &m)
	} else {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks scenario names and device references before anything runs.
func (m *Manifest) Validate() error {
	if len(m.Scenarios) == 0 {
		return fmt.Errorf("manifest lists no scenarios")
	}
	for i, s := range m.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d has no name", i)
		}
		if len(s.Devices) == 0 {
			return fmt.Errorf("scenario %s lists no devices", s.Name)
		}
		if _, err := s.ResolveProfiles(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveProfiles expands the scenario's device references against the
// built-in catalog, appending dark variants when requested.
func (s Scenario) ResolveProfiles() ([]definitions.DeviceProfile, error) {
	var profiles []definitions.DeviceProfile
	if len(s.Devices) == 1 && s.Devices[0] == "all" {
		profiles = devices.All()
	} else {
		for _, name := range s.Devices {
			p, ok := devices.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("scenario %s: unknown device %q", s.Name, name)
			}
			profiles = append(profiles, p)
		}
	}
	if s.DarkVariant {
		for _, p := range profiles[:len(profiles):len(profiles)] {
			profiles = append(profiles, p.DarkVariant())
		}
	}
	return profiles, nil
}
