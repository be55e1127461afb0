package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyOutput    = "output"
	keyLogging   = "logging"
	keyStorage   = "storage"
	keyProfile   = "profile"
	keyDashboard = "dashboard"
	keyBudget    = "budget"
)

// ShallowMergeYAML loads a YAML file and merges its sections onto target.
// Fields present in a section replace the target's value; fields and
// sections absent from the file keep the target's value. Unknown top-level
// keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node onto the matching field of target. Decoding
// onto the existing value keeps defaults for fields the file omits.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyOutput:
		return node.Decode(&target.Output)
	case keyLogging:
		return node.Decode(&target.Logging)
	case keyStorage:
		return node.Decode(&target.Storage)
	case keyProfile:
		return node.Decode(&target.Profile)
	case keyDashboard:
		return node.Decode(&target.Dashboard)
	case keyBudget:
		// Alerts replace rather than merge.
		var v BudgetConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Budget = v
		return nil
	default:
		return nil
	}
}
