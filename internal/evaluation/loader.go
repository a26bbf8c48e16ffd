package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zatekoja/botornot/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// LoadGoldenProfiles reads a golden profile set from a JSON or YAML file.
func LoadGoldenProfiles(path string) ([]GoldenProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden profiles file: %w", err)
	}

	var profiles []GoldenProfile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &profiles)
	default:
		err = json.Unmarshal(data, &profiles)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse golden profiles: %w", err)
	}

	return profiles, nil
}

// ValidateGoldenProfiles checks ids are present and unique and labels are 0 or 1.
func ValidateGoldenProfiles(profiles []GoldenProfile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("golden profile set is empty")
	}

	seen := make(map[string]struct{}, len(profiles))

	for i, p := range profiles {
		if p.ID == "" {
			return fmt.Errorf("profile at index %d: missing id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("profile at index %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.ExpectedLabel != entities.LabelHuman && p.ExpectedLabel != entities.LabelBot {
			return fmt.Errorf("profile %q: invalid expected_label %d (must be 0 or 1)", p.ID, p.ExpectedLabel)
		}
	}

	return nil
}
