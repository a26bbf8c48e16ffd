package evaluation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadGoldenProfiles_JSON(t *testing.T) {
	content := `[
		{"id": "p1", "expected_label": 0, "profile": {"name": "Alice", "follower_count": 5, "uses_google_login": true}},
		{"id": "p2", "expected_label": 1, "note": "vote ring", "profile": {"name": "bot", "follower_count": 0}}
	]`
	path := writeTempFile(t, "golden.json", content)

	profiles, err := LoadGoldenProfiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].ID != "p1" {
		t.Errorf("expected id p1, got %s", profiles[0].ID)
	}
	if profiles[0].Profile.FollowerCount == nil || *profiles[0].Profile.FollowerCount != 5 {
		t.Errorf("expected follower_count 5, got %v", profiles[0].Profile.FollowerCount)
	}
	if profiles[1].Profile.FollowerCount == nil || *profiles[1].Profile.FollowerCount != 0 {
		t.Errorf("expected present follower_count 0, got %v", profiles[1].Profile.FollowerCount)
	}
	if profiles[1].Profile.Email != nil {
		t.Errorf("expected absent email to stay nil")
	}
	if profiles[1].Note != "vote ring" {
		t.Errorf("expected note, got %q", profiles[1].Note)
	}
}

func TestLoadGoldenProfiles_YAML(t *testing.T) {
	content := `
- id: p1
  expected_label: 1
  profile:
    name: bot
    avg_read_time_minutes: 0.1
`
	path := writeTempFile(t, "golden.yaml", content)

	profiles, err := LoadGoldenProfiles(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ExpectedLabel != 1 {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
	if profiles[0].Profile.AvgReadTimeMinutes == nil || *profiles[0].Profile.AvgReadTimeMinutes != 0.1 {
		t.Errorf("expected avg_read_time_minutes 0.1")
	}
}

func TestLoadGoldenProfiles_InvalidFile(t *testing.T) {
	_, err := LoadGoldenProfiles("/nonexistent/path.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadGoldenProfiles_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "golden.json", `not valid json`)
	_, err := LoadGoldenProfiles(path)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestValidateGoldenProfiles(t *testing.T) {
	cases := []struct {
		name     string
		profiles []GoldenProfile
		wantErr  string
	}{
		{"valid", []GoldenProfile{{ID: "a"}, {ID: "b", ExpectedLabel: 1}}, ""},
		{"empty set", nil, "empty"},
		{"missing id", []GoldenProfile{{ID: ""}}, "missing id"},
		{"duplicate id", []GoldenProfile{{ID: "a"}, {ID: "a"}}, "duplicate id"},
		{"bad label", []GoldenProfile{{ID: "a", ExpectedLabel: 2}}, "invalid expected_label"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGoldenProfiles(tc.profiles)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadGoldenProfiles_BundledSet(t *testing.T) {
	profiles, err := LoadGoldenProfiles(filepath.Join("..", "..", "model", "golden_profiles.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateGoldenProfiles(profiles); err != nil {
		t.Errorf("bundled golden set is invalid: %v", err)
	}
}
