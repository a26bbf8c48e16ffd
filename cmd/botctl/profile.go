package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/zatekoja/botornot/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

var genders = []string{"Male", "Female"}

// profileFlags mirrors the dashboard form
type profileFlags struct {
	file string

	name                 string
	gender               string
	email                string
	googleLogin          bool
	followerCount        uint64
	followingCount       uint64
	datasetCount         uint64
	codeCount            uint64
	discussionCount      uint64
	avgReadTimeMinutes   float64
	registrationIPv4     string
	registrationLocation string
	votesOnNotebooks     uint64
	votesOnDatasets      uint64
	votesOnDiscussions   uint64
}

func (f *profileFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.file, "file", "f", "", "read the profile from a JSON or YAML file; explicit flags override it")

	fs.StringVar(&f.name, "name", "", "user name")
	fs.StringVar(&f.gender, "gender", "Male", "gender (Male or Female)")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.BoolVar(&f.googleLogin, "google-login", true, "user signed up with Google login")
	fs.Uint64Var(&f.followerCount, "followers", 0, "follower count")
	fs.Uint64Var(&f.followingCount, "following", 0, "following count")
	fs.Uint64Var(&f.datasetCount, "datasets", 0, "dataset count")
	fs.Uint64Var(&f.codeCount, "notebooks", 0, "notebook count")
	fs.Uint64Var(&f.discussionCount, "discussions", 0, "discussion count")
	fs.Float64Var(&f.avgReadTimeMinutes, "read-time", 0, "average notebook read time in minutes")
	fs.StringVar(&f.registrationIPv4, "ipv4", "", "registration IPv4 address")
	fs.StringVar(&f.registrationLocation, "location", "", "registration location")
	fs.Uint64Var(&f.votesOnNotebooks, "votes-notebooks", 0, "votes given on notebooks")
	fs.Uint64Var(&f.votesOnDatasets, "votes-datasets", 0, "votes given on datasets")
	fs.Uint64Var(&f.votesOnDiscussions, "votes-discussions", 0, "votes given on discussions")
}

// profile merges the optional file with the flags.
// Without a file every field takes its flag value, defaults included.
func (f *profileFlags) profile(fs *pflag.FlagSet) (*entities.UserProfile, error) {
	profile := &entities.UserProfile{}
	if f.file != "" {
		loaded, err := readProfile(f.file)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	use := func(name string) bool {
		return f.file == "" || fs.Changed(name)
	}

	if use("name") {
		profile.Name = &f.name
	}
	if use("gender") {
		profile.Gender = &f.gender
	}
	if use("email") {
		profile.Email = &f.email
	}
	if use("google-login") {
		profile.UsesGoogleLogin = &f.googleLogin
	}
	if use("read-time") {
		profile.AvgReadTimeMinutes = &f.avgReadTimeMinutes
	}
	if use("ipv4") {
		profile.RegistrationIPv4 = &f.registrationIPv4
	}
	if use("location") {
		profile.RegistrationLocation = &f.registrationLocation
	}

	counts := []struct {
		flag  string
		value uint64
		dst   **int64
	}{
		{"followers", f.followerCount, &profile.FollowerCount},
		{"following", f.followingCount, &profile.FollowingCount},
		{"datasets", f.datasetCount, &profile.DatasetCount},
		{"notebooks", f.codeCount, &profile.CodeCount},
		{"discussions", f.discussionCount, &profile.DiscussionCount},
		{"votes-notebooks", f.votesOnNotebooks, &profile.VotesOnNotebooks},
		{"votes-datasets", f.votesOnDatasets, &profile.VotesOnDatasets},
		{"votes-discussions", f.votesOnDiscussions, &profile.VotesOnDiscussions},
	}
	for _, c := range counts {
		if !use(c.flag) {
			continue
		}
		if c.value > math.MaxInt64 {
			return nil, fmt.Errorf("--%s is too large", c.flag)
		}
		v := int64(c.value)
		*c.dst = &v
	}

	if err := checkProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// checkProfile applies the form's own constraints before anything is sent
func checkProfile(p *entities.UserProfile) error {
	if p.Gender != nil && !contains(genders, *p.Gender) {
		return fmt.Errorf("gender must be one of %s, got %q", strings.Join(genders, ", "), *p.Gender)
	}
	if p.AvgReadTimeMinutes != nil && (*p.AvgReadTimeMinutes < 0 || math.IsNaN(*p.AvgReadTimeMinutes)) {
		return fmt.Errorf("read time must be at least 0, got %v", *p.AvgReadTimeMinutes)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func readProfile(path string) (*entities.UserProfile, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := &entities.UserProfile{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(payload, profile)
	default:
		err = json.Unmarshal(payload, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, err)
	}
	return profile, nil
}
