// Package config defines the named configuration shapes of spec.md §6 and
// SPEC_FULL.md §A.3, and reads and writes Settings as a YAML file
// (LoadSettings, SaveSettings). Command-line parsing is not done here; it
// lives in cmd/hobomirror.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Task is one (from, to) pair as supplied by the command-line/config
// collaborator (spec.md §6).
type Task struct {
	SourceRoot string `yaml:"sourceRoot"`
	TargetRoot string `yaml:"targetRoot"`
}

// Settings is the structured, on-disk configuration the settings-store
// collaborator persists between runs (spec.md §6): the two ACL-refresh
// scheduling dates, and the ignore lists. Read and written as YAML via
// gopkg.in/yaml.v3, following the teacher's use of that library for
// structured configuration persistence.
type Settings struct {
	// SkipRefreshAccessControlDays is the number of days the engine may
	// go without refreshing ACLs before RefreshAccessControl toggles back
	// on automatically; 0 means "always refresh".
	SkipRefreshAccessControlDays int       `yaml:"skipRefreshAccessControlDays"`
	LastRefreshAccessControl     time.Time `yaml:"lastRefreshAccessControl"`

	// IgnorePaths are absolute paths, compared case-insensitively and
	// separator-normalized (spec.md §4.1's pathsEqual).
	IgnorePaths []string `yaml:"ignorePaths"`
	// IgnoreDirNames are leaf directory names, compared case-insensitively.
	IgnoreDirNames []string `yaml:"ignoreDirNames"`
}

// Options are the two run-time toggles and the two path collaborators
// named in spec.md §6.
type Options struct {
	RefreshAccessControl bool
	UpdateMetadata       bool
	LogDirectory         string
	SettingsPath         string
}

// ShouldRefreshAccessControl decides, from s and now, whether this run
// should refresh ACLs: true if SkipRefreshAccessControlDays is zero, or if
// at least that many days have elapsed since LastRefreshAccessControl.
// This is the engine's use of the settings store's two dates, per spec.md
// §6 ("The engine uses these two dates to decide whether to refresh ACLs
// on this run").
func (s Settings) ShouldRefreshAccessControl(now time.Time) bool {
	if s.SkipRefreshAccessControlDays <= 0 {
		return true
	}
	elapsed := now.Sub(s.LastRefreshAccessControl)
	return elapsed >= time.Duration(s.SkipRefreshAccessControlDays)*24*time.Hour
}

// LoadSettings reads a Settings value from a YAML file at path. A missing
// file is not an error: it yields the zero Settings (always-refresh,
// empty ignore lists), since a first run has nothing to load yet.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	} else if err != nil {
		return s, fmt.Errorf("unable to read settings file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("unable to parse settings file %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes s to path as YAML, used by the settings-store
// collaborator (spec.md §6) to persist the updated
// LastRefreshAccessControl date after a run completes.
func SaveSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("unable to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write settings file %s: %w", path, err)
	}
	return nil
}
