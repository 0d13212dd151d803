package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestShouldRefreshAccessControlAlwaysWhenZero(t *testing.T) {
	s := Settings{SkipRefreshAccessControlDays: 0, LastRefreshAccessControl: time.Now()}
	if !s.ShouldRefreshAccessControl(time.Now()) {
		t.Error("expected true when SkipRefreshAccessControlDays is 0")
	}
}

func TestShouldRefreshAccessControlBeforeDeadline(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s := Settings{
		SkipRefreshAccessControlDays: 7,
		LastRefreshAccessControl:     now.AddDate(0, 0, -3),
	}
	if s.ShouldRefreshAccessControl(now) {
		t.Error("expected false: only 3 of 7 days elapsed")
	}
}

func TestShouldRefreshAccessControlAfterDeadline(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s := Settings{
		SkipRefreshAccessControlDays: 7,
		LastRefreshAccessControl:     now.AddDate(0, 0, -8),
	}
	if !s.ShouldRefreshAccessControl(now) {
		t.Error("expected true: 8 of 7 days elapsed")
	}
}

func TestShouldRefreshAccessControlExactlyAtDeadline(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s := Settings{
		SkipRefreshAccessControlDays: 7,
		LastRefreshAccessControl:     now.AddDate(0, 0, -7),
	}
	if !s.ShouldRefreshAccessControl(now) {
		t.Error("expected true: exactly 7 of 7 days elapsed")
	}
}

func TestLoadSettingsMissingFileYieldsZeroValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings on a missing file should not error, got %v", err)
	}
	if s.SkipRefreshAccessControlDays != 0 || len(s.IgnorePaths) != 0 {
		t.Fatalf("expected zero-value Settings, got %+v", s)
	}
}

func TestSaveThenLoadSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	want := Settings{
		SkipRefreshAccessControlDays: 5,
		LastRefreshAccessControl:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		IgnorePaths:                  []string{`C:\Data\secrets`},
		IgnoreDirNames:               []string{"node_modules"},
	}

	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	if got.SkipRefreshAccessControlDays != want.SkipRefreshAccessControlDays {
		t.Errorf("SkipRefreshAccessControlDays = %d, want %d", got.SkipRefreshAccessControlDays, want.SkipRefreshAccessControlDays)
	}
	if !got.LastRefreshAccessControl.Equal(want.LastRefreshAccessControl) {
		t.Errorf("LastRefreshAccessControl = %v, want %v", got.LastRefreshAccessControl, want.LastRefreshAccessControl)
	}
	if len(got.IgnorePaths) != 1 || got.IgnorePaths[0] != want.IgnorePaths[0] {
		t.Errorf("IgnorePaths = %v, want %v", got.IgnorePaths, want.IgnorePaths)
	}
	if len(got.IgnoreDirNames) != 1 || got.IgnoreDirNames[0] != want.IgnoreDirNames[0] {
		t.Errorf("IgnoreDirNames = %v, want %v", got.IgnoreDirNames, want.IgnoreDirNames)
	}
}
