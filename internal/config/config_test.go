package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "invadm") {
		t.Errorf("GetConfigDir() = %v, should contain 'invadm'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewSettings(t *testing.T) {
	s := NewSettings()

	if s.Version != 1 {
		t.Errorf("NewSettings().Version = %v, want 1", s.Version)
	}

	if s.API.BaseURL != DefaultBaseURL {
		t.Errorf("NewSettings().API.BaseURL = %v, want %v", s.API.BaseURL, DefaultBaseURL)
	}

	if s.API.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("NewSettings().API.TimeoutSeconds = %v, want %v", s.API.TimeoutSeconds, DefaultTimeoutSeconds)
	}

	if !s.ConfirmDelete {
		t.Error("NewSettings().ConfirmDelete should be true by default")
	}
}

func TestSaveAndReload(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME override is not honored on Windows")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	s := NewSettings()
	s.API.BaseURL = "http://10.0.0.5:8080"
	s.API.TimeoutSeconds = 30
	s.ConfirmDelete = false

	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// The saved file must be valid YAML behind the comment header
	loaded, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if loaded.API.BaseURL != "http://10.0.0.5:8080" {
		t.Errorf("BaseURL = %v, want http://10.0.0.5:8080", loaded.API.BaseURL)
	}
	if loaded.API.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %v, want 30", loaded.API.TimeoutSeconds)
	}
	if loaded.ConfirmDelete {
		t.Error("ConfirmDelete should be false after reload")
	}

	// No temp file should be left behind
	if _, err := os.Stat(filepath.Join(tmpDir, "invadm", "config.yaml.tmp")); !os.IsNotExist(err) {
		t.Error("temporary config file was not cleaned up")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME override is not honored on Windows")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if s.API.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %v, want default %v", s.API.BaseURL, DefaultBaseURL)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME override is not honored on Windows")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "invadm")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	partial := "version: 1\napi:\n  base_url: http://10.0.0.5:8080\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(partial), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if s.API.BaseURL != "http://10.0.0.5:8080" {
		t.Errorf("BaseURL = %v, want http://10.0.0.5:8080", s.API.BaseURL)
	}
	if s.API.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %v, want default %v", s.API.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if !s.ConfirmDelete {
		t.Error("ConfirmDelete should stay true when the file omits confirm_delete")
	}
}

func TestLoadExplicitConfirmDeleteFalse(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME override is not honored on Windows")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "invadm")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	content := "version: 1\nconfirm_delete: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if s.ConfirmDelete {
		t.Error("ConfirmDelete should honor an explicit false")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME override is not honored on Windows")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "invadm")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("version: 99\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Reload(); err == nil {
		t.Error("Reload() should reject unsupported config version")
	}
}
