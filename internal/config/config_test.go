package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Namespace != "mythos_forge_sessions" {
		t.Errorf("Namespace = %q, want default", cfg.Storage.Namespace)
	}
	if cfg.Server.Addr == "" {
		t.Error("Server.Addr default is empty")
	}
	if cfg.Owner != "" {
		t.Errorf("Owner = %q, want guest default", cfg.Owner)
	}
}

func TestLoad_ParsesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
owner: alice
storage:
  namespace: custom_sessions
provider:
  tts_model: gemini-tts-test
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Owner != "alice" {
		t.Errorf("Owner = %q, want alice", cfg.Owner)
	}
	if cfg.Storage.Namespace != "custom_sessions" {
		t.Errorf("Namespace = %q, want custom_sessions", cfg.Storage.Namespace)
	}
	if cfg.Provider.TTSModel != "gemini-tts-test" {
		t.Errorf("TTSModel = %q", cfg.Provider.TTSModel)
	}
	if cfg.Storage.Path == "" {
		t.Error("Storage.Path not defaulted")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("owner: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() on invalid YAML error = nil, want error")
	}
}
