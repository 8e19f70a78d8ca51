package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/prims-maze/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Rows:        5,
		Columns:     5,
		TileSize:    16,
		Messages: engine.ConfigMessages{
			Welcome: "Welcome!",
			Victory: "Escaped!",
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("prefers classic", func(t *testing.T) {
		dir := t.TempDir()
		classic := createValidConfig()
		classic.Name = "Classic"
		writeConfigFile(t, dir, "classic", classic)
		writeConfigFile(t, dir, "another", createValidConfig())

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "Classic" {
			t.Errorf("Expected classic default, got %q", manager.GetDefault().Name)
		}
	})

	t.Run("falls back to first preset", func(t *testing.T) {
		dir := t.TempDir()
		b := createValidConfig()
		b.Name = "B"
		writeConfigFile(t, dir, "b", b)
		a := createValidConfig()
		a.Name = "A"
		writeConfigFile(t, dir, "a", a)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager.GetDefault().Name != "A" {
			t.Errorf("Expected first preset by ID, got %q", manager.GetDefault().Name)
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		if _, err := NewManager("/non/existent/path"); err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("empty directory uses built-in preset", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without presets, got: %v", err)
		}

		def := manager.GetDefault()
		if def == nil {
			t.Fatal("Expected default config to be available")
		}
		if def.Name != "classic" || def.Rows != 21 || def.Columns != 21 {
			t.Errorf("Expected built-in classic 21x21, got %s %dx%d", def.Name, def.Rows, def.Columns)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	seed := int64(7)
	tiny := createValidConfig()
	tiny.Name = "Tiny"
	tiny.Seed = &seed
	writeConfigFile(t, dir, "tiny", tiny)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("tiny")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Tiny" {
			t.Errorf("Expected config name 'Tiny', got '%s'", config.Name)
		}
		if config.Seed == nil || *config.Seed != 7 {
			t.Errorf("Expected seed 7, got %v", config.Seed)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("tiny.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Tiny" {
			t.Errorf("Expected config name 'Tiny', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("tiny")
		config2, err := manager.LoadConfig("tiny")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "invalid.json"), []byte(`{"name": ""}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := manager.LoadConfig("invalid"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load oversized config", func(t *testing.T) {
		big := createValidConfig()
		big.Rows = 500
		writeConfigFile(t, dir, "big", big)
		if _, err := manager.LoadConfig("big"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "malformed.json"), []byte(`{"name": "Malformed", invalid json}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := manager.LoadConfig("malformed"); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("reject path traversal", func(t *testing.T) {
		for _, name := range []string{"", "..", "../secrets", `a\b`} {
			if _, err := manager.LoadConfig(name); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("LoadConfig(%q): expected ErrInvalidConfig, got %v", name, err)
			}
		}
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()

	presets := []struct {
		id      string
		name    string
		rows    int
		columns int
	}{
		{"medium", "Medium", 21, 31},
		{"easy", "Easy", 9, 9},
		{"hard", "Hard", 41, 61},
	}
	for _, p := range presets {
		config := createValidConfig()
		config.Name = p.name
		config.Rows = p.rows
		config.Columns = p.columns
		writeConfigFile(t, dir, p.id, config)
	}

	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configList, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configList) != 3 {
		t.Fatalf("Expected 3 configs, got %d", len(configList))
	}

	wantOrder := []string{"easy", "hard", "medium"}
	for i, info := range configList {
		if info.ConfigID != wantOrder[i] {
			t.Errorf("Position %d: expected %s, got %s", i, wantOrder[i], info.ConfigID)
		}
		if info.Filename != info.ConfigID+".json" {
			t.Errorf("Unexpected filename %s for %s", info.Filename, info.ConfigID)
		}
	}
	if configList[1].Rows != 41 || configList[1].Columns != 61 {
		t.Errorf("Expected hard to be 41x61, got %dx%d", configList[1].Rows, configList[1].Columns)
	}
}

func TestManager_ReloadConfig(t *testing.T) {
	dir := t.TempDir()

	config := createValidConfig()
	config.Name = "Changeable"
	writeConfigFile(t, dir, "changeable", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	loaded, _ := manager.LoadConfig("changeable")
	if loaded.Rows != 5 {
		t.Errorf("Expected initial rows 5, got %d", loaded.Rows)
	}

	config.Rows = 11
	writeConfigFile(t, dir, "changeable", config)

	if err := manager.ReloadConfig("changeable"); err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}

	reloaded, _ := manager.LoadConfig("changeable")
	if reloaded.Rows != 11 {
		t.Errorf("Expected reloaded rows 11, got %d", reloaded.Rows)
	}

	manager.RefreshCache()
	if manager.GetDefault() == nil {
		t.Error("Expected default after refresh")
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("save valid config", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Saved"
		if err := manager.SaveConfig("saved", config); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
			t.Errorf("Expected saved.json on disk: %v", err)
		}

		manager.ReloadConfig("saved")
		loaded, err := manager.LoadConfig("saved")
		if err != nil {
			t.Fatalf("Failed to load saved config: %v", err)
		}
		if loaded.Name != "Saved" {
			t.Errorf("Expected name 'Saved', got %q", loaded.Name)
		}
	})

	t.Run("reject invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.Messages.Victory = ""
		if err := manager.SaveConfig("novictory", config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("set default", func(t *testing.T) {
		if err := manager.SetDefault("saved"); err != nil {
			t.Fatalf("Failed to set default: %v", err)
		}
		if manager.GetDefault().Name != "Saved" {
			t.Errorf("Expected default 'Saved', got %q", manager.GetDefault().Name)
		}
		if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()

	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = fmt.Sprintf("Config%d", i)
		writeConfigFile(t, dir, fmt.Sprintf("config%d", i), config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.LoadConfig(fmt.Sprintf("config%d", id%5+1)); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	if manager.Count() != 5 {
		t.Errorf("Expected 5 configs in cache, got %d", manager.Count())
	}
}
