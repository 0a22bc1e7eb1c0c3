package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
)

func createValidConfig() *engine.BoardConfig {
	return &engine.BoardConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Width:       5,
		Height:      5,
		Layout: []string{
			"k....",
			".#...",
			"..#..",
			"...#.",
			"....n",
		},
		Legend: engine.DefaultLegend(),
		Puzzles: []engine.Puzzle{
			{Name: "corner", Piece: engine.King, From: engine.Cell{X: 0, Y: 0}, To: engine.Cell{X: 4, Y: 0}, Par: 4},
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.BoardConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	require.NoError(t, err)

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), data, 0644))
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		defaultConfig := createValidConfig()
		defaultConfig.Name = "Classic"
		writeConfigFile(t, dir, "classic", defaultConfig)

		manager, err := NewManager(dir)
		require.NoError(t, err)
		require.NotNil(t, manager)
		assert.Equal(t, "Classic", manager.GetDefault().Name)
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "classic.json")
		require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))
		_, err := NewManager(file)
		assert.Error(t, err)
	})

	t.Run("saving does not change the default", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "classic", createValidConfig())
		manager, err := NewManager(dir)
		require.NoError(t, err)

		other := createValidConfig()
		other.Name = "Other"
		require.NoError(t, manager.SaveConfig("aaa", other))
		assert.Equal(t, "Test Config", manager.GetDefault().Name)
	})

	t.Run("empty directory falls back to built-in board", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		require.NoError(t, err)

		def := manager.GetDefault()
		require.NotNil(t, def)
		assert.Equal(t, engine.DefaultBoardConfig().Name, def.Name)
	})

	t.Run("without classic the first valid config wins", func(t *testing.T) {
		dir := t.TempDir()
		a := createValidConfig()
		a.Name = "Alpha"
		b := createValidConfig()
		b.Name = "Beta"
		writeConfigFile(t, dir, "beta", b)
		writeConfigFile(t, dir, "alpha", a)

		manager, err := NewManager(dir)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", manager.GetDefault().Name)
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "test", createValidConfig())

	invalid := createValidConfig()
	invalid.Layout[0] = "k..x."
	writeConfigFile(t, dir, "invalid", invalid)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("test")
		require.NoError(t, err)
		assert.Equal(t, "Test Config", config.Name)
		assert.Equal(t, 5, config.Width)
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("test.json")
		require.NoError(t, err)
		assert.Equal(t, "Test Config", config.Name)
	})

	t.Run("cached config is reused", func(t *testing.T) {
		first, err := manager.LoadConfig("test")
		require.NoError(t, err)
		second, err := manager.LoadConfig("test.json")
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := manager.LoadConfig("nope")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("path traversal is not found", func(t *testing.T) {
		for _, name := range []string{"../test", `..\test`, "..", ".json", ""} {
			_, err := manager.LoadConfig(name)
			assert.ErrorIs(t, err, ErrConfigNotFound, name)
		}
	})

	t.Run("invalid layout", func(t *testing.T) {
		_, err := manager.LoadConfig("invalid")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
		assert.Contains(t, err.Error(), "invalid character")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := manager.LoadConfig("broken")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()
	b := createValidConfig()
	b.Name = "Bravo"
	writeConfigFile(t, dir, "bravo", b)
	a := createValidConfig()
	a.Name = "Alpha"
	a.Puzzles = nil
	writeConfigFile(t, dir, "alpha", a)

	invalid := createValidConfig()
	invalid.Width = 0
	writeConfigFile(t, dir, "zulu", invalid)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	configs, err := manager.ListConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "alpha", configs[0].ConfigID)
	assert.Equal(t, "alpha.json", configs[0].Filename)
	assert.Equal(t, "Alpha", configs[0].Name)
	assert.Equal(t, 0, configs[0].Puzzles)

	assert.Equal(t, "bravo", configs[1].ConfigID)
	assert.Equal(t, 5, configs[1].Width)
	assert.Equal(t, 5, configs[1].Height)
	assert.Equal(t, 1, configs[1].Puzzles)
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	t.Run("saves and caches", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Saved"
		require.NoError(t, manager.SaveConfig("saved", config))

		_, err := os.Stat(filepath.Join(dir, "saved.json"))
		require.NoError(t, err)

		loaded, err := manager.LoadConfig("saved")
		require.NoError(t, err)
		assert.Same(t, config, loaded)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.Puzzles[0].Par = -5
		err := manager.SaveConfig("bad", config)
		assert.ErrorIs(t, err, ErrInvalidConfig)

		_, statErr := os.Stat(filepath.Join(dir, "bad.json"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects path separators", func(t *testing.T) {
		err := manager.SaveConfig("../escape", createValidConfig())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestManager_ConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "test", createValidConfig())

	manager, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*engine.BoardConfig, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			config, err := manager.LoadConfig("test")
			if err == nil {
				results[i] = config
			}
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NotNil(t, results[i])
		assert.Same(t, results[0], results[i])
	}
}
