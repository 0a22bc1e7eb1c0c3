// Package config provides board configuration management for the navigator.
//
// The config package handles:
//   - Loading board configurations from JSON files
//   - Configuration validation (dimensions, layout characters, puzzles)
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Board configurations are stored as JSON files in the configs directory.
// Each configuration defines a width, a height and a layout with one string
// per row: '.' is an empty cell, '#' an obstacle and p, b, n, r, k, q place
// pieces. Optional puzzles name a piece, a start, a target and the par
// (minimal move count, or -1 when the target must be unreachable).
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	boardConfig, err := manager.LoadConfig("walled")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	configs, err := manager.ListConfigs()
package config
