package config

import (
	"fmt"

	"dario.cat/mergo"
)

// loadStructuredConfig reads every source and merges them. The JSON file is
// only read when the environment or args name it.
func loadStructuredConfig(args []string) (*StructuredConfig, error) {
	envCfg, err := parseEnv()
	if err != nil {
		return nil, err
	}

	flagCfg, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	layers := []*StructuredConfig{envCfg, flagCfg}
	if path := jsonFilePath(layers); path != "" {
		fileCfg, err := parseJSON(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileCfg)
	}

	return mergeLayers(layers...)
}

// mergeLayers folds layers into one config. A field set by an earlier layer
// is never overwritten by a later one.
func mergeLayers(layers ...*StructuredConfig) (*StructuredConfig, error) {
	merged := new(StructuredConfig)
	for i, layer := range layers {
		if layer == nil {
			continue
		}
		if err := mergo.Merge(merged, layer); err != nil {
			return nil, fmt.Errorf("merge config layer %d: %w", i, err)
		}
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// jsonFilePath returns the path named by the first layer that has one.
func jsonFilePath(layers []*StructuredConfig) string {
	for _, layer := range layers {
		if layer != nil && layer.JSONFilePath != "" {
			return layer.JSONFilePath
		}
	}
	return ""
}
