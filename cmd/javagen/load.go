package main

import (
	"fmt"

	"github.com/dhamidi/javagen/config"
	"github.com/dhamidi/javagen/definition"
	"github.com/dhamidi/javagen/generate"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadGenerator reads the config and the definition at path.
func loadGenerator(path string) (*generate.Generator, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	def, err := definition.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return generate.New(def, cfg), cfg, nil
}
