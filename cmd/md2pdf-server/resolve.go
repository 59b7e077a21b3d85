package main

import (
	"github.com/alnah/md2pdf-server/internal/config"
)

// resolveConfig builds the effective configuration:
// flags > environment > config file > defaults.
func resolveConfig(f *commonFlags, env *Environment) (*config.Config, *envConfig, error) {
	envCfg, err := loadEnvConfig(env.LookupEnv)
	if err != nil {
		return nil, nil, err
	}

	path := f.config
	if path == "" {
		path = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if path != "" {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeCommonFlags(f, cfg)
	return cfg, envCfg, nil
}
