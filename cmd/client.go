package cmd

import (
	"context"

	"github.com/spf13/afero"

	"github.com/thedakshnailwal/Hospital-Management-System/internal/config"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/hmscli"
)

// configFs backs configuration and token reads for every command.
var configFs = afero.NewOsFs()

func loadConfig() (*config.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return config.Load(configFs, dir)
}

// newClient dials the daemon named by the local configuration.
var newClient = func(ctx context.Context) (*hmscli.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	secret, err := cfg.ReadSecret(configFs)
	if err != nil {
		return nil, err
	}
	dctx, cancel := context.WithTimeout(ctx, DEF_DIAL_TIMEOUT)
	defer cancel()
	return hmscli.Dial(dctx, cfg.URL("http"), secret)
}
