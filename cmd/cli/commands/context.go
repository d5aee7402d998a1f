package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adrianoapc/carvalho-rostering/internal/config"
	"github.com/adrianoapc/carvalho-rostering/pkg/clients/directory"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	OAuthCfg *config.OAuthClientConfig
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
	Env      string

	directoryClient *directory.Client
}

// Directory returns the volunteer directory client, creating it on first
// use. Creation may start an OAuth browser flow, so commands that never
// touch the directory should not pay for it.
func (a *AppContext) Directory() (*directory.Client, error) {
	if a.directoryClient != nil {
		return a.directoryClient, nil
	}

	client, err := directory.NewClient(a.Ctx, a.OAuthCfg, a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory client: %w", err)
	}

	a.directoryClient = client
	return client, nil
}
