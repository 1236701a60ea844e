package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/lakeio/dlstore/pkg/journal"
	"github.com/lakeio/dlstore/pkg/path"
	"github.com/lakeio/dlstore/pkg/transport"
)

// bearerAuthConfig is the bearer-specific section of the auth configuration.
type bearerAuthConfig struct {
	Token string `mapstructure:"token"`
}

// NewAuthorizer builds the transport authorizer selected by the service
// configuration. A "none" scheme yields a nil authorizer.
func NewAuthorizer(cfg ServiceConfig) (transport.Authorizer, error) {
	switch cfg.Auth.Type {
	case "", "none":
		return nil, nil
	case "bearer":
		var bearerCfg bearerAuthConfig
		if err := mapstructure.Decode(cfg.Auth.Bearer, &bearerCfg); err != nil {
			return nil, fmt.Errorf("invalid bearer auth config: %w", err)
		}
		if bearerCfg.Token == "" {
			return nil, fmt.Errorf("bearer auth requires a token")
		}
		return transport.BearerToken(bearerCfg.Token), nil
	default:
		return nil, fmt.Errorf("unknown auth type: %q", cfg.Auth.Type)
	}
}

// NewJournal opens the continuation-token journal selected by the
// configuration. A disabled journal yields a nil store.
//
// Badger holds a directory lock, so the database must be opened once per
// process and the store shared by every consumer; the caller owns the
// returned store and must Close it.
func NewJournal(cfg JournalConfig) (*journal.Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return journal.Open(journal.Config{Dir: cfg.Dir})
}

// NewClient assembles the path-operation client from the configuration and
// an optional journal store from NewJournal. A nil store disables token
// persistence.
func NewClient(cfg *Config, store *journal.Store) (*path.Client, error) {
	authorizer, err := NewAuthorizer(cfg.Service)
	if err != nil {
		return nil, err
	}

	executor, err := transport.NewHTTPExecutor(transport.HTTPExecutorConfig{
		ServiceURL: cfg.Service.URL,
		Authorizer: authorizer,
	})
	if err != nil {
		return nil, err
	}

	clientCfg := path.ClientConfig{Executor: executor}
	if store != nil {
		clientCfg.Journal = store
	}
	return path.NewClient(clientCfg)
}
