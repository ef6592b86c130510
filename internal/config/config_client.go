package config

import "fmt"

// ClientConfig is the configuration view used by cmd/client.
type ClientConfig struct {
	// Adapter contains the API address and request timeout.
	Adapter Adapter
	// LogLevel filters client log output.
	LogLevel string
}

// GetClientConfig builds and validates the client configuration from args
// (normally os.Args[1:]). The positional arguments left after the flags
// (the subcommand and its own flags) are returned alongside.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg, rest, err := loadConfig(args)
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: Adapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		LogLevel: cfg.App.LogLevel,
	}

	return clientCfg, rest, clientCfg.validate()
}
