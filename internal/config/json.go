package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		TokenDuration        Duration `json:"token_duration"`
		PasswordHashCost     int      `json:"password_hash_cost"`
		OperationTimeout     Duration `json:"operation_timeout"`
		IdentityMode         string   `json:"identity_mode"`
		ExternalAssertionKey string   `json:"external_assertion_key"`
		OwnerOpenID          string   `json:"owner_open_id"`
		LogLevel             string   `json:"log_level"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Cookie struct {
		Name     string `json:"name"`
		Domain   string `json:"domain"`
		SameSite string `json:"same_site"`
	} `json:"cookie,omitempty"`

	Storage struct {
		DB struct {
			Driver        string `json:"driver"`
			DSN           string `json:"dsn"`
			MaxOpenConns  int    `json:"max_open_conns"`
			RetryAttempts int    `json:"retry_attempts"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			TokenDuration:        time.Duration(jsonCfg.App.TokenDuration),
			PasswordHashCost:     jsonCfg.App.PasswordHashCost,
			OperationTimeout:     time.Duration(jsonCfg.App.OperationTimeout),
			IdentityMode:         jsonCfg.App.IdentityMode,
			ExternalAssertionKey: jsonCfg.App.ExternalAssertionKey,
			OwnerOpenID:          jsonCfg.App.OwnerOpenID,
			LogLevel:             jsonCfg.App.LogLevel,
			Version:              jsonCfg.App.Version,
		},
		Cookie: Cookie{
			Name:     jsonCfg.Cookie.Name,
			Domain:   jsonCfg.Cookie.Domain,
			SameSite: jsonCfg.Cookie.SameSite,
		},
		Storage: Storage{
			DB: DB{
				Driver:        jsonCfg.Storage.DB.Driver,
				DSN:           jsonCfg.Storage.DB.DSN,
				MaxOpenConns:  jsonCfg.Storage.DB.MaxOpenConns,
				RetryAttempts: jsonCfg.Storage.DB.RetryAttempts,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
