// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

// loadDotEnv copies the variables of the dotenv file at path into the
// process environment. Variables that are already set keep their value, so
// the real environment always wins over the file. A missing file is ignored.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// parseEnv fills cfg from the environment through the `env` and `envPrefix`
// tags, e.g. APP_TOKEN_SIGN_KEY or STORAGE_DB_DRIVER. A value that cannot be
// converted (a malformed duration, a non-numeric cost) is an error.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
