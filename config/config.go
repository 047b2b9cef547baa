// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/anchor-api/models/network"
)

// Environment variables read by the configuration.
const (
	EnvPrefix         = "ANCHOR_"
	EnvIDLFunctionURL = "IDL_FUNCTION_URL"
)

// FlagLevel is the command line flag that overrides the log level.
const FlagLevel = "level"

// Config is the runtime configuration of the API functions.
type Config struct {
	IDLFunctionURL string        `koanf:"idl_function_url" validate:"required,url"`
	Clusters       Clusters      `koanf:"cluster"`
	HTTPTimeout    time.Duration `koanf:"http_timeout" validate:"gt=0"`
	CacheSize      uint64        `koanf:"cache_size" validate:"gt=0"`
	LogLevel       string        `koanf:"log_level" validate:"required"`
}

// Clusters holds the RPC endpoint of each known cluster.
type Clusters struct {
	MainnetBeta string `koanf:"mainnet_beta" validate:"required,url"`
	Testnet     string `koanf:"testnet" validate:"required,url"`
	Devnet      string `koanf:"devnet" validate:"required,url"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"cluster.mainnet_beta": network.Endpoints[network.MainnetBeta],
		"cluster.testnet":      network.Endpoints[network.Testnet],
		"cluster.devnet":       network.Endpoints[network.Devnet],
		"http_timeout":         "30s",
		"cache_size":           10_000,
		"log_level":            zerolog.InfoLevel.String(),
	}
}

// LoadEnvFile adds the variables of a dotenv file to the environment. Variables
// that are already set are left untouched.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return fmt.Errorf("could not load environment file: %w", err)
	}
	return nil
}

// Load reads the configuration from defaults, the environment and, when given,
// the command line flags, in increasing order of precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {

	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load defaults: %w", err)
	}

	err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load environment: %w", err)
	}

	err = k.Load(env.Provider(EnvIDLFunctionURL, ".", func(s string) string {
		if s != EnvIDLFunctionURL {
			return ""
		}
		return "idl_function_url"
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load IDL function URL: %w", err)
	}

	if flags != nil {
		err = k.Load(posflag.ProviderWithValue(flags, ".", k, flagKey), nil)
		if err != nil {
			return nil, fmt.Errorf("could not load flags: %w", err)
		}
	}

	var cfg Config
	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode configuration: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {

	var merr *multierror.Error

	err := validator.New().Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			merr = multierror.Append(merr, fmt.Errorf("field %s failed %q check (value: %v)", verr.Namespace(), verr.Tag(), verr.Value()))
		}
	} else if err != nil {
		merr = multierror.Append(merr, err)
	}

	_, err = zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("invalid log level: %w", err))
	}

	return merr.ErrorOrNil()
}

// Level returns the parsed log level.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Endpoints maps each cluster to its configured RPC endpoint.
func (c Config) Endpoints() map[network.Cluster]string {
	return map[network.Cluster]string{
		network.MainnetBeta: c.Clusters.MainnetBeta,
		network.Testnet:     c.Clusters.Testnet,
		network.Devnet:      c.Clusters.Devnet,
	}
}

// envKey maps ANCHOR_CLUSTER_MAINNET_BETA to cluster.mainnet_beta and
// ANCHOR_HTTP_TIMEOUT to http_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if strings.HasPrefix(key, "cluster_") {
		return "cluster." + strings.TrimPrefix(key, "cluster_")
	}
	return key
}

// flagKey keeps the flags that belong to the configuration and skips the rest.
func flagKey(key string, value string) (string, interface{}) {
	if key != FlagLevel {
		return "", nil
	}
	return "log_level", value
}
