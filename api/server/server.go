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

package server

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v2"

	"github.com/optakt/anchor-api/anchor/address"
	"github.com/optakt/anchor-api/anchor/decoder"
	"github.com/optakt/anchor-api/anchor/validator"
	"github.com/optakt/anchor-api/api/function"
	"github.com/optakt/anchor-api/config"
	"github.com/optakt/anchor-api/models/network"
	"github.com/optakt/anchor-api/service/connection"
	"github.com/optakt/anchor-api/service/schema"
)

// New wires the API functions for the given configuration into an echo server.
func New(log zerolog.Logger, cfg *config.Config, record function.Recorder) (*echo.Echo, error) {

	resolve, err := address.NewResolver(address.WithCacheSize(cfg.CacheSize))
	if err != nil {
		return nil, fmt.Errorf("could not initialize address resolver: %w", err)
	}

	options := []connection.Option{
		connection.WithTimeout(cfg.HTTPTimeout),
	}
	for cluster, endpoint := range cfg.Endpoints() {
		options = append(options, connection.WithEndpoint(cluster, endpoint))
	}
	connect := connection.NewFactory(options...)

	fetch := schema.New(cfg.IDLFunctionURL, schema.WithTimeout(cfg.HTTPTimeout))
	validate := validator.New()
	decode := decoder.New()

	ctrl := function.NewController(log, validate, connect, resolve, fetch, decode, record)

	elog := lecho.From(log)

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(middleware.Recover())
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	ctrl.Register(server)

	log.Debug().
		Str("idl_function_url", cfg.IDLFunctionURL).
		Strs("clusters", clusterNames()).
		Msg("API functions registered")

	return server, nil
}

func clusterNames() []string {
	clusters := network.Clusters()
	names := make([]string, 0, len(clusters))
	for _, cluster := range clusters {
		names = append(names, cluster.String())
	}
	return names
}
