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

package main

import (
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/rs/zerolog"

	"github.com/optakt/anchor-api/api/server"
	"github.com/optakt/anchor-api/config"
	"github.com/optakt/anchor-api/service/metrics"
)

func main() {

	// Logger initialization. Lambda captures the standard error of the function.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)

	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	log = log.Level(cfg.Level())

	// Function instances are short-lived and never scraped, so requests are
	// not counted.
	api, err := server.New(log, cfg, metrics.Noop{})
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize API server")
	}

	adapter := echoadapter.New(api)

	log.Info().Msg("Anchor API Lambda starting")

	lambda.Start(adapter.ProxyWithContext)
}
