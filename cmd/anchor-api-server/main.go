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
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/anchor-api/api/function"
	"github.com/optakt/anchor-api/api/server"
	"github.com/optakt/anchor-api/config"
	"github.com/optakt/anchor-api/service/metrics"
	"github.com/optakt/anchor-api/service/profiler"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	// Command line parameter initialization.
	var (
		flagEnvFile  string
		flagLevel    string
		flagMetrics  string
		flagPort     uint16
		flagProfiler string
	)

	pflag.StringVarP(&flagEnvFile, "env-file", "e", "", "dotenv file to load into the environment")
	pflag.StringVarP(&flagLevel, config.FlagLevel, "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "address on which to expose metrics (no metrics are exposed when left empty)")
	pflag.Uint16VarP(&flagPort, "port", "p", 8080, "port to serve the API functions on")
	pflag.StringVar(&flagProfiler, "profiler", "", "address on which to expose pprof endpoints (disabled when left empty)")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)

	if flagEnvFile != "" {
		err := config.LoadEnvFile(flagEnvFile)
		if err != nil {
			log.Error().Str("env_file", flagEnvFile).Err(err).Msg("could not load environment file")
			return failure
		}
	}

	cfg, err := config.Load(pflag.CommandLine)
	if err != nil {
		log.Error().Err(err).Msg("could not load configuration")
		return failure
	}
	log = log.Level(cfg.Level())

	// Requests are counted regardless of whether the metrics are exposed.
	registry := prometheus.NewRegistry()
	var record function.Recorder = metrics.NewRequests(registry)

	api, err := server.New(log, cfg, record)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize API server")
		return failure
	}

	var msvr *metrics.Server
	if flagMetrics != "" {
		msvr = metrics.NewServer(log, flagMetrics, registry)
	}

	var psvr *profiler.Server
	if flagProfiler != "" {
		psvr = profiler.NewServer(log, flagProfiler)
	}

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Uint16("port", flagPort).Msg("Anchor API Server starting")
		err := api.Start(fmt.Sprint(":", flagPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Anchor API Server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("Anchor API Server stopped")
	}()

	if msvr != nil {
		go func() {
			err := msvr.Start()
			if err != nil {
				log.Warn().Err(err).Msg("metrics server failed")
			}
		}()
	}

	if psvr != nil {
		go func() {
			err := psvr.Start()
			if err != nil {
				log.Warn().Err(err).Msg("profiler server failed")
			}
		}()
	}

	select {
	case <-sig:
		log.Info().Msg("Anchor API Server stopping")
	case <-done:
		log.Info().Msg("Anchor API Server done")
	case <-failed:
		log.Warn().Msg("Anchor API Server aborted")
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that the main executing components are shutting down within the
	// allocated shutdown time. Otherwise, we will force the shutdown and log
	// an error.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if msvr != nil {
		err = msvr.Shutdown(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not shut down metrics server")
		}
	}

	if psvr != nil {
		err = psvr.Shutdown(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not shut down profiler server")
		}
	}

	err = api.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down API server")
		return failure
	}

	return success
}
