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

package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/anchor-api/api/function"
	"github.com/optakt/anchor-api/api/server"
	"github.com/optakt/anchor-api/config"
	"github.com/optakt/anchor-api/service/metrics"
	"github.com/optakt/anchor-api/testing/mocks"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		IDLFunctionURL: url,
		Clusters: config.Clusters{
			MainnetBeta: "http://127.0.0.1:1",
			Testnet:     "http://127.0.0.1:1",
			Devnet:      "http://127.0.0.1:1",
		},
		HTTPTimeout: time.Second,
		CacheSize:   100,
		LogLevel:    "info",
	}
}

func TestNew(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		e, err := server.New(mocks.NoopLogger, testConfig("http://127.0.0.1:1/idl"), metrics.Noop{})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/hello", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var res function.MessageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Your function executed successfully!", res.Message)
	})

	t.Run("validates before calling out", func(t *testing.T) {
		t.Parallel()

		e, err := server.New(mocks.NoopLogger, testConfig("http://127.0.0.1:1/idl"), metrics.Noop{})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/deserialise?programId=x", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var res function.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "No account type provided", res.Error)
	})

	t.Run("reports unreachable IDL endpoint", func(t *testing.T) {
		t.Parallel()

		idl := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer idl.Close()

		e, err := server.New(mocks.NoopLogger, testConfig(idl.URL), metrics.Noop{})
		require.NoError(t, err)

		query := "?programId=" + mocks.GenericProgramID.String() + "&accountType=registrar&accountId=" + mocks.GenericAccountID.String()
		req := httptest.NewRequest(http.MethodGet, "/deserialise"+query, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var res function.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Error fetching IDL", res.Error)
	})

	t.Run("handles invalid cache size", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig("http://127.0.0.1:1/idl")
		cfg.CacheSize = 0

		_, err := server.New(mocks.NoopLogger, cfg, metrics.Noop{})

		assert.Error(t, err)
	})
}
