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

package schema_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/anchor-api/models/network"
	"github.com/optakt/anchor-api/service/schema"
	"github.com/optakt/anchor-api/testing/mocks"
)

func TestClient_Fetch(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/idl", r.URL.Path)
			assert.Equal(t, mocks.GenericIDLAddress.String(), r.URL.Query().Get("idlAccountId"))
			assert.Equal(t, "devnet", r.URL.Query().Get("cluster"))
			assert.Equal(t, "1", r.URL.Query().Get("stage"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(mocks.GenericIDL)
		}))
		defer server.Close()

		client := schema.New(server.URL + "/idl?stage=1")

		got, err := client.Fetch(context.Background(), mocks.GenericIDLAddress, network.Devnet)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericIDL, got)
	})

	t.Run("handles non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "IDL account not found"}`))
		}))
		defer server.Close()

		client := schema.New(server.URL)

		_, err := client.Fetch(context.Background(), mocks.GenericIDLAddress, network.MainnetBeta)

		assert.ErrorIs(t, err, schema.ErrUnexpectedStatus)
	})

	t.Run("handles timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		client := schema.New(server.URL, schema.WithTimeout(50*time.Millisecond))

		_, err := client.Fetch(context.Background(), mocks.GenericIDLAddress, network.MainnetBeta)

		assert.Error(t, err)
	})

	t.Run("handles unreachable endpoint", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		endpoint := server.URL
		server.Close()

		client := schema.New(endpoint)

		_, err := client.Fetch(context.Background(), mocks.GenericIDLAddress, network.MainnetBeta)

		assert.Error(t, err)
	})

	t.Run("handles invalid endpoint", func(t *testing.T) {
		t.Parallel()

		client := schema.New("://missing-scheme")

		_, err := client.Fetch(context.Background(), mocks.GenericIDLAddress, network.MainnetBeta)

		assert.Error(t, err)
	})
}
