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

package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gagliardetto/solana-go"

	"github.com/optakt/anchor-api/models/network"
)

// maxResponseSize bounds the size of a fetched IDL document.
const maxResponseSize = 16 << 20

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client fetches IDL documents from the IDL function endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a client for the IDL endpoint at the given URL.
func New(endpoint string, options ...Option) *Client {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	c := Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}

	return &c
}

// Fetch returns the IDL document stored in the given account on the given
// cluster.
func (c *Client) Fetch(ctx context.Context, account solana.PublicKey, cluster network.Cluster) ([]byte, error) {

	target, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("could not parse endpoint: %w", err)
	}
	query := target.Query()
	query.Set("idlAccountId", account.String())
	query.Set("cluster", cluster.String())
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not execute request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status: %d)", ErrUnexpectedStatus, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("could not read response: %w", err)
	}

	return body, nil
}
