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

package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Connection is a read-only session against a single cluster. Its identity is
// a throwaway key that never signs anything.
type Connection struct {
	client   RPCClient
	identity solana.PublicKey
}

// New returns a connection using the given client and identity.
func New(client RPCClient, identity solana.PublicKey) *Connection {

	c := Connection{
		client:   client,
		identity: identity,
	}

	return &c
}

// Identity returns the public key of the disposable wallet of the connection.
func (c *Connection) Identity() solana.PublicKey {
	return c.identity
}

// Account returns the raw data of the account at the given address.
func (c *Connection) Account(ctx context.Context, address solana.PublicKey, commitment rpc.CommitmentType) ([]byte, error) {

	opts := rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: commitment,
	}
	res, err := c.client.GetAccountInfoWithOpts(ctx, address, &opts)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("%w (address: %s)", ErrAccountNotFound, address)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get account info: %w", err)
	}
	if res == nil || res.Value == nil {
		return nil, fmt.Errorf("%w (address: %s)", ErrAccountNotFound, address)
	}

	data := res.Value.Data.GetBinary()

	return data, nil
}
