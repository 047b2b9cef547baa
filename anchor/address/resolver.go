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

package address

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/gagliardetto/solana-go"
)

// IDLSeed is the seed Anchor uses to place the IDL account of a program.
const IDLSeed = "anchor:idl"

// ProgramSigner returns the program address derived from the program ID with
// no seeds, which Anchor uses as the base of the IDL account address.
func ProgramSigner(program solana.PublicKey) (solana.PublicKey, error) {
	signer, _, err := solana.FindProgramAddress([][]byte{}, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("could not find program address: %w", err)
	}
	return signer, nil
}

// IDLAddress returns the address of the account holding the IDL of a program.
func IDLAddress(program solana.PublicKey) (solana.PublicKey, error) {
	signer, err := ProgramSigner(program)
	if err != nil {
		return solana.PublicKey{}, err
	}

	address, err := solana.CreateWithSeed(signer, IDLSeed, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("could not create address with seed: %w", err)
	}

	return address, nil
}

// Resolver derives IDL account addresses and keeps them in a bounded cache.
type Resolver struct {
	cache Cache
}

// NewResolver returns a resolver with a Ristretto cache sized from the given
// configuration.
func NewResolver(options ...func(*Config)) (*Resolver, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	// Every entry has a cost of one, so the maximum cost is the number of
	// entries. Ristretto recommends ten counters per entry.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CacheSize) * 10,
		MaxCost:     int64(cfg.CacheSize),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}

	r := Resolver{
		cache: cache,
	}

	return &r, nil
}

// IDL returns the IDL account address of the given program.
func (r *Resolver) IDL(program solana.PublicKey) (solana.PublicKey, error) {

	key := program.String()
	cached, ok := r.cache.Get(key)
	if ok {
		return cached.(solana.PublicKey), nil
	}

	address, err := IDLAddress(program)
	if err != nil {
		return solana.PublicKey{}, err
	}

	_ = r.cache.Set(key, address, 1)

	return address, nil
}
