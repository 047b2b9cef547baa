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

package idl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/klauspost/compress/zlib"
)

const (
	discriminatorSize = 8

	// MaxDocumentSize bounds the size of an inflated IDL document.
	MaxDocumentSize = 16 << 20
)

var (
	ErrTooShort    = errors.New("account data too short")
	ErrTooLarge    = errors.New("inflated document too large")
	ErrInvalidJSON = errors.New("document is not valid JSON")
)

// Account is the content of the account in which Anchor stores the
// compressed IDL of a program.
type Account struct {
	Authority solana.PublicKey
	Data      []byte
}

// Parse decodes raw IDL account data, discriminator included.
func Parse(data []byte) (*Account, error) {
	if len(data) < discriminatorSize {
		return nil, fmt.Errorf("%w (length: %d)", ErrTooShort, len(data))
	}

	dec := bin.NewBorshDecoder(data[discriminatorSize:])

	authority, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, fmt.Errorf("could not read authority: %w", err)
	}
	payload, err := dec.ReadByteSlice()
	if err != nil {
		return nil, fmt.Errorf("could not read compressed data: %w", err)
	}

	account := Account{
		Authority: solana.PublicKeyFromBytes(authority),
		Data:      payload,
	}

	return &account, nil
}

// Document inflates the compressed IDL and checks that it is a JSON document.
func (a *Account) Document() ([]byte, error) {

	reader, err := zlib.NewReader(bytes.NewReader(a.Data))
	if err != nil {
		return nil, fmt.Errorf("could not open zlib stream: %w", err)
	}
	defer reader.Close()

	document, err := io.ReadAll(io.LimitReader(reader, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("could not inflate data: %w", err)
	}
	if len(document) > MaxDocumentSize {
		return nil, ErrTooLarge
	}

	if !json.Valid(document) {
		return nil, ErrInvalidJSON
	}

	return document, nil
}
