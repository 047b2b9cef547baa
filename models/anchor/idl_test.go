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

package anchor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/anchor-api/models/anchor"
)

const legacyIDL = `{
  "version": "0.2.0",
  "name": "voter_stake_registry",
  "instructions": [],
  "accounts": [
    {
      "name": "Registrar",
      "type": {
        "kind": "struct",
        "fields": [
          {"name": "governanceProgramId", "type": "publicKey"},
          {"name": "votingMints", "type": {"vec": {"defined": "VotingMintConfig"}}},
          {"name": "bump", "type": "u8"},
          {"name": "reserved", "type": {"array": ["u8", 4]}}
        ]
      }
    }
  ],
  "types": [
    {
      "name": "VotingMintConfig",
      "type": {
        "kind": "struct",
        "fields": [
          {"name": "mint", "type": "publicKey"},
          {"name": "grantAuthority", "type": {"option": "publicKey"}}
        ]
      }
    },
    {
      "name": "LockupKind",
      "type": {
        "kind": "enum",
        "variants": [
          {"name": "None"},
          {"name": "Daily"},
          {"name": "Custom", "fields": ["u64", "bool"]}
        ]
      }
    }
  ]
}`

const modernIDL = `{
  "address": "B85X9aTrpWAdi1xhLvPmDPuYmfz5YdMd9X8qr7uU4H18",
  "metadata": {"name": "counter", "version": "0.1.0", "spec": "0.1.0"},
  "instructions": [],
  "accounts": [
    {"name": "Counter", "discriminator": [255, 176, 4, 245, 188, 253, 124, 25]}
  ],
  "types": [
    {
      "name": "Counter",
      "type": {
        "kind": "struct",
        "fields": [
          {"name": "owner_key", "type": "pubkey"},
          {"name": "count", "type": "u64"},
          {"name": "kind", "type": {"defined": {"name": "Kind"}}}
        ]
      }
    },
    {
      "name": "Kind",
      "type": {"kind": "type", "alias": "u16"}
    }
  ]
}`

func TestParseIDL(t *testing.T) {
	t.Run("legacy layout", func(t *testing.T) {
		t.Parallel()

		idl, err := anchor.ParseIDL([]byte(legacyIDL))
		require.NoError(t, err)

		assert.Equal(t, "voter_stake_registry", idl.Name)
		require.Len(t, idl.Accounts, 1)

		account := idl.Accounts[0]
		assert.Equal(t, "Registrar", account.Name)
		assert.Empty(t, account.Discriminator)
		require.NotNil(t, account.Type)
		assert.Equal(t, anchor.KindStruct, account.Type.Type.Kind)
		require.NotNil(t, account.Type.Type.Fields)

		fields := account.Type.Type.Fields.Named
		require.Len(t, fields, 4)
		assert.Equal(t, "publicKey", fields[0].Type.Name)
		require.NotNil(t, fields[1].Type.Vec)
		assert.Equal(t, "VotingMintConfig", fields[1].Type.Vec.Defined)
		require.NotNil(t, fields[3].Type.Array)
		assert.Equal(t, 4, fields[3].Type.Array.Len)
		assert.Equal(t, "u8", fields[3].Type.Array.Elem.Name)

		kind, ok := idl.TypeDef("LockupKind")
		require.True(t, ok)
		require.Len(t, kind.Type.Variants, 3)
		assert.Nil(t, kind.Type.Variants[0].Fields)
		require.NotNil(t, kind.Type.Variants[2].Fields)
		assert.Empty(t, kind.Type.Variants[2].Fields.Named)
		require.Len(t, kind.Type.Variants[2].Fields.Tuple, 2)
		assert.Equal(t, "bool", kind.Type.Variants[2].Fields.Tuple[1].Name)
	})

	t.Run("modern layout", func(t *testing.T) {
		t.Parallel()

		idl, err := anchor.ParseIDL([]byte(modernIDL))
		require.NoError(t, err)

		require.NotNil(t, idl.Metadata)
		assert.Equal(t, "counter", idl.Metadata.Name)
		require.Len(t, idl.Accounts, 1)
		assert.Equal(t, []uint8{255, 176, 4, 245, 188, 253, 124, 25}, idl.Accounts[0].Discriminator)
		assert.Nil(t, idl.Accounts[0].Type)

		counter, ok := idl.TypeDef("Counter")
		require.True(t, ok)
		assert.Equal(t, "Kind", counter.Type.Fields.Named[2].Type.Defined)

		kind, ok := idl.TypeDef("Kind")
		require.True(t, ok)
		assert.Equal(t, anchor.KindAlias, kind.Type.Kind)
		require.NotNil(t, kind.Type.Alias)
		assert.Equal(t, "u16", kind.Type.Alias.Name)
	})

	t.Run("invalid documents", func(t *testing.T) {
		t.Parallel()

		invalid := []string{
			`not json`,
			`{"accounts": [{"name": "A", "type": {"kind": "struct", "fields": [{"name": "x", "type": {"map": "u8"}}]}}]}`,
			`{"accounts": [{"name": "A", "type": {"kind": "struct", "fields": [{"name": "x", "type": {"vec": "u8", "option": "u8"}}]}}]}`,
			`{"accounts": [{"name": "A", "type": {"kind": "struct", "fields": [{"name": "x", "type": {"array": ["u8"]}}]}}]}`,
			`{"accounts": [{"name": "A", "type": {"kind": "struct", "fields": [{"name": "x", "type": {"array": ["u8", -1]}}]}}]}`,
			`{"accounts": [{"name": "A", "type": {"kind": "struct", "fields": [{"name": "x", "type": {"defined": {}}}]}}]}`,
			`{"types": [{"name": "A", "type": {"kind": "struct", "fields": [{"name": "x", "type": "u8"}, "u8"]}}]}`,
		}
		for _, document := range invalid {
			_, err := anchor.ParseIDL([]byte(document))
			assert.Error(t, err, document)
		}
	})
}

func TestIDL_Account(t *testing.T) {
	idl, err := anchor.ParseIDL([]byte(legacyIDL))
	require.NoError(t, err)

	tests := []struct {
		name   string
		wantOK bool
	}{
		{name: "Registrar", wantOK: true},
		{name: "registrar", wantOK: true},
		{name: "Registrars", wantOK: false},
		{name: "voter", wantOK: false},
		{name: "", wantOK: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			account, ok := idl.Account(test.name)
			assert.Equal(t, test.wantOK, ok)
			if test.wantOK {
				assert.Equal(t, "Registrar", account.Name)
			}
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"Registrar":             "registrar",
		"governance_program_id": "governanceProgramId",
		"governanceProgramId":   "governanceProgramId",
		"VotingMintConfig":      "votingMintConfig",
		"bump":                  "bump",
		"":                      "",
	}

	for in, want := range tests {
		assert.Equal(t, want, anchor.CamelCase(in), in)
	}
}

func TestType_String(t *testing.T) {
	typ := anchor.Type{Vec: &anchor.Type{Option: &anchor.Type{Defined: "Config"}}}
	assert.Equal(t, "vec<option<Config>>", typ.String())

	typ = anchor.Type{Array: &anchor.Array{Elem: anchor.Type{Name: "u8"}, Len: 32}}
	assert.Equal(t, "[u8; 32]", typ.String())
}
