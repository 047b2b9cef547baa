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

package mocks

import (
	"testing"

	"github.com/optakt/anchor-api/anchor/decoder"
	"github.com/optakt/anchor-api/models/anchor"
)

type Decoder struct {
	AccountFunc func(idl *anchor.IDL, name string, data []byte) (*decoder.Object, error)
}

func BaselineDecoder(t *testing.T) *Decoder {
	t.Helper()

	d := Decoder{
		AccountFunc: func(*anchor.IDL, string, []byte) (*decoder.Object, error) {
			return GenericObject, nil
		},
	}

	return &d
}

func (d *Decoder) Account(idl *anchor.IDL, name string, data []byte) (*decoder.Object, error) {
	return d.AccountFunc(idl, name, data)
}
