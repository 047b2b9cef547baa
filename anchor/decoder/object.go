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

package decoder

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object that keeps its keys in insertion order, so decoded
// accounts list their fields in the order of the IDL layout.
type Object struct {
	keys   []string
	values map[string]interface{}
}

func NewObject() *Object {
	o := Object{
		keys:   []string{},
		values: make(map[string]interface{}),
	}
	return &o
}

// Set adds or replaces the value for a key. Replacing keeps the key's position.
func (o *Object) Set(key string, value interface{}) {
	_, ok := o.values[key]
	if !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Get(key string) (interface{}, bool) {
	value, ok := o.values[key]
	return value, ok
}

func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Buffer is a byte string rendered as `{"type":"Buffer","data":[...]}`, with
// each byte as a number.
type Buffer []byte

func (b Buffer) MarshalJSON() ([]byte, error) {
	data := make([]uint16, len(b))
	for i, v := range b {
		data[i] = uint16(v)
	}
	buffer := struct {
		Type string   `json:"type"`
		Data []uint16 `json:"data"`
	}{
		Type: "Buffer",
		Data: data,
	}
	return json.Marshal(buffer)
}
