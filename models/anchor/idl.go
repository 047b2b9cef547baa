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

package anchor

import (
	"encoding/json"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// IDL is the subset of an Anchor interface description needed to decode
// accounts. Both the legacy layout, where account layouts are inlined, and the
// newer layout, where accounts carry a discriminator and reference a type, are
// supported.
type IDL struct {
	Address  string    `json:"address,omitempty"`
	Name     string    `json:"name,omitempty"`
	Version  string    `json:"version,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Accounts []Account `json:"accounts,omitempty"`
	Types    []TypeDef `json:"types,omitempty"`
}

type Metadata struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	Spec        string `json:"spec,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Account describes an account category of a program. Legacy IDLs carry the
// layout in Type; newer ones carry an explicit Discriminator and define the
// layout in the types section under the same name.
type Account struct {
	Name          string   `json:"name"`
	Discriminator []uint8  `json:"discriminator,omitempty"`
	Type          *TypeDef `json:"-"`
}

// TypeDef is a named type definition from the types section.
type TypeDef struct {
	Name string `json:"name"`
	Type Layout `json:"type"`
}

// Layout is the body of a type definition.
type Layout struct {
	Kind     string    `json:"kind"`
	Fields   *Fields   `json:"fields,omitempty"`
	Variants []Variant `json:"variants,omitempty"`
	Alias    *Type     `json:"alias,omitempty"`
}

const (
	KindStruct = "struct"
	KindEnum   = "enum"
	KindAlias  = "type"
)

type Variant struct {
	Name   string  `json:"name"`
	Fields *Fields `json:"fields,omitempty"`
}

// Fields holds either named fields or tuple elements, never both.
type Fields struct {
	Named []Field
	Tuple []Type
}

type Field struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Type is a reference to a type inside a layout. Exactly one of its members is
// set: Name for primitives, or one of the composite members.
type Type struct {
	Name    string
	Vec     *Type
	Option  *Type
	COption *Type
	Array   *Array
	Defined string
}

type Array struct {
	Elem Type
	Len  int
}

// ParseIDL decodes an IDL document.
func ParseIDL(data []byte) (*IDL, error) {
	var idl IDL
	err := json.Unmarshal(data, &idl)
	if err != nil {
		return nil, fmt.Errorf("could not decode IDL: %w", err)
	}
	return &idl, nil
}

// Account returns the account category with the given name. The name matches
// either exactly or after conversion of both sides to lower camel case, so that
// `registrar` finds the account `Registrar`.
func (i *IDL) Account(name string) (Account, bool) {
	for _, account := range i.Accounts {
		if account.Name == name {
			return account, true
		}
	}
	camel := CamelCase(name)
	for _, account := range i.Accounts {
		if CamelCase(account.Name) == camel {
			return account, true
		}
	}
	return Account{}, false
}

// TypeDef returns the type definition with the given name.
func (i *IDL) TypeDef(name string) (TypeDef, bool) {
	for _, def := range i.Types {
		if def.Name == name {
			return def, true
		}
	}
	return TypeDef{}, false
}

// CamelCase converts an identifier from snake case or Pascal case to lower
// camel case.
func CamelCase(name string) string {
	pascal := bin.ToPascalCase(name)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	if runes[0] >= 'A' && runes[0] <= 'Z' {
		runes[0] += 'a' - 'A'
	}
	return string(runes)
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name          string  `json:"name"`
		Discriminator []uint8 `json:"discriminator"`
		Type          *Layout `json:"type"`
	}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	a.Name = raw.Name
	a.Discriminator = raw.Discriminator
	a.Type = nil
	if raw.Type != nil {
		a.Type = &TypeDef{Name: raw.Name, Type: *raw.Type}
	}

	return nil
}

func (f *Fields) UnmarshalJSON(data []byte) error {
	var elements []json.RawMessage
	err := json.Unmarshal(data, &elements)
	if err != nil {
		return fmt.Errorf("could not decode fields: %w", err)
	}

	for _, element := range elements {
		var keys map[string]json.RawMessage
		if json.Unmarshal(element, &keys) == nil {
			_, hasName := keys["name"]
			_, hasType := keys["type"]
			if hasName && hasType {
				var field Field
				err = json.Unmarshal(element, &field)
				if err != nil {
					return fmt.Errorf("could not decode named field: %w", err)
				}
				f.Named = append(f.Named, field)
				continue
			}
		}

		var typ Type
		err = json.Unmarshal(element, &typ)
		if err != nil {
			return fmt.Errorf("could not decode tuple field: %w", err)
		}
		f.Tuple = append(f.Tuple, typ)
	}

	if len(f.Named) > 0 && len(f.Tuple) > 0 {
		return fmt.Errorf("fields mix named and tuple elements")
	}

	return nil
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if json.Unmarshal(data, &name) == nil {
		*t = Type{Name: name}
		return nil
	}

	var composite map[string]json.RawMessage
	err := json.Unmarshal(data, &composite)
	if err != nil {
		return fmt.Errorf("could not decode type: %w", err)
	}
	if len(composite) != 1 {
		return fmt.Errorf("composite type must have exactly one member (have: %d)", len(composite))
	}

	*t = Type{}
	for key, value := range composite {
		switch key {
		case "vec":
			t.Vec = &Type{}
			err = json.Unmarshal(value, t.Vec)
		case "option":
			t.Option = &Type{}
			err = json.Unmarshal(value, t.Option)
		case "coption":
			t.COption = &Type{}
			err = json.Unmarshal(value, t.COption)
		case "array":
			t.Array, err = decodeArray(value)
		case "defined":
			t.Defined, err = decodeDefined(value)
		default:
			return fmt.Errorf("unknown composite type %q", key)
		}
		if err != nil {
			return fmt.Errorf("could not decode %s type: %w", key, err)
		}
	}

	return nil
}

// String returns a compact representation used in error messages.
func (t Type) String() string {
	switch {
	case t.Vec != nil:
		return fmt.Sprintf("vec<%s>", t.Vec)
	case t.Option != nil:
		return fmt.Sprintf("option<%s>", t.Option)
	case t.COption != nil:
		return fmt.Sprintf("coption<%s>", t.COption)
	case t.Array != nil:
		return fmt.Sprintf("[%s; %d]", t.Array.Elem, t.Array.Len)
	case t.Defined != "":
		return t.Defined
	default:
		return t.Name
	}
}

func decodeArray(data []byte) (*Array, error) {
	var parts []json.RawMessage
	err := json.Unmarshal(data, &parts)
	if err != nil {
		return nil, err
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("array needs element type and length (have: %d parts)", len(parts))
	}

	var array Array
	err = json.Unmarshal(parts[0], &array.Elem)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(parts[1], &array.Len)
	if err != nil {
		return nil, fmt.Errorf("array length must be a number: %w", err)
	}
	if array.Len < 0 {
		return nil, fmt.Errorf("negative array length (%d)", array.Len)
	}

	return &array, nil
}

// decodeDefined accepts both `"defined": "Name"` and `"defined": {"name": "Name"}`.
func decodeDefined(data []byte) (string, error) {
	var name string
	if json.Unmarshal(data, &name) == nil {
		return name, nil
	}

	var ref struct {
		Name string `json:"name"`
	}
	err := json.Unmarshal(data, &ref)
	if err != nil {
		return "", err
	}
	if ref.Name == "" {
		return "", fmt.Errorf("missing defined type name")
	}

	return ref.Name, nil
}
