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
	"fmt"
	"math"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/optakt/anchor-api/models/anchor"
)

const discriminatorSize = 8

// Decoder decodes raw account data into JSON-friendly values, using the
// Borsh layouts described by an Anchor IDL.
type Decoder struct {
	cfg Config
}

// New returns a new Decoder with the given options applied to the default
// configuration.
func New(options ...Option) *Decoder {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	d := Decoder{
		cfg: cfg,
	}

	return &d
}

// Account decodes the data of an account of the given category. The data must
// start with the category's discriminator; trailing bytes after the layout are
// ignored, since Anchor accounts are often allocated with spare space.
func (d *Decoder) Account(idl *anchor.IDL, name string, data []byte) (*Object, error) {

	account, ok := idl.Account(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, name)
	}

	discriminator := account.Discriminator
	if len(discriminator) == 0 {
		discriminator = bin.SighashAccount(account.Name)
	}
	if len(data) < len(discriminator) || !bytes.Equal(data[:len(discriminator)], discriminator) {
		return nil, fmt.Errorf("%w (account: %s)", ErrDiscriminator, account.Name)
	}

	def := account.Type
	if def == nil {
		found, ok := idl.TypeDef(account.Name)
		if !ok {
			return nil, fmt.Errorf("%w: no layout for account %s", ErrUnknownType, account.Name)
		}
		def = &found
	}

	dec := bin.NewBorshDecoder(data[len(discriminator):])
	value, err := d.layout(idl, dec, def.Type, 0)
	if err != nil {
		return nil, fmt.Errorf("could not decode account %s: %w", account.Name, err)
	}

	object, ok := value.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: account %s is not a struct with named fields", ErrInvalidLayout, account.Name)
	}

	return object, nil
}

func (d *Decoder) layout(idl *anchor.IDL, dec *bin.Decoder, layout anchor.Layout, depth uint) (interface{}, error) {

	switch layout.Kind {

	case anchor.KindStruct:
		if layout.Fields == nil {
			return NewObject(), nil
		}
		return d.fields(idl, dec, *layout.Fields, depth)

	case anchor.KindEnum:
		index, err := dec.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("could not read enum variant: %w", err)
		}
		if int(index) >= len(layout.Variants) {
			return nil, fmt.Errorf("%w: enum variant %d out of range (variants: %d)", ErrInvalidLayout, index, len(layout.Variants))
		}
		variant := layout.Variants[index]
		var value interface{} = NewObject()
		if variant.Fields != nil {
			value, err = d.fields(idl, dec, *variant.Fields, depth)
			if err != nil {
				return nil, fmt.Errorf("could not decode variant %s: %w", variant.Name, err)
			}
		}
		object := NewObject()
		object.Set(anchor.CamelCase(variant.Name), value)
		return object, nil

	case anchor.KindAlias:
		if layout.Alias == nil {
			return nil, fmt.Errorf("%w: alias without target", ErrInvalidLayout)
		}
		return d.value(idl, dec, *layout.Alias, depth)

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidLayout, layout.Kind)
	}
}

func (d *Decoder) fields(idl *anchor.IDL, dec *bin.Decoder, fields anchor.Fields, depth uint) (interface{}, error) {

	if len(fields.Tuple) > 0 {
		values := make([]interface{}, 0, len(fields.Tuple))
		for i, typ := range fields.Tuple {
			value, err := d.value(idl, dec, typ, depth)
			if err != nil {
				return nil, fmt.Errorf("could not decode element %d: %w", i, err)
			}
			values = append(values, value)
		}
		return values, nil
	}

	object := NewObject()
	for _, field := range fields.Named {
		value, err := d.value(idl, dec, field.Type, depth)
		if err != nil {
			return nil, fmt.Errorf("could not decode field %s: %w", field.Name, err)
		}
		object.Set(anchor.CamelCase(field.Name), value)
	}

	return object, nil
}

func (d *Decoder) value(idl *anchor.IDL, dec *bin.Decoder, typ anchor.Type, depth uint) (interface{}, error) {

	switch {

	case typ.Vec != nil:
		length, err := dec.ReadLength()
		if err != nil {
			return nil, fmt.Errorf("could not read vector length: %w", err)
		}
		if length > dec.Remaining() {
			return nil, fmt.Errorf("%w (length: %d, remaining: %d)", ErrLength, length, dec.Remaining())
		}
		values := make([]interface{}, 0, length)
		for i := 0; i < length; i++ {
			value, err := d.value(idl, dec, *typ.Vec, depth)
			if err != nil {
				return nil, fmt.Errorf("could not decode vector element %d: %w", i, err)
			}
			values = append(values, value)
		}
		return values, nil

	case typ.Option != nil:
		some, err := dec.ReadOption()
		if err != nil {
			return nil, err
		}
		if !some {
			return nil, nil
		}
		return d.value(idl, dec, *typ.Option, depth)

	case typ.COption != nil:
		some, err := dec.ReadCOption()
		if err != nil {
			return nil, err
		}
		if !some {
			return nil, nil
		}
		return d.value(idl, dec, *typ.COption, depth)

	case typ.Array != nil:
		if typ.Array.Len > dec.Remaining() {
			return nil, fmt.Errorf("%w (array length: %d, remaining: %d)", ErrLength, typ.Array.Len, dec.Remaining())
		}
		values := make([]interface{}, 0, typ.Array.Len)
		for i := 0; i < typ.Array.Len; i++ {
			value, err := d.value(idl, dec, typ.Array.Elem, depth)
			if err != nil {
				return nil, fmt.Errorf("could not decode array element %d: %w", i, err)
			}
			values = append(values, value)
		}
		return values, nil

	case typ.Defined != "":
		if depth >= d.cfg.MaxDepth {
			return nil, fmt.Errorf("%w (type: %s)", ErrTooDeep, typ.Defined)
		}
		def, ok := idl.TypeDef(typ.Defined)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ.Defined)
		}
		return d.layout(idl, dec, def.Type, depth+1)

	default:
		return primitive(dec, typ.Name)
	}
}

func primitive(dec *bin.Decoder, name string) (interface{}, error) {

	switch name {

	case "bool":
		return dec.ReadBool()
	case "u8":
		return dec.ReadUint8()
	case "i8":
		return dec.ReadInt8()
	case "u16":
		return dec.ReadUint16(bin.LE)
	case "i16":
		return dec.ReadInt16(bin.LE)
	case "u32":
		return dec.ReadUint32(bin.LE)
	case "i32":
		return dec.ReadInt32(bin.LE)

	// Values of 64 bits and more are rendered the way big number libraries
	// serialise them: lowercase hexadecimal padded to an even length.
	case "u64":
		return wide(dec, 8, false)
	case "i64":
		return wide(dec, 8, true)
	case "u128":
		return wide(dec, 16, false)
	case "i128":
		return wide(dec, 16, true)
	case "u256":
		return wide(dec, 32, false)
	case "i256":
		return wide(dec, 32, true)

	case "f32":
		v, err := dec.ReadFloat32(bin.LE)
		if err != nil {
			return nil, err
		}
		return float(float64(v)), nil
	case "f64":
		v, err := dec.ReadFloat64(bin.LE)
		if err != nil {
			return nil, err
		}
		return float(v), nil

	case "string":
		return dec.ReadString()
	case "bytes":
		data, err := dec.ReadByteSlice()
		if err != nil {
			return nil, err
		}
		return Buffer(data), nil
	case "publicKey", "pubkey":
		key, err := dec.ReadNBytes(solana.PublicKeyLength)
		if err != nil {
			return nil, err
		}
		return solana.PublicKeyFromBytes(key).String(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// wide reads a little-endian integer of the given size in bytes.
func wide(dec *bin.Decoder, size int, signed bool) (string, error) {
	data, err := dec.ReadNBytes(size)
	if err != nil {
		return "", err
	}

	be := make([]byte, size)
	for i := range data {
		be[size-1-i] = data[i]
	}

	value := new(big.Int).SetBytes(be)
	if signed && be[0]&0x80 != 0 {
		value.Sub(value, new(big.Int).Lsh(big.NewInt(1), uint(size*8)))
	}

	return hex(value), nil
}

// hex renders the magnitude in lowercase hexadecimal padded to an even number
// of digits, with a leading minus sign for negative values.
func hex(value *big.Int) string {
	digits := new(big.Int).Abs(value).Text(16)
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}
	if value.Sign() < 0 {
		return "-" + digits
	}
	return digits
}

// float maps non-finite values to null, as JSON has no representation for them.
func float(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
