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

package validator

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"

	"github.com/optakt/anchor-api/api/function"
	"github.com/optakt/anchor-api/models/network"
)

// Field names are only displayed when a validation error is printed as a plain
// error. They are mandatory arguments of `ReportError` nonetheless.
const (
	programField     = "program_id"
	accountTypeField = "account_type"
	accountField     = "account_id"
	idlAccountField  = "idl_account_id"
	clusterField     = "cluster"
)

// Validator checks the query parameters of function requests. It reports at
// most one failure per request, the first one in the order in which the checks
// are documented for each endpoint.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {

	validate := validator.New()

	// We register a single type per validator, so we can safely perform type
	// assertion of the provided `validator.StructLevel` to the correct type.
	validate.RegisterStructValidation(deserialiseValidator, function.DeserialiseRequest{})
	validate.RegisterStructValidation(idlValidator, function.IDLRequest{})

	v := Validator{
		validate: validate,
	}

	return &v
}

// Request validates a request and returns the sentinel error matching the
// first failed check.
func (v *Validator) Request(request interface{}) error {

	err := v.validate.Struct(request)
	if err == nil {
		return nil
	}

	// InvalidValidationError is returned when the input is not a struct.
	_, ok := err.(*validator.InvalidValidationError)
	if ok {
		return function.ErrInvalidValidation
	}

	errs := err.(validator.ValidationErrors)
	tag := errs[0].Tag()

	switch tag {
	case function.ProgramEmpty:
		return function.ErrProgramEmpty
	case function.AccountTypeEmpty:
		return function.ErrAccountTypeEmpty
	case function.AccountEmpty:
		return function.ErrAccountEmpty
	case function.IDLAccountEmpty:
		return function.ErrIDLAccountEmpty
	case function.ClusterEmpty:
		return function.ErrClusterEmpty
	case function.ClusterInvalid:
		return function.ErrClusterInvalid
	case function.ProgramInvalid:
		return function.ErrProgramInvalid
	case function.IDLAccountInvalid:
		return function.ErrIDLAccountInvalid
	default:
		return fmt.Errorf("unknown validation failure: %s", tag)
	}
}

func deserialiseValidator(sl validator.StructLevel) {
	req := sl.Current().Interface().(function.DeserialiseRequest)

	switch {
	case req.ProgramID == "":
		sl.ReportError(req.ProgramID, programField, programField, function.ProgramEmpty, "")
	case req.AccountType == "":
		sl.ReportError(req.AccountType, accountTypeField, accountTypeField, function.AccountTypeEmpty, "")
	case req.AccountID == "":
		sl.ReportError(req.AccountID, accountField, accountField, function.AccountEmpty, "")
	case !network.Cluster(req.Cluster).Valid():
		sl.ReportError(req.Cluster, clusterField, clusterField, function.ClusterInvalid, "")
	case !validAddress(req.ProgramID):
		sl.ReportError(req.ProgramID, programField, programField, function.ProgramInvalid, "")
	case !validAddress(req.AccountID):
		sl.ReportError(req.AccountID, accountField, accountField, function.ProgramInvalid, "")
	}
}

func idlValidator(sl validator.StructLevel) {
	req := sl.Current().Interface().(function.IDLRequest)

	switch {
	case req.IDLAccountID == "":
		sl.ReportError(req.IDLAccountID, idlAccountField, idlAccountField, function.IDLAccountEmpty, "")
	case req.Cluster == "":
		sl.ReportError(req.Cluster, clusterField, clusterField, function.ClusterEmpty, "")
	case !network.Cluster(req.Cluster).Valid():
		sl.ReportError(req.Cluster, clusterField, clusterField, function.ClusterInvalid, "")
	case !validAddress(req.IDLAccountID):
		sl.ReportError(req.IDLAccountID, idlAccountField, idlAccountField, function.IDLAccountInvalid, "")
	}
}

// validAddress checks that the value decodes from base58 to exactly 32 bytes.
func validAddress(address string) bool {
	_, err := solana.PublicKeyFromBase58(address)
	return err == nil
}
