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

package function

// DeserialiseRequest holds the query parameters of the account decoder.
type DeserialiseRequest struct {
	ProgramID   string `query:"programId"`
	AccountType string `query:"accountType"`
	AccountID   string `query:"accountId"`
	Cluster     string `query:"cluster"`
}

// IDLRequest holds the query parameters of the IDL lookup.
type IDLRequest struct {
	IDLAccountID string `query:"idlAccountId"`
	Cluster      string `query:"cluster"`
}
