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

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/optakt/anchor-api/anchor/idl"
	"github.com/optakt/anchor-api/models/anchor"
	"github.com/optakt/anchor-api/models/network"
	"github.com/optakt/anchor-api/service/connection"
	"github.com/optakt/anchor-api/service/metrics"
)

// Handler names, as used in routes and metrics.
const (
	HandlerHello       = "hello"
	HandlerDeserialise = "deserialise"
	HandlerIDL         = "idl"
)

const helloMessage = "Your function executed successfully!"

// Controller implements the HTTP functions that decode Anchor accounts.
type Controller struct {
	log      zerolog.Logger
	validate Validator
	connect  Connector
	resolve  Resolver
	fetch    Fetcher
	decode   Decoder
	record   Recorder
}

// NewController returns a controller using the given components.
func NewController(log zerolog.Logger, validate Validator, connect Connector, resolve Resolver, fetch Fetcher, decode Decoder, record Recorder) *Controller {

	c := Controller{
		log:      log.With().Str("component", "function_controller").Logger(),
		validate: validate,
		connect:  connect,
		resolve:  resolve,
		fetch:    fetch,
		decode:   decode,
		record:   record,
	}

	return &c
}

// Register adds the routes of the controller to the given echo server.
func (c *Controller) Register(server *echo.Echo) {
	server.Any("/"+HandlerHello, c.Hello)
	server.GET("/"+HandlerDeserialise, c.Deserialise)
	server.GET("/"+HandlerIDL, c.IDL)
}

// Hello confirms that the function is reachable.
func (c *Controller) Hello(ctx echo.Context) error {

	c.log.Info().Msg("hello")
	c.record.Request(HandlerHello, metrics.OutcomeSuccess)

	res := MessageResponse{
		Message: helloMessage,
	}

	return ctx.JSONPretty(http.StatusOK, res, "  ")
}

// Deserialise decodes the data of an Anchor account, using the IDL published
// on-chain by its program.
func (c *Controller) Deserialise(ctx echo.Context) error {

	c.log.Info().
		Str("query", ctx.QueryString()).
		Msg("account decoding requested")

	if len(ctx.QueryParams()) == 0 {
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeInvalid, ErrParamsEmpty)
	}

	var req DeserialiseRequest
	err := ctx.Bind(&req)
	if err != nil {
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeInvalid, err)
	}
	if !ctx.QueryParams().Has("cluster") {
		req.Cluster = network.Default.String()
	}

	err = c.validate.Request(req)
	if err != nil {
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeInvalid, err)
	}

	// Both addresses were checked by the validator.
	program := solana.MustPublicKeyFromBase58(req.ProgramID)
	account := solana.MustPublicKeyFromBase58(req.AccountID)
	cluster := network.Cluster(req.Cluster)

	// The factory only fails for clusters without a configured endpoint.
	conn, err := c.connect.Connect(cluster)
	if err != nil {
		c.log.Warn().Err(err).Str("cluster", cluster.String()).Msg("could not connect to cluster")
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeInvalid, ErrClusterInvalid)
	}

	idlAddress, err := c.resolve.IDL(program)
	if err != nil {
		c.log.Warn().Err(err).Str("program", program.String()).Msg("could not derive IDL address")
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeFailure, ErrFetchIDL)
	}

	document, err := c.fetch.Fetch(ctx.Request().Context(), idlAddress, cluster)
	if err != nil {
		c.log.Warn().Err(err).Str("idl_account", idlAddress.String()).Msg("could not fetch IDL")
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeFailure, ErrFetchIDL)
	}

	schema, err := anchor.ParseIDL(document)
	if err != nil {
		c.log.Warn().Err(err).Str("idl_account", idlAddress.String()).Msg("could not parse IDL")
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeFailure, ErrFetchIDL)
	}

	c.log.Debug().
		Str("idl_account", idlAddress.String()).
		RawJSON("idl", document).
		Msg("IDL fetched")

	data, err := conn.Account(ctx.Request().Context(), account, rpc.CommitmentConfirmed)
	if err != nil {
		c.log.Warn().Err(err).Str("account", account.String()).Msg("could not retrieve account")
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeFailure, ErrRetrieveData)
	}

	decoded, err := c.decode.Account(schema, req.AccountType, data)
	if err != nil {
		c.log.Warn().Err(err).Str("account", account.String()).Str("account_type", req.AccountType).Msg("could not decode account")
		return c.fail(ctx, HandlerDeserialise, http.StatusBadRequest, metrics.OutcomeFailure, ErrRetrieveData)
	}

	c.log.Debug().
		Str("account", account.String()).
		Interface("decoded", decoded).
		Msg("account decoded")

	c.record.Request(HandlerDeserialise, metrics.OutcomeSuccess)

	return ctx.JSONPretty(http.StatusOK, decoded, "  ")
}

// IDL returns the IDL document stored in an Anchor IDL account.
func (c *Controller) IDL(ctx echo.Context) error {

	c.log.Info().
		Str("query", ctx.QueryString()).
		Msg("IDL requested")

	if len(ctx.QueryParams()) == 0 {
		return c.fail(ctx, HandlerIDL, http.StatusBadRequest, metrics.OutcomeInvalid, ErrParamsEmpty)
	}

	var req IDLRequest
	err := ctx.Bind(&req)
	if err != nil {
		return c.fail(ctx, HandlerIDL, http.StatusBadRequest, metrics.OutcomeInvalid, err)
	}

	err = c.validate.Request(req)
	if err != nil {
		return c.fail(ctx, HandlerIDL, http.StatusBadRequest, metrics.OutcomeInvalid, err)
	}

	address := solana.MustPublicKeyFromBase58(req.IDLAccountID)
	cluster := network.Cluster(req.Cluster)

	// The factory only fails for clusters without a configured endpoint.
	conn, err := c.connect.Connect(cluster)
	if err != nil {
		c.log.Warn().Err(err).Str("cluster", cluster.String()).Msg("could not connect to cluster")
		return c.fail(ctx, HandlerIDL, http.StatusBadRequest, metrics.OutcomeInvalid, ErrClusterInvalid)
	}

	data, err := conn.Account(ctx.Request().Context(), address, rpc.CommitmentProcessed)
	if errors.Is(err, connection.ErrAccountNotFound) {
		return c.fail(ctx, HandlerIDL, http.StatusNotFound, metrics.OutcomeNotFound, ErrIDLNotFound)
	}
	if err != nil {
		c.log.Warn().Err(err).Str("idl_account", address.String()).Msg("could not retrieve IDL account")
		return c.fail(ctx, HandlerIDL, http.StatusBadRequest, metrics.OutcomeFailure, ErrDecodeIDL)
	}

	stored, err := idl.Parse(data)
	if err != nil {
		c.log.Warn().Err(err).Str("idl_account", address.String()).Msg("could not parse IDL account")
		return c.fail(ctx, HandlerIDL, http.StatusBadRequest, metrics.OutcomeFailure, ErrDecodeIDL)
	}

	document, err := stored.Document()
	if err != nil {
		c.log.Warn().Err(err).Str("idl_account", address.String()).Msg("could not inflate IDL")
		return c.fail(ctx, HandlerIDL, http.StatusBadRequest, metrics.OutcomeFailure, ErrDecodeIDL)
	}

	c.log.Debug().
		Str("idl_account", address.String()).
		Str("authority", stored.Authority.String()).
		Int("size", len(document)).
		Msg("IDL decoded")

	c.record.Request(HandlerIDL, metrics.OutcomeSuccess)

	return ctx.JSONPretty(http.StatusOK, json.RawMessage(document), "  ")
}

func (c *Controller) fail(ctx echo.Context, handler string, status int, outcome string, err error) error {
	c.record.Request(handler, outcome)

	res := ErrorResponse{
		Error: err.Error(),
	}

	return ctx.JSONPretty(status, res, "  ")
}
