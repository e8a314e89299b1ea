// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin is an adapter for the gin-gonic web framework. It wraps
// the engine instantiation and provides the middlewares which are
// shared by all pages and APIs of the console, namely request ID
// tagging, access logging, panic recovery, and basic authentication.
// Other packages may use the aliased types instead of importing the
// gin-gonic package itself when they only need to pass them around.
package gin

import (
	"errors"
	"log/slog"
	"strconv"

	ginslog "github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/carmaint/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carmaint/pkg/core/cerr"
	"github.com/momeni/carmaint/pkg/core/log"
	"github.com/momeni/carmaint/pkg/core/scram"
)

// HandlerFunc is an alias for the gin-gonic handler type.
type HandlerFunc = gin.HandlerFunc

// Engine is an alias for the gin-gonic engine type.
type Engine = gin.Engine

// RequestIDHeader is the header which carries the request ID, both in
// the incoming requests (optionally) and in all responses.
const RequestIDHeader = "X-Request-ID"

// New instantiates a gin-gonic engine with no default middleware and
// registers the given middlewares in order.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns an access logger middleware which writes one
// structured record per request using the default slog logger.
func Logger() HandlerFunc {
	return ginslog.New(slog.Default())
}

// Recovery returns a middleware which recovers from panics and
// responds with a 500 status code.
func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestID returns a middleware which tags each request with an ID.
// A well-formed UUID from the RequestIDHeader of the request is kept,
// otherwise a random one is generated. The ID is echoed back in the
// response headers and is stored in the request context, so the
// pkg/core/log functions can include it in their records.
func RequestID() HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(
			log.WithRequestID(c.Request.Context(), id),
		)
		c.Next()
	}
}

var errAuthRequired = errors.New("valid username and password are required")

// BasicAuth returns a middleware which asks for the HTTP basic
// authentication in the given realm. The users map holds the password
// hashes of the known usernames and v verifies the presented passwords
// against them. Malformed hashes are logged and treated as mismatches.
// Rejected requests are answered by a cerr.Authentication error.
func BasicAuth(
	realm string, users map[string]string, v scram.Verifier,
) HandlerFunc {
	challenge := "Basic realm=" + strconv.Quote(realm)
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if ok {
			if hash, found := users[user]; found {
				matched, err := v.Verify(pass, hash)
				if err != nil {
					log.Error(c.Request.Context(), "verifying password",
						slog.String("user", user), log.Err("err", err),
					)
				}
				if matched {
					c.Set(gin.AuthUserKey, user)
					c.Next()
					return
				}
			}
		}
		c.Header("WWW-Authenticate", challenge)
		c.Abort()
		serdser.SerErr(c, cerr.Authentication(errAuthRequired))
	}
}
