// Package http is the echo transport of the forwarding service.
//
// Every route lives under /api/v1 and is described by the embedded
// openapi.yaml. The document is served at /openapi.json, rendered by the
// Swagger UI at /swagger/index.html, and used to validate incoming requests
// before they reach a handler.
//
// The caller's identity comes from the authorization collaborator as two
// headers:
//
//	X-User-ID:   <uuid>
//	X-User-Role: user | admin | super
//
// Successful responses wrap the payload as {"data": ...}. Failures are
// {"error": {"kind": ..., "message": ..., "order_ids": [...]}}.
//
// Wiring:
//
//	spec, err := http.LoadAPISpec(ctx)
//	server := http.NewServer(handlers, logger)
//	http.Mount(e, spec, server, logger, timeout)
package http

import (
	"sync"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	spec *APISpec
}

func (d swaggerDoc) ReadDoc() string {
	return string(d.spec.JSON())
}

var registerSwagger sync.Once

// swaggerHandler publishes spec to the swag registry read by the UI. swag
// panics on a second registration under one name, so only the first spec
// loaded by the process is published.
func swaggerHandler(spec *APISpec) echo.HandlerFunc {
	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{spec: spec})
	})
	return echoSwagger.WrapHandler
}
