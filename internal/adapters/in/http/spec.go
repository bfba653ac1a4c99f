package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"forwarding/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openapiYAML []byte

// APISpec is the loaded and validated API description together with the
// router used to match requests against it.
type APISpec struct {
	doc    *openapi3.T
	router routers.Router
	json   []byte
}

// LoadAPISpec parses the embedded document and checks it against the
// OpenAPI 3 schema.
func LoadAPISpec(ctx context.Context) (*APISpec, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}

	return &APISpec{doc: doc, router: router, json: raw}, nil
}

func (s *APISpec) JSON() []byte {
	return s.json
}

// ServeJSON serves GET /openapi.json.
func (s *APISpec) ServeJSON(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, s.json)
}

// ValidateRequests rejects requests that do not match the document with a
// validation error. Routes the document does not describe pass through.
func (s *APISpec) ValidateRequests() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := s.router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return writeError(c, errs.NewValueIsInvalidErrorWithCause("request", err))
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return writeError(c, errs.NewValueIsInvalidErrorWithCause("request", err))
			}
			return next(c)
		}
	}
}
