package middleware_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/handlers"
)

type echoInput struct {
	Body struct {
		Value string `json:"value" minLength:"1"`
	}
}

type echoOutput struct {
	Body struct {
		Subject   string `json:"subject"`
		ClientIP  string `json:"client_ip"`
		UserAgent string `json:"user_agent"`
		Referrer  string `json:"referrer"`
	}
}

func echo(ctx context.Context, _ *struct{}) (*echoOutput, error) {
	out := &echoOutput{}
	out.Body.Subject, _ = auth.SubjectFromContext(ctx)

	meta := handlers.RequestMetaFromContext(ctx)
	out.Body.ClientIP = meta.ClientIP
	out.Body.UserAgent = meta.UserAgent
	out.Body.Referrer = meta.Referrer

	return out, nil
}

func echoBody(ctx context.Context, _ *echoInput) (*echoOutput, error) {
	return echo(ctx, nil)
}

// newTestAPI installs middlewares, then registers a read operation at /echo
// and operations on /things configured by the given options.
func newTestAPI(
	t *testing.T,
	middlewares func(api huma.API) []func(huma.Context, func(huma.Context)),
	configure ...func(op *huma.Operation),
) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)

	for _, mw := range middlewares(api) {
		api.UseMiddleware(mw)
	}

	huma.Register(api, huma.Operation{
		OperationID: "echo",
		Method:      http.MethodGet,
		Path:        "/echo",
	}, echo)

	create := huma.Operation{
		OperationID: "create-thing",
		Method:      http.MethodPost,
		Path:        "/things",
	}
	for _, c := range configure {
		c(&create)
	}

	huma.Register(api, create, echoBody)

	return api
}
