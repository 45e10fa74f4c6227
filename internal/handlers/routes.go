package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/ratelimit"
	"github.com/serroba/shortipy/internal/version"
)

const (
	// URLsPath is the collection path of the URL resource.
	URLsPath = "/api/urls/"
	// AuthPath is the login path.
	AuthPath = "/api/auth/"
)

// APIConfig returns the huma configuration with the bearer security scheme
// registered so protected operations document their requirement.
func APIConfig(title, apiVersion string) huma.Config {
	config := huma.DefaultConfig(title, apiVersion)

	if config.Components.SecuritySchemes == nil {
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}

	config.Components.SecuritySchemes[auth.SecurityScheme] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}

	return config
}

var bearer = []map[string][]string{{auth.SecurityScheme: {}}}

func versioned(extra map[string]any) map[string]any {
	md := map[string]any{version.MetadataKey: version.Default}
	for k, v := range extra {
		md[k] = v
	}

	return md
}

// RegisterRoutes registers the URL, auth and redirect operations.
// Middlewares must be added to api before calling it.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, authHandler *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-urls",
		Method:      http.MethodGet,
		Path:        URLsPath,
		Summary:     "List URLs",
		Description: "Lists every stored mapping. Responds 404 when none exist.",
		Tags:        []string{"URLs"},
		Metadata:    versioned(nil),
		Errors:      []int{http.StatusNotFound, version.Status},
	}, urlHandler.ListURLs)

	huma.Register(api, huma.Operation{
		OperationID: "get-url",
		Method:      http.MethodGet,
		Path:        URLsPath + "{key}",
		Summary:     "Get URL",
		Tags:        []string{"URLs"},
		Metadata:    versioned(nil),
		Errors:      []int{http.StatusNotFound, version.Status},
	}, urlHandler.GetURL)

	huma.Register(api, huma.Operation{
		OperationID:   "create-url",
		Method:        http.MethodPost,
		Path:          URLsPath,
		Summary:       "Create URL",
		Description:   "Stores a URL under a newly generated six letter key.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Metadata:      versioned(nil),
		Errors:        []int{http.StatusUnauthorized, http.StatusUnprocessableEntity, version.Status},
	}, urlHandler.CreateURL)

	huma.Register(api, huma.Operation{
		OperationID: "update-url",
		Method:      http.MethodPut,
		Path:        URLsPath + "{key}",
		Summary:     "Update URL",
		Description: "Replaces the target of an existing key. The key never changes.",
		Tags:        []string{"URLs"},
		Security:    bearer,
		Metadata:    versioned(nil),
		Errors: []int{
			http.StatusUnauthorized, http.StatusNotFound, http.StatusUnprocessableEntity, version.Status,
		},
	}, urlHandler.UpdateURL)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-url",
		Method:        http.MethodDelete,
		Path:          URLsPath + "{key}",
		Summary:       "Delete URL",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Metadata:      versioned(nil),
		Errors:        []int{http.StatusUnauthorized, http.StatusNotFound, version.Status},
	}, urlHandler.DeleteURL)

	// Credential checks get their own tight budget.
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        AuthPath,
		Summary:     "Log in",
		Description: "Exchanges a username and password for a bearer token.",
		Tags:        []string{"Auth"},
		Metadata: versioned(map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeAuth},
		}),
		Errors: []int{http.StatusUnauthorized, http.StatusUnprocessableEntity, version.Status},
	}, authHandler.Login)

	// Redirects are the hot path and are not versioned.
	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{key}",
		Summary:     "Redirect to original URL",
		Tags:        []string{"Redirect"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
		Errors: []int{http.StatusNotFound},
	}, urlHandler.Redirect)
}
