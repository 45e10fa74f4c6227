package handlers

import "time"

// URLLinks holds hypermedia links of a mapping.
type URLLinks struct {
	Self string `doc:"API location of this mapping" example:"http://localhost:8888/api/urls/abcdef" json:"self"`
}

// URLBody is the wire shape of a key to URL mapping.
type URLBody struct {
	Key   string   `doc:"The short key"  example:"abcdef"                             json:"key"`
	Value string   `doc:"The target URL" example:"https://example.com/very/long/path" json:"value"`
	Links URLLinks `json:"links"`
}

// ListURLsResponse is the response for listing every mapping.
type ListURLsResponse struct {
	Body []URLBody
}

// URLKeyRequest addresses a single mapping.
type URLKeyRequest struct {
	Key string `doc:"The short key" example:"abcdef" path:"key"`
}

// URLResponse is the response carrying a single mapping.
type URLResponse struct {
	Body URLBody
}

// CreateURLBody carries the target of a new mapping.
type CreateURLBody struct {
	Value string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"value" minLength:"1"`
}

// CreateURLRequest is the request for creating a mapping. Body is optional so
// that a missing body is answered as invalid input by the handler.
type CreateURLRequest struct {
	Body *CreateURLBody
}

// CreateURLResponse is the response for a successfully created mapping.
type CreateURLResponse struct {
	Location string `doc:"API location of the new mapping" header:"Location"`
	Body     URLBody
}

// UpdateURLBody carries the replacement target.
type UpdateURLBody struct {
	Value string `doc:"The new target URL" example:"https://example.com/other" json:"value" minLength:"1"`
}

// UpdateURLRequest replaces the target of an existing key.
type UpdateURLRequest struct {
	Key  string `doc:"The short key" example:"abcdef" path:"key"`
	Body *UpdateURLBody
}

// LoginBody holds the credentials exchanged for a token.
type LoginBody struct {
	Username string `doc:"Account name" example:"test" json:"username" minLength:"1"`
	Password string `doc:"Password"     example:"test" json:"password" minLength:"1"`
}

// LoginRequest is the request for exchanging credentials for a token. A
// missing body is rejected as invalid credentials input.
type LoginRequest struct {
	Body *LoginBody
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Body struct {
		Username    string    `doc:"Authenticated account"     json:"username"`
		AccessToken string    `doc:"Bearer token"              json:"access_token"`
		TokenType   string    `doc:"Always Bearer"             json:"token_type"`
		ExpiresAt   time.Time `doc:"Token expiry (RFC 3339)"   json:"expires_at"`
	}
}

// RedirectRequest is the request for resolving a short key.
type RedirectRequest struct {
	Key string `doc:"The short key" example:"abcdef" path:"key"`
}

// RedirectResponse sends the visitor to the stored URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}
