package handlers

import (
	"context"

	"go.uber.org/zap"
)

// AuthHandler issues bearer tokens.
type AuthHandler struct {
	login  LoginService
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(login LoginService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{login: login, logger: logger}
}

func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var username, password string
	if req.Body != nil {
		username, password = req.Body.Username, req.Body.Password
	}

	token, err := h.login.Login(ctx, username, password)
	if err != nil {
		h.logger.Debug("login rejected", zap.String("username", username), zap.Error(err))

		return nil, apiError(h.logger, err)
	}

	resp := &LoginResponse{}
	resp.Body.Username = token.Subject
	resp.Body.AccessToken = token.Token
	resp.Body.TokenType = "Bearer"
	resp.Body.ExpiresAt = token.ExpiresAt

	return resp, nil
}
