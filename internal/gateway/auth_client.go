package gateway

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// AuthResult is what every credential-issuing call returns: the bearer
// token plus whatever profile payload the backend included. Persisting the
// token is the caller's job (SessionService), not the gateway's.
type AuthResult struct {
	Token string
	Data  json.RawMessage
}

// AuthGateway is the client side of the Auth service contract.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Signup(ctx context.Context, payload json.RawMessage) (*AuthResult, error)
	VerifyOTP(ctx context.Context, email, otp string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	GoogleLogin(ctx context.Context, tokenID string) (*AuthResult, error)
	Logout(ctx context.Context) error
}

type authGateway struct {
	api *apiClient
	log *zap.Logger
}

func NewAuthGateway(api *apiClient, log *zap.Logger) AuthGateway {
	return &authGateway{
		api: api,
		log: log.With(zap.String("gateway", "auth")),
	}
}

func (g *authGateway) credentialCall(ctx context.Context, path string, body any) (*AuthResult, error) {
	env, err := g.api.doEnvelope(ctx, "POST", path, nil, body)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: env.Token, Data: env.Data}, nil
}

func (g *authGateway) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return g.credentialCall(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (g *authGateway) Signup(ctx context.Context, payload json.RawMessage) (*AuthResult, error) {
	return g.credentialCall(ctx, "/auth/signup", payload)
}

func (g *authGateway) VerifyOTP(ctx context.Context, email, otp string) (*AuthResult, error) {
	return g.credentialCall(ctx, "/auth/verify-otp", map[string]string{
		"email": email,
		"otp":   otp,
	})
}

func (g *authGateway) ResendOTP(ctx context.Context, email string) error {
	return g.api.post(ctx, "/auth/resend-otp", map[string]string{"email": email}, nil)
}

func (g *authGateway) ForgotPassword(ctx context.Context, email string) error {
	return g.api.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (g *authGateway) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return g.api.post(ctx, "/auth/reset-password", map[string]string{
		"email":       email,
		"otp":         otp,
		"newPassword": newPassword,
	}, nil)
}

func (g *authGateway) GoogleLogin(ctx context.Context, tokenID string) (*AuthResult, error) {
	return g.credentialCall(ctx, "/auth/google", map[string]string{"tokenId": tokenID})
}

func (g *authGateway) Logout(ctx context.Context) error {
	return g.api.post(ctx, "/auth/logout", nil, nil)
}
