package api

import (
	"context"
	"net/http"

	"github.com/olivecrm/olivecrm/internal/client/models"
)

// Login authenticates with username and password.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the refresh token server side.
func (c *Client) Logout(ctx context.Context, refresh string) error {
	body := map[string]string{"refresh": refresh}
	return c.do(ctx, http.MethodPost, "/auth/logout/", nil, body, nil)
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refresh string) (*models.TokenRefreshResponse, error) {
	var resp models.TokenRefreshResponse
	req := models.TokenRefreshRequest{Refresh: refresh}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordReset asks the backend to mail a reset token.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset/", nil, models.PasswordResetRequest{Email: email}, nil)
}

// ConfirmPasswordReset completes a password reset with the mailed token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, req models.PasswordResetConfirm) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset-confirm/", nil, req, nil)
}

// Profile returns the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/auth/profile/", nil, patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/change-password/", nil, req, nil)
}
