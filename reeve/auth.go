package reeve

import "context"

// AuthService handles authentication operations.
//
// Login returns the issued token but does not install it on the client;
// callers rotating credentials feed it back through Client.SetAPIKey.
// Client.Connect does exactly that during startup.
type AuthService struct {
	client *Client
}

// Login exchanges a username/password pair for a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	resp, err := s.client.Post(ctx, "/Auth/login", map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	data := resp.payload()
	return &LoginResult{
		Token:     toString(data["token"]),
		ExpiresAt: toTime(data["expiresAt"]),
		Username:  toString(data["username"]),
		Role:      toString(data["role"]),
	}, nil
}

// Register creates a new API user.
func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*RegisterResult, error) {
	resp, err := s.client.Post(ctx, "/Auth/register", map[string]any{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	})
	if err != nil {
		return nil, err
	}

	data := resp.payload()
	result := &RegisterResult{Message: toString(data["message"])}
	if user, ok := data["user"].(map[string]any); ok {
		result.User = &UserInfo{
			ID:       toInt(user["id"]),
			Username: toString(user["username"]),
			Email:    toString(user["email"]),
			Role:     toString(user["role"]),
		}
	}
	return result, nil
}

// ChangePassword updates the password of the authenticated user.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*ChangePasswordResult, error) {
	resp, err := s.client.Post(ctx, "/Auth/change-password", map[string]any{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
	if err != nil {
		return nil, err
	}

	return &ChangePasswordResult{Message: toString(resp.payload()["message"])}, nil
}

// Token fetches the current authentication token record.
func (s *AuthService) Token(ctx context.Context) (*APIResponse, error) {
	return s.client.Get(ctx, "/Auth/token", nil)
}
