package api

import "context"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the normalized result of a login or register call.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Theme    string `json:"theme"`
	Message  string `json:"message"`
}

// Login authenticates with the backend. The returned response is
// normalized: a missing token falls back to PlaceholderToken and a missing
// username falls back to the submitted one, so callers can store the result
// as-is.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.postJSON(ctx, "/api/login", credentialsRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	normalizeLogin(&resp, username)
	return &resp, nil
}

// Register creates a new account. The backend returns login credentials
// directly, normalized the same way as Login.
func (c *Client) Register(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.postJSON(ctx, "/api/register", credentialsRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	normalizeLogin(&resp, username)
	return &resp, nil
}

func normalizeLogin(resp *LoginResponse, submitted string) {
	if resp.Token == "" {
		resp.Token = PlaceholderToken
	}
	if resp.Username == "" {
		resp.Username = submitted
	}
}

// PredictRequest is a single detection request. MaxLength is the tokenizer
// truncation limit; zero means the server default (512).
type PredictRequest struct {
	Text      string  `json:"text"`
	Threshold float64 `json:"threshold"`
	MaxLength int     `json:"max_length,omitempty"`
}

// PredictResponse carries the vulnerability labels the model matched at or
// above the threshold, plus the per-label probabilities.
type PredictResponse struct {
	Labels []string  `json:"labels"`
	Probs  []float64 `json:"probs"`
}

// Predict submits contract source text for vulnerability detection.
func (c *Client) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	var resp PredictResponse
	if err := c.postJSON(ctx, "/api/predict", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// reloadRequest omits unset paths entirely so the server keeps its current
// value for them; an empty string must never be sent.
type reloadRequest struct {
	AdapterPath string `json:"adapter_path,omitempty"`
	BasePath    string `json:"base_path,omitempty"`
}

// ReloadResponse reports the paths the server settled on after a reload.
type ReloadResponse struct {
	Status  string `json:"status"`
	Base    string `json:"base"`
	Adapter string `json:"adapter"`
}

// Reload asks the backend to swap its active model. Either path may be
// empty, meaning "keep the current one".
func (c *Client) Reload(ctx context.Context, adapterPath, basePath string) (*ReloadResponse, error) {
	var resp ReloadResponse
	req := reloadRequest{AdapterPath: adapterPath, BasePath: basePath}
	if err := c.postJSON(ctx, "/api/reload", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type themeRequest struct {
	Username string `json:"username"`
	Theme    string `json:"theme"`
	Token    string `json:"token"`
}

// SyncTheme mirrors the local theme preference to the server. Callers treat
// this as best-effort: failures are logged, never surfaced.
func (c *Client) SyncTheme(ctx context.Context, username, theme, token string) error {
	return c.postJSON(ctx, "/api/theme", themeRequest{Username: username, Theme: theme, Token: token}, nil)
}

type logoutRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Logout notifies the server that the session is over. Best-effort; the
// local session is cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context, username, token string) error {
	return c.postJSON(ctx, "/api/logout", logoutRequest{Username: username, Token: token}, nil)
}

type changePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
	Token       string `json:"token"`
}

// ChangePassword updates the account password and returns the server's
// confirmation message (or a generic one when the server omits it). On a
// server-side rejection the error message is the server's "error" field.
func (c *Client) ChangePassword(ctx context.Context, username, oldPassword, newPassword, token string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	req := changePasswordRequest{
		Username:    username,
		OldPassword: oldPassword,
		NewPassword: newPassword,
		Token:       token,
	}
	if err := c.postJSON(ctx, "/api/change_password", req, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		resp.Message = "password changed, please log in again"
	}
	return resp.Message, nil
}

// StatusResponse describes the backend model state.
type StatusResponse struct {
	Loaded        bool   `json:"loaded"`
	Device        string `json:"device"`
	BaseModelPath string `json:"base_model_path"`
	AdapterPath   string `json:"adapter_path"`
	LastLoadError string `json:"last_load_error"`
}

// Status reports whether the backend has a model loaded and on what device.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.getJSON(ctx, "/api/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
