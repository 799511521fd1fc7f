package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"stockpilot/internal/client/models"
	"stockpilot/internal/client/repositories/tokens"
	"stockpilot/internal/logging"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Endpoint paths. The auth endpoints listed in authExempt never trigger
// the refresh protocol: a 401 from them is a credential problem, not an
// expired session.
const (
	pathLogin               = "/auth/token"
	pathRegister            = "/auth/register"
	pathRefreshToken        = "/auth/refresh-token"
	pathGoogleLogin         = "/auth/google-login"
	pathReactivate          = "/auth/reactivate"
	pathCheckDeletedAccount = "/auth/check-deleted-account"
	pathAuthHealth          = "/health/auth"
	pathUserStocks          = "/users/stocks"
	pathUserSettings        = "/users/settings"
	pathDeleteAccount       = "/users/me"
	pathAvailableStocks     = "/stocks"
	pathPredict             = "/predict"
	pathTrain               = "/train"
	pathUntrain             = "/untrain"
	pathTelegramStatus      = "/telegram-status"
	pathConnectTelegram     = "/connect-telegram"
)

var authExempt = map[string]struct{}{
	pathLogin:        {},
	pathRegister:     {},
	pathRefreshToken: {},
	pathGoogleLogin:  {},
	pathReactivate:   {},
}

// HTTPClient is the configured transport for the backend. It attaches
// the current access token to every request, surfaces non-2xx responses
// as *Error, and transparently refreshes the token pair on 401 with a
// single replay. Concurrent 401s collapse onto one refresh call.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  tokens.Repository
	log     logging.Logger

	refreshGroup singleflight.Group

	mu               sync.Mutex
	onSessionExpired func()
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, repo tokens.Repository, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  repo,
		log:     log,
	}
}

// OnSessionExpired registers the callback invoked when the session is
// beyond recovery (refresh failed or the replay still got a 401). The
// token store is already cleared when it fires.
func (c *HTTPClient) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

func (c *HTTPClient) send(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if contentType == "" {
		contentType = contentTypeJSON
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-Id", uuid.NewString())

	access, _, err := c.tokens.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// do issues one API call. A 401 on a non-exempt path triggers the
// refresh protocol and exactly one replay; a second 401 invalidates the
// session.
func (c *HTTPClient) do(ctx context.Context, method, path, query, contentType string, body []byte, out any) error {
	target := path
	if query != "" {
		target = path + "?" + query
	}

	resp, err := c.send(ctx, method, target, contentType, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if _, exempt := authExempt[path]; !exempt {
			drain(resp)
			if err := c.refresh(ctx); err != nil {
				return err
			}
			resp, err = c.send(ctx, method, target, contentType, body)
			if err != nil {
				return err
			}
			if resp.StatusCode == http.StatusUnauthorized {
				drain(resp)
				c.expireSession(ctx)
				return ErrUnauthorized
			}
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// refresh redeems the stored refresh token for a new pair. At most one
// refresh is in flight per process; concurrent callers share its
// outcome. Any non-2xx outcome clears the token store and notifies the
// session-expired handler.
func (c *HTTPClient) refresh(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		_, refresh, err := c.tokens.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("read tokens: %w", err)
		}
		if refresh == "" {
			c.expireSession(ctx)
			return nil, ErrUnauthorized
		}

		body, err := json.Marshal(map[string]string{"refresh_token": refresh})
		if err != nil {
			return nil, fmt.Errorf("marshal refresh request: %w", err)
		}

		resp, err := c.send(ctx, http.MethodPost, pathRefreshToken, contentTypeJSON, body)
		if err != nil {
			// The call never reached the server; the pair may still be good.
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.log.Warn(ctx, "token refresh rejected", "status", resp.StatusCode)
			c.expireSession(ctx)
			return nil, ErrUnauthorized
		}

		var pair models.TokenPair
		if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
			return nil, fmt.Errorf("decode refresh response: %w", err)
		}
		if err := c.tokens.Write(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, fmt.Errorf("store refreshed tokens: %w", err)
		}

		c.log.Debug(ctx, "token pair refreshed")
		return nil, nil
	})
	return err
}

func (c *HTTPClient) expireSession(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "clearing token store failed", "error", err)
	}
	c.mu.Lock()
	fn := c.onSessionExpired
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	resp.Body.Close()
}

func (c *HTTPClient) getJSON(ctx context.Context, path, query string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}
	return c.do(ctx, method, path, "", contentTypeJSON, body, out)
}

// Login exchanges the password grant for a token pair. The grant is
// form-encoded; the email doubles as the username.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var pair models.TokenPair
	if err := c.do(ctx, http.MethodPost, pathLogin, "", contentTypeForm, []byte(form.Encode()), &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// GoogleLogin exchanges a Google OIDC ID token for a token pair.
func (c *HTTPClient) GoogleLogin(ctx context.Context, idToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := c.sendJSON(ctx, http.MethodPost, pathGoogleLogin, map[string]string{"token": idToken}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates an account. The backend signs the new user in
// directly by returning a token pair.
func (c *HTTPClient) Register(ctx context.Context, email, fullName, password string) (*models.TokenPair, error) {
	payload := map[string]string{
		"email":     email,
		"full_name": fullName,
		"password":  password,
	}
	var pair models.TokenPair
	if err := c.sendJSON(ctx, http.MethodPost, pathRegister, payload, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// AuthHealth validates the current access token and identifies its
// owner in one round trip.
func (c *HTTPClient) AuthHealth(ctx context.Context) (*models.User, error) {
	var payload struct {
		Status    string      `json:"status"`
		Timestamp string      `json:"timestamp"`
		User      models.User `json:"user"`
	}
	if err := c.getJSON(ctx, pathAuthHealth, "", &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

func (c *HTTPClient) CheckDeletedAccount(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
	var info models.DeletedAccountInfo
	if err := c.sendJSON(ctx, http.MethodPost, pathCheckDeletedAccount, map[string]string{"email": email}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) Reactivate(ctx context.Context, req ReactivateRequest) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := c.sendJSON(ctx, http.MethodPost, pathReactivate, req.body(), &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, pathDeleteAccount, "", "", nil, nil)
}

func (c *HTTPClient) GetStocks(ctx context.Context) ([]models.UserStock, error) {
	var stocks []models.UserStock
	if err := c.getJSON(ctx, pathUserStocks, "", &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

type symbolsPayload struct {
	Symbols []string `json:"symbols"`
}

func (c *HTTPClient) AddStocks(ctx context.Context, symbols []string) ([]models.UserStock, error) {
	var stocks []models.UserStock
	if err := c.sendJSON(ctx, http.MethodPost, pathUserStocks, symbolsPayload{Symbols: symbols}, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (c *HTTPClient) RemoveStocks(ctx context.Context, symbols []string) ([]models.UserStock, error) {
	var stocks []models.UserStock
	if err := c.sendJSON(ctx, http.MethodDelete, pathUserStocks, symbolsPayload{Symbols: symbols}, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (c *HTTPClient) GetAvailableStocks(ctx context.Context, enabledOnly bool) ([]models.AvailableStock, error) {
	query := "enabled=" + strconv.FormatBool(enabledOnly)
	var stocks []models.AvailableStock
	if err := c.getJSON(ctx, pathAvailableStocks, query, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (c *HTTPClient) GetSettings(ctx context.Context) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := c.getJSON(ctx, pathUserSettings, "", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, upd models.UserSettingsUpdate) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := c.sendJSON(ctx, http.MethodPut, pathUserSettings, upd, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *HTTPClient) TelegramStatus(ctx context.Context) (*models.TelegramStatus, error) {
	var status models.TelegramStatus
	if err := c.getJSON(ctx, pathTelegramStatus, "", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *HTTPClient) ConnectTelegram(ctx context.Context, connectionToken string) error {
	return c.sendJSON(ctx, http.MethodPost, pathConnectTelegram, map[string]string{"connection_token": connectionToken}, nil)
}

func (c *HTTPClient) Predict(ctx context.Context, symbol string, notify bool) (*models.PredictionResult, error) {
	payload := struct {
		Symbol string `json:"symbol"`
		Notify bool   `json:"notify"`
	}{Symbol: symbol, Notify: notify}

	var result models.PredictionResult
	if err := c.sendJSON(ctx, http.MethodPost, pathPredict, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Train(ctx context.Context, symbol string, testSize *float64) (*models.TrainingMetrics, error) {
	payload := struct {
		Symbol   string   `json:"symbol"`
		TestSize *float64 `json:"test_size,omitempty"`
	}{Symbol: symbol, TestSize: testSize}

	var result struct {
		Metrics models.TrainingMetrics `json:"metrics"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, pathTrain, payload, &result); err != nil {
		return nil, err
	}
	return &result.Metrics, nil
}

func (c *HTTPClient) Untrain(ctx context.Context, symbols []string) error {
	return c.sendJSON(ctx, http.MethodPost, pathUntrain, symbolsPayload{Symbols: symbols}, nil)
}
