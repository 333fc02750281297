package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"eventora-client/internal/data/store"

	"go.uber.org/zap"
)

// apiClient is the shared transport for all collaborator calls. It mirrors
// what the browser client's request/response interceptors did: attach the
// bearer credential when one is stored, and on a 401 clear the credential
// and fire the unauthorized hook exactly once so the redirect cannot loop.
type apiClient struct {
	baseURL        string
	httpClient     *http.Client
	creds          store.CredentialStore
	onUnauthorized func()
	unauthorized   atomic.Bool
	log            *zap.Logger
}

func newAPIClient(baseURL string, httpClient *http.Client, creds store.CredentialStore, onUnauthorized func(), log *zap.Logger) *apiClient {
	return &apiClient{
		baseURL:        baseURL,
		httpClient:     httpClient,
		creds:          creds,
		onUnauthorized: onUnauthorized,
		log:            log.With(zap.String("gateway", "transport")),
	}
}

// envelope is the backend's uniform {success, message, data} shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token,omitempty"`
}

func (c *apiClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *apiClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *apiClient) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *apiClient) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *apiClient) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// doEnvelope runs a request and returns the raw envelope. Used where the
// caller needs message or token alongside data.
func (c *apiClient) doEnvelope(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request for %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request for %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, err := c.creds.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response for %s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s %s: %s: %w", method, path, env.Message, ErrNotFound)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	env, err := c.doEnvelope(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data for %s %s: %w", method, path, err)
		}
	}

	return nil
}

// handleUnauthorized clears the stored credential and fires the hook once.
// Subsequent 401s are quiet until resetUnauthorized re-arms the latch.
func (c *apiClient) handleUnauthorized() {
	if err := c.creds.Clear(); err != nil {
		c.log.Warn("Failed to clear credential after 401", zap.Error(err))
	}

	if c.unauthorized.CompareAndSwap(false, true) && c.onUnauthorized != nil {
		c.log.Info("Credential rejected, session terminated")
		c.onUnauthorized()
	}
}

func (c *apiClient) resetUnauthorized() {
	c.unauthorized.Store(false)
}
