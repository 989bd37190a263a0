package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"daycounter/internal/config"
)

const (
	loginEndpoint       = "/api/collections/_superusers/auth-with-password"
	collectionsEndpoint = "/api/collections"
)

// AuthResponse represents the authentication response from PocketBase
type AuthResponse struct {
	Token string `json:"token"`
	Admin struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"admin"`
}

// ErrorResponse represents an error response from PocketBase
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Manager handles database operations and authentication
type Manager struct {
	BaseURL   string
	AuthToken string
	Client    *http.Client
	email     string
	password  string
}

// InitManager validates the PocketBase credentials and authenticates.
func InitManager(ctx context.Context, creds config.PocketBase) (*Manager, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	// Ensure URL has proper format
	baseURL := creds.URL
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	manager := &Manager{
		BaseURL:  baseURL,
		Client:   &http.Client{Timeout: 10 * time.Second},
		email:    creds.Email,
		password: creds.Password,
	}

	token, err := manager.authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	manager.AuthToken = token
	log.Info("Database manager initialized successfully", "url", baseURL)
	return manager, nil
}

// DoRequest executes an HTTP request with auth token and automatic token refresh on 401/403.
func (m *Manager) DoRequest(req *http.Request) (*http.Response, error) {
	return m.doRequestWithRetry(req, true)
}

func (m *Manager) doRequestWithRetry(req *http.Request, canRetry bool) (*http.Response, error) {
	req.Header.Set("Authorization", m.AuthToken)

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) && canRetry {
		resp.Body.Close()
		log.Info("Auth token expired, refreshing...")
		token, err := m.authenticate(req.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}
		m.AuthToken = token
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
			req.Body = body
		}
		log.Info("Token refreshed, retrying request")
		return m.doRequestWithRetry(req, false)
	}

	return resp, nil
}

// CollectionExists checks if a collection with the given name exists
func (m *Manager) CollectionExists(ctx context.Context, name string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+collectionsEndpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := m.DoRequest(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	if resp.StatusCode != http.StatusOK {
		return false, responseError("failed to list collections", resp.StatusCode, body)
	}

	var listResp struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &listResp); err != nil {
		return false, err
	}

	for _, collection := range listResp.Items {
		if collection.Name == name {
			return true, nil
		}
	}

	return false, nil
}

// CreateCollection posts a collection schema to PocketBase.
func (m *Manager) CreateCollection(ctx context.Context, collection any) error {
	jsonData, err := json.Marshal(collection)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+collectionsEndpoint, strings.NewReader(string(jsonData)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.DoRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return responseError("failed to create collection", resp.StatusCode, body)
	}

	return nil
}

func (m *Manager) authenticate(ctx context.Context) (string, error) {
	data := map[string]string{
		"identity": m.email,
		"password": m.password,
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+loginEndpoint, strings.NewReader(string(jsonData)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", responseError("authentication failed", resp.StatusCode, body)
	}

	var authResp AuthResponse
	if err := json.Unmarshal(body, &authResp); err != nil {
		return "", err
	}

	return authResp.Token, nil
}

// responseError prefers the PocketBase error message and falls back to the raw body.
func responseError(prefix string, status int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
		return fmt.Errorf("%s with status %d: %s", prefix, status, string(body))
	}
	return fmt.Errorf("%s: %s", prefix, errResp.Message)
}
