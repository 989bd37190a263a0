package db

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

// SettingsCollection stores one record per key.
const SettingsCollection = "settings"

// SettingRecord represents a key-value record stored in PocketBase
type SettingRecord struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GetSetting returns the record stored under key, or nil when there is none.
func (m *Manager) GetSetting(ctx context.Context, key string) (*SettingRecord, error) {
	u, err := url.Parse(fmt.Sprintf("%s/api/collections/%s/records", m.BaseURL, SettingsCollection))
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	q.Set("filter", fmt.Sprintf("key = '%s'", strings.ReplaceAll(key, "'", "\\'")))
	q.Set("perPage", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.DoRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("request failed", resp.StatusCode, body)
	}

	var result struct {
		Items []SettingRecord `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}
	return &result.Items[0], nil
}

// PutSetting creates or updates the record stored under key.
func (m *Manager) PutSetting(ctx context.Context, key, value string) error {
	existing, err := m.GetSetting(ctx, key)
	if err != nil {
		return err
	}

	if existing != nil {
		return m.updateRecord(ctx, SettingsCollection, existing.ID, map[string]any{"value": value})
	}

	id, err := m.createRecord(ctx, SettingsCollection, map[string]any{"key": key, "value": value})
	if err != nil {
		return err
	}
	log.Debug("Setting record created", "key", key, "id", id)
	return nil
}

// DeleteSetting removes the record stored under key. A missing record is not an error.
func (m *Manager) DeleteSetting(ctx context.Context, key string) error {
	existing, err := m.GetSetting(ctx, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", m.BaseURL, SettingsCollection, existing.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.DoRequest(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// createRecord creates a record in a PocketBase collection and returns the record ID
func (m *Manager) createRecord(ctx context.Context, collection string, data map[string]any) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/collections/%s/records", m.BaseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(jsonData)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.DoRequest(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("create failed with status %d: %s", resp.StatusCode, string(body))
	}

	var record struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &record); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return record.ID, nil
}

// updateRecord updates a record in a PocketBase collection
func (m *Manager) updateRecord(ctx context.Context, collection, recordID string, data map[string]any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s", m.BaseURL, collection, recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, strings.NewReader(string(jsonData)))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.DoRequest(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("update failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
