package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

// ServerInfo is the server's self-description reported by /info.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	UUID    string `json:"uuid,omitempty"`
}

// RegisteredModel is one entry of the server's model registry.
type RegisteredModel struct {
	ModelID  string `json:"model_id"`
	TaskType string `json:"task_type,omitempty"`
}

// RegisteredModels is the registry snapshot the administrative endpoints
// answer with.
type RegisteredModels struct {
	Models []RegisteredModel `json:"models"`
}

// ServerInfo fetches the server description. No credential is required.
func (c *Client) ServerInfo(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.doJSON(ctx, http.MethodGet, "/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListModels fetches the current registry snapshot. No credential is
// required. A missing-model lookup on serverless deployments answers 200 with
// an empty registry rather than 404; remote 404s are surfaced like any other
// non-2xx status.
func (c *Client) ListModels(ctx context.Context) (*RegisteredModels, error) {
	var registry RegisteredModels
	if err := c.doJSON(ctx, http.MethodGet, "/model/registry", nil, &registry); err != nil {
		return nil, err
	}
	return &registry, nil
}

// LoadModel asks the server to load modelID and returns the resulting
// registry snapshot. With setDefault the session's default model identifier
// and category are updated, but only once the call has succeeded.
func (c *Client) LoadModel(ctx context.Context, modelID string, category Category, setDefault bool) (*RegisteredModels, error) {
	payload := map[string]any{
		"model_id": modelID,
		"api_key":  c.apiKey,
	}
	var registry RegisteredModels
	if err := c.doJSON(ctx, http.MethodPost, "/model/add", payload, &registry); err != nil {
		return nil, err
	}
	if setDefault {
		c.modelID = modelID
		c.category = category
	}
	return &registry, nil
}

// UnloadModel asks the server to unload modelID. When the unloaded model is
// the session default, the default identifier is cleared and the category
// reset, so a subsequent identifier-omitting call fails at build time.
func (c *Client) UnloadModel(ctx context.Context, modelID string) (*RegisteredModels, error) {
	payload := map[string]any{
		"model_id": modelID,
	}
	var registry RegisteredModels
	if err := c.doJSON(ctx, http.MethodPost, "/model/remove", payload, &registry); err != nil {
		return nil, err
	}
	if modelID == c.modelID {
		c.modelID = ""
		c.category = ObjectDetection
	}
	return &registry, nil
}

// UnloadAllModels clears the server registry and unconditionally clears the
// session's default model identifier and category.
func (c *Client) UnloadAllModels(ctx context.Context) (*RegisteredModels, error) {
	var registry RegisteredModels
	if err := c.doJSON(ctx, http.MethodPost, "/model/clear", nil, &registry); err != nil {
		return nil, err
	}
	c.modelID = ""
	c.category = ObjectDetection
	return &registry, nil
}

// doJSON issues one administrative call: optional JSON payload out, JSON
// document back, routed through the error translation boundary.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var reqBody io.Reader
	if payload != nil {
		data, err := sonic.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.logCall(callID(), "registry", c.serverURL+path)

	body, _, err := c.do(req)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}
