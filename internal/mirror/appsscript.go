package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"verkskra/internal/core"
	"verkskra/internal/log"
)

// AppsScript talks to a Google Apps Script web app deployed in front of the
// spreadsheet. The deployment only accepts GET, so save/update actions carry
// their JSON record URL-encoded in a payload parameter.
type AppsScript struct {
	endpoint string
	httpc    *http.Client
	logger   *log.Logger
}

var _ Port = (*AppsScript)(nil)

// NewAppsScript creates a client for the given web-app URL.
func NewAppsScript(endpoint string, logger *log.Logger) *AppsScript {
	return &AppsScript{
		endpoint: endpoint,
		httpc:    newHTTPClient(),
		logger:   logger.WithComponent(log.ComponentMirror),
	}
}

// newHTTPClient returns an HTTP client with pooling and timeouts tuned for
// the Apps Script endpoint. Without an overall timeout a hung remote call
// would delay the enclosing operation indefinitely.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 20 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}

type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *AppsScript) call(ctx context.Context, action string, params url.Values) error {
	params.Set("action", action)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", action, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: remote returned HTTP %d", action, resp.StatusCode)
	}
	var result statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%s: decode response: %w", action, err)
	}
	if !result.Success {
		if result.Error != "" {
			return fmt.Errorf("%s: remote reported failure: %s", action, result.Error)
		}
		return fmt.Errorf("%s: remote reported failure", action)
	}
	return nil
}

func (c *AppsScript) save(ctx context.Context, action string, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", action, err)
	}
	params := url.Values{}
	params.Set("payload", string(payload))
	if err := c.call(ctx, action, params); err != nil {
		c.logger.WarnContext(ctx, "Mirror save failed", log.FieldAction, action, log.FieldError, err)
		return err
	}
	return nil
}

func (c *AppsScript) delete(ctx context.Context, action, id string) error {
	params := url.Values{}
	params.Set("id", id)
	if err := c.call(ctx, action, params); err != nil {
		c.logger.WarnContext(ctx, "Mirror delete failed", log.FieldAction, action, log.FieldEntryID, id, log.FieldError, err)
		return err
	}
	return nil
}

// GetAll fetches the remote collaborator's full snapshot.
func (c *AppsScript) GetAll(ctx context.Context) (*AllData, error) {
	params := url.Values{}
	params.Set("action", ActionGetAll)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build getAll request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getAll: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("getAll: remote returned HTTP %d", resp.StatusCode)
	}
	var data AllData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("getAll: decode response: %w", err)
	}
	return &data, nil
}

func (c *AppsScript) SaveProject(ctx context.Context, p core.Project) error {
	return c.save(ctx, ActionSaveProject, RecordFromProject(p))
}

func (c *AppsScript) UpdateProject(ctx context.Context, p core.Project) error {
	return c.save(ctx, ActionUpdateProject, RecordFromProject(p))
}

func (c *AppsScript) SaveWorkEntry(ctx context.Context, projectID string, e core.WorkEntry) error {
	return c.save(ctx, ActionSaveWorkEntry, WorkEntryRecord{WorkEntry: e, ProjectID: projectID})
}

func (c *AppsScript) SaveMaterial(ctx context.Context, projectID string, m core.MaterialEntry) error {
	return c.save(ctx, ActionSaveMaterial, MaterialRecord{MaterialEntry: m, ProjectID: projectID})
}

func (c *AppsScript) DeleteProject(ctx context.Context, id string) error {
	return c.delete(ctx, ActionDeleteProject, id)
}

func (c *AppsScript) DeleteWorkEntry(ctx context.Context, id string) error {
	return c.delete(ctx, ActionDeleteWorkEntry, id)
}

func (c *AppsScript) DeleteMaterial(ctx context.Context, id string) error {
	return c.delete(ctx, ActionDeleteMaterial, id)
}
