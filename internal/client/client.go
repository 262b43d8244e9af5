// Package client is the Go consumer of the patient-master API: one HTTP
// attempt per call, no retries, errors surfaced to the caller. The terminal
// client and the registration session are built on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hims/hims/pkg/wire"
)

// Client talks to one hims-server instance.
type Client struct {
	baseURL string
	hc      *http.Client
	log     zerolog.Logger

	mu    sync.RWMutex
	token string
}

func New(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 15 * time.Second},
		log:     logger,
	}
}

// SetToken installs the bearer token used on subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Login signs in and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp wire.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", wire.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

func (c *Client) ListPatients(ctx context.Context, hospitalID int) ([]wire.PatientSummary, error) {
	var out []wire.PatientSummary
	path := "/api/patient?hospitalId=" + strconv.Itoa(hospitalID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPatient(ctx context.Context, id, hospitalID int) (*wire.PatientDetail, error) {
	var out wire.PatientDetail
	path := fmt.Sprintf("/api/patient/%d?hospitalId=%d", id, hospitalID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, dto *wire.PatientCreate) (*wire.Ack, error) {
	var ack wire.Ack
	if err := c.do(ctx, http.MethodPost, "/api/patient", dto, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) UpdatePatient(ctx context.Context, dto *wire.PatientUpdate) (*wire.Ack, error) {
	var ack wire.Ack
	if err := c.do(ctx, http.MethodPut, "/api/patient", dto, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// DeletePatient sends the delete payload in the request body, as the API
// expects.
func (c *Client) DeletePatient(ctx context.Context, dto *wire.PatientDelete) error {
	return c.do(ctx, http.MethodDelete, "/api/patient", dto, nil)
}

// Dropdown fetches one reference list and folds its raw rows into
// normalized options.
func (c *Client) Dropdown(ctx context.Context, dropdownType string) ([]wire.DropdownOption, error) {
	var rows []map[string]any
	if err := c.do(ctx, http.MethodGet, "/api/admin/"+dropdownType, nil, &rows); err != nil {
		return nil, err
	}
	return wire.MapDropdownRows(dropdownType, rows), nil
}

// LoadDropdowns fetches the given reference lists concurrently, one
// request per list. A failed list logs a warning and comes back empty —
// reference data being down must not take the form down with it.
func (c *Client) LoadDropdowns(ctx context.Context, types ...string) map[string][]wire.DropdownOption {
	out := make(map[string][]wire.DropdownOption, len(types))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, dropdownType := range types {
		wg.Add(1)
		go func(dropdownType string) {
			defer wg.Done()

			opts, err := c.Dropdown(ctx, dropdownType)
			if err != nil {
				c.log.Warn().Err(err).Str("dropdown", dropdownType).Msg("dropdown load failed")
				opts = []wire.DropdownOption{}
			}

			mu.Lock()
			out[dropdownType] = opts
			mu.Unlock()
		}(dropdownType)
	}
	wg.Wait()

	return out
}

func (c *Client) GenerateReport(ctx context.Context, req wire.ReportRequest) (*wire.ReportResult, error) {
	var out wire.ReportResult
	if err := c.do(ctx, http.MethodPost, "/api/reports/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request. No retry: a failure is the caller's to handle.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
