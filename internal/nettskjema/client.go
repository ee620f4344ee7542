// Package nettskjema talks to the Nettskjema survey API.
package nettskjema

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Environment variables holding the API credentials. They may also live in .env.
const (
	ClientIDEnv     = "API_CLIENT_ID"
	ClientSecretEnv = "API_SECRET"
)

var (
	// ErrUnauthorized is returned when the API rejects the client credentials.
	ErrUnauthorized = errors.New("survey API rejected the credentials")

	// ErrNoCredentials is returned when no client id or secret is configured.
	ErrNoCredentials = errors.New("no API credentials: set " + ClientIDEnv + " and " + ClientSecretEnv)
)

// Client is an authenticated survey API client.
type Client struct {
	http    *http.Client
	baseURL string
}

var _ contract.SurveyClient = (*Client)(nil)

// NewClient builds a client using the OAuth2 client-credentials flow.
// Missing credentials are read from the environment after loading .env, when present.
func NewClient(ctx context.Context, cfg contract.APIConfig) (*Client, error) {
	_ = godotenv.Load(".env")

	id := cfg.ClientID
	if id == "" {
		id = os.Getenv(ClientIDEnv)
	}
	secret := cfg.ClientSecret
	if secret == "" {
		secret = os.Getenv(ClientSecretEnv)
	}
	if id == "" || secret == "" {
		return nil, ErrNoCredentials
	}

	cc := clientcredentials.Config{
		ClientID:     id,
		ClientSecret: secret,
		TokenURL:     cfg.TokenURL,
	}
	h := cc.Client(ctx)
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{http: h, baseURL: cfg.BaseURL}, nil
}

// ListForms returns the forms owned by the authenticated client.
func (c *Client) ListForms(ctx context.Context) ([]schema.Form, error) {
	body, err := c.get(ctx, "/v3/form/me")
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	var forms []schema.Form
	if err := json.Unmarshal(body, &forms); err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	return forms, nil
}

// CountInvitations counts the invitation lines of a form. The endpoint streams one JSON object per line.
func (c *Client) CountInvitations(ctx context.Context, formID int64) (int, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v3/form/%d/invitations", formID))
	if err != nil {
		return 0, fmt.Errorf("invitations of form %d: %w", formID, err)
	}
	n := 0
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return 0, fmt.Errorf("invitations of form %d: invalid line %q", formID, line)
		}
		n++
	}
	return n, scanner.Err()
}

// CSVReport returns the answer export of a form.
func (c *Client) CSVReport(ctx context.Context, formID int64) ([]byte, error) {
	body, err := c.get(ctx, fmt.Sprintf("/v3/form/%d/csv-report", formID))
	if err != nil {
		return nil, fmt.Errorf("csv report of form %d: %w", formID, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, rerr)
		}
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case res.StatusCode/100 != 2:
		return nil, fmt.Errorf("GET %s: %s", path, res.Status)
	}
	return io.ReadAll(res.Body)
}
