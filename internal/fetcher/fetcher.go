// Package fetcher downloads example JSON over HTTP.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcncl/proptyper/internal/config"
	"github.com/mcncl/proptyper/internal/errors"
	"github.com/mcncl/proptyper/internal/models"
	"github.com/mcncl/proptyper/internal/parser"
)

// maxErrorBody bounds how much of a failed response ends up in the error
const maxErrorBody = 512

// Fetcher performs unauthenticated GET requests and parses the response
// body as JSON.
type Fetcher struct {
	HTTPClient *http.Client
	Headers    map[string]string
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. A nil client defaults to http.DefaultClient.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fetcher{HTTPClient: client, Headers: map[string]string{}, logger: logger}
}

// NewFetcherWithConfig creates a Fetcher honouring the fetch settings of cfg
func NewFetcherWithConfig(cfg *config.Config, logger *slog.Logger) *Fetcher {
	client := http.DefaultClient
	if cfg.Fetch.Timeout > 0 {
		client = &http.Client{Timeout: cfg.Fetch.Timeout}
	}
	f := NewFetcher(client, logger)
	for k, v := range cfg.Fetch.Headers {
		f.Headers[k] = v
	}
	return f
}

// Fetch retrieves rawURL and parses the body. Only http and https URLs are
// accepted and any non-2xx status is an error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (models.JSONValue, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.JSONValue{}, errors.NewInputError(fmt.Sprintf("'%s' is not an http(s) URL", rawURL), errors.ErrInvalidSource)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.JSONValue{}, errors.NewFetchError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range f.Headers {
		req.Header.Set(k, v)
	}

	f.logger.Debug("fetching", "url", u.Redacted())
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return models.JSONValue{}, errors.NewFetchError(fmt.Sprintf("request to %s failed", u.Redacted()), err)
	}
	defer func() { _ = resp.Body.Close() }()

	f.logger.Debug("response received", "status", resp.StatusCode, "content_type", resp.Header.Get("Content-Type"))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("%s returned status %d", u.Redacted(), resp.StatusCode)
		if text := strings.TrimSpace(string(body)); text != "" {
			msg += ", body: " + text
		}
		return models.JSONValue{}, errors.NewFetchError(msg, errors.ErrBadStatus)
	}

	value, err := parser.Parse(resp.Body)
	if err != nil {
		return models.JSONValue{}, err
	}
	return value, nil
}
