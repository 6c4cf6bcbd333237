package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/events"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
	"github.com/dmitrijs2005/waitlistadmin/internal/netx"
)

// CredentialStore is what the gateway needs from the credential store.
type CredentialStore interface {
	Token(ctx context.Context) string
	Clear(ctx context.Context) error
}

type Publisher interface {
	Publish(topic events.Topic)
}

// RequestOptions are merged on top of the gateway defaults. Body is encoded
// as JSON; headers set here win over the defaults.
type RequestOptions struct {
	Method string
	Body   any
	Header http.Header
}

type Gateway struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialStore
	bus        Publisher
	logger     logging.Logger
}

func NewGateway(baseURL string, httpClient *http.Client, creds CredentialStore, bus Publisher, logger logging.Logger) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		creds:      creds,
		bus:        bus,
		logger:     logger.With("module", "gateway"),
	}
}

func (g *Gateway) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return joinURL(g.baseURL, path)
}

func joinURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Request performs an authenticated call. The caller owns the returned body.
//
// A 401 answer never reaches the caller: the stored credentials are cleared,
// events.SessionInvalidated is published once and common.ErrSessionExpired
// is returned. Every other status is returned as is.
func (g *Gateway) Request(ctx context.Context, path string, opts RequestOptions) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := netx.JSONBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, g.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := g.creds.Token(ctx); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	for k, vals := range opts.Header {
		req.Header.Del(k)
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", common.ErrNetworkFailure, method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		netx.Drain(resp)
		g.logger.Warn(ctx, "request unauthorized, clearing session", "method", method, "path", path)
		if err := g.creds.Clear(ctx); err != nil {
			g.logger.Error(ctx, "failed to clear credentials", "error", err)
		}
		g.bus.Publish(events.SessionInvalidated)
		return nil, common.ErrSessionExpired
	}

	g.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)
	return resp, nil
}

// post is a helper for unauthenticated JSON posts that must bypass the
// 401 handling.
func post(ctx context.Context, hc *http.Client, url string, in any) (*http.Response, error) {
	body, err := netx.JSONBody(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: POST %s: %w", common.ErrNetworkFailure, url, err)
	}
	return resp, nil
}
