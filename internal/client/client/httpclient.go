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

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
	"github.com/dmitrijs2005/waitlistadmin/internal/netx"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	gateway    *Gateway
	endpoints  Endpoints
	logger     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the API at baseURL. Empty endpoint paths
// fall back to DefaultEndpoints.
func NewHTTPClient(baseURL string, httpClient *http.Client, gateway *Gateway, endpoints Endpoints, logger logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		gateway:    gateway,
		endpoints:  endpoints.withDefaults(),
		logger:     logger.With("module", "api_client"),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success           bool                `json:"success"`
	Message           string              `json:"message"`
	NeedsVerification *bool               `json:"needsVerification"`
	Admin             models.AdminPayload `json:"admin"`
	Token             string              `json:"token"`
}

type verifyRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

type verifyResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Admin   models.AdminPayload `json:"admin"`
	Token   string              `json:"token"`
}

// rejection maps a failed unauthenticated answer: server errors are
// unexpected, anything else is a rejection of the submitted secret.
func rejection(resp *http.Response, rejected error) error {
	if resp.StatusCode >= http.StatusInternalServerError {
		return newStatusError(resp, common.ErrUnexpectedStatus)
	}
	return newStatusError(resp, rejected)
}

func (c *HTTPClient) LoginAdmin(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := post(ctx, c.httpClient, joinURL(c.baseURL, c.endpoints.Login), loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, rejection(resp, common.ErrInvalidCredentials)
	}

	var out loginResponse
	if err := netx.DecodeJSON(resp, &out); err != nil {
		return nil, err
	}

	needs := true
	if out.NeedsVerification != nil {
		needs = *out.NeedsVerification
	}
	return &LoginResult{
		Message:           out.Message,
		NeedsVerification: needs,
		Admin:             out.Admin.Normalize(),
		Token:             out.Token,
	}, nil
}

func (c *HTTPClient) VerifyAdmin(ctx context.Context, email, code string) (*VerifyResult, error) {
	resp, err := post(ctx, c.httpClient, joinURL(c.baseURL, c.endpoints.Verify), verifyRequest{Email: email, VerificationCode: code})
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, rejection(resp, common.ErrInvalidVerificationCode)
	}

	var out verifyResponse
	if err := netx.DecodeJSON(resp, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: verification answer carries no token", common.ErrUnexpectedStatus)
	}
	return &VerifyResult{Message: out.Message, Admin: out.Admin.Normalize(), Token: out.Token}, nil
}

// call sends an authenticated request and decodes a 2xx answer into out
// (when out is not nil).
func (c *HTTPClient) call(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.gateway.Request(ctx, path, RequestOptions{Method: method, Body: in})
	if err != nil {
		return err
	}
	if !isSuccess(resp.StatusCode) {
		serr := newStatusError(resp, common.ErrUnexpectedStatus)
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "status", serr.StatusCode, "message", serr.Message)
		return serr
	}
	if out == nil {
		netx.Drain(resp)
		return nil
	}
	return netx.DecodeJSON(resp, out)
}

func (c *HTTPClient) ValidateToken(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, c.endpoints.ValidateToken, nil, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	var out struct {
		Admin *models.AdminPayload `json:"admin"`
		Data  *models.AdminPayload `json:"data"`
	}
	raw, err := c.callRaw(ctx, http.MethodPost, c.endpoints.UpdateProfile, patch)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}

	admin := out.Admin
	if admin == nil {
		admin = out.Data
	}
	if admin == nil {
		return nil, nil
	}
	p := admin.Normalize()
	return &p, nil
}

// callRaw is call for answers whose shape varies between backend versions.
func (c *HTTPClient) callRaw(ctx context.Context, method, path string, in any) ([]byte, error) {
	resp, err := c.gateway.Request(ctx, path, RequestOptions{Method: method, Body: in})
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		return nil, newStatusError(resp, common.ErrUnexpectedStatus)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", common.ErrNetworkFailure, err)
	}
	return b, nil
}

func (c *HTTPClient) GetWaitlist(ctx context.Context) ([]models.WaitlistUser, error) {
	var out []models.WaitlistUser
	if err := c.call(ctx, http.MethodGet, c.endpoints.Waitlist, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.WaitlistUser{}
	}
	return out, nil
}

func (c *HTTPClient) AddToWaitlist(ctx context.Context, u models.NewWaitlistUser) error {
	return c.call(ctx, http.MethodPost, c.endpoints.AddToWaitlist, u, nil)
}

func (c *HTTPClient) GetTrackingData(ctx context.Context) (*models.TrackingData, error) {
	var out models.TrackingData
	if err := c.call(ctx, http.MethodGet, c.endpoints.TrackingData, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetUserDistribution(ctx context.Context) (*models.UserDistribution, error) {
	var out models.UserDistribution
	if err := c.call(ctx, http.MethodGet, c.endpoints.UserDistribution, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchUsers returns an empty list when the backend answers with anything
// other than a JSON array.
func (c *HTTPClient) FetchUsers(ctx context.Context) ([]models.User, error) {
	raw, err := c.callRaw(ctx, http.MethodGet, c.endpoints.FetchUsers, nil)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return users, nil
	}
	if err := json.Unmarshal(trimmed, &users); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	return users, nil
}

func (c *HTTPClient) FetchUser(ctx context.Context, id int64) (*models.User, error) {
	var out models.User
	path := strings.TrimRight(c.endpoints.FetchUser, "/") + "/" + strconv.FormatInt(id, 10)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, u models.NewUser) (*models.User, error) {
	var out models.User
	if err := c.call(ctx, http.MethodPost, c.endpoints.CreateUser, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateUserVerification(ctx context.Context, upd models.VerificationUpdate) error {
	return c.call(ctx, http.MethodPost, c.endpoints.UpdateUserVerification, upd, nil)
}

func (c *HTTPClient) CreateAdmin(ctx context.Context, a models.NewAdmin) error {
	return c.call(ctx, http.MethodPost, c.endpoints.CreateAdmin, a, nil)
}

// FetchAdmins accepts both {"data": [...]} and {"admins": [...]}.
func (c *HTTPClient) FetchAdmins(ctx context.Context) ([]models.Profile, error) {
	var out struct {
		Data   []models.AdminPayload `json:"data"`
		Admins []models.AdminPayload `json:"admins"`
	}
	if err := c.call(ctx, http.MethodPost, c.endpoints.FetchAdmins, nil, &out); err != nil {
		return nil, err
	}
	list := out.Data
	if len(list) == 0 {
		list = out.Admins
	}
	return models.NormalizeAdmins(list), nil
}
