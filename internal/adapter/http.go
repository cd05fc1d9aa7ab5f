// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/safeher/internal/logger"
	"github.com/MKhiriev/safeher/internal/utils"
	"github.com/MKhiriev/safeher/models"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Config configures [NewHTTPServerAdapter].
type Config struct {
	// BaseURL is the server address; "http://" is assumed without a scheme.
	BaseURL string
	// Timeout bounds every request. Defaults to 15s.
	Timeout time.Duration
	// DeviceHashKey signs device SOS reports. Optional.
	DeviceHashKey string
	// Token is an admin bearer token obtained earlier. Optional.
	Token string
}

type httpServerAdapter struct {
	client *utils.HTTPClient

	deviceHasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates cfg.BaseURL.
func NewHTTPServerAdapter(cfg Config, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.Timeout),
		logger: logger,
	}
	if cfg.DeviceHashKey != "" {
		a.deviceHasher = utils.NewHasher(cfg.DeviceHashKey)
	}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. Surrounding whitespace is trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) RegisterUser(ctx context.Context, payload models.IdentityPayload) (models.RegistrationResponse, error) {
	var result models.RegistrationResponse
	if err := h.postJSON(ctx, h.client.R(), "/api/user/register", payload, &result); err != nil {
		return models.RegistrationResponse{}, fmt.Errorf("register user: %w", err)
	}
	return result, nil
}

func (h *httpServerAdapter) LoginUser(ctx context.Context, credentials models.UserCredentials) (models.Identity, error) {
	var result models.LoginResponse
	if err := h.postJSON(ctx, h.client.R(), "/api/user/login", credentials, &result); err != nil {
		return models.Identity{}, fmt.Errorf("login user: %w", err)
	}
	return result.User, nil
}

func (h *httpServerAdapter) SendUserAlert(ctx context.Context, request models.UserAlertRequest) (int64, error) {
	var result models.AlertCreatedResponse
	if err := h.postJSON(ctx, h.client.R(), "/api/user/emergency-alert", request, &result); err != nil {
		return 0, fmt.Errorf("send user alert: %w", err)
	}
	return result.AlertID, nil
}

// SendDeviceSOS implements [ServerAdapter]. The digest covers the exact
// payload bytes sent.
func (h *httpServerAdapter) SendDeviceSOS(ctx context.Context, payload models.DeviceAlertPayload) (int64, error) {
	if h.deviceHasher == nil {
		return 0, ErrNoDeviceKey
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal device payload: %w", err)
	}

	body := struct {
		Payload json.RawMessage `json:"payload"`
		Hash    string          `json:"hash"`
	}{
		Payload: raw,
		Hash:    h.deviceHasher.SumHex(raw),
	}

	var result models.AlertCreatedResponse
	if err = h.postJSON(ctx, h.client.R(), "/api/device/sos", body, &result); err != nil {
		return 0, fmt.Errorf("send device sos: %w", err)
	}
	return result.AlertID, nil
}

func (h *httpServerAdapter) RegisterAdmin(ctx context.Context, credentials models.AdminCredentials) error {
	if err := h.postJSON(ctx, h.client.R(), "/api/admin/register", credentials, nil); err != nil {
		return fmt.Errorf("register admin: %w", err)
	}
	return nil
}

// LoginAdmin implements [ServerAdapter].
func (h *httpServerAdapter) LoginAdmin(ctx context.Context, credentials models.AdminCredentials) (string, error) {
	var result models.AccessTokenResponse
	if err := h.postJSON(ctx, h.client.R(), "/api/admin/login", credentials, &result); err != nil {
		return "", fmt.Errorf("login admin: %w", err)
	}

	h.SetToken(result.AccessToken)
	return result.AccessToken, nil
}

func (h *httpServerAdapter) VerifyQR(ctx context.Context, encryptedQR string) (models.IdentityPayload, error) {
	req, err := h.authedRequest()
	if err != nil {
		return models.IdentityPayload{}, err
	}

	var result models.ScanResponse
	if err = h.postJSON(ctx, req, "/api/admin/verify-qr", models.ScanRequest{EncryptedQR: encryptedQR}, &result); err != nil {
		return models.IdentityPayload{}, fmt.Errorf("verify qr: %w", err)
	}
	return result.UserData, nil
}

func (h *httpServerAdapter) UpdateIdentity(ctx context.Context, update models.IdentityUpdate) (models.Identity, error) {
	req, err := h.authedRequest()
	if err != nil {
		return models.Identity{}, err
	}

	var result models.Identity
	resp, err := req.
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("email", update.Email).
		SetBody(update).
		SetResult(&result).
		Patch("/api/admin/identities/{email}")
	if err != nil {
		return models.Identity{}, fmt.Errorf("update identity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, fmt.Errorf("update identity: %w", err)
	}

	return result, nil
}

func (h *httpServerAdapter) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.AlertView, error) {
	req, err := h.authedRequest()
	if err != nil {
		return nil, err
	}

	if filter.Limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.UnresolvedOnly {
		req.SetQueryParam("unresolved", "true")
	}

	var result models.AlertsResponse
	resp, err := req.
		SetContext(ctx).
		SetResult(&result).
		Get("/api/admin/emergency-alerts")
	if err != nil {
		return nil, fmt.Errorf("list alerts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	return result.Alerts, nil
}

func (h *httpServerAdapter) ResolveAlert(ctx context.Context, id int64) error {
	req, err := h.authedRequest()
	if err != nil {
		return err
	}

	resp, err := req.
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Post("/api/admin/emergency-alerts/{id}/resolve")
	if err != nil {
		return fmt.Errorf("resolve alert request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}

	return nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var result models.VersionResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, fmt.Errorf("version: %w", err)
	}

	return result, nil
}

// authedRequest returns a request carrying the stored bearer token.
func (h *httpServerAdapter) authedRequest() (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().SetAuthToken(token), nil
}

// postJSON posts body to path and decodes a 2xx answer into result, which
// may be nil.
func (h *httpServerAdapter) postJSON(ctx context.Context, req *resty.Request, path string, body, result any) error {
	req = req.
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if result != nil {
		req = req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}

	h.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("server responded")

	return mapHTTPError(resp)
}
