// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package httpapi is the HTTP implementation of [gateway.Gateway].

Every call sends JSON, receives the uniform response envelope, and maps
failures onto the client error taxonomy. Transport-level failures (the
request never produced a response) surface as NETWORK_ERROR.

The package does no token handling itself: wire an AuthTransport into the
injected round tripper and bearer attachment plus 401 refresh come for free.
*/
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/core/document"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/gateway"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/apperr"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/users"
)

// Client talks to the knowledge API over HTTP. It implements
// [gateway.Gateway].
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ gateway.Gateway = (*Client)(nil)

// NewClient builds a Client rooted at baseURL (e.g. "http://host:8080/api").
// A nil transport uses [http.DefaultTransport].
func NewClient(baseURL string, transport http.RoundTripper, timeout time.Duration, logger *slog.Logger) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// do performs one round trip and decodes the response envelope. The returned
// status is 0 when the request never produced a response.
func (client *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (*gateway.Envelope, int, error) {
	endpoint := client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, apperr.Internal(fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, 0, apperr.Network(err)
	}
	defer response.Body.Close()

	var envelope gateway.Envelope
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, response.StatusCode, apperr.Internal(fmt.Errorf("decode response: %w", err))
	}
	return &envelope, response.StatusCode, nil
}

// call performs a round trip and unwraps the envelope payload into T.
func call[T any](client *Client, ctx context.Context, method, path string, query url.Values, payload any) (T, error) {
	envelope, status, err := client.do(ctx, method, path, query, payload)
	if err != nil {
		var zero T
		return zero, err
	}
	return gateway.Decode[T](envelope, status)
}

// exec performs a round trip for operations without a response payload.
func (client *Client) exec(ctx context.Context, method, path string, payload any) error {
	envelope, status, err := client.do(ctx, method, path, nil, payload)
	if err != nil {
		return err
	}
	return envelope.Err(status)
}

// ── 1. Auth ──

func (client *Client) Login(ctx context.Context, email, password string) (*gateway.AuthSession, error) {
	return call[*gateway.AuthSession](client, ctx, http.MethodPost, "/auth/login", nil,
		gateway.LoginRequest{Email: email, Password: password})
}

func (client *Client) Register(ctx context.Context, input users.CreateRequest) (*gateway.AuthSession, error) {
	return call[*gateway.AuthSession](client, ctx, http.MethodPost, "/auth/register", nil, input)
}

func (client *Client) Logout(ctx context.Context, refreshToken string) error {
	return client.exec(ctx, http.MethodPost, "/auth/logout",
		gateway.RefreshRequest{RefreshToken: refreshToken})
}

func (client *Client) Refresh(ctx context.Context, refreshToken string) (*gateway.AuthSession, error) {
	return call[*gateway.AuthSession](client, ctx, http.MethodPost, "/auth/refresh", nil,
		gateway.RefreshRequest{RefreshToken: refreshToken})
}

func (client *Client) ChangePassword(ctx context.Context, input gateway.ChangePasswordRequest) error {
	return client.exec(ctx, http.MethodPost, "/auth/change-password", input)
}

func (client *Client) ForgotPassword(ctx context.Context, email string) error {
	return client.exec(ctx, http.MethodPost, "/auth/forgot-password",
		gateway.ForgotPasswordRequest{Email: email})
}

func (client *Client) ResetPassword(ctx context.Context, input gateway.ResetPasswordRequest) error {
	return client.exec(ctx, http.MethodPost, "/auth/reset-password", input)
}

// ── 2. Upload ──

// UploadFile sends the file as a multipart form, the one endpoint that does
// not speak JSON on the way in.
func (client *Client) UploadFile(ctx context.Context, fileName string, data []byte) (*document.UploadResult, error) {
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperr.Internal(err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/upload", bytes.NewReader(form.Bytes()))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Network(err)
	}
	defer response.Body.Close()

	var envelope gateway.Envelope
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, apperr.Internal(fmt.Errorf("decode response: %w", err))
	}
	return gateway.Decode[*document.UploadResult](&envelope, response.StatusCode)
}
