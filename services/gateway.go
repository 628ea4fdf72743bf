package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Gateway performs the outbound HTTP calls of the dashboard, both to the
// backend API and to the external systems of record. It never retries and
// keeps no cache.
type Gateway struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// RequestOptions describes the optional parts of a call. JSON and Form are
// mutually exclusive; Form wins when both are set.
type RequestOptions struct {
	Query     url.Values
	JSON      any
	Form      *MultipartForm
	AuthToken string
}

// Response is a successful (2xx) answer with its decoded body.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON exposes the body for path queries.
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Message returns the envelope message, or fallback when none was sent.
func (r *Response) Message(fallback string) string {
	if msg := gjson.GetBytes(r.Body, "message"); msg.Type == gjson.String && msg.Str != "" {
		return msg.Str
	}
	return fallback
}

func WithHTTPClient(client *http.Client) func(*Gateway) {
	return func(g *Gateway) {
		g.client = client
	}
}

// WithTimeout bounds every call; zero keeps the default.
func WithTimeout(timeout time.Duration) func(*Gateway) {
	return func(g *Gateway) {
		if timeout > 0 {
			g.client.Timeout = timeout
		}
	}
}

// NewGateway resolves relative paths against baseURL.
func NewGateway(baseURL string, opts ...func(*Gateway)) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  log.With().Str("component", "gateway").Logger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BaseURL is the backend root relative paths are resolved against.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Request sends one call. A bearer header is attached only when
// opts.AuthToken is set. Non-2xx answers come back as *errs.GatewayError
// carrying the body's message (or "Request failed"); transport failures
// come back as a service-unreachable error.
func (g *Gateway) Request(ctx context.Context, method, path string, opts RequestOptions) (*Response, error) {
	target, err := g.resolve(path, opts.Query)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid request path " + path)
	}

	body, contentType, err := opts.encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid request: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+opts.AuthToken)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("method", method).Str("url", target).Msg("request failed to complete")
		return nil, errs.NewServiceUnreachableError(req.URL.Host, err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, errs.NewJSONUnmarshalError(method+" "+path, err)
	}

	g.logger.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gateway call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := ""
		if msg := gjson.GetBytes(data, "message"); msg.Type == gjson.String {
			message = msg.Str
		}
		g.logger.Warn().
			Str("method", method).
			Str("url", target).
			Int("status", resp.StatusCode).
			Str("message", message).
			Msg("non-success status")
		return nil, errs.NewGatewayError(method, path, resp.StatusCode, message)
	}

	// an empty body (204) is fine; anything else has to be JSON
	if len(bytes.TrimSpace(data)) > 0 && !gjson.ValidBytes(data) {
		g.logger.Warn().
			Str("method", method).
			Str("url", target).
			Int("status", resp.StatusCode).
			Msg("success status with a body that is not JSON")
		return nil, errs.NewJSONUnmarshalError(method+" "+path, errors.New("response body is not valid JSON"))
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func (g *Gateway) resolve(path string, query url.Values) (string, error) {
	raw := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		raw = g.baseURL + "/" + strings.TrimPrefix(path, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (o RequestOptions) encode() (io.Reader, string, error) {
	if o.Form != nil {
		return o.Form.encode()
	}
	if o.JSON == nil {
		return nil, "", nil
	}
	payload, err := json.Marshal(o.JSON)
	if err != nil {
		return nil, "", errs.NewJSONMarshalError("request body", err)
	}
	return bytes.NewReader(payload), "application/json", nil
}
