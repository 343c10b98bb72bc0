// Package client is the authenticated REST client for the Orderly
// exchange API. Every response travels in a success/data envelope; this
// package unwraps it and converts failures into typed errors the callers
// can branch on.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/logger"
	"github.com/starchild/orderlybot/pkg/ratelimit"
)

// ErrMalformedResponse reports a reply that was not the expected
// envelope shape. HTTP succeeded; the body did not parse.
var ErrMalformedResponse = errors.New("malformed exchange response")

// APIError is an error the exchange itself reported: the envelope came
// back with success=false, or the HTTP status was non-2xx.
type APIError struct {
	HTTPStatus int
	Code       int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exchange rejected %s: code=%d status=%d: %s",
		e.Endpoint, e.Code, e.HTTPStatus, e.Message)
}

type Client struct {
	http    *resty.Client
	limiter ratelimit.Limiter
}

// New builds a client against the given API base URL
// (e.g. https://api.orderly.org). Requests are paced under Orderly's
// 10 req/s account quota.
func New(baseURL string) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			// Only reads and cancels are safe to replay. A POST that
			// died with a 5xx may still have landed on the exchange;
			// resending it would place the order (or withdrawal) twice.
			switch resp.Request.Method {
			case http.MethodGet, http.MethodDelete:
			default:
				return false
			}
			if err != nil {
				return true
			}
			return resp.StatusCode() == http.StatusTooManyRequests ||
				resp.StatusCode() >= http.StatusInternalServerError
		})
	return &Client{http: rc, limiter: ratelimit.NewTokenBucket(10, 8)}
}

// SetLimiter replaces the request pacer. ratelimit.None{} disables
// pacing entirely.
func (c *Client) SetLimiter(l ratelimit.Limiter) {
	c.limiter = l
}

// do sends one request and decodes the envelope's data payload into out.
//
// path must include the query string if any: the signature covers the
// exact path the server sees. body, when non-nil, is marshalled once and
// those exact bytes are both signed and sent.
func (c *Client) do(ctx context.Context, method, path string, signer *signing.RequestSigner, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		payload = b
	}

	r := c.http.R().SetContext(ctx)
	if signer != nil {
		for k, v := range signer.Headers(method, path, payload) {
			r.SetHeader(k, v)
		}
	} else if payload != nil {
		r.SetHeader("Content-Type", "application/json")
	}
	if payload != nil {
		r.SetBody(payload)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}

	var env types.Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.StatusCode() >= http.StatusMultipleChoices {
			// Proxies and gateways answer errors with HTML pages; the
			// HTTP status is still the remote's verdict, so keep it.
			return &APIError{
				HTTPStatus: resp.StatusCode(),
				Message:    fmt.Sprintf("%.200s", resp.Body()),
				Endpoint:   method + " " + path,
			}
		}
		logger.Warnf("unparseable response from %s %s (status %d): %.200s",
			method, path, resp.StatusCode(), resp.Body())
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	if !env.Success || resp.StatusCode() >= http.StatusMultipleChoices {
		return &APIError{
			HTTPStatus: resp.StatusCode(),
			Code:       env.Code,
			Message:    env.Message,
			Endpoint:   method + " " + path,
		}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode data of %s %s: %v", ErrMalformedResponse, method, path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, signer *signing.RequestSigner, out any) error {
	return c.do(ctx, http.MethodGet, path, signer, nil, out)
}

func (c *Client) post(ctx context.Context, path string, signer *signing.RequestSigner, body, out any) error {
	return c.do(ctx, http.MethodPost, path, signer, body, out)
}

func (c *Client) delete(ctx context.Context, path string, signer *signing.RequestSigner, out any) error {
	return c.do(ctx, http.MethodDelete, path, signer, nil, out)
}
