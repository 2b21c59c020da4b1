package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Lilsadiq8345/Todo/logging"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// TokenSource daje trenutni token i prima signal da je token odbijen.
type TokenSource interface {
	Token() (string, bool)
	Invalidate()
}

// Client je tanak omotač oko REST API-ja: dodaje Authorization header,
// prevodi statusne kodove u tipizirane greške i nikad ne ponavlja zahtev.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TodoAPICB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		breaker: breaker,
	}
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// PostPublic šalje POST bez tokena; za javne rute kao login i register,
// gde 401 znači pogrešne kredencijale a ne istekao token.
func (c *Client) PostPublic(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out, true)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

type apiResponse struct {
	status   int
	body     []byte
	hadToken bool
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, withAuth bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-Id", uuid.New().String())

		hadToken := false
		if withAuth {
			if token, ok := c.tokens.Token(); ok {
				req.Header.Set("Authorization", "Bearer "+token)
				hadToken = true
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		// 5xx obara breaker, poslovne greške (4xx) ne
		if resp.StatusCode >= 500 {
			return nil, &ServerError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
		}

		return &apiResponse{status: resp.StatusCode, body: data, hadToken: hadToken}, nil
	})
	if err != nil {
		var srvErr *ServerError
		if errors.As(err, &srvErr) {
			logging.Logger.Warnf("Event ID: API_SERVER_ERROR, Description: %s %s returned %d", method, path, srvErr.StatusCode)
			return srvErr
		}
		logging.Logger.Warnf("Event ID: API_REQUEST_FAILED, Description: %s %s failed: %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	resp := result.(*apiResponse)
	switch {
	case resp.status == http.StatusUnauthorized:
		// Odbijen token znači da sesija više ne važi; sam login zahtev ne nosi token
		if resp.hadToken {
			c.tokens.Invalidate()
		}
		return ErrUnauthorized
	case resp.status == http.StatusForbidden:
		return ErrUnauthorized
	case resp.status == http.StatusNotFound:
		return ErrNotFound
	case resp.status == http.StatusBadRequest:
		return parseValidationBody(resp.body)
	case resp.status >= 400:
		return &ServerError{StatusCode: resp.status, Body: strings.TrimSpace(string(resp.body))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		// Pokvaren odgovor tretiramo kao grešku servera, ne propuštamo ga dalje
		logging.Logger.Warnf("Event ID: API_DECODE_FAILED, Description: failed to decode response from %s %s: %v", method, path, err)
		return &ServerError{StatusCode: resp.status, Body: "malformed response body"}
	}
	return nil
}
