// Package remote is the typed client of the grading service API.
// Every network call returns a Result; transport problems never escape as errors.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core"
)

// NetworkErrorMessage is shown for every transport or decoding failure.
const NetworkErrorMessage = "Network error. Please check if backend is running."

// Result is the uniform outcome of a remote call.
// Data is only meaningful when Success is true, Message only when it is false.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
}

func succeeded[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func failed[T any](msg string) Result[T] {
	return Result[T]{Message: msg}
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  core.Logger
}

// NewClient returns a Client for baseURL (e.g. "http://localhost:5000/api").
// Credentials travel with httpClient's cookie jar; the Client never reads them.
func NewClient(baseURL string, httpClient *http.Client, logger core.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// FileURL maps a stored file reference to a fetchable URL.
func (c *Client) FileURL(name string) string {
	return c.baseURL + "/files/" + url.PathEscape(name)
}

type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	payloadKey  string // envelope key holding the data, empty when none
	defaultMsg  string // used when the server reports a failure without a message
}

// outcome of a call before the payload is decoded into its type.
type outcome struct {
	ok      bool
	payload json.RawMessage
	message string
}

func (c *Client) do(ctx context.Context, r request) outcome {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+"/"+r.path, body)
	if err != nil {
		return c.transportFailure(r, errors.Wrap(err, "building request"))
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportFailure(r, errors.Wrap(err, "sending request"))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(r, errors.Wrap(err, "reading response"))
	}

	var env map[string]json.RawMessage
	if err = json.Unmarshal(data, &env); err != nil || env == nil {
		return c.transportFailure(r, errors.Errorf("status %d: undecodable body %q", resp.StatusCode, truncate(data)))
	}

	var success bool
	_, hasSuccess := env["success"]
	if hasSuccess {
		if err = json.Unmarshal(env["success"], &success); err != nil {
			return c.transportFailure(r, errors.Wrap(err, "decoding success flag"))
		}
	}
	msg := envelopeMessage(env)

	is2xx := resp.StatusCode >= 200 && resp.StatusCode < 300
	switch {
	case success && is2xx:
		return outcome{ok: true, payload: env[r.payloadKey]}
	case msg != "":
		return outcome{message: msg}
	case hasSuccess && !success:
		return outcome{message: r.defaultMsg}
	default:
		return c.transportFailure(r, errors.Errorf("status %d: unexpected envelope %q", resp.StatusCode, truncate(data)))
	}
}

func (c *Client) transportFailure(r request, err error) outcome {
	if c.logger != nil {
		c.logger.Error(fmt.Sprintf("remote %s %s: %v", r.method, r.path, err), err)
	}
	return outcome{message: NetworkErrorMessage}
}

// envelopeMessage prefers `error` over `message`.
func envelopeMessage(env map[string]json.RawMessage) string {
	for _, key := range []string{"error", "message"} {
		raw, ok := env[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func truncate(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

// call performs r and decodes its payload into T.
// A missing payload decodes to T's zero value unless required is set.
func call[T any](ctx context.Context, c *Client, r request, required bool) Result[T] {
	out := c.do(ctx, r)
	if !out.ok {
		return failed[T](out.message)
	}
	var data T
	if len(out.payload) == 0 || string(out.payload) == "null" {
		if required {
			c.transportFailure(r, errors.Errorf("missing %q in response", r.payloadKey))
			return failed[T](NetworkErrorMessage)
		}
		return succeeded(data)
	}
	if err := json.Unmarshal(out.payload, &data); err != nil {
		c.transportFailure(r, errors.Wrapf(err, "decoding %q", r.payloadKey))
		return failed[T](NetworkErrorMessage)
	}
	return succeeded(data)
}

func jsonRequest(method, path string, v interface{}, payloadKey, defaultMsg string) (request, error) {
	r := request{method: method, path: path, payloadKey: payloadKey, defaultMsg: defaultMsg}
	if v != nil {
		body, err := json.Marshal(v)
		if err != nil {
			return r, errors.Wrap(err, "encoding body")
		}
		r.body = body
		r.contentType = "application/json"
	}
	return r, nil
}

// list calls a GET endpoint returning a collection; a missing collection is empty.
func list[T any](ctx context.Context, c *Client, path, key string) Result[[]T] {
	res := call[[]T](ctx, c, request{method: http.MethodGet, path: path, payloadKey: key, defaultMsg: "Request failed"}, false)
	if res.Success && res.Data == nil {
		res.Data = []T{}
	}
	return res
}

func get[T any](ctx context.Context, c *Client, path, key string) Result[T] {
	return call[T](ctx, c, request{method: http.MethodGet, path: path, payloadKey: key, defaultMsg: "Request failed"}, true)
}
