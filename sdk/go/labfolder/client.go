// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// A Client is an HTTP client with a LabFolder API endpoint and a
// bearer credential.
//
// It offers methods for the individual LabFolder APIs (login, entry
// and element CRUD) and the generic request helpers the element types
// are built on. A Client is not safe for concurrent use; callers
// serialize access externally.
type Client struct {
	// HTTP client used to make requests. If nil,
	// DefaultSecureClient or InsecureHTTPClient will be used.
	Client *http.Client `json:"-"`

	// Protocol scheme: "http", "https", or "" (https)
	Scheme string

	// Hostname (or host:port) of the LabFolder instance.
	APIHost string

	// Bearer token obtained from Login, or supplied directly.
	AuthToken string

	// Accept unverified certificates. This works only if the
	// Client field is nil: otherwise, it has no effect.
	Insecure bool

	// HTTP headers to add/override in outgoing requests.
	SendHeader http.Header

	// Timeout for requests. NewClient and NewClientFromEnv return
	// a Client with a 10 second timeout; its expiry is an ordinary
	// request failure, never retried. To rely on each request's
	// context deadline instead, set Timeout to zero.
	Timeout time.Duration

	// APIHost and AuthToken were loaded from LABFOLDER_* env vars
	// (used to customize "no host/token" error messages)
	loadedFromEnv bool
}

// InsecureHTTPClient is the default http.Client used by a Client with
// Insecure==true and Client==nil.
var InsecureHTTPClient = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true}}}

// DefaultSecureClient is the default http.Client used by a Client otherwise.
var DefaultSecureClient = &http.Client{}

// DefaultTimeout is applied to every request by NewClient and
// NewClientFromEnv.
const DefaultTimeout = 10 * time.Second

// NewClient returns a Client for the LabFolder instance at the given
// host (e.g., "labfolder.example.com" or a host:port).
//
// AuthToken is left empty for the caller to populate, typically via
// Login.
func NewClient(host string) *Client {
	return &Client{
		Scheme:  "https",
		APIHost: host,
		Timeout: DefaultTimeout,
	}
}

// NewClientFromEnv creates a new Client using the endpoint and
// credentials given by the LABFOLDER_API_HOST, LABFOLDER_API_TOKEN,
// and LABFOLDER_API_HOST_INSECURE environment variables.
func NewClientFromEnv() *Client {
	var insecure bool
	if s := strings.ToLower(os.Getenv("LABFOLDER_API_HOST_INSECURE")); s == "1" || s == "yes" || s == "true" {
		insecure = true
	}
	return &Client{
		Scheme:        "https",
		APIHost:       os.Getenv("LABFOLDER_API_HOST"),
		AuthToken:     os.Getenv("LABFOLDER_API_TOKEN"),
		Insecure:      insecure,
		Timeout:       DefaultTimeout,
		loadedFromEnv: true,
	}
}

// Do adds the Authorization header and then calls (*http.Client)Do().
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" && c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		ctx := req.Context()
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(c.Timeout))
		req = req.WithContext(ctx)
	}
	resp, err := c.httpClient().Do(req)
	if err == nil && cancel != nil {
		// We need to call cancel() eventually, but we can't
		// use "defer cancel()" because the context has to
		// stay alive until the caller has finished reading
		// the response body.
		resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	} else if cancel != nil {
		cancel()
	}
	return resp, err
}

// cancelOnClose calls a provided CancelFunc when its wrapped
// ReadCloser's Close() method is called.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (coc cancelOnClose) Close() error {
	err := coc.ReadCloser.Close()
	coc.cancel()
	return err
}

// DoAndDecode performs req and unmarshals the response (which must be
// JSON) into dst. Use this instead of RequestAndDecode if you need
// more control of the http.Request object.
//
// A nil dst discards the response body. Non-2xx responses are
// returned as *TransactionError.
func (c *Client) DoAndDecode(dst interface{}, req *http.Request) error {
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newTransactionError(req, resp, buf)
	}
	if dst == nil || len(buf) == 0 {
		return nil
	}
	return json.Unmarshal(buf, dst)
}

// RequestAndDecode performs an API request and unmarshals the
// response (which must be JSON) into dst. The given path is added to
// the instance's scheme/host/port plus the API version prefix to form
// the request URL. A non-nil body is marshalled to JSON and sent as
// the request payload.
//
// path must not contain a query string; pass query parameters via
// params.
func (c *Client) RequestAndDecode(ctx context.Context, dst interface{}, method, path string, params url.Values, body interface{}) error {
	if c.APIHost == "" {
		if c.loadedFromEnv {
			return errNoEnvConfig
		}
		return errNoAPIHost
	}
	urlString := c.apiURL(path)
	if len(params) > 0 {
		urlString += "?" + params.Encode()
	}
	var payload io.Reader
	if body != nil {
		j, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(j)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlString, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.SendHeader {
		req.Header[k] = v
	}
	return c.DoAndDecode(dst, req)
}

// fetchRaw performs a GET request and returns the raw response body,
// for endpoints that serve file content rather than JSON.
func (c *Client) fetchRaw(ctx context.Context, path string) ([]byte, error) {
	if c.APIHost == "" {
		if c.loadedFromEnv {
			return nil, errNoEnvConfig
		}
		return nil, errNoAPIHost
	}
	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL(path), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newTransactionError(req, resp, buf)
	}
	return buf, nil
}

func (c *Client) httpClient() *http.Client {
	switch {
	case c.Client != nil:
		return c.Client
	case c.Insecure:
		return InsecureHTTPClient
	default:
		return DefaultSecureClient
	}
}

// apiVersionPrefix is the path prefix of the current LabFolder REST
// API generation.
const apiVersionPrefix = "api/v2/"

func (c *Client) apiURL(path string) string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + c.APIHost + "/" + apiVersionPrefix + path
}
