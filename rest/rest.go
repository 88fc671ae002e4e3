// Package rest provides core functions for
// network requests to Citrex API endpoints
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/errs"
	"github.com/go-resty/resty/v2"
	"github.com/samber/mo"
)

type Client struct {
	baseUrl string
	timeout mo.Option[time.Duration]
}

// ClientInterface defines the contract for REST API calls
type ClientInterface interface {
	// Do sends exactly one request. A response with a status other than
	// 200 is returned together with a *errs.RemoteError; a failure to get
	// any response is a *errs.TransportError.
	Do(ctx context.Context, req *Request) (*Response, error)
	BaseUrl() string
}

type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string
	// Body is sent verbatim as application/json when not empty.
	Body []byte
}

type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	Method     string
	URL        string
}

type Config struct {
	// BaseUrl is the base URL for the Citrex API
	// If none is provided, the production url will be used
	BaseUrl string
	// Timeout is the timeout for network requests
	// If none is provided, no timeout will be enforced
	Timeout time.Duration
}

// New creates a new client instance with the
// provided configuration.
func New(c Config) *Client {
	var baseUrl string = strings.TrimRight(c.BaseUrl, "/")
	var timeout mo.Option[time.Duration]

	if baseUrl == "" {
		baseUrl = constants.PROD_API_URL
	}
	if c.Timeout > 0 {
		timeout = mo.Some(c.Timeout)
	}

	client := &Client{
		baseUrl: baseUrl,
		timeout: timeout,
	}

	return client
}

func (c *Client) BaseUrl() string {
	return c.baseUrl
}

// Do sends req to the base url.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	r := resty.
		New().
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	// the transport lives for this call only
	defer r.GetClient().CloseIdleConnections()

	method := strings.ToUpper(req.Method)
	url := c.baseUrl + req.Path

	// Apply timeout to context if specified
	if timeout, ok := c.timeout.Get(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rr := r.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeaders(req.Headers).
		SetQueryParams(req.Query)

	if len(req.Body) > 0 {
		rr.
			SetHeader("Content-Type", "application/json").
			SetBody(req.Body)
	}

	resp, err := rr.Execute(method, url)
	if err != nil {
		return nil, &errs.TransportError{
			Method: method,
			URL:    url,
			Err:    err,
		}
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Header:     resp.Header(),
		Method:     method,
		URL:        url,
	}

	if err := handleException(out); err != nil {
		return out, err
	}

	return out, nil
}

// Decode unmarshals a 200 response body into T.
func Decode[T any](resp *Response) (T, error) {
	var result T

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return result, &errs.DecodeError{
			URL:  resp.URL,
			Body: resp.Body,
			Err:  err,
		}
	}

	return result, nil
}

// Get sends a GET request to the specified path and decodes the result.
func Get[T any](
	ctx context.Context,
	c ClientInterface,
	path string,
	query map[string]string,
) (T, error) {
	resp, err := c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return Decode[T](resp)
}
