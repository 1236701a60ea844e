package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Request describes one path operation to be carried out by an Executor.
//
// Path is the slash-separated path of the target inside the filesystem, not
// URL-encoded; the executor owns encoding. Query and Header may be nil.
type Request struct {
	// Method is the HTTP method of the operation.
	Method string

	// Path is the target path inside the filesystem, e.g. "dir/file.txt".
	Path string

	// Query holds the operation's query parameters.
	Query url.Values

	// Header holds the operation's request headers, including access
	// conditions and permission parameters.
	Header http.Header

	// Body is the raw request body, if any.
	Body []byte
}

// Response is the raw result of one executed path operation.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Body is the fully read response body.
	Body []byte
}

// ContinuationToken returns the continuation-token header of the response.
// An empty result means the operation needs no further steps.
func (r *Response) ContinuationToken() string {
	return r.Header.Get(HeaderContinuation)
}

// RequestID returns the server-generated request ID of the response.
func (r *Response) RequestID() string {
	return r.Header.Get(HeaderRequestID)
}

// Executor performs one path-operation round trip.
//
// Implementations own concurrency, retries, timeouts, and cancellation of
// the individual request; the protocol layer never loops inside a single Do
// call. A non-nil error means the request could not be carried out at all
// (the transport failed); a service-level failure is reported through the
// Response status code instead.
type Executor interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Authorizer injects credentials into an outgoing HTTP request. Signing
// schemes are the caller's concern; the executor only invokes the hook.
type Authorizer interface {
	Apply(req *http.Request) error
}

// BearerToken is an Authorizer that sets a static bearer token.
type BearerToken string

// Apply implements Authorizer.
func (t BearerToken) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+string(t))
	return nil
}

// HTTPExecutorConfig holds configuration for creating an HTTPExecutor.
type HTTPExecutorConfig struct {
	// ServiceURL is the base URL of the filesystem, e.g.
	// "https://account.dls.example.net/myfs". Required.
	ServiceURL string

	// HTTPClient is used for all requests. If nil, http.DefaultClient is
	// used.
	HTTPClient *http.Client

	// Authorizer injects credentials into each request. May be nil for
	// anonymous access.
	Authorizer Authorizer
}

// HTTPExecutor is the default Executor: one net/http round trip per Do call,
// no retries, no looping. It generates a client request ID per request when
// the caller has not already set one.
type HTTPExecutor struct {
	baseURL    string
	httpClient *http.Client
	authorizer Authorizer
}

// NewHTTPExecutor creates an HTTPExecutor for the given service URL.
func NewHTTPExecutor(config HTTPExecutorConfig) (*HTTPExecutor, error) {
	if config.ServiceURL == "" {
		return nil, fmt.Errorf("transport: ServiceURL is required")
	}
	if _, err := url.Parse(config.ServiceURL); err != nil {
		return nil, fmt.Errorf("transport: invalid ServiceURL %q: %w", config.ServiceURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPExecutor{
		baseURL:    strings.TrimRight(config.ServiceURL, "/"),
		httpClient: httpClient,
		authorizer: config.Authorizer,
	}, nil
}

// Do implements Executor.
func (e *HTTPExecutor) Do(ctx context.Context, req *Request) (*Response, error) {
	requestURL := e.baseURL + "/" + escapePath(req.Path)
	if len(req.Query) > 0 {
		requestURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to create request: %w", err)
	}

	for name, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	if httpReq.Header.Get(HeaderClientRequestID) == "" {
		httpReq.Header.Set(HeaderClientRequestID, uuid.NewString())
	}

	if e.authorizer != nil {
		if err := e.authorizer.Apply(httpReq); err != nil {
			return nil, fmt.Errorf("transport: failed to authorize request: %w", err)
		}
	}

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transport: %s %s failed: %w", req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

// escapePath encodes each path segment while preserving the separators.
func escapePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
