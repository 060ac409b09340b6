package helpers

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/forgo/cuppa/internal/model"
	"github.com/forgo/cuppa/pkg/jwt"
)

// ============================================================================
// Token Helpers
// ============================================================================

// Tokens mints bearer tokens signed with an in-memory key
type Tokens struct {
	Service *jwt.Service
}

// NewTokens creates a token minter with a fresh RSA key
func NewTokens(t *testing.T) *Tokens {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("helpers: failed to generate RSA key: %v", err)
	}
	return &Tokens{Service: jwt.NewTestService(key, "cuppa-test", time.Hour)}
}

// User returns a token for an ordinary user
func (tk *Tokens) User(t *testing.T, userID string) string {
	t.Helper()
	return tk.issue(t, userID, jwt.RoleUser)
}

// Admin returns a token carrying the admin role
func (tk *Tokens) Admin(t *testing.T, userID string) string {
	t.Helper()
	return tk.issue(t, userID, jwt.RoleAdmin)
}

func (tk *Tokens) issue(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := tk.Service.Issue(userID, role)
	if err != nil {
		t.Fatalf("helpers: failed to issue token: %v", err)
	}
	return token
}

// ============================================================================
// Request Builder
// ============================================================================

// RequestBuilder assembles test requests
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    io.Reader
	headers map[string]string
}

// NewRequest starts a request for method and path
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithJSON encodes body as JSON. A string is sent verbatim.
func (rb *RequestBuilder) WithJSON(body interface{}) *RequestBuilder {
	rb.t.Helper()

	if s, ok := body.(string); ok {
		rb.body = strings.NewReader(s)
	} else {
		b, err := json.Marshal(body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to encode body: %v", err)
		}
		rb.body = bytes.NewReader(b)
	}
	rb.headers["Content-Type"] = "application/json"
	return rb
}

// WithHeader sets a request header
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithToken sets the bearer token
func (rb *RequestBuilder) WithToken(token string) *RequestBuilder {
	return rb.WithHeader("Authorization", "Bearer "+token)
}

// Build returns the request
func (rb *RequestBuilder) Build() *http.Request {
	req := httptest.NewRequest(rb.method, rb.path, rb.body)
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do sends the request through h and returns the recorded response
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblem validates an RFC 9457 problem response. A zero code skips
// the code check.
func AssertProblem(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) *model.ProblemDetails {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json content type, got %q", ct)
	}

	var problem model.ProblemDetails
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v. Body: %s", err, resp.Body.String())
	}
	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
	if expectedCode != 0 && problem.Code != expectedCode {
		t.Errorf("expected problem.code %d, got %d", expectedCode, problem.Code)
	}
	return &problem
}

// AssertValidationError checks for a 422 naming field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	problem := AssertProblem(t, resp, http.StatusUnprocessableEntity, 0)
	for _, fe := range problem.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("expected validation error on field %q, got %+v", field, problem.Errors)
}

// DecodeData unmarshals the "data" member of a success envelope into v
func DecodeData(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, resp.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v. Body: %s", err, resp.Body.String())
	}
}
