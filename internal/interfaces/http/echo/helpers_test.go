package echo_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	httpecho "github.com/pipelinecrm/crm-server/internal/interfaces/http/echo"
)

const (
	validToken = "valid-token"
	testUserID = "5b0f3c1e-8d5a-4c2e-9f61-3a7d2b9e4c10"
	testCompID = "9c4e2a7b-1f3d-4b6a-8e25-6d1c0f7a3b92"
	contactID  = "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e"
)

type fakeSessions struct{}

func (fakeSessions) Parse(token string) (domain.Session, error) {
	if token != validToken {
		return domain.Session{}, errors.New("bad token")
	}
	return domain.Session{UserID: testUserID, CompanyID: testCompID, Email: "anna@example.com"}, nil
}

func newServer(h httpecho.Handlers) *echo.Echo {
	e := echo.New()
	httpecho.RegisterRoutes(e, h, fakeSessions{})
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: httpecho.SessionCookieName, Value: validToken})
	return req
}

func multipartRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: httpecho.SessionCookieName, Value: validToken})
	return req
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) envelope {
	t.Helper()

	if rec.Code != wantStatus {
		t.Fatalf("expected %d, got %d: %s", wantStatus, rec.Code, rec.Body.String())
	}
	var env envelope
	if rec.Body.Len() == 0 {
		return env
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	return env
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()

	env := decode(t, rec, wantStatus)
	if env.Error == nil || env.Error.Code != wantCode {
		t.Fatalf("expected error code %q, got %+v", wantCode, env.Error)
	}
}

func unmarshalData(t *testing.T, env envelope, v any) {
	t.Helper()

	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("unexpected data payload %s: %v", env.Data, err)
	}
}
