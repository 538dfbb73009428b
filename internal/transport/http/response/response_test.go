package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nakama-dev/auth-backend/internal/domain"
	appCtx "github.com/nakama-dev/auth-backend/internal/pkg/context"
)

func TestWriteError_DomainError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", domain.ErrMissingField("email"), http.StatusBadRequest, "please provide email"},
		{"auth", domain.ErrInvalidCredentials(), http.StatusUnauthorized, "invalid email or password"},
		{"not found", domain.ErrUserNotFound(), http.StatusNotFound, "user not found"},
		{"conflict", domain.ErrEmailAlreadyExists(), http.StatusConflict, "user with this email already exists"},
		{"infrastructure", domain.ErrDBUnavailable(errors.New("down")), http.StatusServiceUnavailable, "database unavailable"},
		{"internal", domain.ErrInternal(errors.New("boom")), http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			WriteError(rec, req, tc.err, false)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Fatal("success must be false")
			}
			if body.Message != tc.message {
				t.Fatalf("message = %q, want %q", body.Message, tc.message)
			}
			if body.Error != "" {
				t.Fatalf("cause must not leak when debug is off, got %q", body.Error)
			}
		})
	}
}

func TestWriteError_DebugIncludesCause(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, req, domain.ErrDBUnavailable(errors.New("conn refused")), true)

	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "conn refused" {
		t.Fatalf("expected cause in debug mode, got %q", body.Error)
	}
}

func TestWriteError_NonDomainErrorIsOpaque500(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, req, errors.New("secret detail"), false)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret detail") {
		t.Fatal("non-domain error detail leaked")
	}
}

func TestWriteError_CarriesRequestID(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(appCtx.WithRequestID(req.Context(), "req-42"))
	WriteError(rec, req, domain.ErrUserNotFound(), false)

	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.RequestID != "req-42" {
		t.Fatalf("request_id = %q, want req-42", body.RequestID)
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		var p payload
		if err := DecodeJSON(req, &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.Name != "x" {
			t.Fatalf("got %+v", p)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		err := DecodeJSON(req, &p)
		if !domain.Is(err, "invalid_json") {
			t.Fatalf("expected invalid_json, got %v", err)
		}
	})

	t.Run("trailing value", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}{"name":"y"}`))
		var p payload
		err := DecodeJSON(req, &p)
		if !domain.Is(err, "invalid_json") {
			t.Fatalf("expected invalid_json, got %v", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		err := DecodeJSON(req, &p)
		if !domain.Is(err, "invalid_json") {
			t.Fatalf("expected invalid_json, got %v", err)
		}
	})
}

func TestEnvelope_Shapes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Created(rec, "created", map[string]string{"k": "v"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); !strings.Contains(got, `"success":true`) || !strings.Contains(got, `"data"`) {
		t.Fatalf("unexpected body %s", got)
	}

	rec = httptest.NewRecorder()
	OK(rec, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// empty message and nil data are omitted, not emitted as nulls
	if got := rec.Body.String(); strings.Contains(got, "message") || strings.Contains(got, "data") {
		t.Fatalf("unexpected body %s", got)
	}
}
