package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dan9191/task-service/internal/apperr"
	"github.com/sirupsen/logrus"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation(apperr.ErrEmptyFields, "x"), http.StatusBadRequest},
		{apperr.DuplicateUsername("a"), http.StatusBadRequest},
		{apperr.NotFound("x"), http.StatusNotFound},
		{apperr.Unauthenticated(nil), http.StatusUnauthorized},
		{apperr.InvalidCredentials(), http.StatusUnauthorized},
		{apperr.Storage(errors.New("x")), http.StatusInternalServerError},
		{errors.New("unclassified"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Fatalf("%v: got %d want %d", tc.err, got, tc.want)
		}
	}
}

func TestError_WritesJSONBody(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	rec := httptest.NewRecorder()
	Error(rec, log, apperr.Storage(errors.New("secret table name")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Fatalf("body: got %v", body)
	}
}
