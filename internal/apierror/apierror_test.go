package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if respErr := Respond(c, err); respErr != nil {
		t.Fatalf("Respond returned %v", respErr)
	}
	return rec
}

func TestRespondStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Unauthenticated("no token"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
		{ValidationField("amount", "too low"), http.StatusUnprocessableEntity},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := respond(t, tc.err)
		if rec.Code != tc.want {
			t.Errorf("expected status %d, got %d", tc.want, rec.Code)
		}
	}
}

func TestRespondValidationCarriesFieldMessages(t *testing.T) {
	rec := respond(t, ValidationField("email", "The email has already been taken."))

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(body.Errors["email"]) != 1 {
		t.Fatalf("expected one email error, got %v", body.Errors)
	}
}

func TestRespondMasksUnknownErrors(t *testing.T) {
	Verbose = false
	rec := respond(t, errors.New("sql: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}

func TestInternalVerboseIncludesDetail(t *testing.T) {
	Verbose = true
	defer func() { Verbose = false }()

	apiErr := Internal(errors.New("boom"))
	if apiErr.Message != "boom" {
		t.Fatalf("expected detail in verbose mode, got %q", apiErr.Message)
	}
}
