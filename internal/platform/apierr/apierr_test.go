package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsCarryStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		code   string
	}{
		{NotAuthorized(errors.New("x")), http.StatusForbidden, CodeNotAuthorized},
		{NotFound(errors.New("x")), http.StatusNotFound, CodeNotFound},
		{Expired(errors.New("x")), http.StatusGone, CodeExpired},
		{AlreadyCompleted(errors.New("x")), http.StatusConflict, CodeAlreadyCompleted},
		{Conflict(errors.New("x")), http.StatusConflict, CodeConflict},
		{InvalidArgument(errors.New("x")), http.StatusBadRequest, CodeInvalidArgument},
		{Internal(errors.New("x")), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		if tc.err.Status != tc.status || tc.err.Code != tc.code {
			t.Fatalf("got status=%d code=%q, want status=%d code=%q", tc.err.Status, tc.err.Code, tc.status, tc.code)
		}
	}
}

func TestFromPassesThroughAndWraps(t *testing.T) {
	orig := NotFound(errors.New("missing"))
	if got := From(orig); got != orig {
		t.Fatalf("From should return the same *Error, got %+v", got)
	}

	wrapped := fmt.Errorf("outer: %w", orig)
	got := From(wrapped)
	if got.Code != CodeNotFound || got.Status != http.StatusNotFound {
		t.Fatalf("From should unwrap to the inner error, got %+v", got)
	}

	plain := From(errors.New("boom"))
	if plain.Code != CodeInternal || plain.Status != http.StatusInternalServerError {
		t.Fatalf("plain errors map to internal, got %+v", plain)
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Expired(errors.New("too late")))
	if !Is(err, CodeExpired) {
		t.Fatalf("Is should see through wrapping")
	}
	if Is(err, CodeNotFound) {
		t.Fatalf("Is matched the wrong code")
	}
	if Is(errors.New("boom"), CodeExpired) {
		t.Fatalf("plain error should not match any code")
	}
}
