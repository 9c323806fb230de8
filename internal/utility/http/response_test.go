package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizify/internal/models"
)

func TestRespondServiceErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{models.ErrQuizNotFound, http.StatusNotFound},
		{models.ErrQuestionNotFound, http.StatusNotFound},
		{models.ErrAttemptNotFound, http.StatusNotFound},
		{fmt.Errorf("question abc: %w", models.ErrQuestionNotInQuiz), http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: title too short", models.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("username: %w", models.ErrAlreadyExists), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondServiceError(rec, tc.err)
		if rec.Code != tc.code {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.code)
		}

		var body jsonResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: decode body: %v", tc.err, err)
		}
		if body.Success {
			t.Errorf("%v: success = true in an error response", tc.err)
		}
		if body.Code != tc.code {
			t.Errorf("%v: body code = %d, want %d", tc.err, body.Code, tc.code)
		}
	}
}

func TestRespondSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}

	var body jsonResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Code != http.StatusOK {
		t.Fatalf("envelope = %+v", body)
	}
}
