package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twentyab/stammtisch-tracker/internal/repository"
	"github.com/twentyab/stammtisch-tracker/internal/service"
	"github.com/twentyab/stammtisch-tracker/pkg/response"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"nil", nil, http.StatusOK, "ok"},
		{"invalid input", service.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{
			"aggregated invalid input",
			service.NewInvalidInputError([]service.FieldError{{Field: "date", Message: "must not be zero"}}),
			http.StatusBadRequest, "invalid_input",
		},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("session 42: %w", repository.ErrNotFound), http.StatusNotFound, "not_found"},
		{"already exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"caller not participant", service.ErrCallerNotParticipant, http.StatusInternalServerError, "data_inconsistency"},
		{
			"wrapped caller not participant",
			fmt.Errorf("game 3: %w", service.ErrCallerNotParticipant),
			http.StatusInternalServerError, "data_inconsistency",
		},
		{"player persistence", service.ErrPlayerPersistence, http.StatusInternalServerError, "persistence_invariant"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantError, payload.Error)
		})
	}
}

func TestMapError_CarriesFieldErrors(t *testing.T) {
	err := service.NewInvalidInputError([]service.FieldError{
		{Field: "players[1].name", Message: "must not be empty"},
	})
	_, payload := response.MapError(err)
	if assert.Len(t, payload.FieldErrors, 1) {
		assert.Equal(t, "players[1].name", payload.FieldErrors[0].Field)
	}
}

func TestMapError_InternalErrorHidesDetails(t *testing.T) {
	_, payload := response.MapError(errors.New("pq: connection refused"))
	assert.Empty(t, payload.Message)
	assert.Empty(t, payload.FieldErrors)
}
