package httputil

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cybersec-git-expert/catalog-governance/pkg/errors"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", errors.NewNotFound("page", nil), http.StatusNotFound},
		{"bad request", errors.NewBadRequest("bad", nil), http.StatusBadRequest},
		{"forbidden", errors.NewCountryForbidden("LK"), http.StatusForbidden},
		{"invalid transition", errors.NewInvalidTransition("draft", "publish"), http.StatusConflict},
		{"store unavailable", errors.NewStoreUnavailable(nil), http.StatusServiceUnavailable},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusForError(tt.err))
		})
	}
}
