package middleware

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testProfile() *models.Profile {
	return &models.Profile{
		ID:   "profile-1",
		Role: models.RoleVendor,
	}
}

func newTestMiddleware() *AuthMiddleware {
	return NewAuthMiddleware(testSecret, log.New(io.Discard, "", 0))
}

func TestWithAuth_ValidToken(t *testing.T) {
	token, err := GenerateToken(testSecret, testProfile(), time.Hour)
	require.NoError(t, err)

	var gotActor models.Actor
	var gotOk bool
	handler := newTestMiddleware().WithAuth(func(w http.ResponseWriter, r *http.Request) {
		gotActor, gotOk = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOk)
	assert.Equal(t, "profile-1", gotActor.ID)
	assert.Equal(t, models.RoleVendor, gotActor.Role)
}

func TestWithAuth_Rejects(t *testing.T) {
	expired, err := GenerateToken(testSecret, testProfile(), -time.Minute)
	require.NoError(t, err)
	foreign, err := GenerateToken("other-secret", testProfile(), time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"malformed token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + foreign},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := newTestMiddleware().WithAuth(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "protected handler must not run")
		})
	}
}

func TestActorFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ActorFromContext(req.Context())
	assert.False(t, ok)
}
