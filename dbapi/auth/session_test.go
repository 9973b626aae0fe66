package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()

	token, err := store.Create(42)
	require.NoError(t, err)
	assert.Regexp(t, "^[0-9a-f]{64}$", token)

	userID, ok := store.Get(token)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)

	other, err := store.Create(7)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	store.Delete(token)
	_, ok = store.Get(token)
	assert.False(t, ok)

	// deleting twice is harmless
	store.Delete(token)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc123")
	require.True(t, ok)
	assert.Equal(t, "abc123", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc123", "abc123"} {
		_, ok := BearerToken(header)
		assert.False(t, ok, "header %q should not parse", header)
	}
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := NewMemorySessionStore()
	token, err := store.Create(42)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", RequireSession(store), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c)})
	})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic " + token, http.StatusUnauthorized},
		{"unknown token", "Bearer deadbeef", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.JSONEq(t, `{"userId":42}`, w.Body.String())
			}
		})
	}
}
