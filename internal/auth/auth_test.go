package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("secret", "airport")

	raw, err := tokens.Issue(access.Identity{UserID: 42, IsAdmin: true}, time.Hour)
	require.NoError(t, err)

	id, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, access.Identity{UserID: 42, IsAdmin: true}, *id)
}

func TestTokens_VerifyRejects(t *testing.T) {
	tokens := NewTokens("secret", "airport")

	expired, err := tokens.Issue(access.Identity{UserID: 1}, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewTokens("other", "airport").Issue(access.Identity{UserID: 1}, time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewTokens("secret", "someone-else").Issue(access.Identity{UserID: 1}, time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"alg none":     noneAlg,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(raw)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokens("secret", "")
	valid, err := tokens.Issue(access.Identity{UserID: 9}, time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.Use(Middleware(tokens))
	router.GET("/whoami", func(c *gin.Context) {
		id := IdentityFrom(c)
		if id == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.UserID})
	})

	testCases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous passes through", "", http.StatusOK, `{"user":null}`},
		{"valid token", "Bearer " + valid, http.StatusOK, `{"user":9}`},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, `{"user":9}`},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized, ""},
		{"bad token", "Bearer nope", http.StatusUnauthorized, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, w.Body.String())
			}
		})
	}
}
