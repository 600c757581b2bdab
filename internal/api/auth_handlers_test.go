package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUserHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rr := doRequest(t, http.MethodPost, "/users", "", CreateUserRequest{Email: "new-user@example.com", Password: "secret"})
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotZero(t, resp.ID)
		require.Equal(t, "new-user@example.com", resp.Email)
		require.NotContains(t, rr.Body.String(), "password")

		rr = doRequest(t, http.MethodPost, "/users", "", CreateUserRequest{Email: "new-user@example.com", Password: "other"})
		requireError(t, rr, http.StatusBadRequest, "Already exist")
	})

	t.Run("Missing email", func(t *testing.T) {
		rr := doRequest(t, http.MethodPost, "/users", "", CreateUserRequest{Password: "secret"})
		requireError(t, rr, http.StatusBadRequest, "Missing email")
	})

	t.Run("Missing password", func(t *testing.T) {
		rr := doRequest(t, http.MethodPost, "/users", "", CreateUserRequest{Email: "no-password@example.com"})
		requireError(t, rr, http.StatusBadRequest, "Missing password")
	})

	t.Run("Password longer than 72 bytes", func(t *testing.T) {
		password := strings.Repeat("p", 73)
		rr := doRequest(t, http.MethodPost, "/users", "", CreateUserRequest{Email: "long-password@example.com", Password: password})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		require.Equal(t, http.StatusOK, connect(t, "long-password@example.com", password).Code)
		requireError(t, connect(t, "long-password@example.com", password[:72]), http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("Empty body", func(t *testing.T) {
		rr := doRequest(t, http.MethodPost, "/users", "", nil)
		requireError(t, rr, http.StatusBadRequest, "Missing email")
	})
}

func TestConnectHandler(t *testing.T) {
	u := newSignedInUser(t)

	t.Run("Wrong password", func(t *testing.T) {
		requireError(t, connect(t, u.Email, "wrong"), http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("Unknown email", func(t *testing.T) {
		requireError(t, connect(t, "nobody@example.com", u.Password), http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("Missing header", func(t *testing.T) {
		rr := doRequest(t, http.MethodGet, "/connect", "", nil)
		requireError(t, rr, http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("Each sign in gets its own token", func(t *testing.T) {
		rr := connect(t, u.Email, u.Password)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		require.NotEqual(t, u.Token, resp.Token)
	})
}

func TestGetMeHandler(t *testing.T) {
	u := newSignedInUser(t)

	rr := doRequest(t, http.MethodGet, "/users/me", u.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, UserResponse{ID: u.ID, Email: u.Email}, resp)

	requireError(t, doRequest(t, http.MethodGet, "/users/me", "", nil), http.StatusUnauthorized, "Unauthorized")
	requireError(t, doRequest(t, http.MethodGet, "/users/me", "not-a-token", nil), http.StatusUnauthorized, "Unauthorized")
}

func TestDisconnectHandler(t *testing.T) {
	u := newSignedInUser(t)

	rr := doRequest(t, http.MethodGet, "/disconnect", u.Token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Empty(t, rr.Body.String())

	requireError(t, doRequest(t, http.MethodGet, "/users/me", u.Token, nil), http.StatusUnauthorized, "Unauthorized")
	requireError(t, doRequest(t, http.MethodGet, "/disconnect", u.Token, nil), http.StatusUnauthorized, "Unauthorized")
	requireError(t, doRequest(t, http.MethodGet, "/disconnect", "", nil), http.StatusUnauthorized, "Unauthorized")
}

func TestConcurrentDisconnect(t *testing.T) {
	u := newSignedInUser(t)

	const n = 8
	codes := make(chan int, n)
	for i := 0; i < n; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodGet, "/disconnect", nil)
			req.Header.Set(TokenHeader, u.Token)
			rr := httptest.NewRecorder()
			testRouter.ServeHTTP(rr, req)
			codes <- rr.Code
		}()
	}

	succeeded := 0
	for i := 0; i < n; i++ {
		if <-codes == http.StatusNoContent {
			succeeded++
		}
	}
	require.Equal(t, 1, succeeded)
}
