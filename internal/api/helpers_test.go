package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"files-manager/internal/models"

	"github.com/stretchr/testify/require"
)

var userSeq atomic.Int64

type testUser struct {
	ID       int64
	Email    string
	Password string
	Token    string
}

func doRequest(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	rr := httptest.NewRecorder()
	testRouter.ServeHTTP(rr, req)
	return rr
}

func basicAuth(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func connect(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/connect", nil)
	req.Header.Set("Authorization", basicAuth(email, password))
	rr := httptest.NewRecorder()
	testRouter.ServeHTTP(rr, req)
	return rr
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, msg, resp.Error)
}

// newSignedInUser registers a fresh account and opens a session for it.
func newSignedInUser(t *testing.T) testUser {
	t.Helper()

	u := testUser{
		Email:    fmt.Sprintf("api-user-%d@example.com", userSeq.Add(1)),
		Password: "toto1234!",
	}

	rr := doRequest(t, http.MethodPost, "/users", "", CreateUserRequest{Email: u.Email, Password: u.Password})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	u.ID = created.ID

	rr = connect(t, u.Email, u.Password)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var token TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &token))
	u.Token = token.Token

	return u
}

func uploadFile(t *testing.T, token string, body map[string]any) *models.File {
	t.Helper()
	rr := doRequest(t, http.MethodPost, "/files", token, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeFile(t, rr)
}

func decodeFile(t *testing.T, rr *httptest.ResponseRecorder) *models.File {
	t.Helper()
	var f models.File
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	return &f
}

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
