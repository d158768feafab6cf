package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"detergent/auth"
	"detergent/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *auth.Service) {
	t.Helper()
	db := dbtest.Open(t)
	svc := auth.NewService(db)
	mux := http.NewServeMux()
	SetupRoutes(mux, db, svc)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, svc
}

func do(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func tokenFrom(t *testing.T, res *http.Response) string {
	t.Helper()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestRoutesRequireSession(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/suppliers", "/api/dashboard", "/api/finances", "/api/auth/me", "/api/config"} {
		res := do(t, http.MethodGet, srv.URL+path, "", "")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, path)
	}

	res := do(t, http.MethodGet, srv.URL+"/api/auth/status", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	token := tokenFrom(t, do(t, http.MethodPost, srv.URL+"/api/auth/demo", "", ""))
	for _, path := range []string{"/api/suppliers", "/api/dashboard", "/api/finances?period=year", "/api/auth/me", "/api/config"} {
		res := do(t, http.MethodGet, srv.URL+path, token, "")
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
	}

	res = do(t, http.MethodGet, srv.URL+"/api/nowhere", token, "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestOwnerOnlyRoutes(t *testing.T) {
	srv, svc := newTestServer(t)
	_, err := svc.SignUp("staff@detergent.com", "secret1", "Ravi", "staff")
	require.NoError(t, err)

	staff := tokenFrom(t, do(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		`{"email":"staff@detergent.com","password":"secret1"}`))

	res := do(t, http.MethodGet, srv.URL+"/api/config", staff, "")
	assert.Equal(t, http.StatusOK, res.StatusCode, "staff may read settings")

	res = do(t, http.MethodPost, srv.URL+"/api/config", staff, `{}`)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = do(t, http.MethodPost, srv.URL+"/api/masters/import?kind=suppliers", staff, "")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestConfigReadIsRedacted(t *testing.T) {
	srv, _ := newTestServer(t)
	token := tokenFrom(t, do(t, http.MethodPost, srv.URL+"/api/auth/demo", "", ""))

	res := do(t, http.MethodGet, srv.URL+"/api/config", token, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password123")
}

func TestOverviewsAreReadOnly(t *testing.T) {
	srv, _ := newTestServer(t)
	token := tokenFrom(t, do(t, http.MethodPost, srv.URL+"/api/auth/demo", "", ""))

	for _, path := range []string{
		"/api/procurement/overview",
		"/api/machinery/overview",
		"/api/fleet/overview",
		"/api/b2b/overview",
		"/api/b2c/overview",
		"/api/partners/summary",
		"/api/dashboard",
		"/api/finances",
	} {
		res := do(t, http.MethodGet, srv.URL+path, token, "")
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		res = do(t, http.MethodDelete, srv.URL+path, token, "")
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode, path)
	}
}

func TestLocalURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", localURL(":8080"))
	assert.Equal(t, "http://127.0.0.1:9000", localURL("127.0.0.1:9000"))
}
