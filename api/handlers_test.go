package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rv32i-tools/rv32asm/service"
)

func newTestServer() *Server {
	return NewServer(0)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleHealthWrongMethod(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s.Handler(), http.MethodPost, "/health", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleAssembleSuccess(t *testing.T) {
	s := newTestServer()
	req := AssembleRequest{Source: "add x1, x2, x3\n"}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/assemble", req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report service.AssembleReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.OK)
	require.Len(t, report.Instructions, 1)
	assert.Equal(t, "0x003100B3", report.Instructions[0].Encoded)
}

func TestHandleAssembleBinaryFormat(t *testing.T) {
	s := newTestServer()
	req := AssembleRequest{Source: "add x1, x2, x3\n", Format: "binary"}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/assemble", req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report service.AssembleReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Instructions, 1)
	for _, c := range report.Instructions[0].Encoded {
		assert.Contains(t, "01", string(c))
	}
}

func TestHandleAssembleFailure(t *testing.T) {
	s := newTestServer()
	req := AssembleRequest{Source: "addi x1, x1, notanumber\n"}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/assemble", req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report service.AssembleReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.OK)
	assert.NotEmpty(t, report.Diagnostics)
}

func TestHandleAssembleBadJSON(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assemble", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusBadRequest, errResp.Code)
}

func TestHandleAssembleWrongMethod(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/v1/assemble", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleLint(t *testing.T) {
	s := newTestServer()
	req := LintRequest{Source: "unused: add x0, x0, x0\nadd x1, x1, x1\n"}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/lint", req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Issues []map[string]interface{} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Issues)
}

func TestHandleXRef(t *testing.T) {
	s := newTestServer()
	req := XRefRequest{Source: "loop: addi x1, x1, 1\n      bne  x1, x2, loop\n"}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/v1/xref", req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Symbols []map[string]interface{} `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Symbols, 1)
	assert.Equal(t, "loop", body.Symbols[0]["name"])
}

func TestCORSHeadersForLocalOrigin(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightOptions(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/assemble", nil)
	req.Header.Set("Origin", "http://127.0.0.1:5173")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://127.0.0.1:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOriginIsLocal(t *testing.T) {
	cases := map[string]bool{
		"":                        true,
		"file:///home/me/a.s":     true,
		"http://localhost:8080":   true,
		"https://127.0.0.1":       true,
		"http://evil.example.com": false,
	}
	for origin, want := range cases {
		assert.Equal(t, want, originIsLocal(origin), "origin %q", origin)
	}
}
