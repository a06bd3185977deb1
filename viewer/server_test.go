package viewer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plots"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plots", "scene_0.html"), []byte("<html></html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.txt"), []byte("scenes: 1"), 0644))
	return NewServer(dir, nil), dir
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListArtifacts(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artifacts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Artifacts []struct {
			Name string `json:"name"`
			Size int64  `json:"size"`
		} `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Artifacts, 2)

	names := []string{resp.Artifacts[0].Name, resp.Artifacts[1].Name}
	assert.Contains(t, names, "plots/scene_0.html")
	assert.Contains(t, names, "report.txt")
}

func TestGetArtifact(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artifacts/plots/scene_0.html", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html></html>", w.Body.String())
}

func TestGetArtifactMissing(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artifacts/nope.txt", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArtifactEscapeRejected(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/artifacts/..%2Fsecret", nil)
	s.Handler().ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)
}
