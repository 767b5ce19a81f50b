package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pmlr/bibcheck/app/pipeline"
	"github.com/pmlr/bibcheck/app/rules"
)

const testBib = `@Proceedings{corl2024,
  booktitle = {Conference on Robot Learning},
  name = {Conference on Robot Learning},
  shortname = {CoRL},
  year = {2024},
  editor = {Some Editor},
  volume = {1},
  start = {2024-01-01},
  end = {2024-01-05},
  address = {Virtual Conference},
  conference_url = {https://corl2024.org},
}

@InProceedings{smith24,
  title = {A Study — of Things},
  author = {Smith, Jane},
  abstract = {We study 50% of things.},
}`

func newTestServer(apiAccessKey string) http.Handler {
	runner := pipeline.NewRunner(rules.Defaults(), false)
	handler := NewHandler(runner, nil)
	return NewServer(handler, apiAccessKey)
}

func TestCheckEndpoint(t *testing.T) {
	server := newTestServer("")

	req := httptest.NewRequest("POST", "/check", strings.NewReader(testBib))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response CheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}

	if response.Entries != 2 {
		t.Errorf("Expected 2 entries, got %d", response.Entries)
	}
	// smith24 is missing its pages field
	if len(response.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d: %v", len(response.Diagnostics), response.Diagnostics)
	}
	if response.Diagnostics[0].Field != "pages" {
		t.Errorf("Expected diagnostic for 'pages', got '%s'", response.Diagnostics[0].Field)
	}
	if !strings.Contains(response.Fixed, "A Study --- of Things") {
		t.Errorf("Fixed output missing em dash rewrite:\n%s", response.Fixed)
	}
	if !strings.Contains(response.Fixed, `50\% of things`) {
		t.Errorf("Fixed output missing %% escaping:\n%s", response.Fixed)
	}
}

func TestCheckEndpointParseFailure(t *testing.T) {
	server := newTestServer("")

	req := httptest.NewRequest("POST", "/check", strings.NewReader("@InProceedings{broken"))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer("")

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health["version"] == "" {
		t.Error("Expected version in health response")
	}
}

func TestRunsEndpointWithoutHistory(t *testing.T) {
	server := newTestServer("")

	req := httptest.NewRequest("GET", "/runs", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 when history is not configured, got %d", rec.Code)
	}
}

func TestRunsEndpointRequiresKey(t *testing.T) {
	server := newTestServer("secret")

	req := httptest.NewRequest("GET", "/runs", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without key, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/runs", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	// Authenticated, but history is not configured
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 with key but no history DB, got %d", rec.Code)
	}
}
