package runtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestHarness(t *testing.T) (*gin.Engine, *Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	container := NewContainer()
	if err := container.Register("echo", &stubComponent{name: "echo"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	g := gin.New()
	NewHarness(container, nil).Mount(g)
	return g, container
}

func TestHarness_ListComponents(t *testing.T) {
	g, _ := newTestHarness(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/components", nil)
	g.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Components []struct {
			Name    string   `json:"name"`
			Outputs []string `json:"outputs"`
		} `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Components) != 1 || body.Components[0].Name != "echo" {
		t.Errorf("unexpected component list: %+v", body.Components)
	}
}

func TestHarness_Evaluate(t *testing.T) {
	g, _ := newTestHarness(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/evaluate/echo",
		strings.NewReader(`{"input": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		EvaluationID string `json:"evaluation_id"`
		Outputs      []struct {
			Name    string `json:"name"`
			Active  bool   `json:"active"`
			Payload any    `json:"payload"`
		} `json:"outputs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	if body.EvaluationID == "" {
		t.Errorf("expected an evaluation id")
	}
	if len(body.Outputs) != 1 {
		t.Fatalf("expected one output, got %+v", body.Outputs)
	}
	out := body.Outputs[0]
	if out.Name != "out" || !out.Active || out.Payload != "hello" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestHarness_EvaluateUnknownComponent(t *testing.T) {
	g, _ := newTestHarness(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/evaluate/nope", nil)
	g.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestLoadFixtures(t *testing.T) {
	dir := t.TempDir()
	fixture := `
name: split
type: random_router
config:
  enable_else: true
  routes:
    - name: A
      weight: 50
`
	if err := os.WriteFile(filepath.Join(dir, "split.yaml"), []byte(fixture), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fixtures, err := LoadFixtures(dir)
	if err != nil {
		t.Fatalf("LoadFixtures failed: %v", err)
	}
	if len(fixtures) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(fixtures))
	}

	f := fixtures[0]
	if f.Name != "split" || f.Type != "random_router" {
		t.Errorf("unexpected fixture: %+v", f)
	}
	if f.Config["enable_else"] != true {
		t.Errorf("expected config map decoded, got %v", f.Config)
	}

	routes, ok := f.Config["routes"].([]any)
	if !ok || len(routes) != 1 {
		t.Errorf("expected one raw route row, got %v", f.Config["routes"])
	}
}

func TestLoadFixtures_BadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("{{nope"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := LoadFixtures(dir); err == nil {
		t.Errorf("expected error for malformed fixture")
	}
}
