package runtime

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// Fixture is one component instance definition loaded from a YAML file:
// a name, a component type, and the raw configuration map handed to
// InitializeConfig.
type Fixture struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:"config"`
}

// LoadFixtures reads every *.yaml file under dir, one fixture per file.
func LoadFixtures(dir string) ([]Fixture, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	var fixtures []Fixture
	for _, file := range files {
		fixture, err := readFixture(file)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}

	return fixtures, nil
}

func readFixture(file string) (Fixture, error) {
	yamlFile, err := os.ReadFile(file)
	if err != nil {
		return Fixture{}, fmt.Errorf("error reading YAML file: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(yamlFile, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("error unmarshalling YAML: %w", err)
	}

	return fixture, nil
}

// Harness exposes registered components over HTTP for development: it is a
// stand-in host that runs one Evaluation per request and reports every
// output's verdict. It is not the production engine.
type Harness struct {
	container *Container
	l         *slog.Logger
}

func NewHarness(container *Container, l *slog.Logger) *Harness {
	if l == nil {
		l = slog.Default()
	}
	return &Harness{container: container, l: l}
}

// Mount registers the harness routes on g.
func (h *Harness) Mount(g *gin.Engine) {
	g.GET("/components", h.listComponents)
	g.POST("/evaluate/:name", h.handleEvaluate)
}

func (h *Harness) listComponents(c *gin.Context) {
	components := make([]gin.H, 0)
	for _, name := range h.container.Names() {
		components = append(components, gin.H{
			"name":    name,
			"outputs": h.container.Get(name).OutputNames(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"components": components})
}

type evaluateRequest struct {
	Input any `json:"input"`
}

func (h *Harness) handleEvaluate(c *gin.Context) {
	name := c.Param("name")
	component := h.container.Get(name)
	if component == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("unknown component: %s", name),
		})
		return
	}

	var req evaluateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "invalid request body: " + err.Error(),
			})
			return
		}
	}

	eval := NewEvaluation().WithContext(c.Request.Context())
	input := inputPayload(req.Input)

	outputs := make([]gin.H, 0, len(component.OutputNames()))
	for _, outputName := range component.OutputNames() {
		out, err := component.Output(eval, outputName, input)
		if err != nil {
			h.l.ErrorContext(eval, "Component evaluation failed",
				"component", name,
				"output", outputName,
				"error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Error in component evaluation: " + err.Error(),
			})
			return
		}
		outputs = append(outputs, gin.H{
			"name":    outputName,
			"active":  out.Active,
			"payload": renderPayload(out.Payload),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"evaluation_id": eval.ID,
		"status":        eval.Status(),
		"outputs":       outputs,
	})
}

func inputPayload(input any) Payload {
	switch v := input.(type) {
	case nil:
		return Payload{}
	case string:
		return TextPayload(v)
	case map[string]any:
		return MapPayload(v)
	default:
		return TextPayload(fmt.Sprintf("%v", v))
	}
}

func renderPayload(p Payload) any {
	if p.IsZero() {
		return nil
	}
	if data := p.Data(); data != nil {
		return data.Data()
	}
	return p.Text()
}
