package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/flowgrid/components/logic"
	"github.com/flowgrid/components/router"
	"github.com/flowgrid/components/runtime"
	"github.com/flowgrid/components/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	fixtures, err := runtime.LoadFixtures("fixtures")
	if err != nil {
		log.Fatalf("Error loading fixtures: %v", err)
	}

	container := runtime.NewContainer()
	variables := logic.NewSharedStore()

	for _, fixture := range fixtures {
		component, err := buildComponent(fixture, variables, logger)
		if err != nil {
			log.Fatalf("Error building component %s: %v", fixture.Name, err)
		}
		if err := container.Register(fixture.Name, component); err != nil {
			log.Fatalf("Error registering component %s: %v", fixture.Name, err)
		}
	}

	ctx := context.Background()
	if err := container.Initialize(ctx); err != nil {
		log.Fatalf("Error initializing components: %v", err)
	}
	defer container.Shutdown(ctx)

	g := gin.Default()
	runtime.NewHarness(container, logger).Mount(g)

	if err := g.Run(":8080"); err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}

func buildComponent(fixture runtime.Fixture, variables *logic.SharedStore, logger *slog.Logger) (runtime.Component, error) {
	switch fixture.Type {
	case "random_router":
		var cfg router.Config
		if err := runtime.InitializeConfig(&cfg, fixture.Config); err != nil {
			return nil, err
		}
		return router.New(cfg, nil, logger), nil

	case "conditional_router":
		var cfg logic.ConditionalConfig
		if err := runtime.InitializeConfig(&cfg, fixture.Config); err != nil {
			return nil, err
		}
		return logic.NewConditional(cfg, logger), nil

	case "wait":
		var cfg logic.WaitConfig
		if err := runtime.InitializeConfig(&cfg, fixture.Config); err != nil {
			return nil, err
		}
		return logic.NewWait(cfg, logger), nil

	case "variable":
		var cfg logic.VariableConfig
		if err := runtime.InitializeConfig(&cfg, fixture.Config); err != nil {
			return nil, err
		}
		return logic.NewVariable(cfg, variables, logger), nil

	case "http_request":
		var cfg web.RequestConfig
		if err := runtime.InitializeConfig(&cfg, fixture.Config); err != nil {
			return nil, err
		}
		return web.NewRequest(cfg, logger), nil

	default:
		return nil, fmt.Errorf("unknown component type: %s", fixture.Type)
	}
}
