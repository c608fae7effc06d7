// Package web holds the HTTP request component, the one wrapper shipped with
// the kit. Vendor-specific API wrappers live outside this repository.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/flowgrid/components/runtime"
)

// ResponseOutputName is the single output of the Request component.
const ResponseOutputName = "response"

// RequestConfig configures an HTTP request node with declarative tags.
type RequestConfig struct {
	URL         string         `yaml:"url" validate:"required,url_format"`
	Method      string         `yaml:"method" default:"GET" validate:"oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	Headers     map[string]any `yaml:"headers"`
	QueryParams map[string]any `yaml:"query_parameters"`
	Timeout     time.Duration  `yaml:"timeout" default:"30s" validate:"gte=1s"`
	MaxRetries  int            `yaml:"max_retries" default:"3" validate:"gte=0,lte=10"`
	RetryWaitMS int            `yaml:"retry_wait_ms" default:"100" validate:"gte=0,lte=10000"`
	Debug       bool           `yaml:"debug"`
}

// Request executes one HTTP call per evaluation and emits a normalized
// payload: status, status code, error flag, decoded body.
type Request struct {
	Config RequestConfig
	client *resty.Client
	l      *slog.Logger
}

func NewRequest(cfg RequestConfig, l *slog.Logger) *Request {
	if l == nil {
		l = slog.Default()
	}
	return &Request{Config: cfg, l: l}
}

// Initialize implements runtime.Lifecycle. Config is already validated by
// the framework before this is called.
func (r *Request) Initialize(ctx context.Context) error {
	r.client = resty.New().
		SetTimeout(r.Config.Timeout).
		SetRetryCount(r.Config.MaxRetries).
		SetRetryWaitTime(time.Duration(r.Config.RetryWaitMS) * time.Millisecond).
		SetDebug(r.Config.Debug)

	return nil
}

// Shutdown implements runtime.Lifecycle. Resty doesn't require explicit
// cleanup, but we can nil the client.
func (r *Request) Shutdown(ctx context.Context) error {
	r.client = nil
	return nil
}

// OutputNames implements runtime.Component.
func (r *Request) OutputNames() []string {
	return []string{ResponseOutputName}
}

// Output implements runtime.Component. The input payload becomes the request
// body for methods that carry one. The Evaluation is the request context, so
// host deadlines bound the call.
func (r *Request) Output(eval *runtime.Evaluation, name string, input runtime.Payload) (runtime.Output, error) {
	if name != ResponseOutputName {
		return runtime.Suppress(), nil
	}
	if r.client == nil {
		return runtime.Suppress(), fmt.Errorf("request component not initialized")
	}

	response := map[string]any{}
	errorResponse := map[string]any{}

	req := r.client.R().
		SetContext(eval).
		SetHeaders(runtime.ToStringValueMap(r.Config.Headers)).
		SetQueryParams(runtime.ToStringValueMap(r.Config.QueryParams)).
		SetResult(&response).
		SetError(&errorResponse)

	switch r.Config.Method {
	case "GET", "HEAD", "OPTIONS", "DELETE":
	default:
		if body := input.Map(); body != nil {
			req.SetBody(body)
		}
	}

	resp, err := req.Execute(r.Config.Method, r.Config.URL)
	if err != nil {
		return runtime.Suppress(), runtime.NewComponentError(fmt.Errorf("HTTP request failed: %w", err)).
			WithType("transient").
			WithRetryHint(true, "")
	}

	body := response
	if resp.IsError() {
		body = errorResponse
	}

	eval.SetStatus(fmt.Sprintf("HTTP %s %s -> %d", r.Config.Method, r.Config.URL, resp.StatusCode()))
	r.l.InfoContext(eval, "HTTP request completed",
		"evaluation", eval.ID,
		"method", r.Config.Method,
		"url", r.Config.URL,
		"status_code", resp.StatusCode())

	return runtime.Activate(runtime.MapPayload(map[string]any{
		"status":      resp.Status(),
		"status_code": resp.StatusCode(),
		"is_error":    resp.IsError(),
		"body":        body,
	})), nil
}
