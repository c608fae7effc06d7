package runtime

import "testing"

func TestPayload_Text(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    string
	}{
		{"zero payload", Payload{}, ""},
		{"text payload", TextPayload("hello"), "hello"},
		{"structured with text field", MapPayload(map[string]any{"text": "inner"}), "inner"},
		{"structured without text field", MapPayload(map[string]any{"id": float64(7)}), `{"id":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payload.Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPayload_Map(t *testing.T) {
	if m := (Payload{}).Map(); m != nil {
		t.Errorf("expected nil map for zero payload, got %v", m)
	}

	m := TextPayload("hi").Map()
	if m["text"] != "hi" {
		t.Errorf("expected text payload wrapped as map, got %v", m)
	}

	src := map[string]any{"a": 1, "b": "two"}
	m = MapPayload(src).Map()
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("expected structured map round-trip, got %v", m)
	}
}

func TestPayload_IsZero(t *testing.T) {
	if !(Payload{}).IsZero() {
		t.Errorf("expected zero payload to report IsZero")
	}
	if TextPayload("").IsZero() {
		t.Errorf("expected empty text payload to be a real payload")
	}
	if MapPayload(nil).IsZero() == false {
		t.Errorf("expected nil map to yield zero payload")
	}
	if DataPayload(nil).IsZero() == false {
		t.Errorf("expected nil container to yield zero payload")
	}
}
