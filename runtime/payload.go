package runtime

import (
	"fmt"

	"github.com/Jeffail/gabs/v2"
)

// Payload is the opaque value flowing along graph edges. A payload is either
// plain text or a structured record (wrapped JSON); components forward it
// unchanged unless their configuration says otherwise. The zero Payload means
// "nothing": suppressed outputs carry it.
type Payload struct {
	text string
	data *gabs.Container
	set  bool
}

// TextPayload wraps a plain text value.
func TextPayload(s string) Payload {
	return Payload{text: s, set: true}
}

// DataPayload wraps a structured record. A nil container yields the zero
// Payload.
func DataPayload(c *gabs.Container) Payload {
	if c == nil {
		return Payload{}
	}
	return Payload{data: c, set: true}
}

// MapPayload wraps a generic map as a structured record.
func MapPayload(m map[string]any) Payload {
	if m == nil {
		return Payload{}
	}
	return DataPayload(gabs.Wrap(m))
}

func (p Payload) IsZero() bool {
	return !p.set
}

// Text renders the payload as text. For structured records a top-level
// "text" field wins, anything else is rendered as JSON.
func (p Payload) Text() string {
	if !p.set {
		return ""
	}
	if p.data == nil {
		return p.text
	}
	if t, ok := p.data.Path("text").Data().(string); ok {
		return t
	}
	return p.data.String()
}

// Data returns the structured form, or nil for text payloads.
func (p Payload) Data() *gabs.Container {
	return p.data
}

// Map returns the payload as a generic map, suitable for expression
// environments and request bodies. Text payloads appear as {"text": ...}.
func (p Payload) Map() map[string]any {
	if !p.set {
		return nil
	}
	if p.data != nil {
		if m, ok := p.data.Data().(map[string]any); ok {
			return m
		}
		return map[string]any{"data": p.data.Data()}
	}
	return map[string]any{"text": p.text}
}

func (p Payload) String() string {
	if !p.set {
		return "<none>"
	}
	if p.data != nil {
		return p.data.String()
	}
	return fmt.Sprintf("%q", p.text)
}
