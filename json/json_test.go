package json

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Limit int    `json:"limit" default:"50"`
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(map[string]any{"a": 1, "b": "x"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got map[string]any
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got["b"] != "x" {
		t.Errorf("got b=%v, want x", got["b"])
	}
}

func TestUnmarshalAppliesDefaults(t *testing.T) {
	var s sample
	if err := UnmarshalFromString(`{"name":"article"}`, &s); err != nil {
		t.Fatalf("UnmarshalFromString failed: %v", err)
	}
	if s.Limit != 50 {
		t.Errorf("got Limit=%d, want default 50", s.Limit)
	}
}

func TestEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(sample{Name: "page"}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"page"`) {
		t.Errorf("encoded output missing value: %s", buf.String())
	}

	var s sample
	if err := NewDecoder(&buf).Decode(&s); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s.Name != "page" {
		t.Errorf("got Name=%q, want page", s.Name)
	}
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(map[string]string{"k": "v"}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}
	if !strings.Contains(string(data), "\n") {
		t.Error("MarshalIndent should produce multi-line output")
	}
}
