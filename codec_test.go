package strata

import (
	"encoding/json"
	"testing"
)

func TestJSONCodec_Unmarshal(t *testing.T) {
	var doc any
	err := JSONCodec{}.Unmarshal([]byte(`{"name": "test", "value": 42}`), &doc)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	m, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", doc)
	}
	if m["name"] != "test" {
		t.Errorf("expected name 'test', got %v", m["name"])
	}
}

func TestJSONCodec_Unmarshal_NumbersKeepLiteralText(t *testing.T) {
	var doc any
	err := JSONCodec{}.Unmarshal([]byte(`{"v": 10.250}`), &doc)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	n, ok := doc.(map[string]any)["v"].(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", doc.(map[string]any)["v"])
	}
	if n.String() != "10.250" {
		t.Errorf("expected literal '10.250', got %q", n.String())
	}
}

func TestJSONCodec_Unmarshal_Invalid(t *testing.T) {
	var doc any
	if err := (JSONCodec{}).Unmarshal([]byte(`{invalid`), &doc); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestJSONCodec_ContentType(t *testing.T) {
	if ct := (JSONCodec{}).ContentType(); ct != "application/json" {
		t.Errorf("expected 'application/json', got %q", ct)
	}
}

func TestYAMLCodec_Unmarshal(t *testing.T) {
	var doc any
	err := YAMLCodec{}.Unmarshal([]byte("name: test\nvalue: 42\n"), &doc)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	m, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping, got %T", doc)
	}
	if m["name"] != "test" {
		t.Errorf("expected name 'test', got %v", m["name"])
	}
}

func TestYAMLCodec_Unmarshal_Invalid(t *testing.T) {
	var doc any
	if err := (YAMLCodec{}).Unmarshal([]byte("key: [unclosed"), &doc); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestYAMLCodec_ContentType(t *testing.T) {
	if ct := (YAMLCodec{}).ContentType(); ct != "application/x-yaml" {
		t.Errorf("expected 'application/x-yaml', got %q", ct)
	}
}
