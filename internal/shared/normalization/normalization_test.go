package normalization

import "testing"

func TestNormalizeEntity(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"Restaurant":    "restaurants",
		" dishes ":      "dishes",
		"MENU_ITEM":     "dishes",
		"order":         "orders",
		"order_status":  "orders",
		"Review":        "reviews",
		"cart_item":     "cart",
		"custom_entity": "custom-entity",
	}

	for input, expected := range cases {
		if got := NormalizeEntity(input); got != expected {
			t.Fatalf("NormalizeEntity(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestIsValidEntity(t *testing.T) {
	if !IsValidEntity("order") {
		t.Fatal("expected order to be valid")
	}
	if IsValidEntity("tables") {
		t.Fatal("expected tables to be invalid")
	}
}

func TestIDConversions(t *testing.T) {
	if got := FormatID(42); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
	if got := FormatID(0); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
	if got := ParseID(" 42 "); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := ParseID("abc"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if OptionalID("") != nil {
		t.Fatal("expected nil for empty id")
	}
	if id := OptionalID("7"); id == nil || *id != 7 {
		t.Fatalf("expected pointer to 7, got %v", id)
	}
}

func TestAsString(t *testing.T) {
	cases := []struct {
		input    any
		expected string
	}{
		{input: " abc ", expected: "abc"},
		{input: float64(12), expected: "12"},
		{input: 1.5, expected: "1.5"},
		{input: 9, expected: "9"},
		{input: nil, expected: ""},
	}
	for _, tc := range cases {
		if got := AsString(tc.input); got != tc.expected {
			t.Fatalf("AsString(%v) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestUnwrapData(t *testing.T) {
	list := []any{map[string]any{"id": 1}}
	if got, ok := UnwrapData(map[string]any{"data": list}).([]any); !ok || len(got) != 1 {
		t.Fatalf("expected wrapped list, got %#v", got)
	}

	bare := map[string]any{"id": 2, "data": nil}
	if got, ok := UnwrapData(bare).(map[string]any); !ok || got["id"] != 2 {
		t.Fatalf("expected null data to keep the object, got %#v", got)
	}

	if got := UnwrapData("plain"); got != "plain" {
		t.Fatalf("expected scalar passthrough, got %#v", got)
	}
}
