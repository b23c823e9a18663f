package domain

import "testing"

func TestCustomTopic(t *testing.T) {
	if got := CustomTopic(" orders ", "updated"); got != "orders.updated" {
		t.Fatalf("unexpected topic: %q", got)
	}
	if got := CustomTopic("orders", " "); got != "" {
		t.Fatalf("expected empty topic, got %q", got)
	}
}

func TestSplitTopic(t *testing.T) {
	cases := map[string][2]string{
		"orders.updated":          {"orders", "updated"},
		"delivery.orders.created": {"delivery.orders", "created"},
		"orders":                  {"orders", ""},
		"orders.":                 {"orders.", ""},
	}
	for topic, expected := range cases {
		entity, action := SplitTopic(topic)
		if entity != expected[0] || action != expected[1] {
			t.Fatalf("SplitTopic(%q) = (%q, %q), expected %v", topic, entity, action, expected)
		}
	}
}

func TestMessageWithMetadata(t *testing.T) {
	msg := NewMessage("cart", ActionUpdated, "", nil).WithMetadata("sessionId", "abc").WithMetadata("userId", "")
	if msg.Topic != "cart.updated" {
		t.Fatalf("unexpected topic: %s", msg.Topic)
	}
	if len(msg.Metadata) != 1 || msg.Metadata["sessionId"] != "abc" {
		t.Fatalf("unexpected metadata: %v", msg.Metadata)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp")
	}
}
