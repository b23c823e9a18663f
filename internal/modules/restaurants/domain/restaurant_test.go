package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRestaurantFromDTO(t *testing.T) {
	payload := []byte(`{
		"id": 12,
		"owner_id": 3,
		"name": "Sushi Go",
		"cuisine_type": " japanese ",
		"rating": 4.5,
		"total_reviews": 20,
		"delivery_fee": "2.50",
		"min_order": 10,
		"is_open": false,
		"opening_hours": {"monday": "09:00-22:00", "Funday": "10:00-11:00", "tuesday": ""},
		"status": "active"
	}`)

	var dto RestaurantDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	r := RestaurantFromDTO(dto)

	if r.ID != "12" || r.OwnerID != "3" {
		t.Fatalf("unexpected ids: %q %q", r.ID, r.OwnerID)
	}
	if r.Cuisine != "japanese" {
		t.Fatalf("unexpected cuisine: %q", r.Cuisine)
	}
	if r.IsOpen {
		t.Fatal("expected manual override to be false")
	}
	if !r.DeliveryFee.Equal(decimal.RequireFromString("2.5")) || !r.MinimumOrder.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected money fields: %s %s", r.DeliveryFee, r.MinimumOrder)
	}
	if len(r.Hours) != 1 || r.Hours[Monday] != "09:00-22:00" {
		t.Fatalf("unexpected hours: %v", r.Hours)
	}
	if r.Status != ApprovalStatusApproved {
		t.Fatalf("unexpected status: %s", r.Status)
	}
	if r.Rating != 4.5 || r.ReviewCount != 20 {
		t.Fatalf("unexpected aggregates: %v %d", r.Rating, r.ReviewCount)
	}
}

func TestRestaurantFromDTO_DefaultsOverrideOpen(t *testing.T) {
	r := RestaurantFromDTO(RestaurantDTO{ID: 1, Name: "Tacos"})
	if !r.IsOpen {
		t.Fatal("expected missing is_open to default to open")
	}
	if r.Hours != nil {
		t.Fatalf("expected nil hours, got %v", r.Hours)
	}
}

func TestRestaurantToDTO_RoundTrip(t *testing.T) {
	original := Restaurant{
		ID:          "7",
		OwnerID:     "2",
		Name:        "Pizza Place",
		Address:     "Main St 1",
		DeliveryFee: decimal.RequireFromString("1.99"),
		IsOpen:      true,
		Hours:       WeeklySchedule{Friday: "18:00-02:00"},
		Status:      ApprovalStatusPending,
	}

	dto := RestaurantToDTO(original)
	if dto.ID != 7 || dto.OwnerID == nil || *dto.OwnerID != 2 {
		t.Fatalf("unexpected wire ids: %d %v", dto.ID, dto.OwnerID)
	}
	if dto.OpeningHours["friday"] != "18:00-02:00" {
		t.Fatalf("unexpected wire hours: %v", dto.OpeningHours)
	}
	if dto.Status == nil || *dto.Status != "pending" {
		t.Fatalf("unexpected wire status: %v", dto.Status)
	}
	if dto.Description != nil {
		t.Fatal("expected empty description to be omitted")
	}

	back := RestaurantFromDTO(dto)
	if back.ID != original.ID || back.Name != original.Name || back.Hours[Friday] != "18:00-02:00" || !back.DeliveryFee.Equal(original.DeliveryFee) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestNormalizeApprovalStatus(t *testing.T) {
	cases := map[string]ApprovalStatus{
		"pending":     ApprovalStatusPending,
		" APPROVED ":  ApprovalStatusApproved,
		"inactive":    ApprovalStatusSuspended,
		"":            ApprovalStatusUnknown,
		"under_audit": ApprovalStatus("UNDER_AUDIT"),
	}
	for input, expected := range cases {
		if got := NormalizeApprovalStatus(input); got != expected {
			t.Fatalf("NormalizeApprovalStatus(%q) = %q, expected %q", input, got, expected)
		}
	}
}
