package order

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artprint-il/artprint/pkg/basket"
	apperrors "github.com/artprint-il/artprint/pkg/errors"
)

func sampleItems() []basket.Item {
	return []basket.Item{
		{
			ID:            "basket_item_1_aaaaaaaaa",
			Image:         basket.ImageRef{Name: "sunset.jpg"},
			CanvasSize:    basket.CanvasSize{Width: 100, Height: 100},
			CanvasOptions: basket.CanvasOptions{SideColor: "#FFFFFF"},
			BasePrice:     390,
			TotalPrice:    390,
			Quantity:      2,
			AddedAt:       time.Now(),
		},
		{
			ID:            "basket_item_2_bbbbbbbbb",
			Image:         basket.ImageRef{Name: "forest.jpg"},
			CanvasSize:    basket.CanvasSize{Width: 150, Height: 150},
			CanvasOptions: basket.CanvasOptions{SideColor: "#000000", ColorUpcharge: 50},
			BasePrice:     570,
			TotalPrice:    620,
			Quantity:      1,
			AddedAt:       time.Now(),
		},
	}
}

func sampleContact() ContactInfo {
	return ContactInfo{
		FullName: "Dana Levi",
		Phone:    "052-1234567",
		Email:    "dana@example.com",
		Address:  "12 Herzl St, Tel Aviv",
	}
}

func TestAssemble(t *testing.T) {
	items := sampleItems()

	o, err := Assemble(items, sampleContact())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if o.ID == "" {
		t.Error("ID is empty, want a generated id")
	}
	if o.Status != StatusPending {
		t.Errorf("Status = %q, want %q", o.Status, StatusPending)
	}
	if o.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}

	wantTotal := 2*390 + 620
	if o.Subtotal != wantTotal || o.TotalPrice != wantTotal {
		t.Errorf("(Subtotal, TotalPrice) = (%d, %d), want (%d, %d)", o.Subtotal, o.TotalPrice, wantTotal, wantTotal)
	}
	if len(o.BasketItems) != 2 {
		t.Fatalf("BasketItems = %d, want 2", len(o.BasketItems))
	}

	// The snapshot does not alias the caller's slice.
	items[0].Quantity = 50
	if o.BasketItems[0].Quantity != 2 {
		t.Errorf("order observed a later basket mutation: quantity = %d", o.BasketItems[0].Quantity)
	}
}

func TestAssembleUniqueIDs(t *testing.T) {
	a, _ := Assemble(sampleItems(), sampleContact())
	b, _ := Assemble(sampleItems(), sampleContact())
	if a.ID == b.ID {
		t.Errorf("two orders share id %q", a.ID)
	}
}

func TestAssembleEmptyBasket(t *testing.T) {
	_, err := Assemble(nil, sampleContact())
	if !apperrors.Is(err, apperrors.ErrCodeBasketEmpty) {
		t.Errorf("Assemble(nil) error = %v, want code BASKET_EMPTY", err)
	}
}

func TestAssembleInvalidContact(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContactInfo)
	}{
		{"missing name", func(c *ContactInfo) { c.FullName = "" }},
		{"bad phone", func(c *ContactInfo) { c.Phone = "abc" }},
		{"bad email", func(c *ContactInfo) { c.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contact := sampleContact()
			tt.mutate(&contact)
			if _, err := Assemble(sampleItems(), contact); !apperrors.Is(err, apperrors.ErrCodeInvalidContact) {
				t.Errorf("Assemble error = %v, want code INVALID_CONTACT", err)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusCompleted, true},

		{StatusPending, StatusProcessing, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestWriteReadJSONRoundTrip(t *testing.T) {
	o, err := Assemble(sampleItems(), sampleContact())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(o, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.ID != o.ID || got.TotalPrice != o.TotalPrice || got.Status != o.Status {
		t.Errorf("round trip = %+v, want %+v", got, o)
	}
	if len(got.BasketItems) != len(o.BasketItems) {
		t.Errorf("round trip items = %d, want %d", len(got.BasketItems), len(o.BasketItems))
	}
}

func TestWriteJSONFile(t *testing.T) {
	o, err := Assemble(sampleItems(), sampleContact())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	path := filepath.Join(t.TempDir(), "order.json")
	if err := WriteJSONFile(o, path); err != nil {
		t.Fatalf("WriteJSONFile: %v", err)
	}

	f, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got, err := ReadJSON(bytes.NewReader(f))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.ID != o.ID {
		t.Errorf("round trip id = %q, want %q", got.ID, o.ID)
	}
}

func TestReadJSONRejectsMissingID(t *testing.T) {
	if _, err := ReadJSON(bytes.NewReader([]byte(`{"status":"pending"}`))); err == nil {
		t.Error("ReadJSON without id error = nil, want error")
	}
}
