package models

import (
	"errors"
	"testing"
)

var (
	pushIt   = Product{SKU: "24-MB04", Name: "Push It Messenger Bag", URLKey: "push-it-messenger-bag", Price: 4500}
	overnite = Product{SKU: "24-WB07", Name: "Overnight Duffle", URLKey: "overnight-duffle", Price: 4500}
)

func TestNewCart(t *testing.T) {
	cart := NewCart("")
	if cart.ID == "" {
		t.Error("Cart ID should be generated")
	}
	if !cart.IsEmpty() {
		t.Error("New cart should be empty")
	}

	cart = NewCart("session-1")
	if cart.ID != "session-1" {
		t.Errorf("Expected cart ID session-1, got %s", cart.ID)
	}
}

func TestCart_Add(t *testing.T) {
	tests := []struct {
		name      string
		adds      []int
		wantErr   error
		wantCount int
	}{
		{name: "single add", adds: []int{2}, wantCount: 2},
		{name: "same product merges", adds: []int{2, 1}, wantCount: 3},
		{name: "zero quantity", adds: []int{0}, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", adds: []int{-1}, wantErr: ErrInvalidQuantity},
		{name: "merge over the limit", adds: []int{MaxLineQuantity, 1}, wantErr: ErrInvalidQuantity, wantCount: MaxLineQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart("c")

			var err error
			for _, qty := range tt.adds {
				if err = cart.Add(pushIt, qty); err != nil {
					break
				}
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cart.ItemCount() != tt.wantCount {
				t.Errorf("Expected item count %d, got %d", tt.wantCount, cart.ItemCount())
			}
			if tt.wantCount > 0 && len(cart.Lines) != 1 {
				t.Errorf("Expected a single line, got %d", len(cart.Lines))
			}
		})
	}
}

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart("c")
	if err := cart.Add(pushIt, 2); err != nil {
		t.Fatalf("Add() unexpected error = %v", err)
	}

	if err := cart.SetQuantity(pushIt.SKU, 3); err != nil {
		t.Fatalf("SetQuantity() unexpected error = %v", err)
	}
	if cart.ItemCount() != 3 {
		t.Errorf("Expected item count 3, got %d", cart.ItemCount())
	}

	if err := cart.SetQuantity(pushIt.SKU, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
	if err := cart.SetQuantity("missing", 1); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("Expected ErrLineNotFound, got %v", err)
	}
}

func TestCart_TotalsAndRemove(t *testing.T) {
	cart := NewCart("c")
	cart.Add(pushIt, 2)
	cart.Add(overnite, 1)

	if got := cart.Subtotal(); got != 13500 {
		t.Errorf("Expected subtotal 13500, got %d", got)
	}
	if got := cart.ItemCount(); got != 3 {
		t.Errorf("Expected item count 3, got %d", got)
	}

	if err := cart.Remove(pushIt.SKU); err != nil {
		t.Fatalf("Remove() unexpected error = %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].SKU != overnite.SKU {
		t.Errorf("Expected only %s to remain, got %+v", overnite.SKU, cart.Lines)
	}
	if err := cart.Remove(pushIt.SKU); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("Expected ErrLineNotFound, got %v", err)
	}

	cart.Shipping = validAddress()
	cart.Clear()
	if !cart.IsEmpty() || cart.Shipping != nil {
		t.Error("Expected Clear to drop lines and shipping")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := map[int64]string{
		0:     "$0.00",
		5:     "$0.05",
		4500:  "$45.00",
		12345: "$123.45",
		-250:  "-$2.50",
	}
	for cents, want := range tests {
		if got := FormatMoney(cents); got != want {
			t.Errorf("FormatMoney(%d) = %s, want %s", cents, got, want)
		}
	}
}
