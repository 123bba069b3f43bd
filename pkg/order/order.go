// Package order assembles immutable order records from a basket at checkout.
//
// An order is a one-way snapshot: it copies the basket items and totals at
// the moment of checkout and never observes later basket changes. Submission
// of the record is out of scope; Export writes the JSON form the submission
// step consumes.
package order

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/artprint-il/artprint/pkg/basket"
	"github.com/artprint-il/artprint/pkg/errors"
)

// Status is the lifecycle state of an order.
type Status string

// Order lifecycle states.
const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

// nextStatus maps each state to its successor.
var nextStatus = map[Status]Status{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusProcessing,
	StatusProcessing: StatusCompleted,
}

// CanTransition reports whether an order may move from one status to another.
// The lifecycle is strictly forward, one step at a time.
func CanTransition(from, to Status) bool {
	return nextStatus[from] == to
}

// ContactInfo is the customer contact block captured at checkout.
type ContactInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Validate checks the required contact fields and their shapes.
func (c ContactInfo) Validate() error {
	if err := errors.ValidateFullName(c.FullName); err != nil {
		return err
	}
	if err := errors.ValidatePhone(c.Phone); err != nil {
		return err
	}
	return errors.ValidateEmail(c.Email)
}

// Order is an immutable checkout record.
type Order struct {
	ID          string        `json:"id"`
	BasketItems []basket.Item `json:"basket_items"`
	Subtotal    int           `json:"subtotal"`
	TotalPrice  int           `json:"total_price"`
	ContactInfo ContactInfo   `json:"contact_info"`
	CreatedAt   time.Time     `json:"created_at"`
	Status      Status        `json:"status"`
}

// Assemble snapshots the given basket items into a pending order.
// It fails when the contact info is invalid or the basket is empty; the
// items are copied, so later basket mutations do not touch the record.
func Assemble(items []basket.Item, contact ContactInfo) (Order, error) {
	if err := contact.Validate(); err != nil {
		return Order{}, err
	}
	if len(items) == 0 {
		return Order{}, errors.New(errors.ErrCodeBasketEmpty, "cannot check out an empty basket")
	}

	snapshot := make([]basket.Item, len(items))
	copy(snapshot, items)

	summary := basket.Summarize(snapshot)
	return Order{
		ID:          uuid.NewString(),
		BasketItems: snapshot,
		Subtotal:    summary.Subtotal,
		TotalPrice:  summary.TotalPrice,
		ContactInfo: contact,
		CreatedAt:   time.Now(),
		Status:      StatusPending,
	}, nil
}

// WriteJSON encodes the order as indented JSON to w.
// The output can be re-read with [ReadJSON].
func WriteJSON(o Order, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	return nil
}

// WriteJSONFile writes the order to a file, creating or truncating it.
func WriteJSONFile(o Order, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(o, f); err != nil {
		return err
	}
	return f.Close()
}

// ReadJSON decodes an order record from r.
func ReadJSON(r io.Reader) (Order, error) {
	var o Order
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return Order{}, fmt.Errorf("decode order: %w", err)
	}
	if o.ID == "" {
		return Order{}, fmt.Errorf("decode order: missing id")
	}
	return o, nil
}
