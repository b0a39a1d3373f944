package session

import (
	"context"
	"errors"
)

// Step is the explicit position of a draft in the order conversation.
type Step string

const (
	StepProduct  Step = "awaiting_product"
	StepVolume   Step = "awaiting_volume"
	StepAddress  Step = "awaiting_address"
	StepPhone    Step = "awaiting_phone"
	StepDiscount Step = "awaiting_discount"
	StepComplete Step = "complete"
)

// Draft is the in-progress order for one chat. Fields are filled strictly in
// step order; the Step tag says which field is expected next.
type Draft struct {
	Step         Step    `json:"step"`
	Product      string  `json:"product"`
	Volume       float64 `json:"volume"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	Discount     string  `json:"discount"`
	DiscountRate float64 `json:"discount_rate"`
}

// ErrNotFound is returned by a Store when a chat has no draft.
var ErrNotFound = errors.New("session: draft not found")

// Store keeps at most one draft per chat. Implementations must be safe for
// concurrent use across chats.
type Store interface {
	Get(ctx context.Context, chatID int64) (Draft, error)
	Save(ctx context.Context, chatID int64, draft Draft) error
	Clear(ctx context.Context, chatID int64) error
}
