package domain

import "time"

// Default values applied to optional transaction fields, matching what the
// scoring oracle expects when context is absent.
const (
	DefaultMerchant = "default"
	DefaultGeo      = "IN"
	DefaultDevice   = "mobile"
)

// Transaction is the inbound payment event that drives one pipeline run.
// It is never persisted by the pipeline itself; the Alert materialized from
// it is the durable record.
type Transaction struct {
	AccountID string    `json:"account_id"`
	CardID    string    `json:"card_id,omitempty"`
	Amount    float64   `json:"amount"`
	Merchant  string    `json:"merchant,omitempty"`
	Category  string    `json:"category,omitempty"`
	Geo       string    `json:"geo,omitempty"`
	Device    string    `json:"device,omitempty"`
	Timestamp time.Time `json:"ts,omitempty"`
}

// ApplyDefaults fills the optional context fields the oracle requires.
func (t *Transaction) ApplyDefaults() {
	if t.Merchant == "" {
		t.Merchant = DefaultMerchant
	}
	if t.Geo == "" {
		t.Geo = DefaultGeo
	}
	if t.Device == "" {
		t.Device = DefaultDevice
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
}
