// Package emoluments maintains per-UF notary fee tables and answers
// deed-cost and cheapest-state questions.
package emoluments

import "time"

// TableStatus marks a fee table's lifecycle. Only one active table per UF
// answers lookups; drafts stage the next year's values.
type TableStatus string

const (
	TableActive TableStatus = "active"
	TableDraft  TableStatus = "draft"
)

// Table is a UF's fee table for a reference year, broken into value
// brackets.
type Table struct {
	ID        string      `json:"id"`
	UF        string      `json:"uf"`
	Year      int         `json:"year"`
	Status    TableStatus `json:"status"`
	Brackets  []Bracket   `json:"brackets"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Bracket maps a property-value range onto a fixed fee. Ranges are
// inclusive on both ends and sorted ascending.
type Bracket struct {
	RangeFrom float64 `json:"range_from"`
	RangeTo   float64 `json:"range_to"`
	Amount    float64 `json:"amount"`
}

// DeedCost is the answer to a single-UF lookup. Note explains any fallback
// the calculation applied.
type DeedCost struct {
	UF            string  `json:"uf"`
	PropertyValue float64 `json:"property_value"`
	Amount        float64 `json:"amount"`
	BracketFrom   float64 `json:"bracket_from"`
	BracketTo     float64 `json:"bracket_to"`
	Note          string  `json:"note,omitempty"`
}

// Economy compares a base UF's cost against the cheapest active table.
type Economy struct {
	BaseUF     string   `json:"base_uf"`
	BaseCost   DeedCost `json:"base_cost"`
	BestUF     string   `json:"best_uf"`
	BestCost   DeedCost `json:"best_cost"`
	Savings    float64  `json:"savings"`
	SavingsPct float64  `json:"savings_pct"`
}
