package ledger

import "time"

// Project represents the registry's view of a project. Amounts are decimal
// strings in the smallest currency unit so large values survive JSON
// encoding without precision loss.
type Project struct {
	ID          uint64
	Name        string
	Description string
	Owner       string
	TotalFunds  string
	FundingGoal string
	IsVerified  bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Funding represents a single contribution recorded by the vault.
type Funding struct {
	Funder    string
	Amount    string
	Timestamp time.Time
}
