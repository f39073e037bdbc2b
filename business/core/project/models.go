package project

import (
	"strings"
	"time"

	"github.com/ecochain/ecochain/foundation/ledger"
	"github.com/google/uuid"
)

// Project represents the off-chain record for a sustainability project. The
// funding fields are a cache of the ledger: TotalFunds and Contributors are
// only as fresh as the last successful sync and must never be treated as
// authoritative on their own.
type Project struct {
	ID           uuid.UUID
	ChainID      *uint64
	Name         string
	Description  string
	Owner        string
	FundingGoal  string
	TotalFunds   string
	Contributors int
	Verified     bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Funding represents a single on-chain contribution to a project. Fundings
// are never persisted, they only exist in responses and feed the distinct
// contributor count.
type Funding struct {
	Funder    string
	Amount    string
	Timestamp time.Time
}

// NewProject contains information needed to create a new project record.
type NewProject struct {
	Name        string  `validate:"required,min=1,max=200"`
	Description string  `validate:"required,min=1,max=5000"`
	Owner       string  `validate:"required,eth_addr"`
	FundingGoal string  `validate:"required,number"`
	ChainID     *uint64 `validate:"-"`
}

// UpdateProject contains information needed to update a project record. Only
// the off-chain administrative fields can change; funding fields belong to
// the ledger and the verified flag belongs to the coordinator.
type UpdateProject struct {
	Name        *string `validate:"omitempty,min=1,max=200"`
	Description *string `validate:"omitempty,min=1,max=5000"`
	Active      *bool
}

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	Verified *bool
	Active   *bool
	Owner    *string
}

// =============================================================================

// toFundings converts the ledger funding entries for use in responses.
func toFundings(lgrFunds []ledger.Funding) []Funding {
	fundings := make([]Funding, len(lgrFunds))
	for i, fund := range lgrFunds {
		fundings[i] = Funding{
			Funder:    fund.Funder,
			Amount:    fund.Amount,
			Timestamp: fund.Timestamp,
		}
	}
	return fundings
}

// distinctFunders counts the unique funder addresses in the specified funding
// entries. Addresses are compared lowercased since the same wallet can be
// reported with different casing.
func distinctFunders(lgrFunds []ledger.Funding) int {
	funders := make(map[string]struct{})
	for _, fund := range lgrFunds {
		funders[strings.ToLower(fund.Funder)] = struct{}{}
	}
	return len(funders)
}
