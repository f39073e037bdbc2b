package projectdb

import (
	"fmt"
	"time"

	"github.com/ecochain/ecochain/business/core/project"
	"github.com/google/uuid"
)

// dbProject is the stored form of a project record. Amounts stay decimal
// strings end to end so currency values never pass through a float.
type dbProject struct {
	ID           string    `json:"id"`
	ChainID      *uint64   `json:"chain_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Owner        string    `json:"owner"`
	FundingGoal  string    `json:"funding_goal"`
	TotalFunds   string    `json:"total_funds"`
	Contributors int       `json:"contributors"`
	Verified     bool      `json:"verified"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toDBProject(prj project.Project) dbProject {
	return dbProject{
		ID:           prj.ID.String(),
		ChainID:      prj.ChainID,
		Name:         prj.Name,
		Description:  prj.Description,
		Owner:        prj.Owner,
		FundingGoal:  prj.FundingGoal,
		TotalFunds:   prj.TotalFunds,
		Contributors: prj.Contributors,
		Verified:     prj.Verified,
		Active:       prj.Active,
		CreatedAt:    prj.CreatedAt,
		UpdatedAt:    prj.UpdatedAt,
	}
}

func toCoreProject(db dbProject) (project.Project, error) {
	id, err := uuid.Parse(db.ID)
	if err != nil {
		return project.Project{}, fmt.Errorf("parsing record id: %w", err)
	}

	prj := project.Project{
		ID:           id,
		ChainID:      db.ChainID,
		Name:         db.Name,
		Description:  db.Description,
		Owner:        db.Owner,
		FundingGoal:  db.FundingGoal,
		TotalFunds:   db.TotalFunds,
		Contributors: db.Contributors,
		Verified:     db.Verified,
		Active:       db.Active,
		CreatedAt:    db.CreatedAt,
		UpdatedAt:    db.UpdatedAt,
	}

	return prj, nil
}
