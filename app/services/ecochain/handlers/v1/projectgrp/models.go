package projectgrp

import (
	"time"

	"github.com/ecochain/ecochain/business/core/project"
	"github.com/ecochain/ecochain/foundation/validate"
)

// appProject is the web form of a project record. Amounts remain decimal
// strings so large wei values survive the trip through JSON.
type appProject struct {
	ID           string  `json:"id"`
	ChainID      *uint64 `json:"chainId,omitempty"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Owner        string  `json:"owner"`
	FundingGoal  string  `json:"fundingGoal"`
	TotalFunds   string  `json:"totalFunds"`
	Contributors int     `json:"contributors"`
	Verified     bool    `json:"isVerified"`
	Active       bool    `json:"isActive"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toAppProject(prj project.Project) appProject {
	return appProject{
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
		CreatedAt:    prj.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    prj.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppProjects(prjs []project.Project) []appProject {
	app := make([]appProject, len(prjs))
	for i, prj := range prjs {
		app[i] = toAppProject(prj)
	}
	return app
}

// appFunding is the web form of a single on-chain contribution.
type appFunding struct {
	Funder    string `json:"funder"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
}

func toAppFundings(funds []project.Funding) []appFunding {
	app := make([]appFunding, len(funds))
	for i, fund := range funds {
		app[i] = appFunding{
			Funder:    fund.Funder,
			Amount:    fund.Amount,
			Timestamp: fund.Timestamp.Format(time.RFC3339),
		}
	}
	return app
}

// =============================================================================

// appNewProject contains the payload needed to create a new project record.
type appNewProject struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required,min=1,max=5000"`
	Owner       string  `json:"owner" validate:"required,eth_addr"`
	FundingGoal string  `json:"fundingGoal" validate:"required,number"`
	ChainID     *uint64 `json:"chainId"`
}

// Validate checks the data in the model is considered clean.
func (app appNewProject) Validate() error {
	return validate.Check(app)
}

func toCoreNewProject(app appNewProject) project.NewProject {
	return project.NewProject{
		Name:        app.Name,
		Description: app.Description,
		Owner:       app.Owner,
		FundingGoal: app.FundingGoal,
		ChainID:     app.ChainID,
	}
}

// appUpdateProject contains the payload for updating a project record.
type appUpdateProject struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=5000"`
	Active      *bool   `json:"isActive"`
}

// Validate checks the data in the model is considered clean.
func (app appUpdateProject) Validate() error {
	return validate.Check(app)
}

func toCoreUpdateProject(app appUpdateProject) project.UpdateProject {
	return project.UpdateProject{
		Name:        app.Name,
		Description: app.Description,
		Active:      app.Active,
	}
}
