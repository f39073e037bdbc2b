// Package usergrp maintains the group of handlers for user profile access.
package usergrp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ecochain/ecochain/business/core/project"
	"github.com/ecochain/ecochain/business/core/user"
	"github.com/ecochain/ecochain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of user endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	User    *user.Core
	Project *project.Core
}

// appUser is the web form of a user profile.
type appUser struct {
	Address      string `json:"walletAddress"`
	ProjectCount int    `json:"projectCount"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// QueryByAddress returns the profile for a wallet address, creating it on
// first sight.
func (h Handlers) QueryByAddress(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	address := web.Param(r, "address")

	usr, err := h.User.QueryByAddress(ctx, address)
	if err != nil {
		return fmt.Errorf("unable to query user: %w", err)
	}

	h.Log.Infow("query user", "traceid", v.TraceID, "address", usr.Address)

	prjs, err := h.Project.QueryByOwner(ctx, usr.Address)
	if err != nil {
		return fmt.Errorf("unable to query user projects: %w", err)
	}

	resp := appUser{
		Address:      usr.Address,
		ProjectCount: len(prjs),
		CreatedAt:    usr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    usr.UpdatedAt.Format(time.RFC3339),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
