// Package projectgrp maintains the group of handlers for project access.
package projectgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ecochain/ecochain/business/core/project"
	v1 "github.com/ecochain/ecochain/business/web/v1"
	"github.com/ecochain/ecochain/foundation/ledger"
	"github.com/ecochain/ecochain/foundation/validate"
	"github.com/ecochain/ecochain/foundation/web"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handlers manages the set of project endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Project *project.Core
}

// Query returns the filtered list of project records. The response is served
// from the cached funding values; the ledger refresh runs in the background.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	filter, err := parseFilter(r)
	if err != nil {
		return err
	}

	prjs, err := h.Project.Query(ctx, filter)
	if err != nil {
		return fmt.Errorf("unable to query projects: %w", err)
	}

	return web.Respond(ctx, w, toAppProjects(prjs), http.StatusOK)
}

// Create adds a new project record to the system.
func (h Handlers) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app appNewProject
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	h.Log.Infow("create project", "traceid", v.TraceID, "name", app.Name, "owner", app.Owner)

	prj, err := h.Project.Create(ctx, toCoreNewProject(app))
	if err != nil {
		if errors.Is(err, project.ErrChainIDExists) {
			return v1.NewRequestError(err, http.StatusConflict)
		}
		return fmt.Errorf("unable to create project: %w", err)
	}

	return web.Respond(ctx, w, toAppProject(prj), http.StatusCreated)
}

// QueryByID returns a single project record with its funding list, refreshed
// from the ledger. The path parameter is either a record id or a chain id;
// an unknown chain id is materialized from the ledger.
func (h Handlers) QueryByID(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	param := web.Param(r, "id")

	var prj project.Project
	var fundings []project.Funding

	switch id, err := uuid.Parse(param); {
	case err == nil:
		prj, fundings, err = h.Project.QueryByID(ctx, id)
		if err != nil {
			if errors.Is(err, project.ErrNotFound) {
				return v1.NewRequestError(project.ErrNotFound, http.StatusNotFound)
			}
			return fmt.Errorf("unable to query project: id[%s]: %w", id, err)
		}

	default:
		chainID, perr := strconv.ParseUint(param, 10, 64)
		if perr != nil {
			return validate.FieldErrors{{Field: "id", Error: "id is not a valid record id or chain id"}}
		}

		prj, err = h.Project.QueryByChainID(ctx, chainID)
		if err != nil {
			switch {
			case errors.Is(err, project.ErrNotFound):
				return v1.NewRequestError(project.ErrNotFound, http.StatusNotFound)
			case ledger.IsUnavailable(err):
				return v1.NewRequestError(err, http.StatusServiceUnavailable)
			}
			return fmt.Errorf("unable to materialize project: chainID[%d]: %w", chainID, err)
		}
	}

	resp := struct {
		appProject
		Fundings []appFunding `json:"fundings"`
	}{
		appProject: toAppProject(prj),
		Fundings:   toAppFundings(fundings),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Update modifies the off-chain administrative fields of a project record.
func (h Handlers) Update(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(web.Param(r, "id"))
	if err != nil {
		return validate.FieldErrors{{Field: "id", Error: "id is not a valid record id"}}
	}

	var app appUpdateProject
	if err := web.Decode(r, &app); err != nil {
		return err
	}

	prj, err := h.Project.Update(ctx, id, toCoreUpdateProject(app))
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return v1.NewRequestError(project.ErrNotFound, http.StatusNotFound)
		}
		return fmt.Errorf("unable to update project: id[%s]: %w", id, err)
	}

	return web.Respond(ctx, w, toAppProject(prj), http.StatusOK)
}

// QueryByOwner returns the project records owned by a wallet address.
func (h Handlers) QueryByOwner(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	prjs, err := h.Project.QueryByOwner(ctx, web.Param(r, "address"))
	if err != nil {
		return fmt.Errorf("unable to query projects for owner: %w", err)
	}

	return web.Respond(ctx, w, toAppProjects(prjs), http.StatusOK)
}

// Contribution returns the amount a wallet has contributed to a project.
func (h Handlers) Contribution(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(web.Param(r, "id"))
	if err != nil {
		return validate.FieldErrors{{Field: "id", Error: "id is not a valid record id"}}
	}
	address := web.Param(r, "address")

	amount, err := h.Project.Contribution(ctx, id, address)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			return v1.NewRequestError(project.ErrNotFound, http.StatusNotFound)
		case errors.Is(err, project.ErrNotOnChain):
			return v1.NewRequestError(project.ErrNotOnChain, http.StatusNotFound)
		case ledger.IsUnavailable(err):
			return v1.NewRequestError(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("unable to query contribution: id[%s]: %w", id, err)
	}

	resp := struct {
		Address      string `json:"userAddress"`
		ProjectID    string `json:"projectId"`
		Contribution string `json:"contribution"`
	}{
		Address:      address,
		ProjectID:    id.String(),
		Contribution: amount,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Verify submits the on-chain verification transaction for a project and
// persists the result. Verification errors fail closed: nothing is retried
// here and the ledger error is handed back to the caller.
func (h Handlers) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	id, err := uuid.Parse(web.Param(r, "id"))
	if err != nil {
		return validate.FieldErrors{{Field: "id", Error: "id is not a valid record id"}}
	}

	h.Log.Infow("verify project", "traceid", v.TraceID, "id", id)

	prj, txHash, err := h.Project.Verify(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			return v1.NewRequestError(project.ErrNotFound, http.StatusNotFound)
		case errors.Is(err, project.ErrAlreadyVerified):
			return v1.NewRequestError(project.ErrAlreadyVerified, http.StatusBadRequest)
		case errors.Is(err, project.ErrNotOnChain):
			return v1.NewRequestError(project.ErrNotOnChain, http.StatusBadRequest)
		case ledger.IsRejected(err):
			return v1.NewRequestError(err, http.StatusBadRequest)
		case ledger.IsUnavailable(err):
			return v1.NewRequestError(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("unable to verify project: id[%s]: %w", id, err)
	}

	resp := struct {
		appProject
		VerificationTxHash string `json:"verificationTxHash"`
	}{
		appProject:         toAppProject(prj),
		VerificationTxHash: txHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

// parseFilter pulls the optional verified/active flags from the query string.
func parseFilter(r *http.Request) (project.QueryFilter, error) {
	var filter project.QueryFilter

	if v := r.URL.Query().Get("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return project.QueryFilter{}, validate.FieldErrors{{Field: "verified", Error: "verified must be a boolean"}}
		}
		filter.Verified = &verified
	}

	if v := r.URL.Query().Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return project.QueryFilter{}, validate.FieldErrors{{Field: "active", Error: "active must be a boolean"}}
		}
		filter.Active = &active
	}

	return filter, nil
}
