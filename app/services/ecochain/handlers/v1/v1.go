// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ecochain/ecochain/app/services/ecochain/handlers/v1/evtgrp"
	"github.com/ecochain/ecochain/app/services/ecochain/handlers/v1/projectgrp"
	"github.com/ecochain/ecochain/app/services/ecochain/handlers/v1/usergrp"
	"github.com/ecochain/ecochain/business/core/project"
	"github.com/ecochain/ecochain/business/core/user"
	"github.com/ecochain/ecochain/foundation/events"
	"github.com/ecochain/ecochain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log     *zap.SugaredLogger
	Project *project.Core
	User    *user.Core
	Evts    *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	egh := evtgrp.Handlers{
		Log:  cfg.Log,
		WS:   websocket.Upgrader{},
		Evts: cfg.Evts,
	}
	app.Handle(http.MethodGet, version, "/events", egh.Events)

	pgh := projectgrp.Handlers{
		Log:     cfg.Log,
		Project: cfg.Project,
	}
	app.Handle(http.MethodGet, version, "/projects", pgh.Query)
	app.Handle(http.MethodPost, version, "/projects", pgh.Create)
	app.Handle(http.MethodGet, version, "/projects/:id", pgh.QueryByID)
	app.Handle(http.MethodPut, version, "/projects/:id", pgh.Update)
	app.Handle(http.MethodPost, version, "/projects/:id/verify", pgh.Verify)
	app.Handle(http.MethodGet, version, "/projects/:id/contributions/:address", pgh.Contribution)

	ugh := usergrp.Handlers{
		Log:     cfg.Log,
		User:    cfg.User,
		Project: cfg.Project,
	}
	app.Handle(http.MethodGet, version, "/users/:address", ugh.QueryByAddress)
	app.Handle(http.MethodGet, version, "/users/:address/projects", pgh.QueryByOwner)
}
