package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/dgraph-io/badger/v4"
	"github.com/ecochain/ecochain/app/services/ecochain/handlers"
	"github.com/ecochain/ecochain/business/core/project"
	"github.com/ecochain/ecochain/business/core/project/stores/projectdb"
	"github.com/ecochain/ecochain/business/core/user"
	"github.com/ecochain/ecochain/business/core/user/stores/userdb"
	"github.com/ecochain/ecochain/foundation/events"
	"github.com/ecochain/ecochain/foundation/ledger"
	"github.com/ecochain/ecochain/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ECOCHAIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:8080"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
		}
		DB struct {
			Path string `conf:"default:zdata/records"`
		}
		Ledger struct {
			RPCURL           string `conf:"default:https://sepolia.base.org"`
			RegistryContract string `conf:"default:0x01fB5005481DA32adB5A289db24fd08CBA46B07F"`
			VaultContract    string `conf:"default:0xe35Df24D4747b246Fe8C9dDCA28BbC33aDcC2Bc2"`
			ChainID          uint64 `conf:"default:84532"`
			KeyFile          string `conf:"mask"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "ECOCHAIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Database Support

	// The record store only caches what the ledger owns, but it still needs
	// to survive restarts so discovered chain ids and created records stick.
	db, err := badger.Open(badger.DefaultOptions(cfg.DB.Path).WithLogger(nil))
	if err != nil {
		return fmt.Errorf("opening record store at %q: %w", cfg.DB.Path, err)
	}
	defer func() {
		log.Infow("shutdown", "status", "stopping record store")
		db.Close()
	}()

	// =========================================================================
	// Ledger Support

	lgr, err := ledger.New(ledger.Config{
		RPCURL:          cfg.Ledger.RPCURL,
		RegistryAddress: cfg.Ledger.RegistryContract,
		VaultAddress:    cfg.Ledger.VaultContract,
		ChainID:         cfg.Ledger.ChainID,
		KeyFile:         cfg.Ledger.KeyFile,
	})
	if err != nil {
		return fmt.Errorf("constructing ledger client: %w", err)
	}
	defer lgr.Close()

	if signer, ok := lgr.SignerAddress(); ok {
		log.Infow("startup", "status", "verifier signer configured", "address", signer)
	} else {
		log.Infow("startup", "status", "no signer configured, verification disabled")
	}

	// =========================================================================
	// Core Support

	// The core packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to any websocket
	// client connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(v, args...)
	}

	projectCore := project.NewCore(project.Config{
		Storer:    projectdb.NewStore(db),
		Ledger:    lgr,
		EvHandler: ev,
	})

	userCore := user.NewCore(userdb.NewStore(db))

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	debugMux := handlers.DebugMux(build, log)
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Construct the mux for the API calls.
	apiMux := handlers.APIMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Project:  projectCore,
		User:     userCore,
		Evts:     evts,
	})

	// Construct a server to service the requests against the mux.
	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown API started")
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop api service gracefully: %w", err)
		}

		// Let any detached background syncs drain before the store closes.
		log.Infow("shutdown", "status", "draining background syncs")
		projectCore.Shutdown()
	}

	return nil
}
