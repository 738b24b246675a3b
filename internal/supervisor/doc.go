// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package supervisor provides process supervision for the venue server using
suture v4.

# Overview

Services are organized into two layers:

	RootSupervisor ("staywise")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogWatchService (if catalog.watch)
	│   └── CompletionAuditService (if inference.audit_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashing watcher is restarted inside the data layer. The HTTP server keeps
serving the last catalog that loaded.

# Usage Example

	eventLogger, closer, err := logging.NewEventLogger(cfg.Logging.EventLog)
	if err != nil {
	    return err
	}
	defer closer.Close()

	tree, err := supervisor.NewSupervisorTree(eventLogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogWatchService(engine, config.WatchFile, watchCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh
	tree.LogShutdownReport()

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds. Past
FailureThreshold the supervisor waits FailureBackoff before the next restart.
Supervisor events reach the zerolog logger through sutureslog.

# Service Interface

Return behavior of Serve:
  - ctx.Err() after cancellation: shutdown requested
  - suture.ErrDoNotRestart: the service has nothing to do
  - any other error: the service crashed and is restarted
*/
package supervisor
