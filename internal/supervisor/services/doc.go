// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package services provides suture.Service wrappers for the venue server.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer so suture can name it in events.

# Available Services

HTTP Server (HTTPServerService):
  - wraps *http.Server, converting ListenAndServe to Serve
  - drains connections within a shutdown timeout

Catalog Watch (CatalogWatchService):
  - watches the catalog file through a WatchFunc (config.WatchFile)
  - coalesces bursts of change events within a debounce window
  - calls Reload; the engine keeps its current catalog on failure

Completion Audit (CompletionAuditService):
  - runs the completion pipeline on a fixed interval
  - logs coverage and the number of inferred features
  - skips runs while no catalog is loaded
*/
package services
