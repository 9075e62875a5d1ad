// Package server implements the MCP (Model Context Protocol) server for the
// grid splitter.
//
// This package provides a JSON-RPC 2.0 server that exposes the grid engine
// through the MCP protocol, so an assistant can plan, render, inspect and
// export a profile grid without a desktop UI.
//
// # Protocol
//
// Requests arrive as newline-delimited JSON-RPC 2.0 on stdin and each one
// gets a single response line on stdout. Logs go to stderr. The handled
// methods are initialize, ping, tools/list and tools/call;
// notifications/initialized is accepted silently.
//
// # Available Tools
//
//   - image_load: Source image metadata
//   - grid_layout: Validate a configuration and return the layout plan
//   - grid_render: Render a grid; returns a render_id and a preview thumbnail
//   - grid_tile: Fetch one tile of a render as base64 PNG
//   - grid_export: Write a render to disk as a zip archive or loose files
//
// Every grid configuration parameter is optional. Omitted parameters take
// the defaults of grid.DefaultConfig; an explicit 0 or false is honoured.
//
// # Caching
//
// Source images are cached by path for the lifetime of the process. Renders
// are kept in an expiring cache keyed by render_id; the lifetime is set by
// IMAGE_GRID_CACHE_TTL (default 30m). grid_tile and grid_export fail once a
// render has expired and the client must call grid_render again.
//
// # Error Handling
//
// Malformed arguments answer with code -32602 and failed tool calls with
// -32000. The error data carries the Go error string, so a rejected
// configuration names the field at fault.
//
// # Usage
//
//	srv := server.New()
//	err := srv.Serve(os.Stdin, os.Stdout)
package server
