// Package client contains the board gateways used by the CLI.
//
// # Overview
//
// Two interchangeable implementations of board.Gateway live here:
//  1. GRPCClient talks to the HireBoard server. It injects the access token
//     via an interceptor, applies an optional per-request timeout, uploads
//     résumés straight to object storage through presigned URLs and maps
//     gRPC status codes to sentinel errors.
//  2. LocalGateway keeps the board in an SQLite file (InitDatabase,
//     RunMigrations apply embedded goose migrations) and stores uploaded
//     files in a local directory, handing out file:// URLs.
//
// # Error Handling
//
// Conditions callers may want to tell apart are exposed as sentinel errors
// matched with errors.Is: ErrUnavailable, ErrUnauthorized,
// common.ErrorNotFound and common.ErrorValidation.
//
// Both gateways are safe for concurrent use; the board store issues
// fire-and-forget writes from several goroutines.
package client
