// Package migrations embeds the SQLite schema used by the local gateway.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
