// Package db embeds the SQL migrations so production builds can run them
// without shipping the migration files alongside the binary.
package db

import "embed"

// Migrations holds the embedded migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
