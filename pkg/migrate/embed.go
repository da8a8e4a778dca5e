package migrate

import "embed"

// Migrations holds the goose SQL files compiled into the binary.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// EmbeddedDir is the directory name inside Migrations.
const EmbeddedDir = "migrations"
