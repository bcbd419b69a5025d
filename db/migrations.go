// Package db carries the SQL schema of the service.
package db

import "embed"

// Migrations holds the ordered *.up.sql schema files
//
//go:embed migrations/*.up.sql
var Migrations embed.FS
