// Package migrations holds the vitalog schema as numbered NNN_name.sql files.
package migrations

import "embed"

// SQL is applied in version order by the database bootstrap on every start.
//
//go:embed *.sql
var SQL embed.FS
