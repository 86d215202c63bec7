// Package migrations embeds the SQL schema for balances, command outcomes and the outbox.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
