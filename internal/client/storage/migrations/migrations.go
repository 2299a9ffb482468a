// Package migrations embeds the sqlite schema for the client's durable store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
