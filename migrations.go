// Package usersvc holds assets shared by the binaries of the users service.
package usersvc

import "embed"

// Migrations contains the goose SQL migrations of the service schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
