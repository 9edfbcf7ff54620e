// Package scripts holds the SQL artifacts shipped with the binary.
package scripts

import (
	_ "embed"
)

// RoadsSQL derives the routable roads table from the imported OSM
// tables. Its contents are a collaborator interface: the provisioning
// pipeline stages and executes it but never interprets it.
//
//go:embed build_roads.sql
var RoadsSQL []byte
