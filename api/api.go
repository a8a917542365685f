// Package api embeds the OpenAPI document of the inventory API.
package api

import _ "embed"

// Spec is the swagger 2.0 document served at /swagger.yaml
//
//go:embed swagger.yaml
var Spec []byte
