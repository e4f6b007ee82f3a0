// Package api embeds the OpenAPI document of the myfabric admin API.
package api

import _ "embed"

// Document is the OpenAPI 3 document enforced by the HTTP handlers.
//
//go:embed myfabric.openapi.yaml
var Document []byte
