// Package api embeds the OpenAPI document of the HTTP front end.
package api

import (
	_ "embed"
)

//go:embed openapi.yaml
var OpenAPI []byte
