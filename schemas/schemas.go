// Package schemas embeds the JSON Schemas for the scorer's YAML files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the schema for .evaluate.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
