package catalog

import _ "embed"

// DefaultDefinitions is the bundled definitions document. Callers that
// manage their own catalog lifecycle can ignore it and feed Build any
// document with the same shape.
//
//go:embed definitions.yaml
var DefaultDefinitions []byte
