package swagger

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
)

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

// openAPIETag is a strong validator for OpenAPI, fixed at build time.
var openAPIETag = func() string {
	sum := sha256.Sum256(OpenAPI)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}()
