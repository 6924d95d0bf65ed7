package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex rule_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_SESSION       = "sess"
	UUID_PREFIX_DELIVERY_RULE = "rule"
	UUID_PREFIX_FORWARDER     = "fwd"
	UUID_PREFIX_OFFER         = "offer"
	UUID_PREFIX_BUNDLE        = "bundle"
)
