package searchattr

import (
	"maps"
	"slices"

	enums "go.temporal.io/api/enums/v1"
)

const (
	// OrganizationID tags executions with the owning organization.
	OrganizationID = "organizationId"
	// PostID tags executions with the post they operate on.
	PostID = "postId"
)

// AttributeType is the only type used when registering attributes.
const AttributeType = enums.INDEXED_VALUE_TYPE_KEYWORD

// DefaultRequired lists the attributes the application filters workflows by.
var DefaultRequired = []string{OrganizationID, PostID}

// Missing returns the required attribute names that are not keys of
// registered, each mapped to AttributeType. Duplicate and empty names are
// ignored. The result is never nil.
func Missing(required []string, registered map[string]enums.IndexedValueType) map[string]enums.IndexedValueType {
	missing := make(map[string]enums.IndexedValueType, len(required))
	for _, name := range required {
		if name == "" {
			continue
		}
		if _, ok := registered[name]; ok {
			continue
		}
		missing[name] = AttributeType
	}
	return missing
}

func sortedNames(attrs map[string]enums.IndexedValueType) []string {
	return slices.Sorted(maps.Keys(attrs))
}
