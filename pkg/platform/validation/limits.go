package validation

import (
	"fmt"

	dErrors "logvault/pkg/domain-errors"
)

// Slice element count limits
const (
	// MaxNamespaces is the maximum number of namespaces in one filter.
	MaxNamespaces = 100
)

// String element length limits
const (
	// MaxNamespaceLength is the maximum length of a namespace label.
	MaxNamespaceLength = 256

	// MaxMessageLength is the maximum length of an entry message. Large
	// enough for stack traces, small enough that a full store fits in memory.
	MaxMessageLength = 64 * 1024
)

// CheckSliceCount validates that a slice does not exceed the maximum count.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckEachStringLength validates that each string in a slice does not exceed the maximum length.
func CheckEachStringLength(fieldName string, values []string, max int) error {
	for _, v := range values {
		if len(v) > max {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
		}
	}
	return nil
}
