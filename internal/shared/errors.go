package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrMalformedInput = fmt.Errorf("malformed input")
	ErrInvalidScan    = fmt.Errorf("invalid scan target")
	ErrUnsupported    = fmt.Errorf("unsupported catalog format")

	// Report errors
	ErrSerialization = fmt.Errorf("serialization failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
