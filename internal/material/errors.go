package material

import (
	"errors"
	"fmt"
)

// UnknownMaterialError reports a lookup for an identifier that is not in
// the catalog.
type UnknownMaterialError struct {
	ID string
}

// Error implements the error interface.
func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("material %q not in database", e.ID)
}

// IsUnknownMaterial returns true if err is, or wraps, an UnknownMaterialError.
func IsUnknownMaterial(err error) bool {
	var ue *UnknownMaterialError
	return errors.As(err, &ue)
}

// CatalogError reports every validation problem found while building a
// catalog.
type CatalogError struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "invalid catalog"
	case 1:
		return fmt.Sprintf("invalid catalog: %s", e.Errors[0].Error())
	default:
		return fmt.Sprintf("invalid catalog: %s (and %d more)", e.Errors[0].Error(), len(e.Errors)-1)
	}
}
