// Package conv holds the errors returned by generated union conversions.
package conv

import (
	"errors"
	"fmt"
)

var ErrUnmappedVariant = errors.New("unmapped variant")

// VariantError reports a variant of the Source union that has no counterpart in the Target union.
type VariantError struct {
	Source, Target string
	Variant        any
}

func NewVariantError(source, target string, variant any) *VariantError {
	return &VariantError{Source: source, Target: target, Variant: variant}
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("%s: %T variant of %s has no %s counterpart", ErrUnmappedVariant, e.Variant, e.Source, e.Target)
}

func (e *VariantError) Unwrap() error {
	return ErrUnmappedVariant
}
