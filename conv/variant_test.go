package conv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type square struct{ side int }

func Test_VariantError(t *testing.T) {
	var err error = NewVariantError("Shape", "ShapeView", square{side: 1})

	assert.True(t, errors.Is(err, ErrUnmappedVariant))
	assert.True(t, errors.Is(fmt.Errorf("convert: %w", err), ErrUnmappedVariant))
	assert.Equal(t, "unmapped variant: conv.square variant of Shape has no ShapeView counterpart", err.Error())

	var variantErr *VariantError
	assert.True(t, errors.As(err, &variantErr))
	assert.Equal(t, "ShapeView", variantErr.Target)
}
