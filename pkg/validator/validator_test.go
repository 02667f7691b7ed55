package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Username string `form:"username" validate:"required"`
	Age      int    `form:"age" validate:"gte=0,lte=150"`
	Gender   string `form:"gender" validate:"required,oneof=Male Female Other"`
}

func TestValidateUsesFormNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleForm{Age: -1, Gender: "x"})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "Username is required", errs["username"])
	assert.Equal(t, "Age must be greater than or equal to 0", errs["age"])
	assert.Equal(t, "Gender must be one of Male, Female, Other", errs["gender"])
}

func TestFormatValidationMessageIsSorted(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleForm{Age: 200, Gender: "Female"})
	require.Error(t, err)

	assert.Equal(t,
		"Age must be less than or equal to 150; Username is required",
		v.FormatValidationMessage(err))
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&sampleForm{Username: "carol", Age: 25, Gender: "Female"}))
}
