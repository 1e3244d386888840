package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/validation"
)

type form struct {
	Name  string `json:"name" validate:"required,max=10"`
	Birth string `json:"birth" validate:"numdate"`
	Ref   string `json:"ref" validate:"omitempty,numdate"`
}

func TestStruct_Valid(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Struct(form{Name: "Ada", Birth: "10.12.1815"}))
	assert.NoError(t, v.Struct(form{Name: "Ada", Birth: "31.02.1999", Ref: "01.01.2025"}))
}

func TestStruct_DateFormat(t *testing.T) {
	v := validation.New()

	err := v.Struct(form{Name: "Ada", Birth: "1815-12-10"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, numerology.ErrInvalidDateFormat))

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "birth")
	assert.NotContains(t, verr.Fields, "ref")
}

func TestStruct_OtherFields(t *testing.T) {
	v := validation.New()

	err := v.Struct(form{Name: "", Birth: "10.12.1815"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, numerology.ErrInvalidDateFormat))
	assert.Contains(t, err.Error(), "name")

	err = v.Struct(form{Name: "A very long name", Birth: "10.12.1815"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10")
}

func TestDate(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Date("01.01.2000"))

	err := v.Date("1.1.2000")
	assert.True(t, errors.Is(err, numerology.ErrInvalidDateFormat))
}
