package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Color  string `json:"color" validate:"omitempty,even_len"`
	Hidden string `json:"-" validate:"required"`
}

func TestStruct(t *testing.T) {
	v, err := New("json")
	require.NoError(t, err)
	require.NoError(t, v.RegisterValidation("even_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}, "{0} must have an even length"))

	tests := []struct {
		name  string
		input sample
		want  []string
	}{
		{"valid", sample{Name: "a", Color: "rd", Hidden: "x"}, nil},
		{"missing name", sample{Hidden: "x"}, []string{"name is a required field"}},
		{"custom rule", sample{Name: "a", Color: "red", Hidden: "x"}, []string{"color must have an even length"}},
		{"untagged field name", sample{Name: "a"}, []string{"Hidden is a required field"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.want, verr.Messages)
		})
	}
}

func TestErrorJoinsMessages(t *testing.T) {
	err := &Error{Messages: []string{"a is bad", "b is bad"}}
	assert.Equal(t, "a is bad; b is bad", err.Error())
}
