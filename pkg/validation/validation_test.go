package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
)

type payload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,min=6"`
}

func TestStruct(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, Struct(payload{Name: "Sara", Email: "sara@example.ae"}))
	})

	t.Run("uses json names", func(t *testing.T) {
		err := Struct(payload{Name: "Sara", Email: "not-an-email"})
		require.Error(t, err)

		verr, ok := err.(*Error)
		require.True(t, ok)
		assert.True(t, verr.Has("email", "email"))
		assert.False(t, verr.Has("name"))
		assert.False(t, verr.OnlyRequired())
	})

	t.Run("missing fields only", func(t *testing.T) {
		err := Struct(payload{})
		require.Error(t, err)

		verr := err.(*Error)
		assert.True(t, verr.Has("name", "required"))
		assert.True(t, verr.Has("email", "required"))
		assert.True(t, verr.OnlyRequired())
		assert.Contains(t, verr.Error(), "name (required)")
	})
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("leasing@consultancy.ae"))
	assert.False(t, Email("leasing@"))
	assert.False(t, Email(""))
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		in   payload
		code string
	}{
		{name: "bad email wins", in: payload{Email: "nope"}, code: apiErrors.ErrInvalidEmail},
		{name: "only missing", in: payload{}, code: apiErrors.ErrMissingRequiredData},
		{name: "other rule", in: payload{Name: "Sara", Email: "sara@example.ae", Phone: "12"}, code: apiErrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *Error
			require.ErrorAs(t, Struct(tt.in), &verr)
			assert.Equal(t, tt.code, verr.Code())
		})
	}
}
