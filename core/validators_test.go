package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email,omitempty" validate:"required"`
	Color color  `json:"color" validate:"color"`
}

func newTestValidate() *validator.Validate {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)
	_ = validate.RegisterValidation("color", OneOfValidation("Rojo claro", "Azul"))
	RegisterCustomTranslation(validate, translator, "color", "must be Rojo claro or Azul")
	return validate
}

func TestInitValidators(t *testing.T) {
	validate := newTestValidate()
	translator := NewTranslator()

	tests := []struct {
		name string
		data sample
		want map[string]string
	}{
		{name: "valid", data: sample{Name: "x", Email: "e", Color: "Rojo claro"}},
		{name: "empty color", data: sample{Name: "x", Email: "e"}},
		{
			name: "invalid",
			data: sample{Name: " \t", Color: "rojo claro"},
			want: map[string]string{
				"name":  "this field cannot be blank",
				"email": "this field is required",
				"color": "must be Rojo claro or Azul",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.data)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			got := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
