package project

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/investigacion/core"
)

var (
	estadoTag  = "estado"
	estadoText = "must be one of Formulación, En desarrollo, Aprobado, Finalizado or Archivado"
)

// InitValidators registers the project validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	values := make([]string, 0, len(AllEstados))
	for _, e := range AllEstados {
		values = append(values, string(e))
	}
	_ = validate.RegisterValidation(estadoTag, core.OneOfValidation(values...))
	core.RegisterCustomTranslation(validate, translator, estadoTag, estadoText)
}
