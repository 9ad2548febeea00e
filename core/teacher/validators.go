package teacher

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/investigacion/core"
)

var (
	vinculacionTag  = "vinculacion"
	vinculacionText = "must be one of Catedrático, Ocasional or Planta"
)

// InitValidators registers the teacher validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	values := make([]string, 0, len(AllVinculaciones))
	for _, v := range AllVinculaciones {
		values = append(values, string(v))
	}
	_ = validate.RegisterValidation(vinculacionTag, core.OneOfValidation(values...))
	core.RegisterCustomTranslation(validate, translator, vinculacionTag, vinculacionText)
}
