package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/investigacion/core"
)

// Student is a student of the program, identified by its Codigo.
type Student struct {
	ID             string `json:"id"`
	Codigo         string `json:"codigo"`
	NombreCompleto string `json:"nombreCompleto"`
	Correo         string `json:"correo"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Codigo         string `json:"codigo" validate:"notblank"`
	NombreCompleto string `json:"nombreCompleto" validate:"notblank"`
	Correo         string `json:"correo" validate:"notblank"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Codigo = core.CleanString(ns.Codigo)
	ns.NombreCompleto = core.CleanString(ns.NombreCompleto)
	ns.Correo = core.CleanString(ns.Correo)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// A blank Codigo keeps the current one; ID, when set, must match the stored record.
type UpdateStudent struct {
	ID             string `json:"id"`
	Codigo         string `json:"codigo"`
	NombreCompleto string `json:"nombreCompleto" validate:"notblank"`
	Correo         string `json:"correo" validate:"notblank"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.ID = core.CleanString(us.ID)
	us.Codigo = core.CleanString(us.Codigo)
	us.NombreCompleto = core.CleanString(us.NombreCompleto)
	us.Correo = core.CleanString(us.Correo)
	return validate.Struct(us)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search)
}

func (f QueryFilter) match(s Student) bool {
	return f.Search == "" || core.ContainsFold(f.Search, s.NombreCompleto, s.Codigo, s.Correo)
}
