package teacher

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/investigacion/core"
)

// TipoVinculacion is a teacher's contract type.
type TipoVinculacion string

const (
	VinculacionCatedratico TipoVinculacion = "Catedrático"
	VinculacionOcasional   TipoVinculacion = "Ocasional"
	VinculacionPlanta      TipoVinculacion = "Planta"
)

var AllVinculaciones = []TipoVinculacion{VinculacionCatedratico, VinculacionOcasional, VinculacionPlanta}

// Teacher is a teacher of the program, identified by its NombreCompleto.
type Teacher struct {
	ID              string          `json:"id"`
	Asignatura      string          `json:"asignatura"`
	Apellidos       string          `json:"apellidos"`
	Nombres         string          `json:"nombres"`
	NombreCompleto  string          `json:"nombreCompleto"`
	Correo          string          `json:"correo"`
	Telefono        string          `json:"telefono"`
	TipoVinculacion TipoVinculacion `json:"tipoVinculacion"`
}

// fullName falls back to "nombres apellidos" when nombreCompleto is blank.
func fullName(nombreCompleto, nombres, apellidos string) string {
	if nombreCompleto != "" {
		return nombreCompleto
	}
	return strings.TrimSpace(nombres + " " + apellidos)
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Asignatura      string          `json:"asignatura" validate:"notblank"`
	Apellidos       string          `json:"apellidos"`
	Nombres         string          `json:"nombres"`
	NombreCompleto  string          `json:"nombreCompleto" validate:"notblank"`
	Correo          string          `json:"correo" validate:"notblank"`
	Telefono        string          `json:"telefono"`
	TipoVinculacion TipoVinculacion `json:"tipoVinculacion" validate:"vinculacion"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Asignatura = core.CleanString(nt.Asignatura)
	nt.Apellidos = core.CleanString(nt.Apellidos)
	nt.Nombres = core.CleanString(nt.Nombres)
	nt.NombreCompleto = fullName(core.CleanString(nt.NombreCompleto), nt.Nombres, nt.Apellidos)
	nt.Correo = core.CleanString(nt.Correo)
	nt.Telefono = core.CleanString(nt.Telefono)
	nt.TipoVinculacion = TipoVinculacion(core.CleanString(string(nt.TipoVinculacion)))
	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
// A blank NombreCompleto keeps the current one; ID, when set, must match the stored record.
type UpdateTeacher struct {
	ID              string          `json:"id"`
	Asignatura      string          `json:"asignatura" validate:"notblank"`
	Apellidos       string          `json:"apellidos"`
	Nombres         string          `json:"nombres"`
	NombreCompleto  string          `json:"nombreCompleto"`
	Correo          string          `json:"correo" validate:"notblank"`
	Telefono        string          `json:"telefono"`
	TipoVinculacion TipoVinculacion `json:"tipoVinculacion" validate:"vinculacion"`
}

func (upd *UpdateTeacher) Validate(validate *validator.Validate) error {
	upd.ID = core.CleanString(upd.ID)
	upd.Asignatura = core.CleanString(upd.Asignatura)
	upd.Apellidos = core.CleanString(upd.Apellidos)
	upd.Nombres = core.CleanString(upd.Nombres)
	upd.NombreCompleto = core.CleanString(upd.NombreCompleto)
	upd.Correo = core.CleanString(upd.Correo)
	upd.Telefono = core.CleanString(upd.Telefono)
	upd.TipoVinculacion = TipoVinculacion(core.CleanString(string(upd.TipoVinculacion)))
	return validate.Struct(upd)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search)
}

func (f QueryFilter) match(t Teacher) bool {
	return f.Search == "" || core.ContainsFold(f.Search, t.NombreCompleto, t.Asignatura, t.Correo)
}
