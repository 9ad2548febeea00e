package project

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/investigacion/core"
)

// Estado is a project's status. The zero value means no status was set.
type Estado string

const (
	EstadoFormulacion  Estado = "Formulación"
	EstadoEnDesarrollo Estado = "En desarrollo"
	EstadoAprobado     Estado = "Aprobado"
	EstadoFinalizado   Estado = "Finalizado"
	EstadoArchivado    Estado = "Archivado"

	// SinEstado is how an empty Estado is displayed. It is never stored.
	SinEstado = "Sin estado"
)

var AllEstados = []Estado{EstadoFormulacion, EstadoEnDesarrollo, EstadoAprobado, EstadoFinalizado, EstadoArchivado}

// ParseEstado cleans s; the SinEstado label maps back to the empty Estado.
func ParseEstado(s string) Estado {
	s = core.CleanString(s)
	if s == SinEstado {
		return ""
	}
	return Estado(s)
}

// Label returns the display name of e.
func (e Estado) Label() string {
	if e == "" {
		return SinEstado
	}
	return string(e)
}

// Project is a research project, identified by its Titulo.
type Project struct {
	ID          string   `json:"id"`
	Periodo     string   `json:"periodo"`
	Asignatura  string   `json:"asignatura"`
	Docente     string   `json:"docente"`
	Estudiantes []string `json:"estudiantes"`
	Titulo      string   `json:"titulo"`
	Link        string   `json:"link"`
	Estado      Estado   `json:"estado"`
}

// NewProject contains information needed to create a new Project.
type NewProject struct {
	Periodo     string   `json:"periodo" validate:"notblank"`
	Asignatura  string   `json:"asignatura" validate:"notblank"`
	Docente     string   `json:"docente"`
	Estudiantes []string `json:"estudiantes"`
	Titulo      string   `json:"titulo" validate:"notblank"`
	Link        string   `json:"link"`
	Estado      Estado   `json:"estado" validate:"estado"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Periodo = core.CleanString(np.Periodo)
	np.Asignatura = core.CleanString(np.Asignatura)
	np.Docente = core.CleanString(np.Docente)
	np.Estudiantes = cleanEstudiantes(np.Estudiantes)
	np.Titulo = core.CleanString(np.Titulo)
	np.Link = core.CleanString(np.Link)
	np.Estado = ParseEstado(string(np.Estado))
	return validate.Struct(np)
}

// UpdateProject defines what information may be provided to modify an existing Project.
// A blank Titulo keeps the current one; ID, when set, must match the stored record.
type UpdateProject struct {
	ID          string   `json:"id"`
	Periodo     string   `json:"periodo" validate:"notblank"`
	Asignatura  string   `json:"asignatura" validate:"notblank"`
	Docente     string   `json:"docente"`
	Estudiantes []string `json:"estudiantes"`
	Titulo      string   `json:"titulo"`
	Link        string   `json:"link"`
	Estado      Estado   `json:"estado" validate:"estado"`
}

func (up *UpdateProject) Validate(validate *validator.Validate) error {
	up.ID = core.CleanString(up.ID)
	up.Periodo = core.CleanString(up.Periodo)
	up.Asignatura = core.CleanString(up.Asignatura)
	up.Docente = core.CleanString(up.Docente)
	up.Estudiantes = cleanEstudiantes(up.Estudiantes)
	up.Titulo = core.CleanString(up.Titulo)
	up.Link = core.CleanString(up.Link)
	up.Estado = ParseEstado(string(up.Estado))
	return validate.Struct(up)
}

// cleanEstudiantes trims the entries and drops blank ones.
// Entries are stored comma-joined, so commas inside an entry split it.
func cleanEstudiantes(estudiantes []string) []string {
	return core.SplitList(core.JoinList(estudiantes))
}

type QueryFilter struct {
	Search  string `query:"search"`
	Estado  string `query:"estado"`
	Periodo string `query:"periodo"`
	Docente string `query:"docente"`
}

func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Estado = core.CleanString(f.Estado)
	f.Periodo = core.CleanString(f.Periodo)
	f.Docente = core.CleanString(f.Docente)
	if f.Estado == "todos" {
		f.Estado = ""
	}
}

func (f QueryFilter) match(p Project) bool {
	if f.Search != "" && !core.ContainsFold(f.Search, p.Titulo, p.Asignatura) {
		return false
	}
	// estado filters on the displayed label so "Sin estado" selects projects without status
	if f.Estado != "" && p.Estado.Label() != f.Estado {
		return false
	}
	if f.Periodo != "" && p.Periodo != f.Periodo {
		return false
	}
	if f.Docente != "" && p.Docente != f.Docente {
		return false
	}
	return true
}
