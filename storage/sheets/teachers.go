package sheets

import (
	"context"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/teacher"
)

// TeachersSheet is the sheet holding the teachers:
// asignatura, apellidos, nombres, nombreCompleto, correo, telefono, tipoVinculacion, id.
const TeachersSheet = "DOCENTES"

var teacherMapper = Mapper[teacher.Teacher]{
	Sheet:  TeachersSheet,
	Header: []string{"Asignatura", "Apellidos", "Nombres", "Nombre completo", "Correo", "Teléfono", "Tipo de vinculación"},
	Encode: func(t teacher.Teacher) []string {
		return []string{t.Asignatura, t.Apellidos, t.Nombres, t.NombreCompleto, t.Correo, t.Telefono, string(t.TipoVinculacion)}
	},
	Decode: func(cells []string, id string) teacher.Teacher {
		return teacher.Teacher{
			ID:              id,
			Asignatura:      cells[0],
			Apellidos:       cells[1],
			Nombres:         cells[2],
			NombreCompleto:  cells[3],
			Correo:          cells[4],
			Telefono:        cells[5],
			TipoVinculacion: teacher.TipoVinculacion(cells[6]),
		}
	},
	Identity: func(t teacher.Teacher) string { return t.NombreCompleto },
	ID:       func(t teacher.Teacher) string { return t.ID },
	WithID: func(t teacher.Teacher, id string) teacher.Teacher {
		t.ID = id
		return t
	},
}

type teacherRepository struct {
	table *Table[teacher.Teacher]
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherTable(vs ValueService, logger core.Logger) *Table[teacher.Teacher] {
	return NewTable(vs, teacherMapper, logger)
}

func NewTeacherRepository(table *Table[teacher.Teacher]) teacher.Repository {
	return &teacherRepository{table: table}
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	return repo.table.List(ctx)
}

func (repo *teacherRepository) FindTeachers(ctx context.Context, nombreCompleto string) ([]teacher.Teacher, error) {
	return records(repo.table.Lookup(ctx, nombreCompleto))
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	return repo.table.CreateUnique(ctx, tch)
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, nombreCompleto string, tch teacher.Teacher) (teacher.Teacher, error) {
	return repo.table.Update(ctx, nombreCompleto, tch)
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, nombreCompleto, id string) error {
	return repo.table.Delete(ctx, nombreCompleto, id)
}
