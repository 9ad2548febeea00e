package sheets

import (
	"context"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/student"
)

// StudentsSheet is the sheet holding the students: codigo, nombreCompleto, correo, id.
const StudentsSheet = "ESTUDIANTES"

var studentMapper = Mapper[student.Student]{
	Sheet:  StudentsSheet,
	Header: []string{"Código", "Nombre completo", "Correo"},
	Encode: func(s student.Student) []string {
		return []string{s.Codigo, s.NombreCompleto, s.Correo}
	},
	Decode: func(cells []string, id string) student.Student {
		return student.Student{
			ID:             id,
			Codigo:         cells[0],
			NombreCompleto: cells[1],
			Correo:         cells[2],
		}
	},
	Identity: func(s student.Student) string { return s.Codigo },
	ID:       func(s student.Student) string { return s.ID },
	WithID: func(s student.Student, id string) student.Student {
		s.ID = id
		return s
	},
}

type studentRepository struct {
	table *Table[student.Student]
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentTable(vs ValueService, logger core.Logger) *Table[student.Student] {
	return NewTable(vs, studentMapper, logger)
}

func NewStudentRepository(table *Table[student.Student]) student.Repository {
	return &studentRepository{table: table}
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	return repo.table.List(ctx)
}

func (repo *studentRepository) FindStudents(ctx context.Context, codigo string) ([]student.Student, error) {
	return records(repo.table.Lookup(ctx, codigo))
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	return repo.table.CreateUnique(ctx, std)
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, codigo string, std student.Student) (student.Student, error) {
	return repo.table.Update(ctx, codigo, std)
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, codigo, id string) error {
	return repo.table.Delete(ctx, codigo, id)
}

func records[T any](entries []Entry[T], err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	recs := make([]T, 0, len(entries))
	for _, e := range entries {
		recs = append(recs, e.Record)
	}
	return recs, nil
}
