package sheets

import (
	"context"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/project"
)

// ProjectsSheet is the sheet holding the projects:
// periodo, asignatura, docente, estudiantes, titulo, link, estado, id.
const ProjectsSheet = "PROYECTOS"

var projectMapper = Mapper[project.Project]{
	Sheet:  ProjectsSheet,
	Header: []string{"Período", "Asignatura", "Docente", "Estudiantes", "Título", "Link", "Estado"},
	Encode: func(p project.Project) []string {
		return []string{p.Periodo, p.Asignatura, p.Docente, core.JoinList(p.Estudiantes), p.Titulo, p.Link, string(p.Estado)}
	},
	Decode: func(cells []string, id string) project.Project {
		return project.Project{
			ID:          id,
			Periodo:     cells[0],
			Asignatura:  cells[1],
			Docente:     cells[2],
			Estudiantes: core.SplitList(cells[3]),
			Titulo:      cells[4],
			Link:        cells[5],
			Estado:      project.Estado(cells[6]),
		}
	},
	Identity: func(p project.Project) string { return p.Titulo },
	ID:       func(p project.Project) string { return p.ID },
	WithID: func(p project.Project, id string) project.Project {
		p.ID = id
		return p
	},
}

type projectRepository struct {
	table *Table[project.Project]
}

var _ project.Repository = (*projectRepository)(nil)

func NewProjectTable(vs ValueService, logger core.Logger) *Table[project.Project] {
	return NewTable(vs, projectMapper, logger)
}

func NewProjectRepository(table *Table[project.Project]) project.Repository {
	return &projectRepository{table: table}
}

func (repo *projectRepository) QueryAllProjects(ctx context.Context) ([]project.Project, error) {
	return repo.table.List(ctx)
}

func (repo *projectRepository) FindProjects(ctx context.Context, titulo string) ([]project.Project, error) {
	return records(repo.table.Lookup(ctx, titulo))
}

func (repo *projectRepository) CreateProject(ctx context.Context, prj project.Project) (project.Project, error) {
	return repo.table.CreateUnique(ctx, prj)
}

func (repo *projectRepository) UpdateProject(ctx context.Context, titulo string, prj project.Project) (project.Project, error) {
	return repo.table.Update(ctx, titulo, prj)
}

func (repo *projectRepository) DeleteProject(ctx context.Context, titulo, id string) error {
	return repo.table.Delete(ctx, titulo, id)
}
