package project

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
)

var errTitleExists = errors.New("a project with this title already exists")

type (
	Repository interface {
		QueryAllProjects(ctx context.Context) ([]Project, error)
		// FindProjects returns every Project holding titulo, in storage order.
		FindProjects(ctx context.Context, titulo string) ([]Project, error)
		// CreateProject refuses a titulo already held, with an error caused by core.ErrIdentityTaken.
		CreateProject(ctx context.Context, prj Project) (Project, error)
		// UpdateProject overwrites the first Project holding titulo. Renaming onto a titulo held by
		// another Project fails the same way as CreateProject.
		UpdateProject(ctx context.Context, titulo string, prj Project) (Project, error)
		// DeleteProject removes the first Project holding titulo.
		DeleteProject(ctx context.Context, titulo, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// tituloTaken turns a refused identity value into a validation error on titulo.
func tituloTaken(err error) error {
	if core.IsIdentityTaken(err) {
		return core.NewValidationError(errTitleExists, core.FieldError{Field: "titulo", Error: errTitleExists.Error()})
	}
	return err
}

func (svc *Service) Create(ctx context.Context, np NewProject) (Project, error) {
	created, err := svc.repo.CreateProject(ctx, Project{
		Periodo:     np.Periodo,
		Asignatura:  np.Asignatura,
		Docente:     np.Docente,
		Estudiantes: np.Estudiantes,
		Titulo:      np.Titulo,
		Link:        np.Link,
		Estado:      np.Estado,
	})
	if err != nil {
		return Project{}, tituloTaken(err)
	}
	return created, nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Project, error) {
	projects, err := svc.repo.QueryAllProjects(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Project, 0, len(projects))
	for _, prj := range projects {
		if filter.match(prj) {
			filtered = append(filtered, prj)
		}
	}
	return filtered, nil
}

// Get returns the first Project holding titulo.
func (svc *Service) Get(ctx context.Context, titulo string) (Project, error) {
	titulo = core.CleanString(titulo)
	found, err := svc.repo.FindProjects(ctx, titulo)
	if err != nil {
		return Project{}, err
	}
	if len(found) == 0 {
		return Project{}, errors.Wrapf(core.ErrNotFound, "project %q", titulo)
	}
	return found[0], nil
}

func (svc *Service) Update(ctx context.Context, titulo string, up UpdateProject) (Project, error) {
	titulo = core.CleanString(titulo)
	if up.Titulo == "" {
		up.Titulo = titulo
	}
	updated, err := svc.repo.UpdateProject(ctx, titulo, Project{
		ID:          up.ID,
		Periodo:     up.Periodo,
		Asignatura:  up.Asignatura,
		Docente:     up.Docente,
		Estudiantes: up.Estudiantes,
		Titulo:      up.Titulo,
		Link:        up.Link,
		Estado:      up.Estado,
	})
	if err != nil {
		return Project{}, tituloTaken(err)
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, titulo, id string) error {
	return svc.repo.DeleteProject(ctx, core.CleanString(titulo), core.CleanString(id))
}

// ExportCSV writes the projects matching filter as CSV.
func (svc *Service) ExportCSV(ctx context.Context, w io.Writer, filter QueryFilter) error {
	projects, err := svc.Query(ctx, filter)
	if err != nil {
		return err
	}
	return WriteCSV(w, projects)
}
