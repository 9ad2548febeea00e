package teacher

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
)

var errNameExists = errors.New("a teacher with this name already exists")

type (
	Repository interface {
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		// FindTeachers returns every Teacher holding nombreCompleto, in storage order.
		FindTeachers(ctx context.Context, nombreCompleto string) ([]Teacher, error)
		// CreateTeacher refuses a nombreCompleto already held, with an error caused by core.ErrIdentityTaken.
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		// UpdateTeacher overwrites the first Teacher holding nombreCompleto. Renaming onto a nombreCompleto held by
		// another Teacher fails the same way as CreateTeacher.
		UpdateTeacher(ctx context.Context, nombreCompleto string, tch Teacher) (Teacher, error)
		// DeleteTeacher removes the first Teacher holding nombreCompleto.
		DeleteTeacher(ctx context.Context, nombreCompleto, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// nombreCompletoTaken turns a refused identity value into a validation error on nombreCompleto.
func nombreCompletoTaken(err error) error {
	if core.IsIdentityTaken(err) {
		return core.NewValidationError(errNameExists, core.FieldError{Field: "nombreCompleto", Error: errNameExists.Error()})
	}
	return err
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	created, err := svc.repo.CreateTeacher(ctx, Teacher{
		Asignatura:      nt.Asignatura,
		Apellidos:       nt.Apellidos,
		Nombres:         nt.Nombres,
		NombreCompleto:  nt.NombreCompleto,
		Correo:          nt.Correo,
		Telefono:        nt.Telefono,
		TipoVinculacion: nt.TipoVinculacion,
	})
	if err != nil {
		return Teacher{}, nombreCompletoTaken(err)
	}
	return created, nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Teacher, error) {
	teachers, err := svc.repo.QueryAllTeachers(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Teacher, 0, len(teachers))
	for _, tch := range teachers {
		if filter.match(tch) {
			filtered = append(filtered, tch)
		}
	}
	return filtered, nil
}

// Get returns the first Teacher holding nombreCompleto.
func (svc *Service) Get(ctx context.Context, nombreCompleto string) (Teacher, error) {
	nombreCompleto = core.CleanString(nombreCompleto)
	found, err := svc.repo.FindTeachers(ctx, nombreCompleto)
	if err != nil {
		return Teacher{}, err
	}
	if len(found) == 0 {
		return Teacher{}, errors.Wrapf(core.ErrNotFound, "teacher %q", nombreCompleto)
	}
	return found[0], nil
}

func (svc *Service) Update(ctx context.Context, nombreCompleto string, upd UpdateTeacher) (Teacher, error) {
	nombreCompleto = core.CleanString(nombreCompleto)
	newName := upd.NombreCompleto
	if newName == "" {
		newName = nombreCompleto
	}
	updated, err := svc.repo.UpdateTeacher(ctx, nombreCompleto, Teacher{
		ID:              upd.ID,
		Asignatura:      upd.Asignatura,
		Apellidos:       upd.Apellidos,
		Nombres:         upd.Nombres,
		NombreCompleto:  newName,
		Correo:          upd.Correo,
		Telefono:        upd.Telefono,
		TipoVinculacion: upd.TipoVinculacion,
	})
	if err != nil {
		return Teacher{}, nombreCompletoTaken(err)
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, nombreCompleto, id string) error {
	return svc.repo.DeleteTeacher(ctx, core.CleanString(nombreCompleto), core.CleanString(id))
}
