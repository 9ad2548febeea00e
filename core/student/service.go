package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
)

var errCodigoExists = errors.New("a student with this codigo already exists")

type (
	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		// FindStudents returns every Student holding codigo, in storage order.
		FindStudents(ctx context.Context, codigo string) ([]Student, error)
		// CreateStudent refuses a codigo already held, with an error caused by core.ErrIdentityTaken.
		CreateStudent(ctx context.Context, std Student) (Student, error)
		// UpdateStudent overwrites the first Student holding codigo. Renaming onto a codigo held by
		// another Student fails the same way as CreateStudent.
		UpdateStudent(ctx context.Context, codigo string, std Student) (Student, error)
		// DeleteStudent removes the first Student holding codigo.
		DeleteStudent(ctx context.Context, codigo, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// codigoTaken turns a refused identity value into a validation error on codigo.
func codigoTaken(err error) error {
	if core.IsIdentityTaken(err) {
		return core.NewValidationError(errCodigoExists, core.FieldError{Field: "codigo", Error: errCodigoExists.Error()})
	}
	return err
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	created, err := svc.repo.CreateStudent(ctx, Student{
		Codigo:         ns.Codigo,
		NombreCompleto: ns.NombreCompleto,
		Correo:         ns.Correo,
	})
	if err != nil {
		return Student{}, codigoTaken(err)
	}
	return created, nil
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Student, 0, len(students))
	for _, std := range students {
		if filter.match(std) {
			filtered = append(filtered, std)
		}
	}
	return filtered, nil
}

// Get returns the first Student holding codigo.
func (svc *Service) Get(ctx context.Context, codigo string) (Student, error) {
	codigo = core.CleanString(codigo)
	found, err := svc.repo.FindStudents(ctx, codigo)
	if err != nil {
		return Student{}, err
	}
	if len(found) == 0 {
		return Student{}, errors.Wrapf(core.ErrNotFound, "student %q", codigo)
	}
	return found[0], nil
}

func (svc *Service) Update(ctx context.Context, codigo string, us UpdateStudent) (Student, error) {
	codigo = core.CleanString(codigo)
	if us.Codigo == "" {
		us.Codigo = codigo
	}
	updated, err := svc.repo.UpdateStudent(ctx, codigo, Student{
		ID:             us.ID,
		Codigo:         us.Codigo,
		NombreCompleto: us.NombreCompleto,
		Correo:         us.Correo,
	})
	if err != nil {
		return Student{}, codigoTaken(err)
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, codigo, id string) error {
	return svc.repo.DeleteStudent(ctx, core.CleanString(codigo), core.CleanString(id))
}
