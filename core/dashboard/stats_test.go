package dashboard

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/project"
	"github.com/trezcool/investigacion/core/student"
	"github.com/trezcool/investigacion/core/teacher"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type (
	studentsStub struct {
		students []student.Student
		err      error
	}
	teachersStub struct {
		teachers []teacher.Teacher
		err      error
	}
	projectsStub struct {
		projects []project.Project
		err      error
	}
)

func (s studentsStub) Query(ctx context.Context, _ student.QueryFilter) ([]student.Student, error) {
	return s.students, s.err
}

func (s teachersStub) Query(ctx context.Context, _ teacher.QueryFilter) ([]teacher.Teacher, error) {
	return s.teachers, s.err
}

// Query blocks until the context is done when err is set, like a slow backend would.
func (s projectsStub) Query(ctx context.Context, _ project.QueryFilter) ([]project.Project, error) {
	if s.err != nil {
		<-ctx.Done()
		return nil, s.err
	}
	return s.projects, nil
}

func TestCompute(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		stats := Compute(0, 0, nil)
		assert.Equal(t, 0.0, stats.Promedio)
		assert.Equal(t, map[string]int{
			"Formulación": 0, "En desarrollo": 0, "Aprobado": 0, "Finalizado": 0, "Archivado": 0, "Sin estado": 0,
		}, stats.ProjectsByStatus)
		assert.Empty(t, stats.ProjectsBySubject)
		assert.Empty(t, stats.ProjectsByPeriod)
	})

	t.Run("populated", func(t *testing.T) {
		stats := Compute(4, 2, []project.Project{
			{Periodo: "2025-1", Asignatura: "PROYECTO I", Estado: project.EstadoAprobado},
			{Periodo: "2025-1", Asignatura: "PROYECTO II"},
			{Periodo: "2024-2", Asignatura: "PROYECTO I", Estado: project.EstadoAprobado},
		})
		assert.Equal(t, 4, stats.TotalEstudiantes)
		assert.Equal(t, 2, stats.TotalDocentes)
		assert.Equal(t, 3, stats.TotalProyectos)
		assert.Equal(t, 0.75, stats.Promedio)
		assert.Equal(t, 2, stats.ProjectsByStatus["Aprobado"])
		assert.Equal(t, 1, stats.ProjectsByStatus[project.SinEstado])
		assert.Equal(t, 0, stats.ProjectsByStatus["Archivado"])
		assert.Equal(t, map[string]int{"PROYECTO I": 2, "PROYECTO II": 1}, stats.ProjectsBySubject)
		assert.Equal(t, map[string]int{"2025-1": 2, "2024-2": 1}, stats.ProjectsByPeriod)
	})
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		svc := NewService(
			studentsStub{students: make([]student.Student, 3)},
			teachersStub{teachers: make([]teacher.Teacher, 1)},
			projectsStub{projects: []project.Project{{Periodo: "2025-1", Asignatura: "PROYECTO I"}}},
		)
		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalEstudiantes)
		assert.Equal(t, 1, stats.TotalDocentes)
		assert.Equal(t, 1, stats.TotalProyectos)
		assert.InDelta(t, 1.0/3, stats.Promedio, 1e-9)
	})

	t.Run("one failing list fails the whole call", func(t *testing.T) {
		unavailable := errors.Wrap(core.ErrBackendUnavailable, "reading ESTUDIANTES")
		svc := NewService(
			studentsStub{err: unavailable},
			teachersStub{},
			projectsStub{err: context.Canceled}, // only returns once the failure cancels the group
		)
		_, err := svc.Stats(ctx)
		require.Error(t, err)
		assert.True(t, core.IsBackendUnavailable(err))
	})
}
