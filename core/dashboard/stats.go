// Package dashboard aggregates the figures shown on the dashboard.
package dashboard

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/investigacion/core/project"
	"github.com/trezcool/investigacion/core/student"
	"github.com/trezcool/investigacion/core/teacher"
)

type (
	StudentLister interface {
		Query(ctx context.Context, filter student.QueryFilter) ([]student.Student, error)
	}

	TeacherLister interface {
		Query(ctx context.Context, filter teacher.QueryFilter) ([]teacher.Teacher, error)
	}

	ProjectLister interface {
		Query(ctx context.Context, filter project.QueryFilter) ([]project.Project, error)
	}

	Stats struct {
		TotalEstudiantes int `json:"totalEstudiantes"`
		TotalDocentes    int `json:"totalDocentes"`
		TotalProyectos   int `json:"totalProyectos"`
		// Promedio is the number of projects per student.
		Promedio          float64        `json:"promedio"`
		ProjectsByStatus  map[string]int `json:"projectsByStatus"`
		ProjectsBySubject map[string]int `json:"projectsBySubject"`
		ProjectsByPeriod  map[string]int `json:"projectsByPeriod"`
	}

	Service struct {
		students StudentLister
		teachers TeacherLister
		projects ProjectLister
	}
)

func NewService(students StudentLister, teachers TeacherLister, projects ProjectLister) *Service {
	return &Service{students: students, teachers: teachers, projects: projects}
}

// Stats lists the three tables concurrently; any failure fails the whole computation.
func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	var (
		students []student.Student
		teachers []teacher.Teacher
		projects []project.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = svc.students.Query(gctx, student.QueryFilter{})
		return errors.Wrap(err, "listing students")
	})
	g.Go(func() (err error) {
		teachers, err = svc.teachers.Query(gctx, teacher.QueryFilter{})
		return errors.Wrap(err, "listing teachers")
	})
	g.Go(func() (err error) {
		projects, err = svc.projects.Query(gctx, project.QueryFilter{})
		return errors.Wrap(err, "listing projects")
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	return Compute(len(students), len(teachers), projects), nil
}

// Compute builds the statistics from the table sizes and the projects.
func Compute(nStudents, nTeachers int, projects []project.Project) Stats {
	stats := Stats{
		TotalEstudiantes:  nStudents,
		TotalDocentes:     nTeachers,
		TotalProyectos:    len(projects),
		ProjectsByStatus:  make(map[string]int, len(project.AllEstados)+1),
		ProjectsBySubject: make(map[string]int),
		ProjectsByPeriod:  make(map[string]int),
	}
	for _, e := range project.AllEstados {
		stats.ProjectsByStatus[e.Label()] = 0
	}
	stats.ProjectsByStatus[project.SinEstado] = 0

	for _, p := range projects {
		stats.ProjectsByStatus[p.Estado.Label()]++
		stats.ProjectsBySubject[p.Asignatura]++
		stats.ProjectsByPeriod[p.Periodo]++
	}
	if nStudents > 0 {
		stats.Promedio = float64(len(projects)) / float64(nStudents)
	}
	return stats
}
