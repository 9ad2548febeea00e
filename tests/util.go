package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/project"
	"github.com/trezcool/investigacion/core/student"
	"github.com/trezcool/investigacion/core/teacher"
)

type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger is a core.Logger keeping every entry in memory. Fatal does not exit.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

func (l *Logger) Entries(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []LogEntry
	for _, e := range l.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Logged reports whether an entry of level carries an error caused by target.
func (l *Logger) Logged(level string, target error) bool {
	for _, e := range l.Entries(level) {
		for _, arg := range e.Args {
			if err, ok := arg.(error); ok && errors.Cause(err) == target {
				return true
			}
		}
	}
	return false
}

func CreateStudent(t *testing.T, repo student.Repository, codigo, nombreCompleto, correo string) student.Student {
	std, err := repo.CreateStudent(context.Background(), student.Student{
		Codigo:         codigo,
		NombreCompleto: nombreCompleto,
		Correo:         correo,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateTeacher(
	t *testing.T,
	repo teacher.Repository,
	nombreCompleto, asignatura, correo string,
	vinculacion teacher.TipoVinculacion,
) teacher.Teacher {
	tch, err := repo.CreateTeacher(context.Background(), teacher.Teacher{
		Asignatura:      asignatura,
		NombreCompleto:  nombreCompleto,
		Correo:          correo,
		TipoVinculacion: vinculacion,
	})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

func CreateProject(
	t *testing.T,
	repo project.Repository,
	titulo, periodo, asignatura, docente string,
	estado project.Estado,
	estudiantes ...string,
) project.Project {
	if estudiantes == nil {
		estudiantes = []string{}
	}
	prj, err := repo.CreateProject(context.Background(), project.Project{
		Periodo:     periodo,
		Asignatura:  asignatura,
		Docente:     docente,
		Estudiantes: estudiantes,
		Titulo:      titulo,
		Estado:      estado,
	})
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	return prj
}
