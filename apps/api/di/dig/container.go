package dig_container

import (
	"context"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	echoapi "github.com/trezcool/investigacion/apps/api/echo"
	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/dashboard"
	"github.com/trezcool/investigacion/core/project"
	"github.com/trezcool/investigacion/core/student"
	"github.com/trezcool/investigacion/core/teacher"
	logsvc "github.com/trezcool/investigacion/services/logger"
	"github.com/trezcool/investigacion/services/metrics"
	"github.com/trezcool/investigacion/storage/sheets"
	"github.com/trezcool/investigacion/storage/sheets/gsheets"
	"github.com/trezcool/investigacion/storage/sheets/memsheet"
)

type (
	// Tables groups the sheet tables for start-up and maintenance tasks.
	Tables struct {
		dig.In
		Students *sheets.Table[student.Student]
		Teachers *sheets.Table[teacher.Teacher]
		Projects *sheets.Table[project.Project]
	}

	serverParams struct {
		dig.In
		Conf         *core.Config
		Logger       core.Logger
		Metrics      *metrics.Metrics
		StudentSvc   *student.Service
		TeacherSvc   *teacher.Service
		ProjectSvc   *project.Service
		DashboardSvc *dashboard.Service
		Validate     *validator.Validate
		Translator   ut.Translator
	}
)

func newZap(conf *core.Config) (*zap.Logger, error) {
	return logsvc.NewZap(conf)
}

func newLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

// newValueService returns the instrumented spreadsheet backend, created once and shared by every table.
func newValueService(conf *core.Config, logger core.Logger, m *metrics.Metrics) (sheets.ValueService, error) {
	var vs sheets.ValueService
	if conf.Sheets.InMemory {
		logger.Warn("using an in-memory spreadsheet: data is lost on exit")
		vs = memsheet.New()
	} else {
		client, err := gsheets.New(context.Background(), conf.Sheets)
		if err != nil {
			return nil, errors.Wrap(err, "creating sheets client")
		}
		vs = client
	}

	callMetrics, err := sheets.NewCallMetrics(m.Registerer())
	if err != nil {
		return nil, errors.Wrap(err, "registering sheets metrics")
	}
	return sheets.Instrument(vs, callMetrics), nil
}

func newDashboardService(stdSvc *student.Service, tchSvc *teacher.Service, prjSvc *project.Service) *dashboard.Service {
	return dashboard.NewService(stdSvc, tchSvc, prjSvc)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	teacher.InitValidators(validate, translator)
	project.InitValidators(validate, translator)
	return validate
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		Metrics:      p.Metrics,
		StudentSvc:   p.StudentSvc,
		TeacherSvc:   p.TeacherSvc,
		ProjectSvc:   p.ProjectSvc,
		DashboardSvc: p.DashboardSvc,
		Validate:     p.Validate,
		Translator:   p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newZap))
	must(c.Provide(newLogger))
	must(c.Provide(metrics.New))
	must(c.Provide(newValueService))
	must(c.Provide(sheets.NewStudentTable))
	must(c.Provide(sheets.NewTeacherTable))
	must(c.Provide(sheets.NewProjectTable))
	must(c.Provide(sheets.NewStudentRepository))
	must(c.Provide(sheets.NewTeacherRepository))
	must(c.Provide(sheets.NewProjectRepository))
	must(c.Provide(student.NewService))
	must(c.Provide(teacher.NewService))
	must(c.Provide(project.NewService))
	must(c.Provide(newDashboardService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newServer))

	return c
}

// EnsureHeaders writes the missing header cells of every sheet.
func EnsureHeaders(ctx context.Context, tables Tables, logger core.Logger) error {
	for _, t := range []interface {
		Sheet() string
		EnsureHeader(context.Context) (bool, error)
	}{tables.Students, tables.Teachers, tables.Projects} {
		written, err := t.EnsureHeader(ctx)
		if err != nil {
			return errors.Wrapf(err, "ensuring %s header", t.Sheet())
		}
		if written {
			logger.Info("header written", map[string]interface{}{"sheet": t.Sheet()})
		}
	}
	return nil
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
