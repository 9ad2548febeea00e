package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/investigacion/apps/api/echo"
	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/dashboard"
	"github.com/trezcool/investigacion/core/project"
	"github.com/trezcool/investigacion/core/student"
	"github.com/trezcool/investigacion/core/teacher"
	"github.com/trezcool/investigacion/services/metrics"
	"github.com/trezcool/investigacion/storage/sheets"
	"github.com/trezcool/investigacion/storage/sheets/memsheet"
	"github.com/trezcool/investigacion/tests"
)

type testApp struct {
	*Server
	sheet   *memsheet.Spreadsheet
	logger  *testutil.Logger
	stdRepo student.Repository
	tchRepo teacher.Repository
	prjRepo project.Repository

	// prjTable writes rows the way a manual edit of the sheet would, without identity checks
	prjTable *sheets.Table[project.Project]
}

func setup(t *testing.T) *testApp {
	ctx := context.Background()
	sheet := memsheet.New()
	logger := testutil.NewLogger()

	// set up tables & repos
	stdTable := sheets.NewStudentTable(sheet, logger)
	tchTable := sheets.NewTeacherTable(sheet, logger)
	prjTable := sheets.NewProjectTable(sheet, logger)
	for _, ensure := range []func(context.Context) (bool, error){
		stdTable.EnsureHeader, tchTable.EnsureHeader, prjTable.EnsureHeader,
	} {
		if _, err := ensure(ctx); err != nil {
			t.Fatalf("EnsureHeader() failed: %v", err)
		}
	}
	app := &testApp{
		sheet:   sheet,
		logger:  logger,
		stdRepo: sheets.NewStudentRepository(stdTable),
		tchRepo: sheets.NewTeacherRepository(tchTable),
		prjRepo: sheets.NewProjectRepository(prjTable),

		prjTable: prjTable,
	}

	// set up services
	stdSvc := student.NewService(app.stdRepo)
	tchSvc := teacher.NewService(app.tchRepo)
	prjSvc := project.NewService(app.prjRepo)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	teacher.InitValidators(validate, translator)
	project.InitValidators(validate, translator)

	// set up server
	app.Server = NewServer(ServerDeps{
		Conf:         &core.Config{AppName: "Investigación", TestMode: true},
		Logger:       logger,
		Metrics:      metrics.New(),
		StudentSvc:   stdSvc,
		TeacherSvc:   tchSvc,
		ProjectSvc:   prjSvc,
		DashboardSvc: dashboard.NewService(stdSvc, tchSvc, prjSvc),
		Validate:     validate,
		Translator:   translator,
	})
	return app
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code, "code")
	if tt.wantData == nil {
		assert.Empty(t, rec.Body.String())
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func (app *testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newRequest(method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// decode unmarshals the response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode() failed: %v; body %s", err, rec.Body.String())
	}
}
