package tests

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/project"
	"github.com/trezcool/investigacion/storage/sheets"
	"github.com/trezcool/investigacion/tests"
)

func Test_projectApi_query(t *testing.T) {
	app := setup(t)

	path := func(search, estado, periodo, docente string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		if estado != "" {
			v.Add("estado", estado)
		}
		if periodo != "" {
			v.Add("periodo", periodo)
		}
		if docente != "" {
			v.Add("docente", docente)
		}
		return "/v1/proyectos?" + v.Encode()
	}

	app.run(t, []httpTest{
		{name: "empty sheet", path: "/v1/proyectos", wantCode: http.StatusOK, wantData: marchallList(t)},
	})

	p1 := testutil.CreateProject(t, app.prjRepo, "Robot seguidor", "2025-1", "PROYECTO I", "Lina Torres", project.EstadoAprobado, "Ana", "Beto")
	p2 := testutil.CreateProject(t, app.prjRepo, "Red de sensores", "2025-1", "PROYECTO II", "Omar Díaz", "")
	p3 := testutil.CreateProject(t, app.prjRepo, "App de tutorías", "2024-2", "PROYECTO I", "Lina Torres", project.EstadoFinalizado, "Caro")

	app.run(t, []httpTest{
		{name: "get all", path: "/v1/proyectos", wantCode: http.StatusOK, wantData: marchallList(t, p1, p2, p3)},
		{name: "search by title", path: path("SENSORES", "", "", ""), wantCode: http.StatusOK, wantData: marchallList(t, p2)},
		{name: "search by subject", path: path("proyecto i", "", "", ""), wantCode: http.StatusOK, wantData: marchallList(t, p1, p2, p3)},
		{name: "estado", path: path("", "Aprobado", "", ""), wantCode: http.StatusOK, wantData: marchallList(t, p1)},
		{name: "estado=Sin estado", path: path("", project.SinEstado, "", ""), wantCode: http.StatusOK, wantData: marchallList(t, p2)},
		{name: "estado=todos", path: path("", "todos", "", ""), wantCode: http.StatusOK, wantData: marchallList(t, p1, p2, p3)},
		{name: "periodo", path: path("", "", "2024-2", ""), wantCode: http.StatusOK, wantData: marchallList(t, p3)},
		{name: "docente", path: path("", "", "2025-1", "Lina Torres"), wantCode: http.StatusOK, wantData: marchallList(t, p1)},
		{name: "all combo (empty)", path: path("robot", "Finalizado", "", ""), wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name: "retrieve", path: "/v1/proyectos/" + url.PathEscape("App de tutorías"),
			wantCode: http.StatusOK, wantData: marchallObj(t, p3),
		},
	})
}

func Test_projectApi_create(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/v1/proyectos",
			body:     []byte(`{"titulo": "Robot", "docente": "Lina Torres"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"periodo": "this field cannot be blank", "asignatura": "this field cannot be blank"}`),
		},
		{
			name: "unknown estado", method: http.MethodPost, path: "/v1/proyectos",
			body:     []byte(`{"titulo": "Robot", "periodo": "2025-1", "asignatura": "PROYECTO I", "estado": "Cancelado"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"estado": "must be one of Formulación, En desarrollo, Aprobado, Finalizado or Archivado"}`),
		},
	})

	req, rec := newRequest(http.MethodPost, "/v1/proyectos", []byte(`{
		"titulo": " Robot seguidor ", "periodo": "2025-1", "asignatura": "PROYECTO I",
		"docente": "Lina Torres", "estudiantes": [" Ana ", "", "Beto"], "estado": "Sin estado"
	}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created project.Project
	decode(t, rec, &created)
	assert.Equal(t, project.Project{
		ID:          created.ID,
		Periodo:     "2025-1",
		Asignatura:  "PROYECTO I",
		Docente:     "Lina Torres",
		Estudiantes: []string{"Ana", "Beto"},
		Titulo:      "Robot seguidor",
		Estado:      "",
	}, created)
	assert.Equal(t,
		[]string{"2025-1", "PROYECTO I", "Lina Torres", "Ana, Beto", "Robot seguidor", "", "", created.ID},
		app.sheet.Rows(sheets.ProjectsSheet)[1],
	)

	app.run(t, []httpTest{
		{
			name: "duplicate titulo", method: http.MethodPost, path: "/v1/proyectos",
			body:     []byte(`{"titulo": "Robot seguidor", "periodo": "2025-2", "asignatura": "PROYECTO II"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"titulo": "a project with this title already exists"}`),
		},
		{name: "listed after create", path: "/v1/proyectos", wantCode: http.StatusOK, wantData: marchallList(t, created)},
	})
}

func Test_projectApi_update(t *testing.T) {
	app := setup(t)
	p1 := testutil.CreateProject(t, app.prjRepo, "Robot seguidor", "2025-1", "PROYECTO I", "Lina Torres", project.EstadoFormulacion, "Ana")
	p2 := testutil.CreateProject(t, app.prjRepo, "Red de sensores", "2025-1", "PROYECTO II", "Omar Díaz", "")

	before := app.sheet.Rows(sheets.ProjectsSheet)
	app.run(t, []httpTest{
		{
			name: "unknown titulo", method: http.MethodPut, path: "/v1/proyectos/Nada",
			body:     []byte(`{"periodo": "2025-1", "asignatura": "PROYECTO I"}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: core.ErrNotFound.Error()}),
		},
		{
			name: "unknown titulo (body-addressed)", method: http.MethodPut, path: "/v1/proyectos",
			body:     []byte(`{"titulo": "Nada", "periodo": "2025-1", "asignatura": "PROYECTO I"}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: core.ErrNotFound.Error()}),
		},
	})
	// header row & records untouched
	assert.Equal(t, before, app.sheet.Rows(sheets.ProjectsSheet))

	updated := p1
	updated.Estado = project.EstadoEnDesarrollo
	updated.Estudiantes = []string{"Ana", "Beto"}
	updated.Link = "https://drive.test/robot"

	app.run(t, []httpTest{
		{
			name: "update", method: http.MethodPut, path: "/v1/proyectos/" + url.PathEscape("Robot seguidor"),
			body: []byte(`{"id": "` + p1.ID + `", "periodo": "2025-1", "asignatura": "PROYECTO I", "docente": "Lina Torres",
				"estudiantes": ["Ana", "Beto"], "link": "https://drive.test/robot", "estado": "En desarrollo"}`),
			wantCode: http.StatusOK, wantData: marchallObj(t, updated),
		},
		{name: "list", path: "/v1/proyectos", wantCode: http.StatusOK, wantData: marchallList(t, updated, p2)},
	})
}

func Test_projectApi_duplicateTitles(t *testing.T) {
	app := setup(t)
	first := testutil.CreateProject(t, app.prjRepo, "Robot", "2025-1", "PROYECTO I", "Lina Torres", "")
	// duplicates can only come from manual edits of the sheet
	second, err := app.prjTable.Create(context.Background(), project.Project{
		Periodo: "2025-2", Asignatura: "PROYECTO II", Docente: "Omar Díaz", Estudiantes: []string{}, Titulo: "Robot",
	})
	require.NoError(t, err)
	_, err = app.prjRepo.CreateProject(context.Background(), project.Project{Titulo: "Robot", Estudiantes: []string{}})
	assert.True(t, core.IsIdentityTaken(err))

	updated := first
	updated.Periodo = "2026-1"
	updated.Estado = project.EstadoArchivado

	app.run(t, []httpTest{
		{
			name: "update acts on the first row", method: http.MethodPut, path: "/v1/proyectos/Robot",
			body:     []byte(`{"periodo": "2026-1", "asignatura": "PROYECTO I", "docente": "Lina Torres", "estado": "Archivado"}`),
			wantCode: http.StatusOK, wantData: marchallObj(t, updated),
		},
		{name: "second untouched", path: "/v1/proyectos", wantCode: http.StatusOK, wantData: marchallList(t, updated, second)},
		{name: "delete acts on the first row", method: http.MethodDelete, path: "/v1/proyectos/Robot", wantCode: http.StatusNoContent},
		{name: "second left", path: "/v1/proyectos", wantCode: http.StatusOK, wantData: marchallList(t, second)},
	})
	assert.True(t, app.logger.Logged("warn", core.ErrNonUniqueIdentity))
}

func Test_projectApi_export(t *testing.T) {
	app := setup(t)

	t.Run("empty", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/export/proyectos")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `"Período","Asignatura","Docente","Estudiantes","Título","Estado","Link"`+"\n", rec.Body.String())
	})

	testutil.CreateProject(t, app.prjRepo, "T", "2025-1", "PROYECTO I", "A", "", "X", "Y")
	testutil.CreateProject(t, app.prjRepo, `Uno, "dos"`, "2025-2", "PROYECTO II", "B", project.EstadoAprobado)

	t.Run("all", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/export/proyectos")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="proyectos.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t,
			`"Período","Asignatura","Docente","Estudiantes","Título","Estado","Link"`+"\n"+
				`"2025-1","PROYECTO I","A","X, Y","T","Sin estado",""`+"\n"+
				`"2025-2","PROYECTO II","B","","Uno, ""dos""","Aprobado",""`+"\n",
			rec.Body.String(),
		)
	})

	t.Run("filtered", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/export/proyectos?estado=Aprobado")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t,
			`"Período","Asignatura","Docente","Estudiantes","Título","Estado","Link"`+"\n"+
				`"2025-2","PROYECTO II","B","","Uno, ""dos""","Aprobado",""`+"\n",
			rec.Body.String(),
		)
	})

	t.Run("backend unavailable", func(t *testing.T) {
		app.sheet.Fail(assert.AnError)
		defer app.sheet.Fail(nil)

		req, rec := newRequest(http.MethodGet, "/v1/export/proyectos")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusServiceUnavailable,
			wantData: marchallObj(t, httpErr{Error: core.ErrBackendUnavailable.Error()}),
		}, rec)
	})
}

func Test_projectApi_titleLikeARoute(t *testing.T) {
	app := setup(t)
	p := testutil.CreateProject(t, app.prjRepo, "export", "2025-1", "PROYECTO I", "Lina Torres", "")

	app.run(t, []httpTest{
		{name: "retrieve", path: "/v1/proyectos/export", wantCode: http.StatusOK, wantData: marchallObj(t, p)},
		{name: "delete", method: http.MethodDelete, path: "/v1/proyectos/export", wantCode: http.StatusNoContent},
		{name: "gone", path: "/v1/proyectos/export", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: core.ErrNotFound.Error()})},
	})
}
