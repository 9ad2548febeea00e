package echoapi

import (
	"bytes"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/project"
)

const (
	csvContentType = "text/csv; charset=utf-8"
	exportFilename = "proyectos.csv"
)

type projectApi struct {
	svc      *project.Service
	validate *validator.Validate
}

type deleteProjectRequest struct {
	Titulo string `json:"titulo"`
	ID     string `json:"id"`
}

func registerProjectAPI(g *echo.Group, svc *project.Service, validate *validator.Validate) {
	api := projectApi{
		svc:      svc,
		validate: validate,
	}

	pg := g.Group("/proyectos")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.PUT("", api.updateByBody)
	pg.DELETE("", api.destroyByBody)

	// detail endpoints
	pg.GET("/:titulo", api.retrieve)
	pg.PUT("/:titulo", api.update)
	pg.DELETE("/:titulo", api.destroy)

	// outside /proyectos so that every titulo stays addressable
	g.GET("/export/proyectos", api.export)
}

// Handlers

func (api *projectApi) query(ctx echo.Context) error {
	filter := new(project.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []project.Project{})
	}
	filter.Clean()

	projects, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	return ctx.JSON(http.StatusOK, projects)
}

// export sends the projects matching the query filter as a CSV attachment.
func (api *projectApi) export(ctx echo.Context) error {
	filter := new(project.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	// buffered so a failing list still gets a JSON error response
	var buf bytes.Buffer
	if err := api.svc.ExportCSV(ctx.Request().Context(), &buf, *filter); err != nil {
		return errors.Wrap(err, "exporting projects")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFilename+`"`)
	return ctx.Blob(http.StatusOK, csvContentType, buf.Bytes())
}

func (api *projectApi) create(ctx echo.Context) error {
	var data project.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	prj, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusCreated, prj)
}

func (api *projectApi) retrieve(ctx echo.Context) error {
	prj, err := api.svc.Get(ctx.Request().Context(), pathParam(ctx, "titulo"))
	if err != nil {
		return errors.Wrap(err, "retrieving project")
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) update(ctx echo.Context) error {
	var data project.UpdateProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProject")
	}
	return api.doUpdate(ctx, pathParam(ctx, "titulo"), data)
}

// updateByBody updates the Project whose titulo is given in the body. It cannot rename.
func (api *projectApi) updateByBody(ctx echo.Context) error {
	var data project.UpdateProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProject")
	}
	titulo := core.CleanString(data.Titulo)
	if titulo == "" {
		return errMissingIdentity("titulo")
	}
	return api.doUpdate(ctx, titulo, data)
}

func (api *projectApi) doUpdate(ctx echo.Context, titulo string, data project.UpdateProject) error {
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	prj, err := api.svc.Update(ctx.Request().Context(), titulo, data)
	if err != nil {
		return errors.Wrap(err, "updating project")
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), pathParam(ctx, "titulo"), ctx.QueryParam("id")); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *projectApi) destroyByBody(ctx echo.Context) error {
	var data deleteProjectRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to deleteProjectRequest")
	}
	if core.CleanString(data.Titulo) == "" {
		return errMissingIdentity("titulo")
	}
	if err := api.svc.Delete(ctx.Request().Context(), data.Titulo, data.ID); err != nil {
		return errors.Wrap(err, "deleting project")
	}
	return ctx.NoContent(http.StatusNoContent)
}
