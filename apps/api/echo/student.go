package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/student"
)

type studentApi struct {
	svc      *student.Service
	validate *validator.Validate
}

// deleteStudentRequest addresses a Student through the request body.
type deleteStudentRequest struct {
	Codigo string `json:"codigo"`
	ID     string `json:"id"`
}

func registerStudentAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := studentApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/estudiantes")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("", api.updateByBody)
	sg.DELETE("", api.destroyByBody)

	// detail endpoints
	sg.GET("/:codigo", api.retrieve)
	sg.PUT("/:codigo", api.update)
	sg.DELETE("/:codigo", api.destroy)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	filter.Clean()

	students, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.Get(ctx.Request().Context(), pathParam(ctx, "codigo"))
	if err != nil {
		return errors.Wrap(err, "retrieving student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	return api.doUpdate(ctx, pathParam(ctx, "codigo"), data)
}

// updateByBody updates the Student whose codigo is given in the body. It cannot rename.
func (api *studentApi) updateByBody(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	codigo := core.CleanString(data.Codigo)
	if codigo == "" {
		return errMissingIdentity("codigo")
	}
	return api.doUpdate(ctx, codigo, data)
}

func (api *studentApi) doUpdate(ctx echo.Context, codigo string, data student.UpdateStudent) error {
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	std, err := api.svc.Update(ctx.Request().Context(), codigo, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), pathParam(ctx, "codigo"), ctx.QueryParam("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroyByBody(ctx echo.Context) error {
	var data deleteStudentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to deleteStudentRequest")
	}
	if core.CleanString(data.Codigo) == "" {
		return errMissingIdentity("codigo")
	}
	if err := api.svc.Delete(ctx.Request().Context(), data.Codigo, data.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
