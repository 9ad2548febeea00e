package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/teacher"
)

type teacherApi struct {
	svc      *teacher.Service
	validate *validator.Validate
}

type deleteTeacherRequest struct {
	NombreCompleto string `json:"nombreCompleto"`
	ID             string `json:"id"`
}

func registerTeacherAPI(g *echo.Group, svc *teacher.Service, validate *validator.Validate) {
	api := teacherApi{
		svc:      svc,
		validate: validate,
	}

	tg := g.Group("/docentes")
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.PUT("", api.updateByBody)
	tg.DELETE("", api.destroyByBody)

	// detail endpoints
	tg.GET("/:nombreCompleto", api.retrieve)
	tg.PUT("/:nombreCompleto", api.update)
	tg.DELETE("/:nombreCompleto", api.destroy)
}

// Handlers

func (api *teacherApi) query(ctx echo.Context) error {
	filter := new(teacher.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []teacher.Teacher{})
	}
	filter.Clean()

	teachers, err := api.svc.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tch, err := api.svc.Get(ctx.Request().Context(), pathParam(ctx, "nombreCompleto"))
	if err != nil {
		return errors.Wrap(err, "retrieving teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) update(ctx echo.Context) error {
	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	return api.doUpdate(ctx, pathParam(ctx, "nombreCompleto"), data)
}

// updateByBody updates the Teacher whose nombreCompleto is given in the body. It cannot rename.
func (api *teacherApi) updateByBody(ctx echo.Context) error {
	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	nombreCompleto := core.CleanString(data.NombreCompleto)
	if nombreCompleto == "" {
		return errMissingIdentity("nombreCompleto")
	}
	return api.doUpdate(ctx, nombreCompleto, data)
}

func (api *teacherApi) doUpdate(ctx echo.Context, nombreCompleto string, data teacher.UpdateTeacher) error {
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	tch, err := api.svc.Update(ctx.Request().Context(), nombreCompleto, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, tch)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), pathParam(ctx, "nombreCompleto"), ctx.QueryParam("id")); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *teacherApi) destroyByBody(ctx echo.Context) error {
	var data deleteTeacherRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to deleteTeacherRequest")
	}
	if core.CleanString(data.NombreCompleto) == "" {
		return errMissingIdentity("nombreCompleto")
	}
	if err := api.svc.Delete(ctx.Request().Context(), data.NombreCompleto, data.ID); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}
