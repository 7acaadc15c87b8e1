package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
	"github.com/Zhalalov2-code/online-course/core/quiz"
	"github.com/Zhalalov2-code/online-course/core/user"
)

type quizApi struct {
	svc quiz.Service
}

func registerQuizAPI(g *echo.Group, jwt, teacherOnly echo.MiddlewareFunc, svc quiz.Service) {
	api := quizApi{svc: svc}

	tg := g.Group("/tests", jwt)
	tg.GET("", api.queryTests)
	tg.POST("", api.createTest, teacherOnly)
	tg.GET("/:id", api.retrieveTest)
	tg.POST("/:id/submit", api.submit)

	g.GET("/results", api.queryResults, jwt)
}

// hideAnswer blanks the correct answer for everyone but teachers.
func hideAnswer(usr user.User, t *normalize.Test) {
	if !usr.IsTeacher() {
		t.CorrectAnswerIndex = null.Int{}
	}
}

// Handlers

func (api *quizApi) queryTests(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	views, err := api.svc.Overview(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "querying tests")
	}
	for i := range views {
		hideAnswer(usr, &views[i].Test)
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *quizApi) retrieveTest(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	t, err := api.svc.Test(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == quiz.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "retrieving test")
	}
	hideAnswer(usr, &t)
	return ctx.JSON(http.StatusOK, t)
}

func (api *quizApi) createTest(ctx echo.Context) error {
	var data quiz.NewTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTest")
	}
	t, err := api.svc.CreateTest(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *quizApi) submit(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	var data SubmitRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	grade, err := api.svc.Submit(ctx.Request().Context(), usr, ctx.Param("id"), *data.Answer)
	if err != nil {
		switch errors.Cause(err) {
		case quiz.ErrNotFound:
			return errHttpNotFound
		case quiz.ErrLessonNotCompleted:
			return echo.NewHTTPError(http.StatusForbidden, errLessonNotPassed)
		case quiz.ErrInvalidAnswer:
			return core.NewValidationError(err, core.FieldError{Field: "answer", Error: err.Error()})
		}
		return errors.Wrap(err, "submitting answer")
	}
	return ctx.JSON(http.StatusOK, grade)
}

func (api *quizApi) queryResults(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	views, err := api.svc.Results(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying results")
	}
	for i := range views {
		if views[i].Test != nil {
			hideAnswer(usr, views[i].Test)
		}
	}
	return ctx.JSON(http.StatusOK, views)
}
