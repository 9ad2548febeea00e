package student_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/investigacion/core"
	"github.com/trezcool/investigacion/core/student"
	"github.com/trezcool/investigacion/storage/sheets"
	"github.com/trezcool/investigacion/storage/sheets/memsheet"
	"github.com/trezcool/investigacion/tests"
)

func setup(t *testing.T) (*student.Service, student.Repository) {
	table := sheets.NewStudentTable(memsheet.New(), testutil.NewLogger())
	if _, err := table.EnsureHeader(context.Background()); err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := sheets.NewStudentRepository(table)
	return student.NewService(repo), repo
}

func newValidate() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}

func TestNewStudent_Validate(t *testing.T) {
	validate := newValidate()

	ns := student.NewStudent{Codigo: " S1 ", NombreCompleto: "\tAna Gómez", Correo: "ana@test.co "}
	require.NoError(t, ns.Validate(validate))
	assert.Equal(t, student.NewStudent{Codigo: "S1", NombreCompleto: "Ana Gómez", Correo: "ana@test.co"}, ns)

	ns = student.NewStudent{Codigo: " ", NombreCompleto: "Ana"}
	err := ns.Validate(validate)
	require.Error(t, err)
	var fields []string
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"codigo", "correo"}, fields)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	std, err := svc.Create(ctx, student.NewStudent{Codigo: "S1", NombreCompleto: "Ana", Correo: "ana@test.co"})
	require.NoError(t, err)
	assert.NotEmpty(t, std.ID)

	_, err = svc.Create(ctx, student.NewStudent{Codigo: "S1", NombreCompleto: "Otra", Correo: "otra@test.co"})
	require.Error(t, err)
	vErr, ok := errors.Cause(err).(*core.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "codigo", vErr.Fields[0].Field)

	got, err := svc.Get(ctx, " S1 ")
	require.NoError(t, err)
	assert.Equal(t, std, got)
}

func TestService_Query(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)

	students, err := svc.Query(ctx, student.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []student.Student{}, students)

	ana := testutil.CreateStudent(t, repo, "S1", "Ana Gómez", "ana@test.co")
	beto := testutil.CreateStudent(t, repo, "S2", "Beto Ruiz", "beto@uni.co")

	tests := []struct {
		name   string
		filter student.QueryFilter
		want   []student.Student
	}{
		{name: "all", want: []student.Student{ana, beto}},
		{name: "by name", filter: student.QueryFilter{Search: "gómez"}, want: []student.Student{ana}},
		{name: "by email", filter: student.QueryFilter{Search: "UNI.CO"}, want: []student.Student{beto}},
		{name: "none", filter: student.QueryFilter{Search: "zzz"}, want: []student.Student{}},
		{name: "blank search", filter: student.QueryFilter{Search: "   "}, want: []student.Student{ana, beto}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.Clean()
			got, err := svc.Query(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := setup(t)
	ana := testutil.CreateStudent(t, repo, "S1", "Ana", "ana@test.co")
	testutil.CreateStudent(t, repo, "S2", "Beto", "beto@test.co")

	_, err := svc.Update(ctx, "S9", student.UpdateStudent{NombreCompleto: "X", Correo: "x"})
	assert.True(t, core.IsNotFound(err))

	_, err = svc.Update(ctx, "S1", student.UpdateStudent{Codigo: "S2", NombreCompleto: "Ana", Correo: "ana@test.co"})
	_, isValidation := errors.Cause(err).(*core.ValidationError)
	assert.True(t, isValidation)

	renamed, err := svc.Update(ctx, "S1", student.UpdateStudent{ID: ana.ID, Codigo: "S10", NombreCompleto: "Ana", Correo: "ana@test.co"})
	require.NoError(t, err)
	assert.Equal(t, student.Student{ID: ana.ID, Codigo: "S10", NombreCompleto: "Ana", Correo: "ana@test.co"}, renamed)

	_, err = svc.Get(ctx, "S1")
	assert.True(t, core.IsNotFound(err))

	require.NoError(t, svc.Delete(ctx, " S10 ", ""))
	assert.True(t, core.IsNotFound(svc.Delete(ctx, "S10", "")))
}
