package sheets_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/investigacion/storage/sheets"
	"github.com/trezcool/investigacion/storage/sheets/memsheet"
)

const callsHelp = `
# HELP investigacion_sheets_calls_total Total number of spreadsheet range calls.
# TYPE investigacion_sheets_calls_total counter
`

func TestInstrument(t *testing.T) {
	ctx := context.Background()

	newInstrumented := func(t *testing.T) (*prometheus.Registry, *memsheet.Spreadsheet, sheets.ValueService) {
		reg := prometheus.NewRegistry()
		m, err := sheets.NewCallMetrics(reg)
		require.NoError(t, err)
		ms := memsheet.New()
		return reg, ms, sheets.Instrument(ms, m)
	}

	reg, ms, vs := newInstrumented(t)
	otherReg, _, otherVs := newInstrumented(t)

	require.NoError(t, vs.Update(ctx, "ESTUDIANTES!A1:B1", [][]string{{"a", "b"}}))
	_, err := vs.Get(ctx, "ESTUDIANTES!A1:B")
	require.NoError(t, err)
	ms.Fail(assert.AnError)
	_, err = vs.Get(ctx, "ESTUDIANTES!A1:B")
	assert.Equal(t, assert.AnError, err)

	require.NoError(t, otherVs.Append(ctx, "ESTUDIANTES!A2:B", [][]string{{"c"}}))

	assert.Equal(t, 1, ms.Calls("update"))
	assert.Equal(t, 2, ms.Calls("get"))

	assert.NoError(t, promtestutil.GatherAndCompare(reg, strings.NewReader(callsHelp+`
investigacion_sheets_calls_total{outcome="error",verb="get"} 1
investigacion_sheets_calls_total{outcome="ok",verb="get"} 1
investigacion_sheets_calls_total{outcome="ok",verb="update"} 1
`), "investigacion_sheets_calls_total"))

	// each instance counts its own calls only
	assert.NoError(t, promtestutil.GatherAndCompare(otherReg, strings.NewReader(callsHelp+`
investigacion_sheets_calls_total{outcome="ok",verb="append"} 1
`), "investigacion_sheets_calls_total"))

	count, err := promtestutil.GatherAndCount(reg, "investigacion_sheets_call_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count) // get and update series

	_, err = sheets.NewCallMetrics(reg)
	assert.Error(t, err, "collectors are registered once per registry")
}
