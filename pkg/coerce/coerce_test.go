package coerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nakula/pkg/classify"
	"nakula/pkg/core"
)

func testRegistry(t *testing.T) *classify.Registry {
	t.Helper()
	reg, err := classify.NewBuilder("test").
		IntEpoch("updateTime").
		IntEpochSeconds("created").
		StringTime("datetime").
		Numeric("free").
		Boolean("priceProtect").
		TimestampKeys("startTime", "endTime").
		Build()
	require.NoError(t, err)
	return reg
}

func TestInbound_EpochMilliseconds(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("updateTime", []core.Value{
		core.NumberFromInt(1700000000000),
		core.String("1700000000001"),
		core.Nil(),
	}))

	out, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	v, _ := out.Cell("updateTime", 0)
	ts, ok := v.TimeVal()
	require.True(t, ok)
	assert.True(t, ts.Equal(time.UnixMilli(1700000000000)))

	// Quoted epoch integers convert the same way.
	v, _ = out.Cell("updateTime", 1)
	ts, ok = v.TimeVal()
	require.True(t, ok)
	assert.True(t, ts.Equal(time.UnixMilli(1700000000001)))

	// Nil cells pass through.
	v, _ = out.Cell("updateTime", 2)
	assert.True(t, v.IsNil())
}

func TestInbound_EpochSeconds(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("created", []core.Value{core.NumberFromInt(1700000000)}))

	out, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	v, _ := out.Cell("created", 0)
	ts, ok := v.TimeVal()
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Unix(1700000000, 0)))
}

func TestInbound_StringTimestamp(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("datetime", []core.Value{
		core.String("2023-11-14T22:13:20Z"),
		core.String("2023-11-14 22:13:20"),
		core.String("2023-11-14"),
	}))

	out, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	for _, row := range []int{0, 1} {
		v, _ := out.Cell("datetime", row)
		ts, ok := v.TimeVal()
		require.True(t, ok, "row %d", row)
		assert.True(t, ts.Equal(want), "row %d", row)
	}

	v, _ := out.Cell("datetime", 2)
	ts, ok := v.TimeVal()
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2023, 11, 14, 0, 0, 0, 0, time.UTC)))
}

func TestInbound_NumericString(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("free", []core.Value{
		core.String("0.5"),
		core.NumberFromInt(3),
	}))

	out, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	v, _ := out.Cell("free", 0)
	d, ok := v.Num()
	require.True(t, ok)
	assert.Equal(t, "0.5", d.Text('f'))

	// Already-numeric cells are left alone.
	v, _ = out.Cell("free", 1)
	assert.True(t, v.Equal(core.NumberFromInt(3)))
}

func TestInbound_BooleanString(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("priceProtect", []core.Value{
		core.String("true"),
		core.String("FALSE"),
		core.Bool(true),
	}))

	out, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	v, _ := out.Cell("priceProtect", 0)
	assert.True(t, v.Equal(core.Bool(true)))
	v, _ = out.Cell("priceProtect", 1)
	assert.True(t, v.Equal(core.Bool(false)))
	v, _ = out.Cell("priceProtect", 2)
	assert.True(t, v.Equal(core.Bool(true)))
}

func TestInbound_UnclassifiedPassthrough(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("asset", []core.Value{core.String("BTC")}))

	out, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	v, _ := out.Cell("asset", 0)
	assert.True(t, v.Equal(core.String("BTC")))
}

func TestInbound_ConversionError(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  core.Value
		want   string
	}{
		{"bad numeric", "free", core.String("abc"), "NUMERIC_STRING"},
		{"bad boolean", "priceProtect", core.String("yes"), "BOOLEAN_STRING"},
		{"bad epoch", "updateTime", core.Bool(true), "INT_EPOCH_TIMESTAMP"},
		{"bad string time", "datetime", core.String("not a date"), "STRING_TIMESTAMP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := core.NewTable()
			require.NoError(t, tbl.AddColumn(tt.column, []core.Value{tt.value}))

			_, err := Inbound(tbl, testRegistry(t))
			require.Error(t, err)

			var convErr *core.ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, "test", convErr.Exchange)
			assert.Equal(t, tt.column, convErr.Column)
			assert.Equal(t, 0, convErr.Row)
			assert.Equal(t, tt.want, convErr.Want)
		})
	}
}

func TestInbound_DoesNotMutateInput(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("free", []core.Value{core.String("0.5")}))

	_, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	v, _ := tbl.Cell("free", 0)
	s, ok := v.Str()
	require.True(t, ok, "input table keeps its raw string cell")
	assert.Equal(t, "0.5", s)
}

func TestInbound_Idempotent(t *testing.T) {
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("updateTime", []core.Value{core.NumberFromInt(1700000000000)}))
	require.NoError(t, tbl.AddColumn("free", []core.Value{core.String("0.5")}))
	require.NoError(t, tbl.AddColumn("priceProtect", []core.Value{core.String("true")}))

	once, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)
	twice, err := Inbound(once, testRegistry(t))
	require.NoError(t, err)

	assert.True(t, once.Equal(twice))
}

func TestOutbound_TimestampKeys(t *testing.T) {
	ts := time.UnixMilli(1700000000000).UTC()
	p := core.NewParams().
		Set("symbol", "BTCUSDT").
		Set("startTime", ts).
		Set("endTime", ts.Add(time.Hour))

	out := Outbound(p, testRegistry(t).TimestampKeys())

	v, _ := out.Get("startTime")
	assert.True(t, v.Equal(core.NumberFromInt(1700000000000)))
	v, _ = out.Get("endTime")
	assert.True(t, v.Equal(core.NumberFromInt(1700003600000)))
	v, _ = out.Get("symbol")
	assert.True(t, v.Equal(core.String("BTCUSDT")))

	// Input untouched.
	v, _ = p.Get("startTime")
	_, isTime := v.TimeVal()
	assert.True(t, isTime)
}

func TestOutbound_NonTimestampValueUnderTimestampKey(t *testing.T) {
	// Callers may already pass epoch integers; those are left as-is.
	p := core.NewParams().Set("startTime", core.NumberFromInt(1700000000000))
	out := Outbound(p, testRegistry(t).TimestampKeys())

	v, _ := out.Get("startTime")
	assert.True(t, v.Equal(core.NumberFromInt(1700000000000)))
}

func TestRoundTrip_EpochMilliseconds(t *testing.T) {
	// Inbound then Outbound preserves the exact epoch value.
	tbl := core.NewTable()
	require.NoError(t, tbl.AddColumn("updateTime", []core.Value{core.NumberFromInt(1699999999123)}))

	out, err := Inbound(tbl, testRegistry(t))
	require.NoError(t, err)

	cell, _ := out.Cell("updateTime", 0)
	p := core.NewParams().Set("startTime", cell)
	back := Outbound(p, testRegistry(t).TimestampKeys())

	v, _ := back.Get("startTime")
	assert.True(t, v.Equal(core.NumberFromInt(1699999999123)))
}
