package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AddColumn(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("asset", []Value{String("BTC"), String("ETH")}))
	require.NoError(t, tbl.AddColumn("free", []Value{NumberFromInt(1), NumberFromInt(2)}))

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"asset", "free"}, tbl.Columns())

	err := tbl.AddColumn("asset", []Value{String("SOL"), String("BNB")})
	assert.Error(t, err, "duplicate column name is rejected")

	err = tbl.AddColumn("locked", []Value{NumberFromInt(0)})
	assert.Error(t, err, "mismatched length is rejected")
}

func TestTable_DropColumn(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []Value{String("x")}))
	require.NoError(t, tbl.AddColumn(InfoColumn, []Value{String("raw")}))

	tbl.DropColumn(InfoColumn)
	assert.Equal(t, []string{"a"}, tbl.Columns())

	// Dropping twice is a no-op.
	tbl.DropColumn(InfoColumn)
	assert.Equal(t, []string{"a"}, tbl.Columns())
}

func TestTable_Row(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("symbol", []Value{String("BTCUSDT"), String("ETHUSDT")}))
	require.NoError(t, tbl.AddColumn("price", []Value{NumberFromInt(50000), NumberFromInt(3000)}))

	row := tbl.Row(1)
	assert.Equal(t, []string{"symbol", "price"}, row.Keys())
	v, ok := row.Get("symbol")
	require.True(t, ok)
	assert.True(t, v.Equal(String("ETHUSDT")))
}

func TestTable_CloneIndependent(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []Value{NumberFromInt(1)}))

	cp := tbl.Clone()
	require.NoError(t, cp.SetColumn("a", []Value{NumberFromInt(9)}))

	orig, ok := tbl.Cell("a", 0)
	require.True(t, ok)
	assert.True(t, orig.Equal(NumberFromInt(1)), "clone does not alias source columns")
	assert.True(t, tbl.Equal(tbl.Clone()))
	assert.False(t, tbl.Equal(cp))
}

func TestConcat(t *testing.T) {
	bids := NewTable()
	require.NoError(t, bids.AddColumn("price", []Value{NumberFromInt(100)}))
	require.NoError(t, bids.AddColumn("side", []Value{String("bid")}))

	asks := NewTable()
	require.NoError(t, asks.AddColumn("price", []Value{NumberFromInt(101), NumberFromInt(102)}))
	require.NoError(t, asks.AddColumn("side", []Value{String("ask"), String("ask")}))

	out, err := Concat(bids, asks)
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumRows())
	assert.Equal(t, []string{"price", "side"}, out.Columns())

	v, ok := out.Cell("side", 2)
	require.True(t, ok)
	assert.True(t, v.Equal(String("ask")))
}

func TestConcat_MismatchedColumns(t *testing.T) {
	a := NewTable()
	require.NoError(t, a.AddColumn("x", []Value{String("1")}))
	b := NewTable()
	require.NoError(t, b.AddColumn("y", []Value{String("2")}))

	_, err := Concat(a, b)
	assert.Error(t, err)
}

func TestRepeat(t *testing.T) {
	vals := Repeat(String("spot"), 3)
	require.Len(t, vals, 3)
	for _, v := range vals {
		assert.True(t, v.Equal(String("spot")))
	}
}
