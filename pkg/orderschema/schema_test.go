package orderschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nakula/pkg/core"
)

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New("test",
		Field{Name: "symbol", Type: TypeString},
		Field{Name: "symbol", Type: TypeString},
	)
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}

func TestNew_RejectsEmptyName(t *testing.T) {
	_, err := New("test", Field{Type: TypeString})
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))
}

func TestExtend_OverridesInPlace(t *testing.T) {
	base := Base()
	ext := base.Extend("venue",
		Field{Name: "side", Required: true, Type: TypeString, Allowed: []string{"Buy", "Sell"}},
		Field{Name: "category", Required: true, Type: TypeString},
	)

	assert.Equal(t, "venue", ext.Exchange())

	// Overridden field keeps its base position but carries the new constraint.
	fields := ext.Fields()
	assert.Equal(t, "side", fields[1].Name)
	assert.Equal(t, []string{"Buy", "Sell"}, fields[1].Allowed)

	// New fields append after the base set.
	assert.Equal(t, "category", fields[len(fields)-1].Name)

	// The base schema is untouched.
	f, ok := base.Field("side")
	require.True(t, ok)
	assert.Equal(t, []string{"BUY", "SELL"}, f.Allowed)
	_, ok = base.Field("category")
	assert.False(t, ok)
}

func TestBinanceSchema(t *testing.T) {
	s := Binance()
	assert.Equal(t, "binance", s.Exchange())

	f, ok := s.Field("type")
	require.True(t, ok)
	assert.Contains(t, f.Allowed, "STOP_LOSS_LIMIT")

	f, ok = s.Field("timeInForce")
	require.True(t, ok)
	assert.Equal(t, []string{"GTC", "IOC", "FOK", "GTD"}, f.Allowed)
}

func TestBybitSchema(t *testing.T) {
	s := Bybit()
	assert.Equal(t, "bybit", s.Exchange())

	f, ok := s.Field("side")
	require.True(t, ok)
	assert.Equal(t, []string{"Buy", "Sell"}, f.Allowed)

	f, ok = s.Field("category")
	require.True(t, ok)
	assert.True(t, f.Required)

	f, ok = s.Field("isLeverage")
	require.True(t, ok)
	require.NotNil(t, f.Default)
	assert.True(t, f.Default.Equal(core.NumberFromInt(0)))

	// Bybit uses its own wire names for the shared fields.
	_, ok = s.Field("orderType")
	assert.True(t, ok)
	_, ok = s.Field("qty")
	assert.True(t, ok)
	_, ok = s.Field("orderLinkId")
	assert.True(t, ok)
	_, ok = s.Field("type")
	assert.False(t, ok)
	_, ok = s.Field("quantity")
	assert.False(t, ok)
}
