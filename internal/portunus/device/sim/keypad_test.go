package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/sim"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

func TestKeypad_ReplaysScript(t *testing.T) {
	k := sim.NewKeypad().Type("1.a").Press(types.KeyHash)
	empties := 0
	k.OnEmpty = func() { empties++ }

	key, ok := k.Scan()
	assert.True(t, ok)
	assert.Equal(t, types.Key('1'), key)

	_, ok = k.Scan()
	assert.False(t, ok)

	key, _ = k.Scan()
	assert.Equal(t, types.KeyA, key)
	key, _ = k.Scan()
	assert.Equal(t, types.KeyHash, key)
	assert.Equal(t, 0, k.Remaining())

	_, ok = k.Scan()
	assert.False(t, ok)
	assert.Equal(t, 1, empties)
	assert.Equal(t, 5, k.Scans())
}

func TestKeypad_TypeRejectsUnknownSymbol(t *testing.T) {
	assert.Panics(t, func() { sim.NewKeypad().Type("1x") })
}
