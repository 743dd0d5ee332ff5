package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeypadPressedReflectsCurrentSnapshot(t *testing.T) {
	k := NewKeypad()
	k.Update(func(key int) bool { return key == 5 })

	assert.True(t, k.Pressed(5))
	assert.False(t, k.Pressed(4))
}

func TestKeypadPressedKeyDetectsFallingEdge(t *testing.T) {
	k := NewKeypad()
	k.Update(func(key int) bool { return key == 3 })
	assert.Equal(t, -1, k.PressedKey(), "still held, no edge yet")

	k.Update(func(key int) bool { return false })
	assert.Equal(t, 3, k.PressedKey())
}

func TestKeypadPressedKeyReturnsLowestIndex(t *testing.T) {
	k := NewKeypad()
	k.Update(func(key int) bool { return key == 2 || key == 7 })
	k.Update(func(key int) bool { return false })

	assert.Equal(t, 2, k.PressedKey())
}

func TestKeypadRelease(t *testing.T) {
	k := NewKeypad()
	k.Update(func(key int) bool { return key == 1 })
	k.Release()

	assert.False(t, k.Pressed(1))
	assert.Equal(t, -1, k.PressedKey())
}
