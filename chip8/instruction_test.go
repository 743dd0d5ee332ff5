package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionNibbles(t *testing.T) {
	instr := NewInstruction(0xD1, 0x2F)

	assert.EqualValues(t, 0xD, instr.Op())
	assert.EqualValues(t, 0x1, instr.X())
	assert.EqualValues(t, 0x2, instr.Y())
	assert.EqualValues(t, 0xF, instr.N())
	assert.EqualValues(t, 0x2F, instr.NN())
	assert.EqualValues(t, 0x12F, instr.NNN())
	assert.Equal(t, "D12F", instr.String())
}

func TestInstructionZero(t *testing.T) {
	instr := NewInstruction(0x00, 0x00)
	assert.EqualValues(t, 0, instr.Op())
	assert.Equal(t, "0000", instr.String())
}
