// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpCodeString(t *testing.T) {
	assert.Equal(t, "ADD", ADD.String())
	assert.Equal(t, "PUSH32", PUSH32.String())
	assert.Equal(t, "SELFDESTRUCT", SELFDESTRUCT.String())
	assert.Equal(t, "opcode 0x21 not defined", OpCode(0x21).String())
}

func TestStringToOp(t *testing.T) {
	for op, s := range opCodeToString {
		if s == "" {
			continue
		}
		assert.Equal(t, OpCode(op), StringToOp(s))
	}
	// Legacy alias accepted on parse, never emitted.
	assert.Equal(t, KECCAK256, StringToOp("SHA3"))
	assert.Equal(t, OpCode(0), StringToOp("NOTANOP"))
}

func TestIsPush(t *testing.T) {
	assert.True(t, PUSH0.IsPush())
	assert.True(t, PUSH1.IsPush())
	assert.True(t, PUSH32.IsPush())
	assert.False(t, JUMPDEST.IsPush())
	assert.False(t, DUP1.IsPush())
}

func TestPushSize(t *testing.T) {
	assert.Equal(t, 0, PUSH0.PushSize())
	assert.Equal(t, 1, PUSH1.PushSize())
	assert.Equal(t, 32, PUSH32.PushSize())
	assert.Equal(t, 0, ADD.PushSize())
	assert.Equal(t, 0, DUP1.PushSize())
}
