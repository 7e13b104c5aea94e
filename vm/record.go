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
	"errors"
	"fmt"

	"github.com/bnb-chain/opcodedb/params"
)

// MaxStackArgs bounds the declared stack inputs and outputs of a single
// instruction. SWAP16 is the widest at 17 items; 32 leaves headroom without
// admitting nonsense.
const MaxStackArgs = 32

// Group classifies an opcode by its semantic family. The set is closed; the
// zero value is GroupArithmetic.
type Group uint8

const (
	GroupArithmetic Group = iota // stop & arithmetic range sans halting ops
	GroupComparison              // comparison and bitwise logic
	GroupCrypto                  // KECCAK256
	GroupEnvironment             // environmental information
	GroupBlock                   // block context information
	GroupFlow                    // stack, memory, storage and flow
	GroupPush                    // PUSH0-PUSH32
	GroupDup                     // DUP1-DUP16
	GroupSwap                    // SWAP1-SWAP16
	GroupLog                     // LOG0-LOG4
	GroupSystem                  // creates and calls
	GroupHalt                    // unconditionally halting instructions
)

var groupToString = [...]string{
	GroupArithmetic:  "arithmetic",
	GroupComparison:  "comparison",
	GroupCrypto:      "crypto",
	GroupEnvironment: "environment",
	GroupBlock:       "block",
	GroupFlow:        "flow",
	GroupPush:        "push",
	GroupDup:         "dup",
	GroupSwap:        "swap",
	GroupLog:         "log",
	GroupSystem:      "system",
	GroupHalt:        "halt",
}

// Known reports whether g is a member of the closed group set.
func (g Group) Known() bool {
	return int(g) < len(groupToString)
}

func (g Group) String() string {
	if !g.Known() {
		return fmt.Sprintf("group(%d)", uint8(g))
	}
	return groupToString[g]
}

// ErrMalformedRecord is returned when an opcode record fails its field
// constraints at construction.
var ErrMalformedRecord = errors.New("malformed opcode record")

// Record describes a single instruction within one fork's table. Records are
// plain immutable values; two records are equal iff all fields are equal.
//
// Gas is the constant portion of the cost. Instructions whose total cost is
// context dependent (SSTORE, the call family, copies) carry their constant
// base here; the dynamic part is out of scope for a metadata table.
type Record struct {
	Op          OpCode
	Name        string
	Gas         uint64
	StackIn     uint8
	StackOut    uint8
	Group       Group
	Introduced  params.Fork // fork whose change set first added this byte
	EIP         uint16      // 0 for opcodes predating the EIP process
	Description string
}

// NewRecord builds a validated opcode record. Field constraint violations
// fail with a wrapped ErrMalformedRecord; nothing is coerced silently.
func NewRecord(op OpCode, name string, gas uint64, in, out uint8, group Group, introduced params.Fork, eip uint16, desc string) (Record, error) {
	r := Record{
		Op:          op,
		Name:        name,
		Gas:         gas,
		StackIn:     in,
		StackOut:    out,
		Group:       group,
		Introduced:  introduced,
		EIP:         eip,
		Description: desc,
	}
	if err := r.check(); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (r Record) check() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: opcode %#x has empty mnemonic", ErrMalformedRecord, byte(r.Op))
	case r.StackIn > MaxStackArgs:
		return fmt.Errorf("%w: %s declares %d stack inputs, max %d", ErrMalformedRecord, r.Name, r.StackIn, MaxStackArgs)
	case r.StackOut > MaxStackArgs:
		return fmt.Errorf("%w: %s declares %d stack outputs, max %d", ErrMalformedRecord, r.Name, r.StackOut, MaxStackArgs)
	case !r.Group.Known():
		return fmt.Errorf("%w: %s has unknown group %d", ErrMalformedRecord, r.Name, uint8(r.Group))
	}
	return nil
}

func (r Record) String() string {
	return fmt.Sprintf("%s (%#02x, gas %d, stack -%d/+%d, %s, since %v)",
		r.Name, byte(r.Op), r.Gas, r.StackIn, r.StackOut, r.Group, r.Introduced)
}
