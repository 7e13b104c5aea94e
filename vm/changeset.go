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

var (
	// ErrConflictingChange is returned when one change set both adds and
	// modifies the same byte. A byte is either new or an edit, never both.
	ErrConflictingChange = errors.New("conflicting opcode change")

	// ErrUnsupportedRemoval is returned when a change set implies retiring a
	// previously inherited opcode. No fork has ever removed one.
	ErrUnsupportedRemoval = errors.New("opcode removal not supported")

	// ErrDuplicateAssignment is returned when a change set adds a byte that
	// the predecessor's table already assigns.
	ErrDuplicateAssignment = errors.New("duplicate opcode assignment")

	// ErrUnknownModification is returned when a change set modifies a byte
	// absent from the predecessor's table.
	ErrUnknownModification = errors.New("modification of unassigned opcode")
)

// Patch is a partial override of an existing record. Nil fields inherit the
// predecessor's value; non-nil fields replace it. The byte, mnemonic and
// introducing fork of a record are identity, not properties, and cannot be
// patched.
type Patch struct {
	Gas         *uint64
	StackIn     *uint8
	StackOut    *uint8
	Group       *Group
	Description *string
	EIP         uint16 // EIP motivating the change, 0 if none
}

func (p Patch) empty() bool {
	return p.Gas == nil && p.StackIn == nil && p.StackOut == nil &&
		p.Group == nil && p.Description == nil
}

// apply returns r with the patched fields replaced.
func (p Patch) apply(r Record) Record {
	if p.Gas != nil {
		r.Gas = *p.Gas
	}
	if p.StackIn != nil {
		r.StackIn = *p.StackIn
	}
	if p.StackOut != nil {
		r.StackOut = *p.StackOut
	}
	if p.Group != nil {
		r.Group = *p.Group
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	return r
}

// ChangeSet is the diff one fork applies to its predecessor's table:
// brand new instructions and property overrides of inherited ones.
type ChangeSet struct {
	Fork     params.Fork
	Added    map[OpCode]Record
	Modified map[OpCode]Patch
}

// validate checks the change set in isolation, without reference to any
// predecessor table.
func (cs ChangeSet) validate() error {
	for op, rec := range cs.Added {
		if _, ok := cs.Modified[op]; ok {
			return fmt.Errorf("%w: %v both added and modified in %v", ErrConflictingChange, op, cs.Fork)
		}
		if rec == (Record{}) {
			return fmt.Errorf("%w: empty record for %v in %v", ErrUnsupportedRemoval, op, cs.Fork)
		}
		if rec.Op != op {
			return fmt.Errorf("%w: record for %v carries byte %#x in %v", ErrMalformedRecord, op, byte(rec.Op), cs.Fork)
		}
		if err := rec.check(); err != nil {
			return err
		}
	}
	for op, patch := range cs.Modified {
		if patch.empty() {
			return fmt.Errorf("%w: patch for %v in %v overrides nothing", ErrMalformedRecord, op, cs.Fork)
		}
	}
	return nil
}
