// Copyright 2025 The go-ethereum Authors
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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"

	"github.com/bnb-chain/opcodedb/params"
)

// Validator check names, one per finding kind.
const (
	CheckDuplicateMnemonic    = "DuplicateMnemonic"
	CheckInheritanceViolation = "InheritanceViolation"
	CheckProvenanceMismatch   = "ProvenanceMismatch"
	CheckGasDrift             = "GasDrift"
	CheckNoOpModification     = "NoOpModification"
	CheckStackShapeViolation  = "StackShapeViolation"
)

// Validate runs the historical invariant checks over a resolved registry and
// collects the findings into a report. It never mutates the registry and
// never fails: a registry that exists is structurally sound by construction,
// and everything beyond structure is reported as data for the caller (CI
// typically fails on any error-level finding). Concurrent calls over the same
// registry are safe and produce identical reports.
func Validate(r *Registry) *Report {
	v := &validator{reg: r}
	v.checkMnemonicUniqueness()
	v.checkInheritance()
	v.checkProvenance()
	v.checkGasConsistency()
	v.checkStackShape()
	v.sort()
	return &v.report
}

type validator struct {
	reg    *Registry
	report Report
}

func (v *validator) errorf(check string, fork params.Fork, format string, args ...any) {
	v.report.Findings = append(v.report.Findings, Finding{
		Check: check, Severity: SeverityError, Fork: fork, Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) opFinding(check string, sev Severity, fork params.Fork, op OpCode, format string, args ...any) {
	v.report.Findings = append(v.report.Findings, Finding{
		Check: check, Severity: sev, Fork: fork, Op: op, HasOp: true, Message: fmt.Sprintf(format, args...),
	})
}

// checkMnemonicUniqueness flags mnemonics assigned to more than one byte of
// the same fork's table. Byte uniqueness needs no check, the table is keyed
// by byte.
func (v *validator) checkMnemonicUniqueness() {
	for _, fork := range v.reg.Forks() {
		seen := mapset.NewThreadUnsafeSet[string]()
		for _, rec := range v.reg.sorted[fork] {
			if !seen.Add(rec.Name) {
				v.opFinding(CheckDuplicateMnemonic, SeverityError, fork, rec.Op,
					"mnemonic %q assigned to more than one byte", rec.Name)
			}
		}
	}
}

// checkInheritance verifies that no byte of a predecessor's table is missing
// from its successor's: opcodes are never retired.
func (v *validator) checkInheritance() {
	forks := v.reg.Forks()
	for i := 1; i < len(forks); i++ {
		pred, fork := forks[i-1], forks[i]
		present := mapset.NewThreadUnsafeSet[OpCode]()
		for op := range v.reg.tables[fork] {
			present.Add(op)
		}
		for _, rec := range v.reg.sorted[pred] {
			if !present.Contains(rec.Op) {
				v.opFinding(CheckInheritanceViolation, SeverityError, fork, rec.Op,
					"%s present in %v but missing from %v", rec.Name, pred, fork)
			}
		}
	}
}

// checkProvenance verifies every record's introducing-fork tag against the
// change set that actually first added its byte.
func (v *validator) checkProvenance() {
	first := make(map[OpCode]params.Fork)
	for _, fork := range v.reg.Forks() {
		for op := range v.reg.sets[fork].Added {
			if _, ok := first[op]; !ok {
				first[op] = fork
			}
		}
	}
	for _, fork := range v.reg.Forks() {
		for _, rec := range v.reg.sorted[fork] {
			want, ok := first[rec.Op]
			switch {
			case !ok:
				v.opFinding(CheckProvenanceMismatch, SeverityError, fork, rec.Op,
					"%s present in table but introduced by no change set", rec.Name)
			case rec.Introduced != want:
				v.opFinding(CheckProvenanceMismatch, SeverityError, fork, rec.Op,
					"%s tagged as introduced in %v, first added in %v", rec.Name, rec.Introduced, want)
			}
		}
	}
}

// checkGasConsistency verifies costs across fork boundaries: inherited bytes
// keep their predecessor's cost unless the fork's change set repriced them,
// and a repricing that does not change the cost is flagged as a likely
// data-entry mistake.
func (v *validator) checkGasConsistency() {
	forks := v.reg.Forks()
	for i := 1; i < len(forks); i++ {
		pred, fork := forks[i-1], forks[i]
		mods := v.reg.sets[fork].Modified
		for _, old := range v.reg.sorted[pred] {
			cur, ok := v.reg.tables[fork][old.Op]
			if !ok {
				continue // reported by the inheritance check
			}
			patch, patched := mods[old.Op]
			if patched && patch.Gas != nil {
				if *patch.Gas == old.Gas {
					v.opFinding(CheckNoOpModification, SeverityWarning, fork, old.Op,
						"%s repriced to its previous cost %d", old.Name, old.Gas)
				}
				continue
			}
			if cur.Gas != old.Gas {
				v.opFinding(CheckGasDrift, SeverityError, fork, old.Op,
					"%s cost drifted from %d to %d without a modification", old.Name, old.Gas, cur.Gas)
			}
		}
	}
}

// checkStackShape verifies the stack effect of groups with a fixed shape.
func (v *validator) checkStackShape() {
	for _, fork := range v.reg.Forks() {
		for _, rec := range v.reg.sorted[fork] {
			var wantIn, wantOut uint8
			switch rec.Group {
			case GroupPush:
				wantIn, wantOut = 0, 1
			case GroupDup:
				n := uint8(rec.Op-DUP1) + 1
				wantIn, wantOut = n, n+1
			case GroupSwap:
				n := uint8(rec.Op-SWAP1) + 1
				wantIn, wantOut = n+1, n+1
			case GroupLog:
				n := uint8(rec.Op - LOG0)
				wantIn, wantOut = n+2, 0
			default:
				continue
			}
			if rec.StackIn != wantIn || rec.StackOut != wantOut {
				v.opFinding(CheckStackShapeViolation, SeverityError, fork, rec.Op,
					"%s %s opcode wants stack -%d/+%d, has -%d/+%d",
					rec.Name, rec.Group, wantIn, wantOut, rec.StackIn, rec.StackOut)
			}
		}
	}
}

func (v *validator) sort() {
	slices.SortStableFunc(v.report.Findings, func(a, b Finding) int {
		pa, _ := v.reg.tl.Position(a.Fork)
		pb, _ := v.reg.tl.Position(b.Fork)
		if pa != pb {
			return pa - pb
		}
		if a.Op != b.Op {
			return int(a.Op) - int(b.Op)
		}
		switch {
		case a.Check < b.Check:
			return -1
		case a.Check > b.Check:
			return 1
		default:
			return 0
		}
	})
}
