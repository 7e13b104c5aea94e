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
	"log/slog"
	"sync"

	"github.com/bnb-chain/opcodedb/params"
	"golang.org/x/exp/slices"
)

// Registry exposes the resolved per-fork instruction tables. It is built once
// and never mutated afterwards, so it is safe for unsynchronized concurrent
// reads. A Registry either constructed fully or not at all: structural errors
// in the input abort construction.
type Registry struct {
	tl     *params.Timeline
	tables map[params.Fork]table
	sorted map[params.Fork][]Record // ascending by byte, cached at build
	sets   map[params.Fork]ChangeSet
}

// NewRegistry resolves the change sets over the timeline and wraps the result
// in a read-only registry.
func NewRegistry(tl *params.Timeline, sets []ChangeSet) (*Registry, error) {
	tables, err := resolve(tl, sets)
	if err != nil {
		return nil, err
	}
	r := &Registry{
		tl:     tl,
		tables: tables,
		sorted: make(map[params.Fork][]Record, len(tables)),
		sets:   make(map[params.Fork]ChangeSet, len(sets)),
	}
	for _, cs := range sets {
		r.sets[cs.Fork] = cs
	}
	for fork, tbl := range tables {
		recs := make([]Record, 0, len(tbl))
		for _, rec := range tbl {
			recs = append(recs, rec)
		}
		slices.SortFunc(recs, func(a, b Record) int { return int(a.Op) - int(b.Op) })
		r.sorted[fork] = recs
	}
	slog.Debug("resolved opcode tables", "forks", tl.Len(), "opcodes", len(r.sorted[tl.Latest()]))
	return r, nil
}

// NewDefaultRegistry builds a registry from the canonical mainnet timeline
// and its historical change sets.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(params.MainnetTimeline(), changeSets())
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared registry over the canonical historical dataset.
// The dataset ships with the package, so a failure to build it is a defect of
// the package itself and panics.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewDefaultRegistry()
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Timeline returns the fork timeline the registry was resolved against.
func (r *Registry) Timeline() *params.Timeline {
	return r.tl
}

// Forks returns the forks the registry holds tables for, in timeline order.
func (r *Registry) Forks() []params.Fork {
	return r.tl.Forks()
}

// Has reports whether the byte is assigned in the fork's table. Unknown forks
// have no table and report false for every byte.
func (r *Registry) Has(fork params.Fork, op OpCode) bool {
	_, ok := r.tables[fork][op]
	return ok
}

// IsAvailable is Has under a name that reads better in compatibility checks.
func (r *Registry) IsAvailable(fork params.Fork, op OpCode) bool {
	return r.Has(fork, op)
}

// Get returns the record assigned to the byte in the fork's table. A miss is
// an absence, not an error: the caller decides how unassigned bytes are
// treated (see ResolveInvalid).
func (r *Registry) Get(fork params.Fork, op OpCode) (Record, bool) {
	rec, ok := r.tables[fork][op]
	return rec, ok
}

// ResolveInvalid returns the record for the byte, substituting the designated
// INVALID record for unassigned bytes. On the EVM an unassigned opcode is not
// a no-op: it halts execution with failure, consuming the remaining gas. Use
// this instead of Get wherever "the opcode doesn't matter" would be wrong.
func (r *Registry) ResolveInvalid(fork params.Fork, op OpCode) Record {
	if rec, ok := r.tables[fork][op]; ok {
		return rec
	}
	return Record{
		Op:          op,
		Name:        "INVALID",
		Group:       GroupHalt,
		Introduced:  r.tl.First(),
		Description: "Designated invalid instruction: execution halts with failure",
	}
}

// ByName returns the record with the exact, case-sensitive mnemonic in the
// fork's table.
func (r *Registry) ByName(fork params.Fork, name string) (Record, bool) {
	for _, rec := range r.sorted[fork] {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// All returns the fork's complete table ascending by byte value. The slice is
// the caller's to keep.
func (r *Registry) All(fork params.Fork) []Record {
	return slices.Clone(r.sorted[fork])
}

// Compatible reports whether every byte of the sequence is assigned in the
// fork's table. The sequence is taken as given: push immediates are opcode
// positions too, and stripping them is the caller's business.
func (r *Registry) Compatible(fork params.Fork, code []byte) bool {
	if !r.tl.Contains(fork) {
		return false
	}
	tbl := r.tables[fork]
	for _, b := range code {
		if _, ok := tbl[OpCode(b)]; !ok {
			return false
		}
	}
	return true
}

// IntroducedIn returns the records whose byte first appeared in the given
// fork, ascending by byte value.
func (r *Registry) IntroducedIn(fork params.Fork) []Record {
	var recs []Record
	for _, rec := range r.sorted[fork] {
		if rec.Introduced == fork {
			recs = append(recs, rec)
		}
	}
	return recs
}

// GasChange records a repricing of one instruction between two forks.
type GasChange struct {
	Op     OpCode
	Name   string
	Before uint64
	After  uint64
}

// Diff compares two forks' tables: the records present in to but not in from,
// and the instructions whose gas cost differs between them. Both slices are
// ascending by byte value. Comparing backwards along the timeline is allowed;
// additions are then whatever to has that from lacks.
func (r *Registry) Diff(from, to params.Fork) (added []Record, repriced []GasChange) {
	fromTbl := r.tables[from]
	for _, rec := range r.sorted[to] {
		old, ok := fromTbl[rec.Op]
		switch {
		case !ok:
			added = append(added, rec)
		case old.Gas != rec.Gas:
			repriced = append(repriced, GasChange{Op: rec.Op, Name: rec.Name, Before: old.Gas, After: rec.Gas})
		}
	}
	return added, repriced
}

// GasPoint is one step in an instruction's cost history.
type GasPoint struct {
	Fork params.Fork
	Gas  uint64
}

// GasHistory traces the byte's gas cost along the timeline, starting with the
// fork that introduced it and adding a point for every fork that changed the
// cost. Unassigned bytes have an empty history.
func (r *Registry) GasHistory(op OpCode) []GasPoint {
	var (
		hist    []GasPoint
		present bool
		last    uint64
	)
	for _, fork := range r.tl.Forks() {
		rec, ok := r.tables[fork][op]
		if !ok {
			continue
		}
		if !present || rec.Gas != last {
			hist = append(hist, GasPoint{Fork: fork, Gas: rec.Gas})
		}
		present, last = true, rec.Gas
	}
	return hist
}
