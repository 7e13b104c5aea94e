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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/opcodedb/params"
)

func testTimeline(t *testing.T, forks ...params.Fork) *params.Timeline {
	t.Helper()
	tl, err := params.NewTimeline(forks)
	require.NoError(t, err)
	return tl
}

func testRecord(op OpCode, name string, gas uint64) Record {
	return Record{Op: op, Name: name, Gas: gas, StackIn: 2, StackOut: 1, Group: GroupArithmetic}
}

func TestResolveFirstForkIsAdditions(t *testing.T) {
	tl := testTimeline(t, params.Frontier)
	tables, err := resolve(tl, []ChangeSet{{
		Fork: params.Frontier,
		Added: map[OpCode]Record{
			ADD: testRecord(ADD, "ADD", 3),
			MUL: testRecord(MUL, "MUL", 5),
		},
	}})
	require.NoError(t, err)
	require.Len(t, tables[params.Frontier], 2)
	assert.Equal(t, params.Frontier, tables[params.Frontier][ADD].Introduced)
}

func TestResolveInheritsAndOverrides(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	tables, err := resolve(tl, []ChangeSet{
		{
			Fork: params.Frontier,
			Added: map[OpCode]Record{
				ADD: testRecord(ADD, "ADD", 3),
			},
		},
		{
			Fork: params.Homestead,
			Added: map[OpCode]Record{
				MUL: testRecord(MUL, "MUL", 5),
			},
			Modified: map[OpCode]Patch{
				ADD: {Gas: newUint64(9)},
			},
		},
	})
	require.NoError(t, err)

	// Unmodified fields inherit, the patched one is replaced.
	got := tables[params.Homestead][ADD]
	want := testRecord(ADD, "ADD", 9)
	want.Introduced = params.Frontier
	assert.Equal(t, want, got)

	// The predecessor's table is untouched by the successor's overrides.
	assert.Equal(t, uint64(3), tables[params.Frontier][ADD].Gas)
	assert.False(t, func() bool { _, ok := tables[params.Frontier][MUL]; return ok }())
	assert.Equal(t, params.Homestead, tables[params.Homestead][MUL].Introduced)
}

func TestResolveConflictingChange(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	_, err := resolve(tl, []ChangeSet{
		{Fork: params.Frontier, Added: map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)}},
		{
			Fork:     params.Homestead,
			Added:    map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)},
			Modified: map[OpCode]Patch{ADD: {Gas: newUint64(9)}},
		},
	})
	require.ErrorIs(t, err, ErrConflictingChange)
}

func TestResolveRejectsRemoval(t *testing.T) {
	tl := testTimeline(t, params.Frontier)
	_, err := resolve(tl, []ChangeSet{{
		Fork:  params.Frontier,
		Added: map[OpCode]Record{ADD: {}},
	}})
	require.ErrorIs(t, err, ErrUnsupportedRemoval)
}

func TestResolveDuplicateAssignment(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	_, err := resolve(tl, []ChangeSet{
		{Fork: params.Frontier, Added: map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)}},
		{Fork: params.Homestead, Added: map[OpCode]Record{ADD: testRecord(ADD, "ADD2", 3)}},
	})
	require.ErrorIs(t, err, ErrDuplicateAssignment)
}

func TestResolveUnknownModification(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	_, err := resolve(tl, []ChangeSet{
		{Fork: params.Frontier, Added: map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)}},
		{Fork: params.Homestead, Modified: map[OpCode]Patch{MUL: {Gas: newUint64(5)}}},
	})
	require.ErrorIs(t, err, ErrUnknownModification)
}

func TestResolveGenesisModification(t *testing.T) {
	tl := testTimeline(t, params.Frontier)
	_, err := resolve(tl, []ChangeSet{{
		Fork:     params.Frontier,
		Added:    map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)},
		Modified: map[OpCode]Patch{MUL: {Gas: newUint64(5)}},
	}})
	require.ErrorIs(t, err, ErrUnknownModification)
}

func TestResolveChangeSetMismatch(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	frontier := ChangeSet{Fork: params.Frontier, Added: map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)}}
	homestead := ChangeSet{Fork: params.Homestead}

	// Missing change set for a timeline fork.
	_, err := resolve(tl, []ChangeSet{frontier})
	require.ErrorIs(t, err, ErrChangeSetMismatch)

	// Two change sets for one fork.
	_, err = resolve(tl, []ChangeSet{frontier, homestead, homestead})
	require.ErrorIs(t, err, ErrChangeSetMismatch)

	// Change set for a fork not on the timeline.
	_, err = resolve(tl, []ChangeSet{frontier, homestead, {Fork: params.Cancun}})
	require.ErrorIs(t, err, ErrChangeSetMismatch)
}

func TestResolveRejectsEmptyPatch(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	_, err := resolve(tl, []ChangeSet{
		{Fork: params.Frontier, Added: map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)}},
		{Fork: params.Homestead, Modified: map[OpCode]Patch{ADD: {}}},
	})
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestResolveDeterminism(t *testing.T) {
	r1, err := NewDefaultRegistry()
	require.NoError(t, err)
	r2, err := NewDefaultRegistry()
	require.NoError(t, err)

	for _, fork := range r1.Forks() {
		if diff := cmp.Diff(r1.All(fork), r2.All(fork)); diff != "" {
			t.Fatalf("resolved tables differ for %v (-first +second):\n%s", fork, diff)
		}
	}
}

func TestMonotonicInheritance(t *testing.T) {
	r := Default()
	forks := r.Forks()
	for i := 1; i < len(forks); i++ {
		pred, fork := forks[i-1], forks[i]
		for _, rec := range r.All(pred) {
			assert.True(t, r.Has(fork, rec.Op), "%s lost between %v and %v", rec.Name, pred, fork)
		}
	}
}

func TestGasStabilityUnderInheritance(t *testing.T) {
	r := Default()
	forks := r.Forks()
	for i := 1; i < len(forks); i++ {
		pred, fork := forks[i-1], forks[i]
		mods := r.sets[fork].Modified
		for _, old := range r.All(pred) {
			if patch, ok := mods[old.Op]; ok && patch.Gas != nil {
				continue
			}
			cur, ok := r.Get(fork, old.Op)
			require.True(t, ok)
			assert.Equal(t, old.Gas, cur.Gas, "%s cost drifted between %v and %v", old.Name, pred, fork)
		}
	}
}

func TestProvenance(t *testing.T) {
	r := Default()
	tests := []struct {
		op   OpCode
		want params.Fork
	}{
		{ADD, params.Frontier},
		{SELFDESTRUCT, params.Frontier},
		{DELEGATECALL, params.Homestead},
		{REVERT, params.Byzantium},
		{CREATE2, params.Constantinople},
		{CHAINID, params.Istanbul},
		{BASEFEE, params.London},
		{PUSH0, params.Shanghai},
		{TLOAD, params.Cancun},
		{MCOPY, params.Cancun},
	}
	latest := r.Timeline().Latest()
	for _, tt := range tests {
		rec, ok := r.Get(latest, tt.op)
		require.True(t, ok, "%v missing from %v", tt.op, latest)
		assert.Equal(t, tt.want, rec.Introduced, "wrong introducing fork for %s", rec.Name)
	}
}

func TestRepricingRetainsIdentity(t *testing.T) {
	r := Default()

	before, ok := r.Get(params.Homestead, SLOAD)
	require.True(t, ok)
	after, ok := r.Get(params.Istanbul, SLOAD)
	require.True(t, ok)

	assert.Equal(t, uint64(50), before.Gas)
	assert.Equal(t, uint64(800), after.Gas)

	// Everything but the cost is inherited.
	after.Gas = before.Gas
	assert.Equal(t, before, after)
}
