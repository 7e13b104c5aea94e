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
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/bnb-chain/opcodedb/params"
)

// rawRegistry builds a registry directly from hand-made tables, bypassing the
// resolver, so the validator's checks can be exercised on states the resolver
// itself refuses to produce.
func rawRegistry(t *testing.T, tl *params.Timeline, tables map[params.Fork]table, sets map[params.Fork]ChangeSet) *Registry {
	t.Helper()
	r := &Registry{
		tl:     tl,
		tables: tables,
		sorted: make(map[params.Fork][]Record, len(tables)),
		sets:   sets,
	}
	if r.sets == nil {
		r.sets = make(map[params.Fork]ChangeSet)
	}
	for fork, tbl := range tables {
		recs := make([]Record, 0, len(tbl))
		for _, rec := range tbl {
			recs = append(recs, rec)
		}
		slices.SortFunc(recs, func(a, b Record) int { return int(a.Op) - int(b.Op) })
		r.sorted[fork] = recs
	}
	return r
}

func findingChecks(rep *Report) []string {
	var checks []string
	for _, f := range rep.Findings {
		checks = append(checks, f.Check)
	}
	return checks
}

func TestValidateCanonicalDataset(t *testing.T) {
	rep := Validate(Default())
	assert.True(t, rep.OK(), "canonical dataset has error findings:\n%v", rep.Findings)
	assert.Zero(t, rep.Errors())
	assert.Zero(t, rep.Warnings(), "canonical dataset has warnings:\n%v", rep.Findings)
	assert.Equal(t, "0 findings (0 errors, 0 warnings)", rep.Summary())
}

func TestValidateDuplicateMnemonic(t *testing.T) {
	tl := testTimeline(t, params.Frontier)
	r, err := NewRegistry(tl, []ChangeSet{{
		Fork: params.Frontier,
		Added: map[OpCode]Record{
			ADD: testRecord(ADD, "FOO", 3),
			MUL: testRecord(MUL, "FOO", 5),
		},
	}})
	require.NoError(t, err) // construction only rejects structural faults

	rep := Validate(r)
	assert.False(t, rep.OK())
	assert.Contains(t, findingChecks(rep), CheckDuplicateMnemonic)
}

func TestValidateNoOpModification(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	r, err := NewRegistry(tl, []ChangeSet{
		{Fork: params.Frontier, Added: map[OpCode]Record{ADD: testRecord(ADD, "ADD", 3)}},
		{Fork: params.Homestead, Modified: map[OpCode]Patch{ADD: {Gas: newUint64(3)}}},
	})
	require.NoError(t, err)

	rep := Validate(r)
	assert.True(t, rep.OK(), "a no-op repricing is a warning, not an error")
	require.Equal(t, 1, rep.Warnings())
	f := rep.Findings[0]
	assert.Equal(t, CheckNoOpModification, f.Check)
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.Equal(t, params.Homestead, f.Fork)
	assert.Equal(t, ADD, f.Op)
}

func TestValidateStackShape(t *testing.T) {
	tl := testTimeline(t, params.Frontier)
	bad := Record{Op: PUSH1, Name: "PUSH1", Gas: 3, StackIn: 1, StackOut: 1, Group: GroupPush}
	r, err := NewRegistry(tl, []ChangeSet{{
		Fork:  params.Frontier,
		Added: map[OpCode]Record{PUSH1: bad},
	}})
	require.NoError(t, err)

	rep := Validate(r)
	assert.False(t, rep.OK())
	assert.Contains(t, findingChecks(rep), CheckStackShapeViolation)
}

func TestValidateInheritanceViolation(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	add := testRecord(ADD, "ADD", 3)
	add.Introduced = params.Frontier
	r := rawRegistry(t, tl,
		map[params.Fork]table{
			params.Frontier:  {ADD: add},
			params.Homestead: {},
		},
		map[params.Fork]ChangeSet{
			params.Frontier: {Fork: params.Frontier, Added: map[OpCode]Record{ADD: add}},
		},
	)

	rep := Validate(r)
	assert.False(t, rep.OK())
	assert.Contains(t, findingChecks(rep), CheckInheritanceViolation)
}

func TestValidateGasDrift(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	add := testRecord(ADD, "ADD", 3)
	add.Introduced = params.Frontier
	drifted := add
	drifted.Gas = 7
	r := rawRegistry(t, tl,
		map[params.Fork]table{
			params.Frontier:  {ADD: add},
			params.Homestead: {ADD: drifted},
		},
		map[params.Fork]ChangeSet{
			params.Frontier: {Fork: params.Frontier, Added: map[OpCode]Record{ADD: add}},
		},
	)

	rep := Validate(r)
	assert.False(t, rep.OK())
	assert.Contains(t, findingChecks(rep), CheckGasDrift)
}

func TestValidateProvenanceMismatch(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	add := testRecord(ADD, "ADD", 3)
	add.Introduced = params.Homestead // wrong: first added in Frontier
	orphan := testRecord(MUL, "MUL", 5)
	orphan.Introduced = params.Frontier // in the table, added by no change set
	r := rawRegistry(t, tl,
		map[params.Fork]table{
			params.Frontier:  {ADD: add, MUL: orphan},
			params.Homestead: {ADD: add, MUL: orphan},
		},
		map[params.Fork]ChangeSet{
			params.Frontier: {Fork: params.Frontier, Added: map[OpCode]Record{ADD: add}},
		},
	)

	rep := Validate(r)
	assert.False(t, rep.OK())
	checks := findingChecks(rep)
	assert.Contains(t, checks, CheckProvenanceMismatch)
	assert.GreaterOrEqual(t, rep.Errors(), 2) // tag mismatch and missing origin
}

func TestFindingsOrdered(t *testing.T) {
	tl := testTimeline(t, params.Frontier, params.Homestead)
	// Two broken records in different forks; findings must come out in
	// timeline order, then byte order.
	badPush := Record{Op: PUSH1, Name: "PUSH1", Gas: 3, StackIn: 1, StackOut: 1, Group: GroupPush}
	badDup := Record{Op: DUP1, Name: "DUP1", Gas: 3, StackIn: 0, StackOut: 0, Group: GroupDup}
	r, err := NewRegistry(tl, []ChangeSet{
		{Fork: params.Frontier, Added: map[OpCode]Record{PUSH1: badPush}},
		{Fork: params.Homestead, Added: map[OpCode]Record{DUP1: badDup}},
	})
	require.NoError(t, err)

	rep := Validate(r)
	require.GreaterOrEqual(t, len(rep.Findings), 2)
	last := -1
	for _, f := range rep.Findings {
		pos, ok := tl.Position(f.Fork)
		require.True(t, ok)
		assert.GreaterOrEqual(t, pos, last)
		last = pos
	}
}

func TestReportLog(t *testing.T) {
	rep := Validate(Default())
	rep.Log(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rep.Log(nil)
}
