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
	"golang.org/x/exp/maps"
)

// ErrChangeSetMismatch is returned when the supplied change sets do not pair
// one-to-one with the timeline's forks.
var ErrChangeSetMismatch = errors.New("change sets do not match timeline")

// table is one fork's complete resolved instruction table.
type table map[OpCode]Record

// resolve folds the change sets over the timeline into one complete table per
// fork. The first fork's table is exactly its additions; every later fork
// starts from a copy of its predecessor's table, applies the field overrides
// and then the insertions, tagging each inserted record with the introducing
// fork. Each fork's table depends only on its direct predecessor, so the
// output is deterministic for a given input.
func resolve(tl *params.Timeline, sets []ChangeSet) (map[params.Fork]table, error) {
	byFork := make(map[params.Fork]ChangeSet, len(sets))
	for _, cs := range sets {
		if !tl.Contains(cs.Fork) {
			return nil, fmt.Errorf("%w: change set for %v, which is not on the timeline", ErrChangeSetMismatch, cs.Fork)
		}
		if _, ok := byFork[cs.Fork]; ok {
			return nil, fmt.Errorf("%w: two change sets for %v", ErrChangeSetMismatch, cs.Fork)
		}
		byFork[cs.Fork] = cs
	}
	tables := make(map[params.Fork]table, tl.Len())
	var prev table
	for i, fork := range tl.Forks() {
		cs, ok := byFork[fork]
		if !ok {
			return nil, fmt.Errorf("%w: no change set for %v", ErrChangeSetMismatch, fork)
		}
		if err := cs.validate(); err != nil {
			return nil, err
		}
		if i == 0 && len(cs.Modified) > 0 {
			return nil, fmt.Errorf("%w: genesis fork %v has no predecessor to modify", ErrUnknownModification, fork)
		}
		tbl := make(table, len(prev)+len(cs.Added))
		maps.Copy(tbl, prev)
		for op, patch := range cs.Modified {
			rec, ok := tbl[op]
			if !ok {
				return nil, fmt.Errorf("%w: %v patches %v, absent from %v's table",
					ErrUnknownModification, fork, op, mustPredecessor(tl, fork))
			}
			tbl[op] = patch.apply(rec)
		}
		for op, rec := range cs.Added {
			if _, ok := tbl[op]; ok {
				return nil, fmt.Errorf("%w: %v re-adds %v", ErrDuplicateAssignment, fork, op)
			}
			rec.Introduced = fork
			tbl[op] = rec
		}
		tables[fork] = tbl
		prev = tbl
	}
	return tables, nil
}

func mustPredecessor(tl *params.Timeline, f params.Fork) params.Fork {
	pred, ok := tl.Predecessor(f)
	if !ok {
		panic(fmt.Sprintf("fork %v has no predecessor", f))
	}
	return pred
}
