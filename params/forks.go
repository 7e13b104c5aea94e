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

// Package params holds the hard fork schedule the opcode tables are keyed by.
package params

import (
	"errors"
	"fmt"
)

// Fork identifies a protocol upgrade that changed the instruction set or the
// pricing of existing instructions. Forks that only touched consensus rules
// (difficulty bomb delays, beacon chain upgrades) are not listed: they carry
// no opcode changes and would be empty links in the inheritance chain.
type Fork int

const (
	Frontier Fork = iota
	Homestead
	Byzantium
	Constantinople
	Istanbul
	Berlin
	London
	Shanghai
	Cancun
)

// forkSpec carries the display metadata and the mainnet activation ordinal of
// a fork. Pre-merge forks activated at a block height; Shanghai and Cancun
// were scheduled by timestamp, so their entries use the height the fork
// actually landed at, which keeps the ordinals strictly increasing.
type forkSpec struct {
	name       string
	date       string
	activation uint64
}

var forkSpecs = [...]forkSpec{
	Frontier:       {"Frontier", "2015-07-30", 0},
	Homestead:      {"Homestead", "2016-03-14", 1_150_000},
	Byzantium:      {"Byzantium", "2017-10-16", 4_370_000},
	Constantinople: {"Constantinople", "2019-02-28", 7_280_000},
	Istanbul:       {"Istanbul", "2019-12-08", 9_069_000},
	Berlin:         {"Berlin", "2021-04-15", 12_244_000},
	London:         {"London", "2021-08-05", 12_965_000},
	Shanghai:       {"Shanghai", "2023-04-12", 17_034_870},
	Cancun:         {"Cancun", "2024-03-13", 19_426_587},
}

// Known reports whether f is one of the declared fork identifiers.
func (f Fork) Known() bool {
	return f >= Frontier && int(f) < len(forkSpecs)
}

func (f Fork) String() string {
	if !f.Known() {
		return fmt.Sprintf("fork(%d)", int(f))
	}
	return forkSpecs[f].name
}

// Activation returns the mainnet activation ordinal of the fork.
func (f Fork) Activation() uint64 {
	if !f.Known() {
		return 0
	}
	return forkSpecs[f].activation
}

// Date returns the mainnet activation date of the fork.
func (f Fork) Date() string {
	if !f.Known() {
		return ""
	}
	return forkSpecs[f].date
}

// ErrForkOrdering is returned when a declared fork sequence is not strictly
// increasing in activation ordinals.
var ErrForkOrdering = errors.New("unsupported fork ordering")

// Timeline is a totally ordered sequence of forks. The declared order is the
// inheritance chain: every fork has exactly one predecessor except the first.
// A Timeline is immutable after construction.
type Timeline struct {
	seq []Fork
	pos map[Fork]int
}

// NewTimeline validates the declared fork sequence and returns its timeline.
// The sequence must be non-empty, free of repeats and strictly increasing in
// activation ordinals; anything else fails with ErrForkOrdering.
func NewTimeline(seq []Fork) (*Timeline, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: empty fork sequence", ErrForkOrdering)
	}
	tl := &Timeline{
		seq: append([]Fork(nil), seq...),
		pos: make(map[Fork]int, len(seq)),
	}
	var last Fork
	for i, f := range tl.seq {
		if !f.Known() {
			return nil, fmt.Errorf("%w: unknown fork %v", ErrForkOrdering, f)
		}
		if _, ok := tl.pos[f]; ok {
			return nil, fmt.Errorf("%w: %v declared twice", ErrForkOrdering, f)
		}
		if i > 0 && f.Activation() <= last.Activation() {
			return nil, fmt.Errorf("%w: %v enabled at block %d, but %v enabled at block %d",
				ErrForkOrdering, last, last.Activation(), f, f.Activation())
		}
		tl.pos[f] = i
		last = f
	}
	return tl, nil
}

var mainnetTimeline = func() *Timeline {
	tl, err := NewTimeline([]Fork{
		Frontier, Homestead, Byzantium, Constantinople,
		Istanbul, Berlin, London, Shanghai, Cancun,
	})
	if err != nil {
		panic(err)
	}
	return tl
}()

// MainnetTimeline returns the canonical mainnet fork sequence.
func MainnetTimeline() *Timeline {
	return mainnetTimeline
}

// Forks returns the forks in chronological order.
func (tl *Timeline) Forks() []Fork {
	return append([]Fork(nil), tl.seq...)
}

// Len returns the number of forks on the timeline.
func (tl *Timeline) Len() int {
	return len(tl.seq)
}

// First returns the genesis fork of the timeline.
func (tl *Timeline) First() Fork {
	return tl.seq[0]
}

// Latest returns the most recent fork of the timeline.
func (tl *Timeline) Latest() Fork {
	return tl.seq[len(tl.seq)-1]
}

// Contains reports whether the fork is part of the timeline.
func (tl *Timeline) Contains(f Fork) bool {
	_, ok := tl.pos[f]
	return ok
}

// Position returns the chronological position of the fork on the timeline.
func (tl *Timeline) Position(f Fork) (int, bool) {
	i, ok := tl.pos[f]
	return i, ok
}

// Predecessor returns the fork immediately preceding f. The second return is
// false for the first fork of the timeline and for forks not on it.
func (tl *Timeline) Predecessor(f Fork) (Fork, bool) {
	i, ok := tl.pos[f]
	if !ok || i == 0 {
		return 0, false
	}
	return tl.seq[i-1], true
}

// Compare orders two forks chronologically, returning -1, 0 or +1. Forks not
// on the timeline sort before all member forks.
func (tl *Timeline) Compare(a, b Fork) int {
	ia, oka := tl.pos[a]
	ib, okb := tl.pos[b]
	if !oka {
		ia = -1
	}
	if !okb {
		ib = -1
	}
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	default:
		return 0
	}
}
