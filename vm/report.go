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
	"log/slog"

	"github.com/bnb-chain/opcodedb/params"
)

// Severity grades a validation finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Finding is one validator observation. Findings are data: they are collected
// into a report and never thrown as control flow.
type Finding struct {
	Check    string
	Severity Severity
	Fork     params.Fork
	Op       OpCode
	HasOp    bool // false for findings not tied to a single byte
	Message  string
}

func (f Finding) String() string {
	if f.HasOp {
		return fmt.Sprintf("[%s] %s %v/%v: %s", f.Severity, f.Check, f.Fork, f.Op, f.Message)
	}
	return fmt.Sprintf("[%s] %s %v: %s", f.Severity, f.Check, f.Fork, f.Message)
}

// Report is the validator's output: all findings in timeline order, then byte
// order, then check name.
type Report struct {
	Findings []Finding
}

// Errors returns the number of error-level findings.
func (r *Report) Errors() int {
	return r.count(SeverityError)
}

// Warnings returns the number of warning-level findings.
func (r *Report) Warnings() int {
	return r.count(SeverityWarning)
}

func (r *Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// OK reports whether the report is free of error-level findings. Warnings do
// not fail a report; callers wanting stricter handling inspect Warnings.
func (r *Report) OK() bool {
	return r.Errors() == 0
}

// Summary returns a one-line digest of the report.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d findings (%d errors, %d warnings)", len(r.Findings), r.Errors(), r.Warnings())
}

// Log writes the report through the given structured logger, the summary at
// debug level and each finding at its severity's level. A nil logger falls
// back to the process default.
func (r *Report) Log(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	l.Debug("opcode table validation finished", "findings", len(r.Findings), "errors", r.Errors(), "warnings", r.Warnings())
	for _, f := range r.Findings {
		attrs := []any{"check", f.Check, "fork", f.Fork.String()}
		if f.HasOp {
			attrs = append(attrs, "op", f.Op.String())
		}
		attrs = append(attrs, "msg", f.Message)
		if f.Severity == SeverityError {
			l.Error("opcode table validation finding", attrs...)
		} else {
			l.Warn("opcode table validation finding", attrs...)
		}
	}
}
