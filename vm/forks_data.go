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
	"fmt"

	"github.com/bnb-chain/opcodedb/params"
)

// The canonical historical dataset: per fork, the instructions it added and
// the repricings it applied. The resolver tags provenance, so entries leave
// Introduced at its zero value.

func entry(op OpCode, gas uint64, in, out uint8, group Group, eip uint16, desc string) Record {
	return Record{
		Op:          op,
		Name:        op.String(),
		Gas:         gas,
		StackIn:     in,
		StackOut:    out,
		Group:       group,
		EIP:         eip,
		Description: desc,
	}
}

func newUint64(val uint64) *uint64 { return &val }

// frontierOpcodes returns the genesis instruction set.
func frontierOpcodes() map[OpCode]Record {
	tbl := map[OpCode]Record{
		STOP:       entry(STOP, 0, 0, 0, GroupHalt, 0, "Halts execution"),
		ADD:        entry(ADD, GasFastestStep, 2, 1, GroupArithmetic, 0, "Addition operation"),
		MUL:        entry(MUL, GasFastStep, 2, 1, GroupArithmetic, 0, "Multiplication operation"),
		SUB:        entry(SUB, GasFastestStep, 2, 1, GroupArithmetic, 0, "Subtraction operation"),
		DIV:        entry(DIV, GasFastStep, 2, 1, GroupArithmetic, 0, "Integer division operation"),
		SDIV:       entry(SDIV, GasFastStep, 2, 1, GroupArithmetic, 0, "Signed integer division operation"),
		MOD:        entry(MOD, GasFastStep, 2, 1, GroupArithmetic, 0, "Modulo remainder operation"),
		SMOD:       entry(SMOD, GasFastStep, 2, 1, GroupArithmetic, 0, "Signed modulo remainder operation"),
		ADDMOD:     entry(ADDMOD, GasMidStep, 3, 1, GroupArithmetic, 0, "Modulo addition operation"),
		MULMOD:     entry(MULMOD, GasMidStep, 3, 1, GroupArithmetic, 0, "Modulo multiplication operation"),
		EXP:        entry(EXP, GasSlowStep, 2, 1, GroupArithmetic, 0, "Exponential operation"),
		SIGNEXTEND: entry(SIGNEXTEND, GasFastStep, 2, 1, GroupArithmetic, 0, "Extend length of two's complement signed integer"),

		LT:     entry(LT, GasFastestStep, 2, 1, GroupComparison, 0, "Less-than comparison"),
		GT:     entry(GT, GasFastestStep, 2, 1, GroupComparison, 0, "Greater-than comparison"),
		SLT:    entry(SLT, GasFastestStep, 2, 1, GroupComparison, 0, "Signed less-than comparison"),
		SGT:    entry(SGT, GasFastestStep, 2, 1, GroupComparison, 0, "Signed greater-than comparison"),
		EQ:     entry(EQ, GasFastestStep, 2, 1, GroupComparison, 0, "Equality comparison"),
		ISZERO: entry(ISZERO, GasFastestStep, 1, 1, GroupComparison, 0, "Simple not operator"),
		AND:    entry(AND, GasFastestStep, 2, 1, GroupComparison, 0, "Bitwise AND operation"),
		OR:     entry(OR, GasFastestStep, 2, 1, GroupComparison, 0, "Bitwise OR operation"),
		XOR:    entry(XOR, GasFastestStep, 2, 1, GroupComparison, 0, "Bitwise XOR operation"),
		NOT:    entry(NOT, GasFastestStep, 1, 1, GroupComparison, 0, "Bitwise NOT operation"),
		BYTE:   entry(BYTE, GasFastestStep, 2, 1, GroupComparison, 0, "Retrieve single byte from word"),

		KECCAK256: entry(KECCAK256, 30, 2, 1, GroupCrypto, 0, "Compute Keccak-256 hash"),

		ADDRESS:      entry(ADDRESS, GasQuickStep, 0, 1, GroupEnvironment, 0, "Get address of currently executing account"),
		BALANCE:      entry(BALANCE, GasExtStep, 1, 1, GroupEnvironment, 0, "Get balance of the given account"),
		ORIGIN:       entry(ORIGIN, GasQuickStep, 0, 1, GroupEnvironment, 0, "Get execution origination address"),
		CALLER:       entry(CALLER, GasQuickStep, 0, 1, GroupEnvironment, 0, "Get caller address"),
		CALLVALUE:    entry(CALLVALUE, GasQuickStep, 0, 1, GroupEnvironment, 0, "Get deposited value by instruction/transaction"),
		CALLDATALOAD: entry(CALLDATALOAD, GasFastestStep, 1, 1, GroupEnvironment, 0, "Get input data of current environment"),
		CALLDATASIZE: entry(CALLDATASIZE, GasQuickStep, 0, 1, GroupEnvironment, 0, "Get size of input data in current environment"),
		CALLDATACOPY: entry(CALLDATACOPY, GasFastestStep, 3, 0, GroupEnvironment, 0, "Copy input data in current environment to memory"),
		CODESIZE:     entry(CODESIZE, GasQuickStep, 0, 1, GroupEnvironment, 0, "Get size of code running in current environment"),
		CODECOPY:     entry(CODECOPY, GasFastestStep, 3, 0, GroupEnvironment, 0, "Copy code running in current environment to memory"),
		GASPRICE:     entry(GASPRICE, GasQuickStep, 0, 1, GroupEnvironment, 0, "Get price of gas in current environment"),
		EXTCODESIZE:  entry(EXTCODESIZE, GasExtStep, 1, 1, GroupEnvironment, 0, "Get size of an account's code"),
		EXTCODECOPY:  entry(EXTCODECOPY, GasExtStep, 4, 0, GroupEnvironment, 0, "Copy an account's code to memory"),

		BLOCKHASH:  entry(BLOCKHASH, GasExtStep, 1, 1, GroupBlock, 0, "Get hash of one of the 256 most recent complete blocks"),
		COINBASE:   entry(COINBASE, GasQuickStep, 0, 1, GroupBlock, 0, "Get the block's beneficiary address"),
		TIMESTAMP:  entry(TIMESTAMP, GasQuickStep, 0, 1, GroupBlock, 0, "Get the block's timestamp"),
		NUMBER:     entry(NUMBER, GasQuickStep, 0, 1, GroupBlock, 0, "Get the block's number"),
		DIFFICULTY: entry(DIFFICULTY, GasQuickStep, 0, 1, GroupBlock, 0, "Get the block's difficulty"),
		GASLIMIT:   entry(GASLIMIT, GasQuickStep, 0, 1, GroupBlock, 0, "Get the block's gas limit"),

		POP:      entry(POP, GasQuickStep, 1, 0, GroupFlow, 0, "Remove item from stack"),
		MLOAD:    entry(MLOAD, GasFastestStep, 1, 1, GroupFlow, 0, "Load word from memory"),
		MSTORE:   entry(MSTORE, GasFastestStep, 2, 0, GroupFlow, 0, "Save word to memory"),
		MSTORE8:  entry(MSTORE8, GasFastestStep, 2, 0, GroupFlow, 0, "Save byte to memory"),
		SLOAD:    entry(SLOAD, 50, 1, 1, GroupFlow, 0, "Load word from storage"),
		SSTORE:   entry(SSTORE, 0, 2, 0, GroupFlow, 0, "Save word to storage"),
		JUMP:     entry(JUMP, GasMidStep, 1, 0, GroupFlow, 0, "Alter the program counter"),
		JUMPI:    entry(JUMPI, GasSlowStep, 2, 0, GroupFlow, 0, "Conditionally alter the program counter"),
		PC:       entry(PC, GasQuickStep, 0, 1, GroupFlow, 0, "Get the value of the program counter prior to increment"),
		MSIZE:    entry(MSIZE, GasQuickStep, 0, 1, GroupFlow, 0, "Get the size of active memory in bytes"),
		GAS:      entry(GAS, GasQuickStep, 0, 1, GroupFlow, 0, "Get the amount of available gas"),
		JUMPDEST: entry(JUMPDEST, 1, 0, 0, GroupFlow, 0, "Mark a valid destination for jumps"),

		CREATE:       entry(CREATE, 32000, 3, 1, GroupSystem, 0, "Create a new account with associated code"),
		CALL:         entry(CALL, 100, 7, 1, GroupSystem, 0, "Message-call into an account"),
		CALLCODE:     entry(CALLCODE, 100, 7, 1, GroupSystem, 0, "Message-call with alternative account's code"),
		RETURN:       entry(RETURN, 0, 2, 0, GroupHalt, 0, "Halt execution returning output data"),
		INVALID:      entry(INVALID, 0, 0, 0, GroupHalt, 0, "Designated invalid instruction"),
		SELFDESTRUCT: entry(SELFDESTRUCT, 5000, 1, 0, GroupHalt, 0, "Halt execution and register account for deletion"),
	}
	for i := 1; i <= 32; i++ {
		op := PUSH1 + OpCode(i-1)
		tbl[op] = entry(op, GasFastestStep, 0, 1, GroupPush, 0, fmt.Sprintf("Place %d-byte item on stack", i))
	}
	for i := 1; i <= 16; i++ {
		op := DUP1 + OpCode(i-1)
		tbl[op] = entry(op, GasFastestStep, uint8(i), uint8(i+1), GroupDup, 0, fmt.Sprintf("Duplicate %s stack item", ordinal(i)))
	}
	for i := 1; i <= 16; i++ {
		op := SWAP1 + OpCode(i-1)
		tbl[op] = entry(op, GasFastestStep, uint8(i+1), uint8(i+1), GroupSwap, 0, fmt.Sprintf("Exchange 1st and %s stack items", ordinal(i+1)))
	}
	for i := 0; i <= 4; i++ {
		op := LOG0 + OpCode(i)
		tbl[op] = entry(op, uint64(375*(i+1)), uint8(i+2), 0, GroupLog, 0, fmt.Sprintf("Append log record with %d topics", i))
	}
	return tbl
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

// changeSets returns the historical per-fork diffs, Frontier through Cancun.
func changeSets() []ChangeSet {
	return []ChangeSet{
		{
			Fork:  params.Frontier,
			Added: frontierOpcodes(),
		},
		{
			Fork: params.Homestead,
			Added: map[OpCode]Record{
				DELEGATECALL: entry(DELEGATECALL, 40, 6, 1, GroupSystem, 7, "Message-call with alternative account's code persisting current context"),
			},
		},
		{
			Fork: params.Byzantium,
			Added: map[OpCode]Record{
				RETURNDATASIZE: entry(RETURNDATASIZE, GasQuickStep, 0, 1, GroupEnvironment, 211, "Get size of output data from previous call"),
				RETURNDATACOPY: entry(RETURNDATACOPY, GasFastestStep, 3, 0, GroupEnvironment, 211, "Copy output data from previous call to memory"),
				STATICCALL:     entry(STATICCALL, 40, 6, 1, GroupSystem, 214, "Static message-call into an account"),
				REVERT:         entry(REVERT, 0, 2, 0, GroupHalt, 140, "Stop execution and revert state changes"),
			},
		},
		{
			Fork: params.Constantinople,
			Added: map[OpCode]Record{
				SHL:         entry(SHL, GasFastestStep, 2, 1, GroupComparison, 145, "Left shift operation"),
				SHR:         entry(SHR, GasFastestStep, 2, 1, GroupComparison, 145, "Logical right shift operation"),
				SAR:         entry(SAR, GasFastestStep, 2, 1, GroupComparison, 145, "Arithmetic right shift operation"),
				EXTCODEHASH: entry(EXTCODEHASH, 100, 1, 1, GroupEnvironment, 1052, "Get hash of an account's code"),
				CREATE2:     entry(CREATE2, 32000, 4, 1, GroupSystem, 1014, "Create account with associated code at specified address"),
			},
		},
		{
			Fork: params.Istanbul,
			Added: map[OpCode]Record{
				CHAINID:     entry(CHAINID, GasQuickStep, 0, 1, GroupBlock, 1344, "Get the chain ID"),
				SELFBALANCE: entry(SELFBALANCE, GasFastStep, 0, 1, GroupBlock, 1884, "Get balance of currently executing account"),
			},
			// EIP-1884 repricing of trie-size dependent instructions.
			Modified: map[OpCode]Patch{
				SLOAD:   {Gas: newUint64(800), EIP: 1884},
				BALANCE: {Gas: newUint64(700), EIP: 1884},
			},
		},
		{
			// Berlin added no instructions, only the EIP-2929 access list
			// repricing of cold state reads.
			Fork: params.Berlin,
			Modified: map[OpCode]Patch{
				SLOAD:       {Gas: newUint64(2100), EIP: 2929},
				BALANCE:     {Gas: newUint64(2600), EIP: 2929},
				EXTCODESIZE: {Gas: newUint64(2600), EIP: 2929},
				EXTCODECOPY: {Gas: newUint64(2600), EIP: 2929},
				EXTCODEHASH: {Gas: newUint64(2600), EIP: 2929},
			},
		},
		{
			Fork: params.London,
			Added: map[OpCode]Record{
				BASEFEE: entry(BASEFEE, GasQuickStep, 0, 1, GroupBlock, 3198, "Get the base fee"),
			},
		},
		{
			Fork: params.Shanghai,
			Added: map[OpCode]Record{
				PUSH0: entry(PUSH0, GasQuickStep, 0, 1, GroupPush, 3855, "Place 0 byte item on stack"),
			},
		},
		{
			Fork: params.Cancun,
			Added: map[OpCode]Record{
				BLOBHASH:    entry(BLOBHASH, GasFastestStep, 1, 1, GroupBlock, 4844, "Get versioned hash at index"),
				BLOBBASEFEE: entry(BLOBBASEFEE, GasQuickStep, 0, 1, GroupBlock, 7516, "Get the current blob base fee"),
				TLOAD:       entry(TLOAD, 100, 1, 1, GroupFlow, 1153, "Load word from transient storage"),
				TSTORE:      entry(TSTORE, 100, 2, 0, GroupFlow, 1153, "Save word to transient storage"),
				MCOPY:       entry(MCOPY, GasFastestStep, 3, 0, GroupFlow, 5656, "Copy memory areas"),
			},
		},
	}
}
