package poly

import "fmt"

// VarState is the knowledge recorded about one variable. States move in
// one direction only: VarUnknown -> VarZeroOrOne -> {VarZero, VarOne}.
// A variable fixed to Zero or One is terminal; re-fixing it to the other
// value is an engine bug, not a data condition.
type VarState uint8

const (
	// VarUnknown means no constraint has been derived yet.
	VarUnknown VarState = iota
	// VarZeroOrOne means the variable is proven binary-valued but the
	// specific value is still open.
	VarZeroOrOne
	// VarZero means the variable is fixed to 0.
	VarZero
	// VarOne means the variable is fixed to 1.
	VarOne
)

// Fixed reports whether s pins the variable to a specific value.
func (s VarState) Fixed() bool { return s == VarZero || s == VarOne }

// Binary reports whether s proves the variable is {0,1}-valued.
func (s VarState) Binary() bool { return s != VarUnknown }

func (s VarState) String() string {
	switch s {
	case VarUnknown:
		return "unknown"
	case VarZeroOrOne:
		return "0 or 1"
	case VarZero:
		return "0"
	case VarOne:
		return "1"
	default:
		return fmt.Sprintf("VarState(%d)", uint8(s))
	}
}

// RHS is the right-hand-side status of an equation. RHSZeroOrOne is the
// initial state; RHSZero and RHSOne are terminal once derived.
type RHS uint8

const (
	// RHSZeroOrOne means the left-hand side equals 0 or 1.
	RHSZeroOrOne RHS = iota
	// RHSZero means the left-hand side equals 0.
	RHSZero
	// RHSOne means the left-hand side equals 1.
	RHSOne
)

func (r RHS) String() string {
	switch r {
	case RHSZeroOrOne:
		return "0 or 1"
	case RHSZero:
		return "0"
	case RHSOne:
		return "1"
	default:
		return fmt.Sprintf("RHS(%d)", uint8(r))
	}
}
