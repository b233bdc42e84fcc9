package solve

import (
	"strconv"
	"strings"

	"github.com/roach88/zeroone/internal/system"
)

// CasePath identifies a node in the decision tree by the branch taken
// at each split, root first. Branch numbers start at 1 in exploration
// order, so the first leaf of a run is always 1.1....1.
type CasePath []int

// String renders the path in dotted form, e.g. "1.2.1". The root is
// the empty string.
func (p CasePath) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for k, c := range p {
		if k > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// Child returns a copy of p extended with branch c. The copy shares no
// storage with p; sibling branches extend the same parent path.
func (p CasePath) Child(c int) CasePath {
	out := make(CasePath, len(p)+1)
	copy(out, p)
	out[len(p)] = c
	return out
}

// TraceKind classifies a trace event.
type TraceKind int

const (
	// TraceEnter marks the start of work on a case, before deduction.
	TraceEnter TraceKind = iota
	// TraceDeduce records one deduction step of the simplifier.
	TraceDeduce
	// TraceSplit records a case split and names the branched quantity.
	TraceSplit
	// TraceSolved records a case proven {0,1}-valued.
	TraceSolved
	// TraceInconsistent records a case closed by contradiction.
	TraceInconsistent
	// TraceLeaf records a residual case kept for external inspection.
	TraceLeaf
)

// TraceEvent is one entry of a proof transcript.
type TraceEvent struct {
	Kind TraceKind
	Path CasePath
	// Note is a short plain-text account of the step, e.g.
	// "equation 3 forces q_2 = 1".
	Note string
	// System is a snapshot taken after the event, nil for events whose
	// kind makes the state obvious (splits snapshot the parent).
	System *system.System
}

// Trace accumulates the transcript of one search. A nil *Trace is a
// valid sink that records nothing, so the engine can thread one
// unconditionally.
type Trace struct {
	Events []TraceEvent
}

// Enabled reports whether events will actually be kept.
func (t *Trace) Enabled() bool { return t != nil }

func (t *Trace) add(kind TraceKind, path CasePath, note string, s *system.System) {
	if t == nil {
		return
	}
	ev := TraceEvent{Kind: kind, Path: path, Note: note}
	if s != nil {
		ev.System = s.Clone()
	}
	t.Events = append(t.Events, ev)
}
