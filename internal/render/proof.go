package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/zeroone/internal/solve"
)

var varPattern = regexp.MustCompile(`([pq])_([0-9]+)`)

// texNote wraps the variable mentions of a plain-text trace note in
// inline math so the prose is valid outside math mode.
func texNote(note string) string {
	return varPattern.ReplaceAllString(note, `$$${1}_{${2}}$$`)
}

// Transcript renders a full search trace as a standalone LaTeX proof
// document: one section per case, the deduction narrative as prose,
// and system snapshots as align* blocks, following the layout of the
// hand-published instances.
func Transcript(degP, degQ int, tr *solve.Trace) string {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n")
	b.WriteString("\\usepackage{amsmath}\n")
	b.WriteString("\\allowdisplaybreaks\n\n")
	fmt.Fprintf(&b, "\\title{Verification of the $(%d, %d)$ instance}\n", degP, degQ)
	b.WriteString("\\date{}\n\\begin{document}\n\\maketitle\n")

	for _, ev := range tr.Events {
		switch ev.Kind {
		case solve.TraceEnter:
			if len(ev.Path) == 0 {
				b.WriteString("\n\\section*{Initial system}\n")
			} else {
				fmt.Fprintf(&b, "\n\\subsection*{Case %s}\n", ev.Path)
				fmt.Fprintf(&b, "Assume %s.\n", texNote(ev.Note))
			}
			if ev.System != nil {
				b.WriteString(LaTeX(ev.System))
				b.WriteByte('\n')
			}
		case solve.TraceDeduce:
			// snapshot-only bookkeeping events carry no prose
			if ev.System == nil {
				fmt.Fprintf(&b, "Now %s.\n", texNote(ev.Note))
			}
		case solve.TraceSplit:
			fmt.Fprintf(&b, "We branch on the fact that %s.\n", texNote(ev.Note))
		case solve.TraceSolved:
			b.WriteString("Every remaining coefficient is confirmed to be 0 or 1.\n")
		case solve.TraceInconsistent:
			b.WriteString("The assumptions are contradictory, so this case cannot occur.\n")
		case solve.TraceLeaf:
			b.WriteString("It remains to be shown via a Groebner basis calculation" +
				" that this system of equations has no solutions.\n")
			if ev.System != nil {
				b.WriteString(LaTeX(ev.System))
				b.WriteByte('\n')
			}
		}
	}

	b.WriteString("\n\\end{document}\n")
	return b.String()
}

// TranscriptPlain renders a search trace as an indented plain-text
// progression, one line per step, with leaf systems inlined.
func TranscriptPlain(degP, degQ int, tr *solve.Trace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "verification of (%d, %d)\n", degP, degQ)
	for _, ev := range tr.Events {
		switch ev.Kind {
		case solve.TraceEnter:
			if len(ev.Path) == 0 {
				fmt.Fprintf(&b, "\nroot: %s\n", ev.Note)
			} else {
				fmt.Fprintf(&b, "\ncase %s: %s\n", ev.Path, ev.Note)
			}
		case solve.TraceDeduce:
			if ev.System == nil {
				fmt.Fprintf(&b, "  %s\n", ev.Note)
			}
		case solve.TraceSplit:
			fmt.Fprintf(&b, "  split: %s\n", ev.Note)
		case solve.TraceSolved:
			b.WriteString("  solved\n")
		case solve.TraceInconsistent:
			b.WriteString("  inconsistent\n")
		case solve.TraceLeaf:
			b.WriteString("  leaf:\n")
			if ev.System != nil {
				for _, line := range strings.Split(strings.TrimRight(Plain(ev.System), "\n"), "\n") {
					fmt.Fprintf(&b, "    %s\n", line)
				}
			}
		}
	}
	return b.String()
}
