package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/zeroone/internal/poly"
)

// ParsedEquation is one re-parsed (Polynomial, right-hand side) pair.
type ParsedEquation struct {
	LHS poly.Polynomial
	RHS poly.RHS
}

// ParsePlain parses the plain interchange form produced by Plain: one
// "polynomial = status" line per equation, blank lines ignored. Input
// is NFC-normalized first, so text that passed through external
// editors or pipelines still parses.
func ParsePlain(text string) ([]ParsedEquation, error) {
	var out []ParsedEquation
	for n, line := range strings.Split(norm.NFC.String(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		eq, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		out = append(out, eq)
	}
	return out, nil
}

// ParseBlocks parses blank-line-separated equation blocks, the layout
// of leaf-equation files: one block per leaf system.
func ParseBlocks(text string) ([][]ParsedEquation, error) {
	var out [][]ParsedEquation
	var cur []ParsedEquation
	for n, line := range strings.Split(norm.NFC.String(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		eq, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		cur = append(cur, eq)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out, nil
}

func parseLine(line string) (ParsedEquation, error) {
	lhs, rhs, ok := strings.Cut(line, "=")
	if !ok {
		return ParsedEquation{}, fmt.Errorf("missing %q in %q", "=", line)
	}
	r, err := parseRHS(strings.TrimSpace(rhs))
	if err != nil {
		return ParsedEquation{}, err
	}
	p, err := parsePolynomial(strings.TrimSpace(lhs))
	if err != nil {
		return ParsedEquation{}, err
	}
	return ParsedEquation{LHS: p, RHS: r}, nil
}

func parseRHS(s string) (poly.RHS, error) {
	switch strings.Join(strings.Fields(s), " ") {
	case "0":
		return poly.RHSZero, nil
	case "1":
		return poly.RHSOne, nil
	case "0 or 1":
		return poly.RHSZeroOrOne, nil
	default:
		return 0, fmt.Errorf("bad right-hand side %q", s)
	}
}

func parsePolynomial(s string) (poly.Polynomial, error) {
	if s == "0" {
		return nil, nil
	}
	var out poly.Polynomial
	for _, raw := range strings.Split(s, "+") {
		t, err := parseTerm(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseTerm(s string) (poly.Term, error) {
	if s == "" {
		return poly.Term{}, fmt.Errorf("empty term")
	}
	var pIdx, qIdx int
	for _, raw := range strings.Split(s, "*") {
		f := strings.TrimSpace(raw)
		if f == "1" {
			continue
		}
		prefix, idxStr, ok := strings.Cut(f, "_")
		if !ok {
			return poly.Term{}, fmt.Errorf("bad factor %q in term %q", f, s)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 1 || idx > 255 {
			return poly.Term{}, fmt.Errorf("bad variable index in factor %q", f)
		}
		switch prefix {
		case "p":
			if pIdx != 0 {
				return poly.Term{}, fmt.Errorf("term %q repeats a P-factor", s)
			}
			pIdx = idx
		case "q":
			if qIdx != 0 {
				return poly.Term{}, fmt.Errorf("term %q repeats a Q-factor", s)
			}
			qIdx = idx
		default:
			return poly.Term{}, fmt.Errorf("bad factor %q in term %q", f, s)
		}
	}
	switch {
	case pIdx != 0 && qIdx != 0:
		return poly.PQ(pIdx, qIdx), nil
	case pIdx != 0:
		return poly.P(pIdx), nil
	case qIdx != 0:
		return poly.Q(qIdx), nil
	default:
		return poly.One(), nil
	}
}
