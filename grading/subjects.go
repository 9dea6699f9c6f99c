package grading

import (
	"sort"
	"strings"
)

// Kind selects the grading scale for a subject.
type Kind int

const (
	Standard Kind = iota
	Higher
	Foundation
)

func (k Kind) String() string {
	switch k {
	case Higher:
		return "higher"
	case Foundation:
		return "foundation"
	default:
		return "standard"
	}
}

const foundationPrefix = "Fn "

// Subjects is the fixed subject set in display order.
var Subjects = []string{
	"EL", "Maths", "Sci", "CL", "ML", "TL",
	"HCL", "HML", "HTL",
	"Fn EL", "Fn Maths", "Fn Sci", "Fn CL", "Fn ML", "Fn TL",
}

var higherSubjects = map[string]bool{"HCL": true, "HML": true, "HTL": true}

var subjectIndex = func() map[string]int {
	idx := make(map[string]int, len(Subjects))
	for i, s := range Subjects {
		idx[s] = i
	}
	return idx
}()

// IsKnownSubject reports whether code belongs to the fixed subject set.
func IsKnownSubject(code string) bool {
	_, ok := subjectIndex[code]
	return ok
}

// KindOf returns the scale kind of a known subject. Unknown codes return false.
func KindOf(code string) (Kind, bool) {
	if !IsKnownSubject(code) {
		return Standard, false
	}
	switch {
	case strings.HasPrefix(code, foundationPrefix):
		return Foundation, true
	case higherSubjects[code]:
		return Higher, true
	default:
		return Standard, true
	}
}

// OrderSubjects returns the known codes from codes, deduplicated, in display order.
func OrderSubjects(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if IsKnownSubject(c) && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return subjectIndex[out[i]] < subjectIndex[out[j]] })
	return out
}

// subjectLess orders known subjects first in display order, then anything else by name.
func subjectLess(a, b string) bool {
	ia, aok := subjectIndex[a]
	ib, bok := subjectIndex[b]
	switch {
	case aok && bok:
		return ia < ib
	case aok != bok:
		return aok
	default:
		return a < b
	}
}
