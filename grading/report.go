package grading

import (
	"math"
	"sort"

	"markboard-server-go/models"
)

// StudentReport holds the derived columns of the individual student table.
type StudentReport struct {
	Name         string               `json:"name"`
	Class        string               `json:"class"`
	Bands        map[string]GradeBand `json:"bands"`
	TotalMarks   float64              `json:"totalMarks"`
	Aggregate    *int                 `json:"aggregate"`
	WeakSubjects []string             `json:"weakSubjects"`
	WeakCount    int                  `json:"weakCount"`
}

// BuildReport derives one student's table row.
func BuildReport(rec models.StudentRecord) StudentReport {
	bands := make(map[string]GradeBand, len(rec.Marks))
	total := 0.0
	// Fixed order keeps the float sum identical across runs.
	for _, subject := range Subjects {
		mark, ok := rec.Marks[subject]
		if !ok || math.IsNaN(mark) {
			continue
		}
		total += mark
		if b, ok := GradeOf(subject, mark); ok {
			bands[subject] = b
		}
	}

	var aggregate *int
	if agg, ok := AggregateOf(rec.Marks); ok {
		aggregate = &agg
	}
	weak := WeakSubjects(DisplayRanks(rec.Marks))

	return StudentReport{
		Name:         rec.Name,
		Class:        rec.Class,
		Bands:        bands,
		TotalMarks:   total,
		Aggregate:    aggregate,
		WeakSubjects: weak,
		WeakCount:    len(weak),
	}
}

// BuildReports derives rows for the students whose class is in classFilter,
// keeping input order.
func BuildReports(students []models.StudentRecord, classFilter []string) []StudentReport {
	selected := make(map[string]bool, len(classFilter))
	for _, c := range classFilter {
		selected[c] = true
	}
	out := make([]StudentReport, 0, len(students))
	for _, st := range students {
		if selected[st.Class] {
			out = append(out, BuildReport(st))
		}
	}
	return out
}

// SortKey names a sortable report column.
type SortKey string

const (
	SortTotalMarks   SortKey = "total_marks"
	SortAggregate    SortKey = "aggregate"
	SortWeakSubjects SortKey = "weak_subjects"
)

// ParseSortKey validates a sort key from a query string.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortTotalMarks, SortAggregate, SortWeakSubjects:
		return k, true
	}
	return "", false
}

// SortReports orders reports in place by key. Missing aggregates always
// sort last; equal rows keep their relative order.
func SortReports(reports []StudentReport, key SortKey, ascending bool) {
	less := func(a, b float64) bool {
		if ascending {
			return a < b
		}
		return a > b
	}
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		switch key {
		case SortAggregate:
			if a.Aggregate == nil || b.Aggregate == nil {
				return a.Aggregate != nil && b.Aggregate == nil
			}
			return less(float64(*a.Aggregate), float64(*b.Aggregate))
		case SortWeakSubjects:
			return less(float64(a.WeakCount), float64(b.WeakCount))
		default:
			return less(a.TotalMarks, b.TotalMarks)
		}
	})
}
