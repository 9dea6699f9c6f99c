package grading

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"markboard-server-go/models"
)

const (
	QuantityPassMark = 45.0
	QualityPassMark  = 75.0
)

// BandCount is the number of students in one band. Percent is nil when the
// group has no gradable students.
type BandCount struct {
	Band    GradeBand `json:"band"`
	Count   int       `json:"count"`
	Percent *float64  `json:"percent"`
}

// ClassSummary is one row of the class pivot.
type ClassSummary struct {
	Class           string      `json:"class"`
	Counts          []BandCount `json:"counts"`
	Total           int         `json:"total"`
	QuantityPassPct *float64    `json:"quantityPassPct"`
	QualityPassPct  *float64    `json:"qualityPassPct"`
}

// SubjectSummary is the pivot for one subject over a class selection.
// Overall covers every selected class together.
type SubjectSummary struct {
	Subject string         `json:"subject"`
	Bands   []GradeBand    `json:"bands"`
	Classes []ClassSummary `json:"classes"`
	Overall ClassSummary   `json:"overall"`
}

type tally struct {
	counts   map[GradeBand]int
	total    int
	quantity int
	quality  int
}

func newTally() *tally {
	return &tally{counts: map[GradeBand]int{}}
}

func (t *tally) add(band GradeBand, mark float64) {
	t.counts[band]++
	t.total++
	if mark >= QuantityPassMark {
		t.quantity++
	}
	if mark >= QualityPassMark {
		t.quality++
	}
}

func (t *tally) summary(class string, bands []GradeBand) ClassSummary {
	counts := make([]BandCount, 0, len(bands))
	for _, b := range bands {
		n := t.counts[b]
		counts = append(counts, BandCount{Band: b, Count: n, Percent: percent(n, t.total)})
	}
	return ClassSummary{
		Class:           class,
		Counts:          counts,
		Total:           t.total,
		QuantityPassPct: percent(t.quantity, t.total),
		QualityPassPct:  percent(t.quality, t.total),
	}
}

// percent is n/total as a percentage rounded to one decimal, or nil when total is zero.
func percent(n, total int) *float64 {
	if total == 0 {
		return nil
	}
	v, err := stats.Round(float64(n)/float64(total)*100, 1)
	if err != nil {
		return nil
	}
	return &v
}

// Summarize builds the class pivot for subject over the classes in
// classFilter. Every selected class gets a row, even with no gradable
// students, and every band of the subject's scale appears in each row.
func Summarize(students []models.StudentRecord, subject string, classFilter []string) SubjectSummary {
	scale, ok := ScaleFor(subject)
	if !ok {
		return SubjectSummary{
			Subject: subject,
			Bands:   []GradeBand{},
			Classes: []ClassSummary{},
			Overall: ClassSummary{Counts: []BandCount{}},
		}
	}
	bands := scale.Bands()

	classes := uniqueSorted(classFilter)
	tallies := make(map[string]*tally, len(classes))
	for _, c := range classes {
		tallies[c] = newTally()
	}
	overall := newTally()

	for _, st := range students {
		t, selected := tallies[st.Class]
		if !selected {
			continue
		}
		mark, present := st.Marks[subject]
		if !present || math.IsNaN(mark) {
			continue
		}
		band := scale.Grade(mark)
		t.add(band, mark)
		overall.add(band, mark)
	}

	rows := make([]ClassSummary, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, tallies[c].summary(c, bands))
	}
	return SubjectSummary{
		Subject: subject,
		Bands:   bands,
		Classes: rows,
		Overall: overall.summary("", bands),
	}
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
