package grading

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// weakMargin is how many bands below their own mean a subject must sit.
const weakMargin = 2.0

// Tolerance for the float mean; ranks are whole numbers.
const weakEpsilon = 1e-9

// DisplayRanks grades every known subject with a mark and returns its rank.
func DisplayRanks(marks map[string]float64) map[string]int {
	ranks := make(map[string]int, len(marks))
	for subject, mark := range marks {
		band, ok := GradeOf(subject, mark)
		if !ok {
			continue
		}
		if r, ok := RankOf(band); ok {
			ranks[subject] = r
		}
	}
	return ranks
}

// WeakSubjects returns the subjects whose rank is at least two worse than
// the student's mean rank, in display order.
func WeakSubjects(ranks map[string]int) []string {
	weak := []string{}
	if len(ranks) == 0 {
		return weak
	}
	data := make(stats.Float64Data, 0, len(ranks))
	for _, r := range ranks {
		data = append(data, float64(r))
	}
	mean, err := data.Mean()
	if err != nil {
		return weak
	}
	for subject, r := range ranks {
		if float64(r)-mean >= weakMargin-weakEpsilon {
			weak = append(weak, subject)
		}
	}
	sort.Slice(weak, func(i, j int) bool { return subjectLess(weak[i], weak[j]) })
	return weak
}

// WeakCount is len(WeakSubjects(ranks)).
func WeakCount(ranks map[string]int) int {
	return len(WeakSubjects(ranks))
}
