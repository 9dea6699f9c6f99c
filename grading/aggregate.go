package grading

import "sort"

// aggregateCount is how many best subjects make up the aggregate.
const aggregateCount = 4

// Foundation passes count as AL6..AL8 in the aggregate.
var foundationAggregateRanks = map[GradeBand]int{BandA: 6, BandB: 7, BandC: 8}

// aggregationRank is the rank a subject contributes to the aggregate.
// Higher subjects never contribute.
func aggregationRank(subject string, mark float64) (int, bool) {
	kind, ok := KindOf(subject)
	if !ok || kind == Higher {
		return 0, false
	}
	band, ok := GradeOf(subject, mark)
	if !ok {
		return 0, false
	}
	if kind == Foundation {
		return foundationAggregateRanks[band], true
	}
	return RankOf(band)
}

// AggregateOf sums the four best aggregation ranks among the student's
// Standard and Foundation subjects. Fewer than four eligible subjects
// yields false.
func AggregateOf(marks map[string]float64) (int, bool) {
	ranks := make([]int, 0, len(marks))
	for subject, mark := range marks {
		if r, ok := aggregationRank(subject, mark); ok {
			ranks = append(ranks, r)
		}
	}
	if len(ranks) < aggregateCount {
		return 0, false
	}
	sort.Ints(ranks)
	sum := 0
	for _, r := range ranks[:aggregateCount] {
		sum += r
	}
	return sum, true
}
