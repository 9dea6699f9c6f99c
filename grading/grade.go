// Package grading turns raw subject marks into bands, ranks, aggregates and
// class summaries. Every function here is pure and total: absent or
// unrecognised input yields a "no value" result rather than an error.
package grading

import "math"

// GradeBand is the category a single mark falls into.
type GradeBand string

const (
	BandA GradeBand = "A"
	BandB GradeBand = "B"
	BandC GradeBand = "C"

	Distinction GradeBand = "Distinction"
	Merit       GradeBand = "Merit"
	Pass        GradeBand = "Pass"
	Ungraded    GradeBand = "Ungraded"

	AL1 GradeBand = "AL1"
	AL2 GradeBand = "AL2"
	AL3 GradeBand = "AL3"
	AL4 GradeBand = "AL4"
	AL5 GradeBand = "AL5"
	AL6 GradeBand = "AL6"
	AL7 GradeBand = "AL7"
	AL8 GradeBand = "AL8"
)

type threshold struct {
	min  float64
	band GradeBand
}

// Scale is an ordered set of lower-bound thresholds, best band first.
type Scale struct {
	Kind       Kind
	thresholds []threshold
	floor      GradeBand
}

// Bands lists the scale's bands best to worst.
func (s Scale) Bands() []GradeBand {
	out := make([]GradeBand, 0, len(s.thresholds)+1)
	for _, t := range s.thresholds {
		out = append(out, t.band)
	}
	return append(out, s.floor)
}

// Grade maps a mark onto the scale. The first threshold the mark reaches wins.
func (s Scale) Grade(mark float64) GradeBand {
	for _, t := range s.thresholds {
		if mark >= t.min {
			return t.band
		}
	}
	return s.floor
}

var scales = map[Kind]Scale{
	Foundation: {
		Kind:       Foundation,
		thresholds: []threshold{{75, BandA}, {30, BandB}},
		floor:      BandC,
	},
	Higher: {
		Kind:       Higher,
		thresholds: []threshold{{80, Distinction}, {65, Merit}, {50, Pass}},
		floor:      Ungraded,
	},
	Standard: {
		Kind: Standard,
		thresholds: []threshold{
			{90, AL1}, {85, AL2}, {80, AL3}, {75, AL4},
			{65, AL5}, {45, AL6}, {20, AL7},
		},
		floor: AL8,
	},
}

// ScaleFor returns the scale used by subject.
func ScaleFor(subject string) (Scale, bool) {
	kind, ok := KindOf(subject)
	if !ok {
		return Scale{}, false
	}
	return scales[kind], true
}

// GradeOf returns the band for a mark in subject. A NaN mark or a subject
// outside the fixed set yields false.
func GradeOf(subject string, mark float64) (GradeBand, bool) {
	if math.IsNaN(mark) {
		return "", false
	}
	scale, ok := ScaleFor(subject)
	if !ok {
		return "", false
	}
	return scale.Grade(mark), true
}

var bandRanks = map[GradeBand]int{
	BandA: 1, Distinction: 1,
	BandB: 2, Merit: 2,
	BandC: 3, Pass: 3,
	Ungraded: 4,
	AL1: 1, AL2: 2, AL3: 3, AL4: 4, AL5: 5, AL6: 6, AL7: 7, AL8: 8,
}

// RankOf maps a band to the shared ordinal scale where 1 is best.
func RankOf(band GradeBand) (int, bool) {
	r, ok := bandRanks[band]
	return r, ok
}
