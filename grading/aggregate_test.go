package grading

import (
	"math"
	"reflect"
	"testing"
)

func TestAggregateOf(t *testing.T) {
	cases := []struct {
		name  string
		marks map[string]float64
		want  int
		ok    bool
	}{
		{
			name:  "exactly four standard subjects",
			marks: map[string]float64{"EL": 92, "Maths": 88, "Sci": 70, "CL": 40, "ML": math.NaN()},
			want:  15,
			ok:    true,
		},
		{
			name:  "three subjects",
			marks: map[string]float64{"EL": 92, "Maths": 88, "Sci": 70},
		},
		{
			name:  "best four of five",
			marks: map[string]float64{"EL": 92, "Maths": 88, "Sci": 70, "CL": 40, "TL": 10},
			want:  15,
			ok:    true,
		},
		{
			name:  "higher subjects are never counted",
			marks: map[string]float64{"EL": 92, "Maths": 88, "Sci": 70, "HCL": 99, "HML": 99},
		},
		{
			name:  "foundation A counts as 6",
			marks: map[string]float64{"EL": 92, "Maths": 88, "Sci": 70, "Fn CL": 100},
			want:  1 + 2 + 5 + 6,
			ok:    true,
		},
		{
			name:  "foundation B and C count as 7 and 8",
			marks: map[string]float64{"Fn EL": 50, "Fn Maths": 10, "Fn Sci": 80, "Fn CL": 5},
			want:  6 + 7 + 8 + 8,
			ok:    true,
		},
		{
			name:  "unknown subjects are ignored",
			marks: map[string]float64{"EL": 92, "Maths": 88, "Sci": 70, "Art": 99},
		},
		{
			name:  "worst possible",
			marks: map[string]float64{"EL": 0, "Maths": 0, "Sci": 0, "CL": 0},
			want:  32,
			ok:    true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AggregateOf(tc.marks)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("AggregateOf = %d,%v want %d,%v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestWeakSubjects(t *testing.T) {
	got := WeakSubjects(map[string]int{"Maths": 1, "Sci": 1, "EL": 6})
	if !reflect.DeepEqual(got, []string{"EL"}) {
		t.Fatalf("WeakSubjects = %v, want [EL]", got)
	}
}

func TestWeakSubjectsExactMargin(t *testing.T) {
	// mean 2, CL is exactly 2 above it
	got := WeakSubjects(map[string]int{"EL": 1, "Maths": 1, "CL": 4})
	if !reflect.DeepEqual(got, []string{"CL"}) {
		t.Fatalf("WeakSubjects = %v, want [CL]", got)
	}
	got = WeakSubjects(map[string]int{"EL": 2, "Maths": 3, "CL": 4})
	if len(got) != 0 {
		t.Fatalf("expected no weak subjects, got %v", got)
	}
}

func TestWeakSubjectsEmpty(t *testing.T) {
	got := WeakSubjects(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if n := WeakCount(map[string]int{}); n != 0 {
		t.Fatalf("WeakCount = %d, want 0", n)
	}
}

func TestWeakSubjectsDisplayOrder(t *testing.T) {
	ranks := map[string]int{"HCL": 4, "EL": 1, "Maths": 1, "Sci": 1, "CL": 1, "ML": 1, "TL": 4}
	got := WeakSubjects(ranks)
	if !reflect.DeepEqual(got, []string{"TL", "HCL"}) {
		t.Fatalf("WeakSubjects = %v, want [TL HCL]", got)
	}
}

func TestDisplayRanks(t *testing.T) {
	got := DisplayRanks(map[string]float64{"EL": 91, "HCL": 66, "Fn Sci": 20, "ML": math.NaN(), "Art": 50})
	want := map[string]int{"EL": 1, "HCL": 2, "Fn Sci": 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DisplayRanks = %v, want %v", got, want)
	}
}
