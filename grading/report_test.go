package grading

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestBuildReport(t *testing.T) {
	r := BuildReport(rec("Ann", "4A", map[string]float64{
		"EL": 92, "Maths": 88, "Sci": 70, "CL": 40, "HCL": 81, "Art": 100,
	}))
	if r.TotalMarks != 92+88+70+40+81 {
		t.Fatalf("total marks = %v", r.TotalMarks)
	}
	if r.Aggregate == nil || *r.Aggregate != 15 {
		t.Fatalf("aggregate = %v, want 15", r.Aggregate)
	}
	want := map[string]GradeBand{"EL": AL1, "Maths": AL2, "Sci": AL5, "CL": AL7, "HCL": Distinction}
	if !reflect.DeepEqual(r.Bands, want) {
		t.Fatalf("bands = %v, want %v", r.Bands, want)
	}
	// ranks 1,2,5,7,1 give mean 3.2; only CL is 2 or more above it
	if !reflect.DeepEqual(r.WeakSubjects, []string{"CL"}) || r.WeakCount != 1 {
		t.Fatalf("weak = %v (%d)", r.WeakSubjects, r.WeakCount)
	}
}

func TestBuildReportWithoutAggregate(t *testing.T) {
	r := BuildReport(rec("Ben", "4A", map[string]float64{"EL": 50}))
	if r.Aggregate != nil {
		t.Fatalf("expected nil aggregate, got %d", *r.Aggregate)
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := decoded["aggregate"]; !ok || v != nil {
		t.Fatalf("expected aggregate null in JSON, got %v", decoded["aggregate"])
	}
}

func TestBuildReportsFiltersClasses(t *testing.T) {
	reports := BuildReports(sampleStudents(), []string{"4B", "4C"})
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].Name != "Cai" || reports[2].Name != "Eve" {
		t.Fatalf("input order not kept: %v, %v", reports[0].Name, reports[2].Name)
	}
	if reports[1].TotalMarks != 45 {
		t.Fatalf("expected NaN mark to count as 0, total %v", reports[1].TotalMarks)
	}
}

func TestSortReports(t *testing.T) {
	agg := func(n int) *int { return &n }
	reports := []StudentReport{
		{Name: "a", TotalMarks: 200, Aggregate: nil, WeakCount: 1},
		{Name: "b", TotalMarks: 300, Aggregate: agg(10), WeakCount: 0},
		{Name: "c", TotalMarks: 100, Aggregate: agg(6), WeakCount: 2},
		{Name: "d", TotalMarks: 300, Aggregate: agg(20), WeakCount: 1},
	}
	names := func(rs []StudentReport) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.Name
		}
		return out
	}

	SortReports(reports, SortTotalMarks, false)
	if got := names(reports); !reflect.DeepEqual(got, []string{"b", "d", "a", "c"}) {
		t.Fatalf("total desc = %v", got)
	}
	SortReports(reports, SortAggregate, true)
	if got := names(reports); !reflect.DeepEqual(got, []string{"c", "b", "d", "a"}) {
		t.Fatalf("aggregate asc = %v", got)
	}
	SortReports(reports, SortAggregate, false)
	if got := names(reports); !reflect.DeepEqual(got, []string{"d", "b", "c", "a"}) {
		t.Fatalf("aggregate desc = %v", got)
	}
	SortReports(reports, SortWeakSubjects, false)
	if got := names(reports); !reflect.DeepEqual(got, []string{"c", "d", "a", "b"}) {
		t.Fatalf("weak desc = %v", got)
	}
}

func TestParseSortKey(t *testing.T) {
	if k, ok := ParseSortKey("aggregate"); !ok || k != SortAggregate {
		t.Fatalf("ParseSortKey(aggregate) = %v,%v", k, ok)
	}
	if _, ok := ParseSortKey("name"); ok {
		t.Fatalf("expected name to be rejected")
	}
}
