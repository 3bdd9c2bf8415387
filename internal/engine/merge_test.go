package engine

import (
	"reflect"
	"testing"
)

func fptr(v float64) *float64 { return &v }

func TestMerge_Basic(t *testing.T) {
	values := []*float64{fptr(100), fptr(100), fptr(50), nil, nil, fptr(50), fptr(50)}

	got := Merge(values)
	want := []MergedRange[float64]{
		{StartIndex: 0, EndIndex: 2, Value: 100},
		{StartIndex: 2, EndIndex: 3, Value: 50},
		{StartIndex: 5, EndIndex: 7, Value: 50},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge = %+v, want %+v", got, want)
	}
}

func TestMerge_AllNil(t *testing.T) {
	if got := Merge(make([]*float64, 10)); got != nil {
		t.Fatalf("expected no ranges for all-nil input, got %+v", got)
	}
}

func TestMerge_Empty(t *testing.T) {
	if got := Merge([]*float64{}); got != nil {
		t.Fatalf("expected no ranges for empty input, got %+v", got)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	inputs := [][]*float64{
		{fptr(1), fptr(1), fptr(2), nil, fptr(2), fptr(2), nil, nil, fptr(3)},
		{nil, nil, fptr(7)},
		{fptr(5)},
		make([]*float64, 48),
	}

	for i, values := range inputs {
		once := Merge(values)
		again := Merge(Expand(len(values), once))
		if !reflect.DeepEqual(once, again) {
			t.Fatalf("case %d: merge not idempotent: %+v vs %+v", i, once, again)
		}
	}
}

func TestMerge_StructValues(t *testing.T) {
	type occ struct {
		ID    string
		Price float64
	}
	a := occ{ID: "a", Price: 100}
	b := occ{ID: "b", Price: 100}

	values := []*occ{&a, &a, &b, &b}
	got := Merge(values)
	if len(got) != 2 {
		t.Fatalf("expected 2 ranges for structurally distinct values, got %d", len(got))
	}
	if got[0].EndIndex != 2 || got[1].StartIndex != 2 {
		t.Fatalf("ranges split at wrong boundary: %+v", got)
	}
}
