package adr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func chain() []Record {
	return []Record{
		{Number: 1, Status: "superseded", SupersededBy: []int{2}},
		{Number: 2, Status: "superseded", Supersedes: []int{1}, SupersededBy: []int{4}},
		{Number: 3, Status: "accepted"},
		{Number: 4, Status: "accepted", Supersedes: []int{2, 9}},
		{Number: 5, Status: "proposed"},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		status string
		want   []int
	}{
		{status: "", want: []int{1, 2, 3, 4, 5}},
		{status: "Accepted", want: []int{3, 4}},
		{status: "superseded", want: []int{1, 2}},
		{status: "rejected", want: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, numbers(Filter(chain(), tc.status))); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tc.status, diff)
			}
		})
	}
}

func TestRelated(t *testing.T) {
	records := chain()
	tests := []struct {
		number int
		want   []int
	}{
		{number: 1, want: []int{2, 4}},
		{number: 2, want: []int{1, 4}},
		{number: 4, want: []int{1, 2}},
		{number: 3, want: []int{}},
	}

	for _, tc := range tests {
		r, ok := Find(records, tc.number)
		if !ok {
			t.Fatalf("Find(%d) = false", tc.number)
		}
		if diff := cmp.Diff(tc.want, numbers(Related(records, r))); diff != "" {
			t.Errorf("Related(%d) mismatch (-want +got):\n%s", tc.number, diff)
		}
	}
}

func TestFindMissing(t *testing.T) {
	if _, ok := Find(chain(), 99); ok {
		t.Errorf("Find(99) = true, want false")
	}
}
