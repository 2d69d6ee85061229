package themes

import (
	"reflect"
	"sort"
	"testing"
)

func TestAssignExpectedCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		keywords []string
		want     []string
	}{
		{"account access", []string{"login issue", "password reset"}, []string{"Account Access Issues"}},
		{"reliability and speed", []string{"app crash", "very slow"}, []string{"Reliability", "Transaction Performance"}},
		{"support and ux", []string{"great support", "poor interface"}, []string{"Customer Support", "User Experience"}},
		{"feature requests", []string{"new feature", "update required"}, []string{"Feature Requests"}},
		{"multiple themes", []string{"login", "support", "feature"}, []string{"Account Access Issues", "Customer Support", "Feature Requests"}},
		{"empty input", nil, []string{"Miscellaneous"}},
		{"no matches", []string{"randomword", "unknown term"}, []string{"Miscellaneous"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Assign(tc.keywords)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Assign(%v) = %v, want %v", tc.keywords, got, tc.want)
			}
		})
	}
}

func TestAssignCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := Assign([]string{"Login", "SUPPORT"})
	want := []string{"Account Access Issues", "Customer Support"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssignPartialMatches(t *testing.T) {
	t.Parallel()

	got := Assign([]string{"app crashing", "login failed"})
	want := []string{"Account Access Issues", "Reliability"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAssignOutputSortedAndNonEmpty(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		nil,
		{"crash"},
		{"slow login crash update design support"},
		{"zzz"},
	}
	for _, kws := range inputs {
		got := Assign(kws)
		if len(got) == 0 {
			t.Fatalf("Assign(%v) returned an empty set", kws)
		}
		if !sort.StringsAreSorted(got) {
			t.Fatalf("Assign(%v) not sorted: %v", kws, got)
		}
	}
}
