package classify

import "testing"

// TestSeverityTotalOrder is P6: the ordering low < medium < high <
// critical must hold.
func TestSeverityTotalOrder(t *testing.T) {
	order := []Severity{Low, Medium, High, Critical}
	for i := 0; i < len(order)-1; i++ {
		if !order[i].Less(order[i+1]) {
			t.Fatalf("expected %s < %s", order[i], order[i+1])
		}
	}
}

func TestClassifySeverityFixedFixture(t *testing.T) {
	cases := []struct {
		predicate string
		in        SeverityInputs
		want      Severity
	}{
		{"resurrection_details", SeverityInputs{DistinctNonAbsentValues: 1, ContributingSources: 5}, Critical},
		{"date_of_birth", SeverityInputs{DistinctNonAbsentValues: 2, ContributingSources: 2}, Medium},
		{"wording_variant", SeverityInputs{DistinctNonAbsentValues: 4, ContributingSources: 4}, Low},
		{"messianic_self_understanding", SeverityInputs{DistinctNonAbsentValues: 2, ContributingSources: 2}, High},
		{"unrelated_trait", SeverityInputs{DistinctNonAbsentValues: 3, ContributingSources: 5}, Low},
	}
	for _, c := range cases {
		got := ClassifySeverity(c.predicate, c.in)
		if got != c.want {
			t.Errorf("ClassifySeverity(%q, %+v) = %s, want %s", c.predicate, c.in, got, c.want)
		}
	}
}

func TestClassifyClaimType(t *testing.T) {
	cases := []struct {
		predicate string
		want      ClaimType
	}{
		{"date_of_birth", Chronology},
		{"divine_nature", Theology},
		{"ministry_location", Geography},
		{"relationship:sibling", Identity},
		{"manuscript_variant", Textual},
		{"miracles", Narrative},
	}
	for _, c := range cases {
		got := ClassifyClaimType(c.predicate)
		if got != c.want {
			t.Errorf("ClassifyClaimType(%q) = %s, want %s", c.predicate, got, c.want)
		}
	}
}
