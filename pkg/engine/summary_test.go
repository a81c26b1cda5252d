package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tally(total int, byRisk map[string]int) Tally {
	if byRisk == nil {
		byRisk = map[string]int{}
	}
	return Tally{Total: total, ByRisk: byRisk}
}

func TestBuildSummary_Tables(t *testing.T) {
	domains := []DomainCounts{
		{
			Domain:   "www.example.com",
			New:      tally(3, map[string]int{"CRITICAL": 1, "HIGH": 2}),
			Existing: tally(4, map[string]int{"MEDIUM": 3, "LOW": 1}),
		},
		{
			Domain:   "api.example.com",
			New:      tally(1, map[string]int{"LOW": 1}),
			Existing: tally(0, nil),
		},
	}

	s := BuildSummary(domains)

	require.Len(t, s.Scope.Rows, 2)
	assert.Equal(t, "www.example.com", s.Scope.Rows[0].Label)
	assert.Equal(t, "api.example.com", s.Scope.Rows[1].Label)
	assert.Equal(t, []int{3, 4, 7}, s.Scope.Rows[0].Values)
	assert.Equal(t, []string{"1", "-", "1"}, s.Scope.Rows[1].Cells())
	assert.Equal(t, []int{4, 4, 8}, s.Scope.Total.Values)
	assert.Equal(t, "Total", s.Scope.Total.Label)

	assert.Equal(t, []string{"Domain", "CRITICAL", "HIGH", "MEDIUM", "LOW", "Total"}, s.New.Header)
	assert.Equal(t, []int{1, 2, 0, 0, 3}, s.New.Rows[0].Values)
	assert.Equal(t, []int{1, 2, 0, 1, 4}, s.New.Total.Values)
	assert.Equal(t, []int{0, 0, 3, 1, 4}, s.Existing.Total.Values)
}

func TestBuildSummary_GrandTotalsConsistent(t *testing.T) {
	domains := []DomainCounts{
		{Domain: "a", New: tally(5, map[string]int{"HIGH": 2, "LOW": 1}), Existing: tally(2, map[string]int{"CRITICAL": 2})},
		{Domain: "b", New: tally(0, nil), Existing: tally(6, map[string]int{"MEDIUM": 6})},
		{Domain: "c", New: tally(2, map[string]int{"MEDIUM": 2}), Existing: tally(0, nil)},
	}

	s := BuildSummary(domains)

	last := len(RiskBuckets)
	sumNew, sumExt := 0, 0
	for _, r := range s.New.Rows {
		sumNew += r.Values[last]
	}
	for _, r := range s.Existing.Rows {
		sumExt += r.Values[last]
	}
	assert.Equal(t, s.Scope.Total.Values[0], sumNew)
	assert.Equal(t, s.Scope.Total.Values[1], sumExt)
	assert.Equal(t, s.New.Total.Values[last], s.Scope.Total.Values[0])
	assert.Equal(t, s.Existing.Total.Values[last], s.Scope.Total.Values[1])
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(nil)

	assert.Empty(t, s.Scope.Rows)
	assert.Equal(t, []string{"-", "-", "-"}, s.Scope.Total.Cells())
	assert.Len(t, s.Tables(), 3)
}

func TestBuildSummary_FromClassification(t *testing.T) {
	prior := NewPriorSet([]Finding{periodFinding("P1", "H1", "TCP", "80", "High", 2)})
	c := ClassifyDomain("web", []Finding{
		periodFinding("P1", "H1", "TCP", "80", "High", 2),
		periodFinding("P2", "H1", "TCP", "443", "High", 3),
	}, prior)

	s := BuildSummary([]DomainCounts{c.Counts})

	require.Len(t, s.Scope.Rows, 1)
	assert.Equal(t, []int{1, 1, 2}, s.Scope.Rows[0].Values)
}

func TestCell(t *testing.T) {
	assert.Equal(t, Placeholder, Cell(0))
	assert.Equal(t, "12", Cell(12))
}
