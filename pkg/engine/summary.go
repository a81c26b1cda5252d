package engine

import "strconv"

// Placeholder is shown instead of a zero count
const Placeholder = "-"

// SummaryRow is one labelled row of counts
type SummaryRow struct {
	Label  string `json:"label" yaml:"label"`
	Values []int  `json:"values" yaml:"values"`
}

// Cells returns the row values with zero counts replaced by Placeholder
func (r SummaryRow) Cells() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = Cell(v)
	}
	return out
}

// Cell formats a count, using Placeholder for zero
func Cell(v int) string {
	if v == 0 {
		return Placeholder
	}
	return strconv.Itoa(v)
}

// Table is a domain x count table with a grand-total row
type Table struct {
	Title  string       `json:"title" yaml:"title"`
	Header []string     `json:"header" yaml:"header"`
	Rows   []SummaryRow `json:"rows" yaml:"rows"`
	Total  SummaryRow   `json:"total" yaml:"total"`
}

// Summary holds the three recurrence tables
type Summary struct {
	Scope    Table `json:"scope" yaml:"scope"`       // new vs existing per domain
	New      Table `json:"new" yaml:"new"`           // new issues by risk
	Existing Table `json:"existing" yaml:"existing"` // existing issues by risk
}

// Tables returns the tables in layout order
func (s Summary) Tables() []Table {
	return []Table{s.Scope, s.New, s.Existing}
}

// BuildSummary folds per-domain counts into the scope table and the two risk
// breakdown tables. Domains keep the order they were processed in.
func BuildSummary(domains []DomainCounts) Summary {
	scope := Table{
		Title:  "New Vulnerability Issue Summary",
		Header: []string{"Domain", "New Issue", "Existing Issue", "Total Issue"},
	}
	riskHeader := append([]string{"Domain"}, RiskBuckets...)
	riskHeader = append(riskHeader, "Total")

	newRisk := Table{Title: "New Issues Risk Summary", Header: riskHeader}
	extRisk := Table{Title: "Existing Issues Risk Summary", Header: append([]string(nil), riskHeader...)}

	for _, d := range domains {
		scope.Rows = append(scope.Rows, SummaryRow{
			Label:  d.Domain,
			Values: []int{d.New.Total, d.Existing.Total, d.New.Total + d.Existing.Total},
		})
		newRisk.Rows = append(newRisk.Rows, riskRow(d.Domain, d.New))
		extRisk.Rows = append(extRisk.Rows, riskRow(d.Domain, d.Existing))
	}

	scope.Total = totalRow(scope.Rows, 3)
	newRisk.Total = totalRow(newRisk.Rows, len(RiskBuckets)+1)
	extRisk.Total = totalRow(extRisk.Rows, len(RiskBuckets)+1)

	return Summary{Scope: scope, New: newRisk, Existing: extRisk}
}

func riskRow(domain string, t Tally) SummaryRow {
	vals := make([]int, 0, len(RiskBuckets)+1)
	for _, r := range RiskBuckets {
		vals = append(vals, t.ByRisk[r])
	}
	vals = append(vals, t.Total)
	return SummaryRow{Label: domain, Values: vals}
}

func totalRow(rows []SummaryRow, width int) SummaryRow {
	total := SummaryRow{Label: "Total", Values: make([]int, width)}
	for _, r := range rows {
		for i, v := range r.Values {
			total.Values[i] += v
		}
	}
	return total
}
