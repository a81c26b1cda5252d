package engine

import (
	"sort"
	"strconv"
)

// ReportColumns is the fixed header of the aggregate report
var ReportColumns = []string{"Name", "Risk", "Total_Count", "Host", "Per_Host_Count"}

// AggregateRow is one (name, risk, host) group joined with its (name, risk) total
type AggregateRow struct {
	Name         string `json:"name" yaml:"name"`
	Risk         string `json:"risk" yaml:"risk"`
	TotalCount   int    `json:"total_count" yaml:"total_count"`
	Host         string `json:"host" yaml:"host"`
	PerHostCount int    `json:"per_host_count" yaml:"per_host_count"`
}

type nameRisk struct {
	name, risk string
}

type nameRiskHost struct {
	nameRisk
	host string
}

// Aggregate filters findings to the risk allow-list, counts occurrences per
// host and per (name, risk), joins the two and sorts the result by risk
// precedence, total count descending, then name and host ascending.
// An empty result is returned as an empty, non-nil slice.
func Aggregate(findings []Finding, allow []string) []AggregateRow {
	if len(allow) == 0 {
		allow = DefaultRiskAllowList
	}
	allowed := make(map[string]bool, len(allow))
	for _, r := range allow {
		allowed[r] = true
	}

	perHost := make(map[nameRiskHost]int)
	totals := make(map[nameRisk]int)
	var order []nameRiskHost

	for _, f := range findings {
		if !allowed[f.Risk] {
			continue
		}
		// rows without a name or host have no group
		if f.Name == "" || f.Host == "" {
			continue
		}
		k := nameRiskHost{nameRisk{f.Name, f.Risk}, f.Host}
		if _, ok := perHost[k]; !ok {
			order = append(order, k)
		}
		perHost[k]++
		totals[k.nameRisk]++
	}

	rows := make([]AggregateRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, AggregateRow{
			Name:         k.name,
			Risk:         k.risk,
			TotalCount:   totals[k.nameRisk],
			Host:         k.host,
			PerHostCount: perHost[k],
		})
	}

	SortRows(rows)
	return rows
}

// SortRows applies the report order in place
func SortRows(rows []AggregateRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if ra, rb := RiskRank(a.Risk), RiskRank(b.Risk); ra != rb {
			return ra < rb
		}
		if a.TotalCount != b.TotalCount {
			return a.TotalCount > b.TotalCount
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Host < b.Host
	})
}

// Record returns the row as report cells in ReportColumns order
func (r AggregateRow) Record() []string {
	return []string{r.Name, r.Risk, strconv.Itoa(r.TotalCount), r.Host, strconv.Itoa(r.PerHostCount)}
}
