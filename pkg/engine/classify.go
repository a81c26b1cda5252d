package engine

// Label classifies a current-period finding against the prior period
type Label int

const (
	LabelNew Label = iota
	LabelExisting
)

// String returns the status text written next to the finding
func (l Label) String() string {
	if l == LabelNew {
		return "New Issue"
	}
	return "Existing"
}

// MarshalText renders the label as its status text
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// RiskBuckets are the risks broken out in the recurrence summary, in column order.
// Values are in Normalize form.
var RiskBuckets = []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}

// Tally counts findings of one label
type Tally struct {
	Total  int            `json:"total" yaml:"total"`
	ByRisk map[string]int `json:"by_risk" yaml:"by_risk"`
}

func newTally() Tally {
	return Tally{ByRisk: make(map[string]int, len(RiskBuckets))}
}

func (t *Tally) add(risk string) {
	t.Total++
	r := Normalize(risk)
	for _, b := range RiskBuckets {
		if r == b {
			t.ByRisk[b]++
			return
		}
	}
}

// DomainCounts holds the New and Existing tallies of one domain
type DomainCounts struct {
	Domain   string `json:"domain" yaml:"domain"`
	New      Tally  `json:"new" yaml:"new"`
	Existing Tally  `json:"existing" yaml:"existing"`
}

// Of returns the tally for a label
func (d DomainCounts) Of(l Label) Tally {
	if l == LabelNew {
		return d.New
	}
	return d.Existing
}

// PriorSet is the set of period fingerprints seen in the prior scan.
// It is built once and only read afterwards.
type PriorSet struct {
	keys map[Fingerprint]struct{}
}

// NewPriorSet builds the lookup set from every prior finding across all
// domains. Findings without a plugin id are ignored.
func NewPriorSet(findings []Finding) *PriorSet {
	p := &PriorSet{keys: make(map[Fingerprint]struct{}, len(findings))}
	for _, f := range findings {
		fp := PeriodKey(f)
		if fp.Empty() {
			continue
		}
		p.keys[fp] = struct{}{}
	}
	return p
}

// Contains reports whether the fingerprint was seen in the prior period
func (p *PriorSet) Contains(fp Fingerprint) bool {
	if p == nil {
		return false
	}
	_, ok := p.keys[fp]
	return ok
}

// Len returns the number of distinct prior fingerprints
func (p *PriorSet) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// LabeledFinding is a surviving current-period finding and its label
type LabeledFinding struct {
	Finding
	Label Label `json:"label" yaml:"label"`
}

// Classification is the result of comparing one domain with the prior period
type Classification struct {
	Domain  string
	Rows    []LabeledFinding
	Dropped []int // source rows removed as duplicates or malformed, input order
	Counts  DomainCounts
}

// ClassifyDomain deduplicates the domain's findings by period fingerprint,
// dropping rows without a plugin id, then labels every survivor New or
// Existing against the prior set and tallies the labels by risk.
func ClassifyDomain(domain string, findings []Finding, prior *PriorSet) Classification {
	kept, dropped := partition(findings, PeriodKey, true)

	c := Classification{
		Domain:  domain,
		Rows:    make([]LabeledFinding, 0, len(kept)),
		Dropped: dropped,
		Counts: DomainCounts{
			Domain:   domain,
			New:      newTally(),
			Existing: newTally(),
		},
	}

	for _, f := range kept {
		label := LabelNew
		if prior.Contains(PeriodKey(f)) {
			label = LabelExisting
		}
		c.Rows = append(c.Rows, LabeledFinding{Finding: f, Label: label})

		if label == LabelNew {
			c.Counts.New.add(f.Risk)
		} else {
			c.Counts.Existing.add(f.Risk)
		}
	}
	return c
}
