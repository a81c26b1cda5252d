package engine

// Finding represents one vulnerability instance read from a scan export
type Finding struct {
	Name     string `json:"name" yaml:"name"`
	Risk     string `json:"risk" yaml:"risk"`
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	PluginID string `json:"plugin_id,omitempty" yaml:"plugin_id,omitempty"`
	Source   string `json:"source" yaml:"source"` // file path or sheet name
	Row      int    `json:"row" yaml:"row"`       // 1-based row in the source, header is row 1
}

// Canonical risk values as they appear in scan exports
const (
	RiskCritical = "Critical"
	RiskHigh     = "High"
	RiskMedium   = "Medium"
	RiskLow      = "Low"
	RiskInfo     = "Info"
)

// DefaultRiskAllowList is the set of risks kept in the aggregate report
var DefaultRiskAllowList = []string{RiskCritical, RiskHigh, RiskMedium}

// RiskRank returns the sort precedence of a canonical risk value.
// Critical sorts first; anything unrecognised sorts last.
func RiskRank(risk string) int {
	switch risk {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	case RiskLow:
		return 3
	case RiskInfo:
		return 4
	default:
		return 5
	}
}

// RecordSet is an ordered batch of findings from a single origin
type RecordSet struct {
	Source   string
	Findings []Finding
}

// Concat joins record sets in order, keeping the row order of each set
func Concat(sets ...RecordSet) []Finding {
	n := 0
	for _, s := range sets {
		n += len(s.Findings)
	}
	out := make([]Finding, 0, n)
	for _, s := range sets {
		out = append(out, s.Findings...)
	}
	return out
}
