package engine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fingerprint is the normalized identity of a finding. Two findings are the
// same issue iff their fingerprints are equal.
type Fingerprint struct {
	Primary string
	Host    string
	Proto   string
	Port    string
}

// Empty reports whether the primary component is missing
func (fp Fingerprint) Empty() bool {
	return fp.Primary == ""
}

// KeyFunc extracts a fingerprint from a finding
type KeyFunc func(Finding) Fingerprint

// Normalize is the single normalization used for every fingerprint field:
// NFC, trimmed, upper-cased. Empty input stays empty.
func Normalize(v string) string {
	if v == "" {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(norm.NFC.String(v)))
}

// BatchKey identifies a finding across the files of one batch (Name, Host, Port)
func BatchKey(f Finding) Fingerprint {
	return Fingerprint{
		Primary: Normalize(f.Name),
		Host:    Normalize(f.Host),
		Port:    Normalize(f.Port),
	}
}

// PeriodKey identifies a finding across scan periods (Plugin ID, Host, Protocol, Port)
func PeriodKey(f Finding) Fingerprint {
	return Fingerprint{
		Primary: Normalize(f.PluginID),
		Host:    Normalize(f.Host),
		Proto:   Normalize(f.Protocol),
		Port:    Normalize(f.Port),
	}
}
