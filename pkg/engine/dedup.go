package engine

// Dedupe returns the findings with later duplicates removed, keeping the
// first occurrence of every fingerprint in input order, plus the number of
// removed rows. With dropEmptyPrimary set, rows without a primary key are
// treated as malformed and removed as well.
func Dedupe(findings []Finding, key KeyFunc, dropEmptyPrimary bool) ([]Finding, int) {
	kept, _ := partition(findings, key, dropEmptyPrimary)
	return kept, len(findings) - len(kept)
}

// partition splits findings into survivors and the source rows of the
// dropped ones. The input slice is never modified.
func partition(findings []Finding, key KeyFunc, dropEmptyPrimary bool) ([]Finding, []int) {
	seen := make(map[Fingerprint]struct{}, len(findings))
	kept := make([]Finding, 0, len(findings))
	var dropped []int

	for _, f := range findings {
		fp := key(f)
		if dropEmptyPrimary && fp.Empty() {
			dropped = append(dropped, f.Row)
			continue
		}
		if _, dup := seen[fp]; dup {
			dropped = append(dropped, f.Row)
			continue
		}
		seen[fp] = struct{}{}
		kept = append(kept, f)
	}
	return kept, dropped
}
