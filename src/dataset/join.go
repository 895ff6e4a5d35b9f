package dataset

import "fmt"

// DefaultSuffix is appended to secondary columns whose names collide with
// primary ones.
const DefaultSuffix = "_secondary"

// LeftJoin combines primary and secondary on key. Every primary record is
// kept exactly once and in order; when secondary holds several rows for the
// same key the first one wins. Unmatched primary rows get missing cells for
// every secondary column. The result owns fresh records.
func LeftJoin(primary, secondary *Dataset, key, suffix string) (*Dataset, error) {
	if !primary.HasColumn(key) {
		return nil, loadErr(primary.Name, "join", fmt.Errorf("%w: join key %q", ErrMissingColumn, key))
	}
	if !secondary.HasColumn(key) {
		return nil, loadErr(secondary.Name, "join", fmt.Errorf("%w: join key %q", ErrMissingColumn, key))
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}

	// secondary column -> output column. Secondary columns that do not clash
	// with the primary keep their names; clashing ones get the suffix, then
	// ".1", ".2", ... until the name is free.
	used := map[string]bool{}
	for _, c := range primary.columns {
		used[c] = true
	}
	var secCols []string
	for _, c := range secondary.columns {
		if c == key {
			continue
		}
		secCols = append(secCols, c)
		if !primary.HasColumn(c) {
			used[c] = true
		}
	}
	rename := make(map[string]string, len(secCols))
	for _, c := range secCols {
		if !primary.HasColumn(c) {
			rename[c] = c
			continue
		}
		out := c + suffix
		for i := 1; used[out]; i++ {
			out = fmt.Sprintf("%s%s.%d", c, suffix, i)
		}
		used[out] = true
		rename[c] = out
	}

	index := make(map[string]Record, secondary.Len())
	dups := 0
	for _, r := range secondary.Records {
		k := r.Get(key).String()
		if _, seen := index[k]; seen {
			dups++
			continue
		}
		index[k] = r
	}
	if dups > 0 {
		log.Warnf("join %s: %d duplicate %q keys in %s, first match kept", primary.Name, dups, key, secondary.Name)
	}

	out := New(primary.Name, primary.columns)
	for _, c := range secCols {
		out.AddColumn(rename[c])
	}
	for c := range primary.fractional {
		out.MarkFractional(c)
	}
	for c := range secondary.fractional {
		if c != key {
			out.MarkFractional(rename[c])
		}
	}

	unmatched := 0
	for _, p := range primary.Records {
		rec := make(Record, len(out.columns))
		for k, v := range p {
			rec[k] = v
		}
		match, ok := index[p.Get(key).String()]
		if !ok {
			unmatched++
		}
		for _, c := range secCols {
			if ok {
				rec[rename[c]] = match.Get(c)
			} else {
				rec[rename[c]] = Missing()
			}
		}
		out.Append(rec)
	}
	log.Debugf("join %s with %s on %q: %d rows, %d unmatched", primary.Name, secondary.Name, key, out.Len(), unmatched)
	return out, nil
}
