package adr

import (
	"cmp"
	"slices"
	"strings"
)

// Filter returns the records whose status matches, ignoring case. An empty
// status matches everything.
func Filter(records []Record, status string) []Record {
	if status == "" {
		return slices.Clone(records)
	}
	status = normalizeStatus(status)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(r.Status, status) {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the record with the given number.
func Find(records []Record, number int) (Record, bool) {
	for _, r := range records {
		if r.Number == number {
			return r, true
		}
	}
	return Record{}, false
}

// Related walks the supersede links of r in both directions and returns every
// record reachable from it, sorted by number. r itself is not included.
func Related(records []Record, r Record) []Record {
	byNumber := make(map[int]Record, len(records))
	for _, rec := range records {
		if _, ok := byNumber[rec.Number]; !ok {
			byNumber[rec.Number] = rec
		}
	}

	seen := map[int]bool{r.Number: true}
	queue := []Record{r}
	var out []Record
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range slices.Concat(cur.Supersedes, cur.SupersededBy) {
			if seen[n] {
				continue
			}
			seen[n] = true
			if rec, ok := byNumber[n]; ok {
				out = append(out, rec)
				queue = append(queue, rec)
			}
		}
	}

	slices.SortFunc(out, func(a, b Record) int { return cmp.Compare(a.Number, b.Number) })
	return out
}
