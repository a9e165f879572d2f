// Package resolve assigns one canonical display text per fingerprint group.
// Given records already carrying keys, it builds a key-to-representative
// mapping and applies it back onto the dataset so every record in a group
// ends up with an identical canonical text.
package resolve

import (
	"sort"

	"github.com/keyfold/keyfold/pkg/errors"
	"github.com/keyfold/keyfold/pkg/records"
)

// Representatives builds the mapping from fingerprint key to canonical text.
// For each key the representative is the lexicographically smallest RawText
// among the group's members, under case-sensitive byte ordering. The result
// is deterministic regardless of input row order.
func Representatives(ds records.Dataset) map[string]string {
	reps := make(map[string]string, len(ds))
	for _, r := range ds {
		best, ok := reps[r.Key]
		if !ok || r.RawText < best {
			reps[r.Key] = r.RawText
		}
	}
	return reps
}

// Apply sets CanonicalText on every record from the key-to-representative
// mapping, returning a new dataset in the same row order. A key absent from
// the mapping means the mapping was built from a different record set; that
// is a programming error and Apply fails with errors.ErrInconsistent rather
// than tolerating it.
func Apply(ds records.Dataset, reps map[string]string) (records.Dataset, error) {
	out := ds.Clone()
	for i := range out {
		rep, ok := reps[out[i].Key]
		if !ok {
			return nil, errors.NewConsistencyError("resolve", out[i].Key,
				"key has no representative; mapping built from mismatched records")
		}
		out[i].CanonicalText = rep
	}
	return out, nil
}

// Group describes one fingerprint group for reporting: the shared key, the
// chosen representative, and the member texts in row order.
type Group struct {
	Key            string   `json:"key" yaml:"key"`
	Representative string   `json:"representative" yaml:"representative"`
	Size           int      `json:"size" yaml:"size"`
	Texts          []string `json:"texts" yaml:"texts"`
}

// Groups aggregates the dataset into fingerprint groups, sorted by key in
// ascending byte order. It is a diagnostic view; the pipeline itself only
// needs Representatives and Apply.
func Groups(ds records.Dataset) []Group {
	byKey := make(map[string]*Group)
	keys := make([]string, 0)
	for _, r := range ds {
		g, ok := byKey[r.Key]
		if !ok {
			g = &Group{Key: r.Key}
			byKey[r.Key] = g
			keys = append(keys, r.Key)
		}
		g.Texts = append(g.Texts, r.RawText)
		g.Size++
	}

	reps := Representatives(ds)
	sort.Strings(keys)

	groups := make([]Group, 0, len(byKey))
	for _, k := range keys {
		g := byKey[k]
		g.Representative = reps[k]
		groups = append(groups, *g)
	}
	return groups
}
