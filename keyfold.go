// Package keyfold collapses near-duplicate text entries onto one canonical
// representative per fingerprint key. The pipeline has two pure stages: a
// fingerprint generator that derives a normalized grouping key for each
// record, and a resolver that picks one representative raw text per group
// and applies it back to every member.
package keyfold

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/keyfold/keyfold/pkg/fingerprint"
	"github.com/keyfold/keyfold/pkg/logging"
	"github.com/keyfold/keyfold/pkg/records"
	"github.com/keyfold/keyfold/pkg/resolve"
)

// Pipeline runs the fingerprint and resolve stages over an in-memory
// dataset. It is a deterministic batch transformation: same input, same
// output, no retries needed or performed.
type Pipeline struct {
	generator *fingerprint.Generator
	logger    *zerolog.Logger
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		generator: fingerprint.NewGenerator(),
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	return p, nil
}

// Run derives a fingerprint key for every record, resolves one canonical
// text per key, and returns a new dataset with both derived fields set, in
// the original row order. The input dataset is not mutated.
func (p *Pipeline) Run(ds records.Dataset) (records.Dataset, error) {
	keyed := ds.Clone()
	for i, key := range p.generator.Keys(ds.Texts()) {
		keyed[i].Key = key
	}

	reps := resolve.Representatives(keyed)

	out, err := resolve.Apply(keyed, reps)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Int("records", len(out)).
		Int("groups", len(reps)).
		Msg("resolved canonical texts")

	return out, nil
}

// Key returns the fingerprint key for a single text, using the pipeline's
// configured stemmer.
func (p *Pipeline) Key(text string) string {
	return p.generator.Key(text)
}

// Groups returns the fingerprint groups of the dataset after key
// derivation, for reporting.
func (p *Pipeline) Groups(ds records.Dataset) []resolve.Group {
	keyed := ds.Clone()
	for i, key := range p.generator.Keys(ds.Texts()) {
		keyed[i].Key = key
	}
	return resolve.Groups(keyed)
}
