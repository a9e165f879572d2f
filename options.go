package keyfold

import (
	"github.com/rs/zerolog"

	"github.com/keyfold/keyfold/pkg/errors"
	"github.com/keyfold/keyfold/pkg/fingerprint"
)

// Option is a functional option for configuring a Pipeline.
type Option func(*Pipeline) error

// WithStemmer sets the stemming algorithm used for fingerprint derivation.
// The default is the Snowball English stemmer.
func WithStemmer(s fingerprint.Stemmer) Option {
	return func(p *Pipeline) error {
		if s == nil {
			return errors.NewValidationError("stemmer", s, "must not be nil")
		}
		p.generator = fingerprint.NewGenerator(fingerprint.WithStemmer(s))
		return nil
	}
}

// WithLogger sets the logger used by the pipeline. The default is the
// package-global logger from pkg/logging.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			return errors.NewValidationError("logger", logger, "must not be nil")
		}
		p.logger = logger
		return nil
	}
}
