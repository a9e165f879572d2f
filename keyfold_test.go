package keyfold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyfold/keyfold"
	"github.com/keyfold/keyfold/pkg/logging"
	"github.com/keyfold/keyfold/pkg/records"
)

type identityStemmer struct{}

func (identityStemmer) Stem(word string) string { return word }

func TestPipelineEndToEnd(t *testing.T) {
	p, err := keyfold.New()
	require.NoError(t, err)

	ds := records.FromTexts([]string{
		"Data Cleaning",
		"data cleaning",
		"Cleaning Data",
	})

	out, err := p.Run(ds)
	require.NoError(t, err)
	require.Len(t, out, 3)

	// All three rows collide onto one key and one canonical text: the
	// lexicographically smallest raw form under byte ordering.
	assert.Equal(t, out[0].Key, out[1].Key)
	assert.Equal(t, out[1].Key, out[2].Key)
	for _, r := range out {
		assert.Equal(t, "Cleaning Data", r.CanonicalText)
	}

	// Row order and raw texts are untouched.
	assert.Equal(t, "Data Cleaning", out[0].RawText)
	assert.Equal(t, "data cleaning", out[1].RawText)
	assert.Equal(t, "Cleaning Data", out[2].RawText)
}

func TestPipelineRoundTripOnUniqueTexts(t *testing.T) {
	p, err := keyfold.New()
	require.NoError(t, err)

	texts := []string{"alpha", "bravo", "charlie"}
	out, err := p.Run(records.FromTexts(texts))
	require.NoError(t, err)

	// Distinct keys mean every record is its own representative.
	for i, r := range out {
		assert.Equal(t, texts[i], r.RawText)
		assert.Equal(t, texts[i], r.CanonicalText)
	}

	keys := make(map[string]struct{})
	for _, r := range out {
		keys[r.Key] = struct{}{}
	}
	assert.Len(t, keys, len(texts))
}

func TestPipelineDoesNotMutateInput(t *testing.T) {
	p, err := keyfold.New()
	require.NoError(t, err)

	ds := records.FromTexts([]string{"a", "b"})
	_, err = p.Run(ds)
	require.NoError(t, err)

	for _, r := range ds {
		assert.Empty(t, r.Key)
		assert.Empty(t, r.CanonicalText)
	}
}

func TestPipelineWithCustomStemmer(t *testing.T) {
	p, err := keyfold.New(keyfold.WithStemmer(identityStemmer{}))
	require.NoError(t, err)

	// Without stemming, inflected forms stay in separate groups.
	out, err := p.Run(records.FromTexts([]string{"running", "run"}))
	require.NoError(t, err)
	assert.NotEqual(t, out[0].Key, out[1].Key)
	assert.Equal(t, "running", out[0].CanonicalText)
	assert.Equal(t, "run", out[1].CanonicalText)
}

func TestPipelineWithLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	p, err := keyfold.New(keyfold.WithLogger(tl.Logger))
	require.NoError(t, err)

	_, err = p.Run(records.FromTexts([]string{"a", "A"}))
	require.NoError(t, err)

	assert.True(t, tl.Contains("resolved canonical texts"))
}

func TestPipelineOptionValidation(t *testing.T) {
	_, err := keyfold.New(keyfold.WithStemmer(nil))
	assert.Error(t, err)

	_, err = keyfold.New(keyfold.WithLogger(nil))
	assert.Error(t, err)
}

func TestPipelineKey(t *testing.T) {
	p, err := keyfold.New()
	require.NoError(t, err)

	assert.Equal(t, "clean data", p.Key("  Data Cleaning  "))
	assert.Equal(t, "", p.Key("..."))
}

func TestPipelineGroups(t *testing.T) {
	p, err := keyfold.New()
	require.NoError(t, err)

	groups := p.Groups(records.FromTexts([]string{"co-op", "coop", "other"}))
	require.Len(t, groups, 2)

	for _, g := range groups {
		if g.Size == 2 {
			assert.Equal(t, "co-op", g.Representative)
		}
	}
}
