package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyfold/keyfold/pkg/errors"
	"github.com/keyfold/keyfold/pkg/records"
	"github.com/keyfold/keyfold/pkg/resolve"
)

func keyed(pairs ...string) records.Dataset {
	ds := make(records.Dataset, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		ds = append(ds, records.Record{RawText: pairs[i], Key: pairs[i+1]})
	}
	return ds
}

func TestRepresentativesPicksLexicographicallySmallest(t *testing.T) {
	ds := keyed(
		"Zebra", "k1",
		"apple", "k1",
		"Apple", "k1",
	)

	reps := resolve.Representatives(ds)

	// Case-sensitive byte ordering: "Apple" < "Zebra" < "apple".
	assert.Equal(t, "Apple", reps["k1"])
}

func TestRepresentativesOrderIndependent(t *testing.T) {
	forward := keyed("beta", "k", "alpha", "k", "gamma", "k")
	reversed := keyed("gamma", "k", "alpha", "k", "beta", "k")

	assert.Equal(t, resolve.Representatives(forward), resolve.Representatives(reversed))
	assert.Equal(t, "alpha", resolve.Representatives(forward)["k"])
}

func TestRepresentativeIsGenuineInput(t *testing.T) {
	ds := keyed(
		"Data Cleaning", "clean data",
		"data cleaning", "clean data",
		"Other", "other",
	)

	reps := resolve.Representatives(ds)

	for key, rep := range reps {
		found := false
		for _, r := range ds {
			if r.Key == key && r.RawText == rep {
				found = true
				break
			}
		}
		assert.True(t, found, "representative %q for key %q must be one of the group's raw texts", rep, key)
	}
}

func TestApplyGroupConsistency(t *testing.T) {
	ds := keyed(
		"Data Cleaning", "clean data",
		"data cleaning", "clean data",
		"Cleaning Data", "clean data",
		"Other", "other",
	)

	out, err := resolve.Apply(ds, resolve.Representatives(ds))
	require.NoError(t, err)
	require.Len(t, out, len(ds))

	// Every record with the same key carries an identical canonical text.
	byKey := make(map[string]string)
	for _, r := range out {
		if prev, ok := byKey[r.Key]; ok {
			assert.Equal(t, prev, r.CanonicalText)
		}
		byKey[r.Key] = r.CanonicalText
	}
	assert.Equal(t, "Cleaning Data", byKey["clean data"])
	assert.Equal(t, "Other", byKey["other"])
}

func TestApplyPreservesRowOrderAndInput(t *testing.T) {
	ds := keyed("b", "k", "a", "k")

	out, err := resolve.Apply(ds, resolve.Representatives(ds))
	require.NoError(t, err)

	assert.Equal(t, "b", out[0].RawText)
	assert.Equal(t, "a", out[1].RawText)

	// The input dataset must not be mutated.
	assert.Empty(t, ds[0].CanonicalText)
	assert.Empty(t, ds[1].CanonicalText)
}

func TestApplyMissingKeyIsFatal(t *testing.T) {
	ds := keyed("orphan", "missing")

	out, err := resolve.Apply(ds, map[string]string{"other": "x"})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.IsInconsistent(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestGroups(t *testing.T) {
	ds := keyed(
		"Zebra", "z",
		"Data Cleaning", "clean data",
		"data cleaning", "clean data",
	)

	groups := resolve.Groups(ds)
	require.Len(t, groups, 2)

	// Sorted by key in ascending byte order.
	assert.Equal(t, "clean data", groups[0].Key)
	assert.Equal(t, "z", groups[1].Key)

	assert.Equal(t, 2, groups[0].Size)
	assert.Equal(t, "Data Cleaning", groups[0].Representative)
	assert.Equal(t, []string{"Data Cleaning", "data cleaning"}, groups[0].Texts)

	assert.Equal(t, 1, groups[1].Size)
	assert.Equal(t, "Zebra", groups[1].Representative)
}

func TestGroupsDegenerateKeysGroupTogether(t *testing.T) {
	// Empty keys are not an error; all degenerate texts share one group.
	ds := keyed("", "", "   ", "", "!!!", "")

	groups := resolve.Groups(ds)
	require.Len(t, groups, 1)
	assert.Equal(t, 3, groups[0].Size)
	assert.Equal(t, "", groups[0].Representative)
}
