package scan

import (
	"context"
	"errors"
	"testing"

	"dispatch-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReferences struct {
	rows    map[string]string
	queries [][]string
	err     error
}

func (f *fakeReferences) FindReferences(_ context.Context, values []string) ([]models.SapData, error) {
	f.queries = append(f.queries, values)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SapData
	for _, v := range values {
		if material, ok := f.rows[v]; ok {
			out = append(out, models.SapData{Series: v, Material: material})
		}
	}
	return out, nil
}

var defaultPriority = []string{"SN-1", "SN1", "SN", "S1", "SERIE PRINCIPAL", "SN-2", "SN2", "S2", "SN-3", "SN3", "S3"}

func TestMatcherFindsLaterCandidate(t *testing.T) {
	t.Parallel()

	refs := &fakeReferences{rows: map[string]string{"XYZ999": "MAT-9"}}
	m := NewMatcher(refs, defaultPriority)

	series := map[string]string{"SN-1": "abc123", "SN-2": "xyz 999"}
	match, err := m.Match(context.Background(), []string{"SN-1", "SN-2"}, series)
	require.NoError(t, err)

	assert.True(t, match.Found)
	assert.Equal(t, "SN-2", match.Field)
	assert.Equal(t, "XYZ999", match.Value)
	assert.Equal(t, "MAT-9", match.Material)
	assert.Equal(t, SourceERP, match.Source)
	require.Len(t, refs.queries, 1)
	assert.Equal(t, []string{"ABC123", "XYZ999"}, refs.queries[0])
}

func TestMatcherPrefersPriorityOrder(t *testing.T) {
	t.Parallel()

	refs := &fakeReferences{rows: map[string]string{"AAA111": "MAT-A", "BBB222": "MAT-B"}}
	m := NewMatcher(refs, defaultPriority)

	// model order puts SN-2 first, priority puts SN-1 first
	series := map[string]string{"SN-2": "aaa111", "SN-1": "bbb222"}
	match, err := m.Match(context.Background(), []string{"SN-2", "SN-1"}, series)
	require.NoError(t, err)

	assert.Equal(t, "SN-1", match.Field)
	assert.Equal(t, "MAT-B", match.Material)
}

func TestMatcherCandidates(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, []string{"sn", "IMEI"})
	series := map[string]string{"MAC": "mac001", "IMEI": "imei01", "SN": "sn0001", "X": "ab"}

	got := m.Candidates([]string{"MAC", "X", "IMEI", "SN"}, series)
	assert.Equal(t, []Candidate{
		{Field: "SN", Value: "SN0001"},
		{Field: "IMEI", Value: "IMEI01"},
		{Field: "MAC", Value: "MAC001"},
	}, got)
}

func TestMatcherNoMatch(t *testing.T) {
	t.Parallel()

	refs := &fakeReferences{rows: map[string]string{}}
	m := NewMatcher(refs, defaultPriority)

	match, err := m.Match(context.Background(), []string{"SN-1", "SN-2"}, map[string]string{"SN-1": "s123", "SN-2": "no"})
	require.NoError(t, err)
	assert.False(t, match.Found)
	assert.Equal(t, "SN-1: S123", match.Summary())
}

func TestMatcherSkipsQueryWithoutCandidates(t *testing.T) {
	t.Parallel()

	refs := &fakeReferences{}
	m := NewMatcher(refs, defaultPriority)

	match, err := m.Match(context.Background(), []string{"SN-1"}, map[string]string{"SN-1": "ab"})
	require.NoError(t, err)
	assert.False(t, match.Found)
	assert.Empty(t, refs.queries)
	assert.Equal(t, "no series value long enough to validate", match.Summary())
}

func TestMatcherPropagatesLookupError(t *testing.T) {
	t.Parallel()

	refs := &fakeReferences{err: errors.New("connection reset")}
	m := NewMatcher(refs, defaultPriority)

	_, err := m.Match(context.Background(), []string{"SN-1"}, map[string]string{"SN-1": "abc123"})
	assert.ErrorContains(t, err, "connection reset")
}
