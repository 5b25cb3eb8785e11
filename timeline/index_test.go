package timeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T, groups []Group) *Index {
	t.Helper()
	idx, err := Build(context.Background(), groups)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestBuildAssignsContiguousIDs(t *testing.T) {
	t.Parallel()

	dataset := decadesDataset()
	idx := buildIndex(t, dataset.Groups)
	records := idx.Records()
	require.Len(t, records, dataset.EventCount())

	type origin struct {
		year string
		pos  int
	}
	var want []origin
	for _, group := range dataset.Groups {
		for pos := range group.Events {
			want = append(want, origin{year: group.Year, pos: pos})
		}
	}
	for i, record := range records {
		assert.Equal(t, i, record.ID)
		assert.Equal(t, want[i].year, record.GroupYear)
		assert.Equal(t, want[i].pos, record.Position)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	t.Parallel()

	dataset := decadesDataset()
	first := buildIndex(t, dataset.Groups)
	second := buildIndex(t, dataset.Groups)
	assert.Equal(t, first.Records(), second.Records())

	ctx := context.Background()
	firstResults, err := first.Search(ctx, "19")
	require.NoError(t, err)
	secondResults, err := second.Search(ctx, "19")
	require.NoError(t, err)
	assert.Equal(t, firstResults, secondResults)
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t, nil)
	assert.Zero(t, idx.Len())

	results, err := idx.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
	records, err := idx.Query(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchRoundTripsExactTitle(t *testing.T) {
	t.Parallel()

	for _, dataset := range []Dataset{moonDataset(), decadesDataset()} {
		idx := buildIndex(t, dataset.Groups)
		for _, group := range dataset.Groups {
			for _, event := range group.Events {
				records, err := idx.Query(context.Background(), event.Title)
				require.NoError(t, err)

				var found bool
				for _, record := range records {
					if record.Title != event.Title {
						continue
					}
					found = true
					assert.Equal(t, event, record.Event())
					assert.Equal(t, group.Year, record.GroupYear)
				}
				assert.True(t, found, "searching for %q didn't return it", event.Title)
			}
		}
	}
}

func TestSearchScenario(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t, moonDataset().Groups)
	ctx := context.Background()

	tests := map[string]struct {
		query  string
		titles []string
	}{
		"title word":          {query: "moon", titles: []string{"Moon Landing Replica Unveiled"}},
		"case insensitive":    {query: "MOON", titles: []string{"Moon Landing Replica Unveiled"}},
		"title prefix":        {query: "libr", titles: []string{"New Library Wing", "Moon Landing Replica Unveiled"}},
		"date prefix":         {query: "19", titles: []string{"Moon Landing Replica Unveiled", "New Library Wing"}},
		"every token":         {query: "new wing", titles: []string{"New Library Wing"}},
		"description only":    {query: "atrium", titles: []string{"Moon Landing Replica Unveiled"}},
		"markup is not text":  {query: "em", titles: nil},
		"text inside markup":  {query: "evans", titles: []string{"New Library Wing"}},
		"no match":            {query: "zeppelin", titles: nil},
		"only punctuation":    {query: "!!", titles: nil},
		"tokens across field": {query: "moon 1971", titles: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			records, err := idx.Query(ctx, tc.query)
			require.NoError(t, err)
			var titles []string
			for _, record := range records {
				titles = append(titles, record.Title)
			}
			assert.Equal(t, tc.titles, titles)
		})
	}
}

func TestSearchGroupsByField(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t, moonDataset().Groups)
	results, err := idx.Search(context.Background(), "libr")
	require.NoError(t, err)
	assert.Equal(t, []FieldResult{
		{Field: FieldTitle, IDs: []int{1}},
		{Field: FieldDescription, IDs: []int{0}},
	}, results)
}

func TestSearchOrdersIDsNumerically(t *testing.T) {
	t.Parallel()

	var events []Event
	for range 12 {
		events = append(events, Event{Title: "Bonfire", Date: "1909"})
	}
	idx := buildIndex(t, []Group{{Year: "1900", Events: events}})

	results, err := idx.Search(context.Background(), "bonfire")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, results[0].IDs)
}

func TestSearchClosed(t *testing.T) {
	t.Parallel()

	idx, err := Build(context.Background(), moonDataset().Groups)
	require.NoError(t, err)
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())

	_, err = idx.Search(context.Background(), "moon")
	assert.ErrorIs(t, err, ErrIndexClosed)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   []FieldResult
		want []int
	}{
		"nothing": {in: nil, want: nil},
		"one field": {
			in:   []FieldResult{{Field: FieldTitle, IDs: []int{3, 1}}},
			want: []int{3, 1},
		},
		"first occurrence wins": {
			in: []FieldResult{
				{Field: FieldTitle, IDs: []int{2, 5}},
				{Field: FieldDescription, IDs: []int{1, 2}},
				{Field: FieldDate, IDs: []int{5, 7}},
			},
			want: []int{2, 5, 1, 7},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Merge(tc.in))
		})
	}
}
