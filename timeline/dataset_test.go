package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAcceptsDecadesAndGroups(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in     string
		years  []string
		search bool
	}{
		"decades": {
			in:     `{"title": "T", "decades": [{"label": "1970s", "year": "1970", "events": []}]}`,
			years:  []string{"1970"},
			search: true,
		},
		"groups": {
			in:     `{"groups": [{"year": "1980", "events": []}], "enableSearch": false}`,
			years:  []string{"1980"},
			search: false,
		},
		"groups win": {
			in:     `{"groups": [{"year": "1"}], "decades": [{"year": "2"}]}`,
			years:  []string{"1"},
			search: true,
		},
		"comments and trailing commas": {
			in: `{
				// the opening decade
				"decades": [{"year": "1870", "events": [],},],
			}`,
			years:  []string{"1870"},
			search: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dataset, err := Decode([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.years, dataset.Years())
			assert.Equal(t, tc.search, dataset.SearchEnabled())
		})
	}
}

func TestDecodeRejectsWrongTypes(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"decades": "1970"}`))
	assert.Error(t, err)
}

func TestDatasetDefaults(t *testing.T) {
	t.Parallel()

	var dataset Dataset
	assert.Equal(t, DefaultTitle, dataset.DisplayTitle())
	assert.True(t, dataset.SearchEnabled())
	assert.Equal(t, "1970", Group{Year: "1970"}.DisplayLabel())
	assert.Equal(t, "1970s", Group{Label: "1970s", Year: "1970"}.DisplayLabel())
	assert.Equal(t, 5, decadesDataset().EventCount())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		dataset Dataset
		err     error
	}{
		"valid":    {dataset: moonDataset()},
		"empty":    {dataset: Dataset{}, err: ErrNoGroups},
		"no year":  {dataset: Dataset{Groups: []Group{{Year: "1970"}, {Label: "1980s"}}}, err: ErrMissingYear},
		"reserved": {dataset: Dataset{Groups: []Group{{Year: ResultsKey}}}, err: ErrDuplicateYear},
		"duplicate year": {
			dataset: Dataset{Groups: []Group{{Year: "1970"}, {Year: "1980"}, {Year: "1970"}}},
			err:     ErrDuplicateYear,
		},
		"markdown": {dataset: Dataset{Groups: []Group{{Year: "1"}}, DescriptionFormat: FormatMarkdown}},
		"unknown format": {
			dataset: Dataset{Groups: []Group{{Year: "1"}}, DescriptionFormat: "rtf"},
			err:     ErrUnknownFormat,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := tc.dataset.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
