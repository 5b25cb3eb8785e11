package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultTitle is used when a dataset doesn't set a title.
const DefaultTitle = "Timeline"

// Description formats a dataset can declare for its event descriptions.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var (
	// ErrNoGroups is returned when a dataset has no groups to show.
	ErrNoGroups = errors.New("dataset has no groups")

	// ErrMissingYear is returned when a group has no year to key its tab
	// and panel by.
	ErrMissingYear = errors.New("group is missing a year")

	// ErrDuplicateYear is returned when two groups in the same dataset
	// share a year.
	ErrDuplicateYear = errors.New("group year is not unique")

	// ErrUnknownFormat is returned when a dataset declares a description
	// format other than html or markdown.
	ErrUnknownFormat = errors.New("unknown description format")
)

// Event is a single dated entry on the timeline. Date is a display label
// and is never parsed.
type Event struct {
	Date        string `json:"date" yaml:"date"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty" yaml:"imageAlt,omitempty"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Group is a tab of events, usually a decade. Year is the key shared by the
// group's tab and panel, and must be unique within a dataset.
type Group struct {
	Label  string  `json:"label" yaml:"label"`
	Year   string  `json:"year" yaml:"year"`
	Events []Event `json:"events" yaml:"events"`
}

// DisplayLabel returns the group's label, falling back to its year.
func (g Group) DisplayLabel() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Year
}

// Dataset is everything a timeline renders.
type Dataset struct {
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string  `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Groups   []Group `json:"groups" yaml:"groups"`

	// EnableSearch turns the search box and results tab on or off. Search
	// is on when it's unset.
	EnableSearch *bool `json:"enableSearch,omitempty" yaml:"enableSearch,omitempty"`

	// DataURL, when set, points at the dataset to load instead of this
	// one.
	DataURL string `json:"dataUrl,omitempty" yaml:"dataUrl,omitempty"`

	// DescriptionFormat is either "html" (the default) or "markdown".
	DescriptionFormat string `json:"descriptionFormat,omitempty" yaml:"descriptionFormat,omitempty"`
}

// UnmarshalJSON accepts groups under either "groups" or "decades". When both
// are present, "groups" wins.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	type plain Dataset
	var raw struct {
		plain
		Groups  *[]Group `json:"groups"`
		Decades *[]Group `json:"decades"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Dataset(raw.plain)
	switch {
	case raw.Groups != nil:
		d.Groups = *raw.Groups
	case raw.Decades != nil:
		d.Groups = *raw.Decades
	}
	return nil
}

// SearchEnabled reports whether the timeline should offer search.
func (d Dataset) SearchEnabled() bool {
	return d.EnableSearch == nil || *d.EnableSearch
}

// DisplayTitle returns the dataset's title, or DefaultTitle.
func (d Dataset) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return DefaultTitle
}

// Years returns the group years in display order.
func (d Dataset) Years() []string {
	years := make([]string, 0, len(d.Groups))
	for _, group := range d.Groups {
		years = append(years, group.Year)
	}
	return years
}

// EventCount returns the total number of events across all groups.
func (d Dataset) EventCount() int {
	var n int
	for _, group := range d.Groups {
		n += len(group.Events)
	}
	return n
}

// Validate checks that the dataset can be mounted: it needs at least one
// group, every group needs a year, and no two groups may share one.
func (d Dataset) Validate() error {
	if len(d.Groups) < 1 {
		return ErrNoGroups
	}
	seen := make(map[string]int, len(d.Groups))
	for pos, group := range d.Groups {
		if group.Year == "" {
			return fmt.Errorf("group %d (%q): %w", pos, group.Label, ErrMissingYear)
		}
		if group.Year == ResultsKey {
			return fmt.Errorf("group %d: year %q is reserved: %w", pos, group.Year, ErrDuplicateYear)
		}
		if prev, ok := seen[group.Year]; ok {
			return fmt.Errorf("groups %d and %d share year %q: %w", prev, pos, group.Year, ErrDuplicateYear)
		}
		seen[group.Year] = pos
	}
	switch d.DescriptionFormat {
	case "", FormatHTML, FormatMarkdown:
	default:
		return fmt.Errorf("%q: %w", d.DescriptionFormat, ErrUnknownFormat)
	}
	return nil
}
