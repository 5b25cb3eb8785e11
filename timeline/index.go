package timeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	htmlchar "github.com/blevesearch/bleve/v2/analysis/char/html"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"impractical.co/sesqui"
)

const tracerName = "impractical.co/sesqui/timeline"

// EventAnalyzerName is the bleve analyzer used for every searchable field:
// markup is stripped, text is split on unicode word boundaries, and tokens
// are lower-cased.
const EventAnalyzerName = "timeline_event"

// Searchable fields, in the order their results are merged.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
)

// SearchFields lists the indexed fields in merge order.
var SearchFields = []string{FieldTitle, FieldDescription, FieldDate}

// ErrIndexClosed is returned when searching an Index after Close.
var ErrIndexClosed = errors.New("index is closed")

// Record is the searchable copy of one Event. ID is its position in the
// group-then-event traversal of the dataset the index was built from.
type Record struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	GroupYear   string `json:"groupYear"`
	Position    int    `json:"position"`
	Image       string `json:"image,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Event returns the Event the record was built from.
func (r Record) Event() Event {
	return Event{
		Date:        r.Date,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		ImageAlt:    r.ImageAlt,
		Link:        r.Link,
	}
}

// FieldResult holds the ids of the records whose Field matched a query, in
// ascending id order.
type FieldResult struct {
	Field string
	IDs   []int
}

// Index is an in-memory full-text index over a dataset's events. It is safe
// for concurrent use.
type Index struct {
	mu      sync.RWMutex
	index   bleve.Index
	records []Record
	closed  bool
}

func newIndexMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()
	err := indexMapping.AddCustomAnalyzer(EventAnalyzerName, map[string]any{
		"type":         custom.Name,
		"char_filters": []string{htmlchar.Name},
		"tokenizer":    unicode.Name,
		"token_filters": []string{
			lowercase.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error adding analyzer: %w", err)
	}
	indexMapping.DefaultAnalyzer = EventAnalyzerName

	// only the searchable fields are indexed, and always as text, so
	// date labels like "1971-09-01" don't get detected as datetimes
	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false
	for _, field := range SearchFields {
		fieldMapping := bleve.NewTextFieldMapping()
		fieldMapping.Analyzer = EventAnalyzerName
		fieldMapping.Store = false
		fieldMapping.IncludeTermVectors = false
		fieldMapping.IncludeInAll = false
		docMapping.AddFieldMappingsAt(field, fieldMapping)
	}
	indexMapping.DefaultMapping = docMapping
	return indexMapping, nil
}

// Build indexes every event in groups. Ids are assigned in traversal order,
// so building twice from the same groups gives the same id for each event.
// An empty list of groups builds an empty index.
func Build(ctx context.Context, groups []Group) (_ *Index, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "timeline.build")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	indexMapping, err := newIndexMapping()
	if err != nil {
		return nil, err
	}
	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("error creating index: %w", err)
	}

	var records []Record
	batch := idx.NewBatch()
	for _, group := range groups {
		for pos, event := range group.Events {
			record := Record{
				ID:          len(records),
				Title:       event.Title,
				Description: event.Description,
				Date:        event.Date,
				GroupYear:   group.Year,
				Position:    pos,
				Image:       event.Image,
				ImageAlt:    event.ImageAlt,
				Link:        event.Link,
			}
			records = append(records, record)
			err = batch.Index(strconv.Itoa(record.ID), map[string]any{
				FieldTitle:       record.Title,
				FieldDescription: record.Description,
				FieldDate:        record.Date,
			})
			if err != nil {
				_ = idx.Close()
				return nil, fmt.Errorf("error indexing event %d: %w", record.ID, err)
			}
		}
	}
	if err = idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("error writing index batch: %w", err)
	}

	span.SetAttributes(attribute.Int("timeline.records", len(records)))
	sesqui.Logger(ctx).DebugContext(ctx, "built search index", "groups", len(groups), "records", len(records))
	return &Index{index: idx, records: records}, nil
}

// Len returns the number of records in the index.
func (i *Index) Len() int {
	return len(i.records)
}

// Records returns a copy of every record, in id order.
func (i *Index) Records() []Record {
	return slices.Clone(i.records)
}

// Record returns the record with the given id.
func (i *Index) Record(id int) (Record, bool) {
	if id < 0 || id >= len(i.records) {
		return Record{}, false
	}
	return i.records[id], true
}

// Search returns, for each searchable field, the records whose field
// matches q. A field matches when every token of q is a prefix of some token
// in the field. Fields without matches are omitted.
func (i *Index) Search(ctx context.Context, q string) (_ []FieldResult, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "timeline.search", trace.WithAttributes(
		attribute.String("timeline.query", q),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		return nil, ErrIndexClosed
	}
	if len(i.records) < 1 {
		return nil, nil
	}

	tokens := i.analyze(q)
	if len(tokens) < 1 {
		return nil, nil
	}

	var results []FieldResult
	for _, field := range SearchFields {
		prefixes := make([]query.Query, 0, len(tokens))
		for _, token := range tokens {
			prefix := bleve.NewPrefixQuery(token)
			prefix.SetField(field)
			prefixes = append(prefixes, prefix)
		}
		req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(prefixes...), len(i.records), 0, false)
		resp, err := i.index.SearchInContext(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("error searching %s: %w", field, err)
		}
		if len(resp.Hits) < 1 {
			continue
		}
		ids := make([]int, 0, len(resp.Hits))
		for _, hit := range resp.Hits {
			id, err := strconv.Atoi(hit.ID)
			if err != nil {
				return nil, fmt.Errorf("error parsing hit id %q: %w", hit.ID, err)
			}
			ids = append(ids, id)
		}
		slices.Sort(ids)
		results = append(results, FieldResult{Field: field, IDs: ids})
	}
	return results, nil
}

// Query searches the index and returns the matching records, merged across
// fields with Merge.
func (i *Index) Query(ctx context.Context, q string) ([]Record, error) {
	results, err := i.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	ids := Merge(results)
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		record, ok := i.Record(id)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	sesqui.Logger(ctx).DebugContext(ctx, "searched timeline", "query", q, "results", len(records))
	return records, nil
}

func (i *Index) analyze(q string) []string {
	analyzer := i.index.Mapping().AnalyzerNamed(EventAnalyzerName)
	if analyzer == nil {
		return nil
	}
	var tokens []string
	for _, token := range analyzer.Analyze([]byte(q)) {
		term := string(token.Term)
		if term == "" || slices.Contains(tokens, term) {
			continue
		}
		tokens = append(tokens, term)
	}
	return tokens
}

// Close releases the index. Searching a closed index returns ErrIndexClosed.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return nil
	}
	i.closed = true
	return i.index.Close()
}

// Merge combines per-field results into one list of ids. Each id appears
// once, at the position it was first seen, walking the results in order.
func Merge(results []FieldResult) []int {
	var merged []int
	seen := map[int]struct{}{}
	for _, result := range results {
		for _, id := range result.IDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}
