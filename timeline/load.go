package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/tidwall/jsonc"
)

// DefaultMaxDatasetBytes caps the size of a fetched dataset.
const DefaultMaxDatasetBytes = 8 << 20

var (
	// ErrNoSource is returned when a Source has neither a dataset nor a
	// URL.
	ErrNoSource = errors.New("no dataset or URL to load")

	// ErrUnsupportedSource is returned when a URL can't be fetched by the
	// Loader, like a relative path when the Loader has no file system.
	ErrUnsupportedSource = errors.New("unsupported dataset URL")

	// ErrUnexpectedStatus is returned when fetching a dataset over HTTP
	// returns a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrDatasetTooLarge is returned when a dataset is bigger than the
	// Loader's limit.
	ErrDatasetTooLarge = errors.New("dataset is too large")
)

// Source is where a timeline's dataset comes from: either a dataset held in
// memory, or a URL to fetch one from.
type Source struct {
	dataset *Dataset
	url     string
}

// Inline returns a Source for a dataset already in memory. If the dataset
// sets DataURL, that URL is fetched instead.
func Inline(dataset Dataset) Source {
	return Source{dataset: &dataset}
}

// URL returns a Source that fetches the dataset from rawURL.
func URL(rawURL string) Source {
	return Source{url: rawURL}
}

// String returns a description of the source suitable for logging.
func (s Source) String() string {
	switch {
	case s.url != "":
		return s.url
	case s.dataset != nil && s.dataset.DataURL != "":
		return s.dataset.DataURL
	case s.dataset != nil:
		return "inline"
	}
	return ""
}

// Loader resolves Sources into Datasets. Absolute http and https URLs are
// fetched with Client; anything else is read from FS. Relative URLs are
// resolved against BaseURL first when it's set.
type Loader struct {
	Client   *http.Client
	FS       fs.FS
	BaseURL  *url.URL
	MaxBytes int64
}

// Load returns the dataset described by src. Datasets fetched from a URL may
// contain comments and trailing commas.
func (l *Loader) Load(ctx context.Context, src Source) (Dataset, error) {
	target := src.url
	if target == "" && src.dataset != nil {
		if src.dataset.DataURL == "" {
			return *src.dataset, nil
		}
		target = src.dataset.DataURL
	}
	if target == "" {
		return Dataset{}, ErrNoSource
	}
	raw, err := l.fetch(ctx, target)
	if err != nil {
		return Dataset{}, err
	}
	return Decode(raw)
}

// Decode parses a JSON (or JSON with comments) dataset.
func Decode(raw []byte) (Dataset, error) {
	var dataset Dataset
	err := json.Unmarshal(jsonc.ToJSON(raw), &dataset)
	if err != nil {
		return Dataset{}, fmt.Errorf("error decoding dataset: %w", err)
	}
	return dataset, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing dataset URL %q: %w", rawURL, err)
	}
	if l.BaseURL != nil {
		u = l.BaseURL.ResolveReference(u)
	}
	switch u.Scheme {
	case "http", "https":
		return l.fetchHTTP(ctx, u)
	case "", "file":
		if l.FS == nil {
			return nil, fmt.Errorf("%q: %w", rawURL, ErrUnsupportedSource)
		}
		return l.readFile(u)
	}
	return nil, fmt.Errorf("%q: %w", rawURL, ErrUnsupportedSource)
}

func (l *Loader) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building request for %q: %w", u, err)
	}
	req.Header.Set("Accept", "application/json")
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %q: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %q: %s: %w", u, resp.Status, ErrUnexpectedStatus)
	}
	return l.readLimited(resp.Body, u.String())
}

func (l *Loader) readFile(u *url.URL) ([]byte, error) {
	name := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	file, err := l.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", name, err)
	}
	defer file.Close()
	return l.readLimited(file, name)
}

func (l *Loader) readLimited(r io.Reader, name string) ([]byte, error) {
	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxDatasetBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%q is over %d bytes: %w", name, limit, ErrDatasetTooLarge)
	}
	return data, nil
}
