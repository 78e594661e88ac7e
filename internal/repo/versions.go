package repo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/facette/natsort"
	"golang.org/x/net/html"

	"unyson/internal/clierr"
	"unyson/internal/util"
)

const (
	DefaultRepository = "http://plugins.svn.wordpress.org"
	DefaultTimeout    = 10 * time.Second

	// maxListingBytes bounds how much of a tag listing we read.
	maxListingBytes = 8 << 20
)

// Lister fetches published version tags from an SVN-over-HTTP repository.
type Lister struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	retries int
}

// Option configures a Lister.
type Option func(*Lister)

// WithBaseURL overrides the repository root.
func WithBaseURL(base string) Option {
	return func(l *Lister) {
		l.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient sets the client used for fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Lister) {
		l.client = c
	}
}

// WithTimeout sets a per-request timeout. It applies to a copy of the
// client, whether default or given with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(l *Lister) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithRetries sets how many extra attempts are made after a transport error.
// Non-200 responses are never retried.
func WithRetries(n int) Option {
	return func(l *Lister) {
		if n >= 0 {
			l.retries = n
		}
	}
}

func NewLister(opts ...Option) *Lister {
	l := &Lister{
		baseURL: DefaultRepository,
		client:  &http.Client{Timeout: DefaultTimeout},
		retries: 1,
	}
	for _, o := range opts {
		o(l)
	}
	if l.timeout > 0 {
		c := *l.client
		c.Timeout = l.timeout
		l.client = &c
	}
	return l
}

// TagsURL returns the tag directory of slug.
func (l *Lister) TagsURL(slug string) string {
	return fmt.Sprintf("%s/%s/tags", l.baseURL, slug)
}

// Versions returns the published versions of slug in ascending natural order.
//
// Errors:
//
//   - unyson-error-invalid-request -- on a non-200 response, a transport
//     failure or timeout, or an unreadable body
func (l *Lister) Versions(ctx context.Context, slug string) ([]string, error) {
	url := l.TagsURL(slug)

	var resp *http.Response
	var err error
	for attempt := 0; attempt <= l.retries; attempt++ {
		resp, err = l.get(ctx, url)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		util.Log.Debugf("Fetching %s failed (attempt %d): %v", url, attempt+1, err)
	}
	if err != nil {
		return nil, clierr.ErrorInvalidRequest(url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, clierr.ErrorInvalidRequest(url, resp.StatusCode, nil)
	}

	versions, err := ParseListing(io.LimitReader(resp.Body, maxListingBytes))
	if err != nil {
		return nil, clierr.ErrorInvalidRequest(url, resp.StatusCode, err)
	}
	util.Log.Debugf("Found %d versions for %s", len(versions), slug)
	return versions, nil
}

func (l *Lister) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	util.Log.Debugf("GET %s", url)
	return l.client.Do(req)
}

// ParseListing extracts versions from a directory listing page. Every anchor
// target is collected with '/' removed; the first and last are navigation
// rows and are dropped. The remainder is returned in natural order.
func ParseListing(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag listing: %w", err)
	}

	var entries []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := ""
			for _, a := range n.Attr {
				if a.Key == "href" {
					href = a.Val
					break
				}
			}
			entries = append(entries, strings.ReplaceAll(href, "/", ""))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return SortNatural(trimNavigation(entries)), nil
}

func trimNavigation(entries []string) []string {
	if len(entries) < 2 {
		return []string{}
	}
	return entries[1 : len(entries)-1]
}

// SortNatural returns a naturally ordered copy of versions.
func SortNatural(versions []string) []string {
	out := make([]string, len(versions))
	copy(out, versions)
	natsort.Sort(out)
	return out
}
