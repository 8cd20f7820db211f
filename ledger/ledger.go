// Package ledger provides the run-scoped set of processed URLs.
package ledger

import (
	"net/url"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/terreno"
)

// Compile-time interface verification.
var _ terreno.Ledger = (*Ledger)(nil)

// Ledger is an exact set of normalized URLs. Entries are bucketed by the
// xxhash of the normalized form and compared by string within a bucket, so
// hash collisions never report an unseen URL as seen. It grows
// monotonically and is not safe for concurrent use.
type Ledger struct {
	buckets map[uint64][]string
	n       int
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{buckets: make(map[uint64][]string)}
}

// Seen returns true if the URL, after normalization, has been added.
func (l *Ledger) Seen(rawURL string) bool {
	norm := Normalize(rawURL)
	return slices.Contains(l.buckets[xxhash.Sum64String(norm)], norm)
}

// Add records the URL. Returns false if it was already present.
func (l *Ledger) Add(rawURL string) bool {
	norm := Normalize(rawURL)
	k := xxhash.Sum64String(norm)
	if slices.Contains(l.buckets[k], norm) {
		return false
	}
	l.buckets[k] = append(l.buckets[k], norm)
	l.n++
	return true
}

// Len returns the number of distinct URLs recorded.
func (l *Ledger) Len() int {
	return l.n
}

// Normalize returns the canonical form used for deduplication: scheme and
// host lowercased, fragment removed and trailing slash trimmed from the path.
// The query string is kept. Unparsable input is returned trimmed.
func Normalize(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if len(u.Path) > 1 {
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = ""
	}
	return u.String()
}
