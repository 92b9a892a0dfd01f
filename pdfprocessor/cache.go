// cache.go implements the memoizing layer over Extract.
//
// The interactive surface re-renders on every user action and would otherwise
// re-parse the active PDF each time; memoizing by document identity makes
// repeated access to the same upload free within a session.
package pdfprocessor

import (
	"fmt"
)

// ExtractFunc is the extraction function memoized by DocumentCache.
type ExtractFunc func(data []byte, name string) (*Document, error)

// DocumentCache memoizes extraction results by document identity.
//
// Identity is filename plus byte size, not a content hash, matching the
// filename-keyed identity used across the system. Two uploads with the same
// name and size are treated as the same document.
//
// The cache is not safe for concurrent use; the session model is strictly
// single-actor.
type DocumentCache struct {
	extract ExtractFunc
	docs    map[string]*Document
}

// NewDocumentCache creates a cache backed by ExtractBytes.
func NewDocumentCache() *DocumentCache {
	return NewDocumentCacheWith(ExtractBytes)
}

// NewDocumentCacheWith creates a cache backed by a custom extraction
// function. Used by tests to observe extraction calls.
func NewDocumentCacheWith(fn ExtractFunc) *DocumentCache {
	return &DocumentCache{
		extract: fn,
		docs:    make(map[string]*Document),
	}
}

// Extract returns the Document for the given upload, extracting it on first
// sight and serving the memoized result afterwards. cached reports whether
// the result came from the cache. A failed extraction is not cached.
func (c *DocumentCache) Extract(data []byte, name string) (doc *Document, cached bool, err error) {
	key := identityKey(name, len(data))
	if doc, ok := c.docs[key]; ok {
		return doc, true, nil
	}

	doc, err = c.extract(data, name)
	if err != nil {
		return nil, false, err
	}
	c.docs[key] = doc
	return doc, false, nil
}

// Len returns the number of memoized documents.
func (c *DocumentCache) Len() int {
	return len(c.docs)
}

// identityKey builds the cache key from filename and size.
func identityKey(name string, size int) string {
	return fmt.Sprintf("%s:%d", name, size)
}
