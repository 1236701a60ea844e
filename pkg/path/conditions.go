package path

import (
	"net/http"
	"time"

	"github.com/lakeio/dlstore/pkg/transport"
)

// AccessConditions are preconditions the service must verify before
// accepting a request. An ETag match makes retries of a mutating step safe;
// the protocol itself performs no deduplication.
//
// A nil *AccessConditions means unconditional.
type AccessConditions struct {
	// IfMatch accepts the request only when the path's current ETag equals
	// this value.
	IfMatch string

	// IfNoneMatch accepts the request only when the path's current ETag
	// differs from this value ("*" means "only when the path is absent").
	IfNoneMatch string

	// IfModifiedSince accepts the request only when the path changed after
	// this instant.
	IfModifiedSince time.Time

	// IfUnmodifiedSince accepts the request only when the path has not
	// changed since this instant.
	IfUnmodifiedSince time.Time
}

// apply sets the standard conditional headers for the request target.
func (c *AccessConditions) apply(header http.Header) {
	if c == nil {
		return
	}
	if c.IfMatch != "" {
		header.Set("If-Match", c.IfMatch)
	}
	if c.IfNoneMatch != "" {
		header.Set("If-None-Match", c.IfNoneMatch)
	}
	if !c.IfModifiedSince.IsZero() {
		header.Set("If-Modified-Since", c.IfModifiedSince.UTC().Format(http.TimeFormat))
	}
	if !c.IfUnmodifiedSince.IsZero() {
		header.Set("If-Unmodified-Since", c.IfUnmodifiedSince.UTC().Format(http.TimeFormat))
	}
}

// applySource sets the source-side conditional headers of a rename request.
func (c *AccessConditions) applySource(header http.Header) {
	if c == nil {
		return
	}
	if c.IfMatch != "" {
		header.Set(transport.HeaderSourceIfMatch, c.IfMatch)
	}
	if c.IfNoneMatch != "" {
		header.Set(transport.HeaderSourceIfNoneMatch, c.IfNoneMatch)
	}
	if !c.IfModifiedSince.IsZero() {
		header.Set(transport.HeaderSourceIfModifiedSince, c.IfModifiedSince.UTC().Format(http.TimeFormat))
	}
	if !c.IfUnmodifiedSince.IsZero() {
		header.Set(transport.HeaderSourceIfUnmodifiedSince, c.IfUnmodifiedSince.UTC().Format(http.TimeFormat))
	}
}
