// Package market wraps the /api/market endpoints: the four-step draft
// workflow that turns photos into a listing, plus the catalog, product,
// order and valuation calls around it.
//
// Functions here build requests and decode responses. They never retry,
// never wrap transport errors and never validate field values; that is the
// backend's job.
package market
