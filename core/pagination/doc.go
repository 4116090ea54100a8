// Package pagination drains cursor-paginated vendor list endpoints.
//
// Vendor list endpoints answer with a page of items, a has_more flag and the id
// of the last item, which is passed back as the cursor for the next page. The
// cursor parameter name is vendor-specific (after, after_id), so it is part of
// Options.
//
// Drain returns the complete list or an error, never a partial list. A page that
// claims has_more without a usable cursor ends the walk.
package pagination
