package element

import (
	"net/url"
	"strconv"
)

// Sort directions accepted by list endpoints.
const (
	SortAscending  = "ascending"
	SortDescending = "descending"
)

// ListOptions holds optional query parameters for list endpoints.
// Zero-valued fields are omitted from the request entirely.
type ListOptions struct {
	// Limit caps the page size. The API truncates anything above 100.
	Limit int
	// RetrieveAfter is an opaque continuation cursor from a previous page.
	RetrieveAfter string
	// Sort names the field to order by.
	Sort string
	// SortDirection is SortAscending or SortDescending.
	SortDirection string
	// Filter is a server-side filter expression.
	Filter string
	// WithProfile includes device profile data when set.
	WithProfile *bool
}

// Values maps the options to their wire-format query parameters. Only
// parameters that are present are emitted; no validation or defaulting
// happens here.
func (o *ListOptions) Values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.RetrieveAfter != "" {
		params.Set("retrieve_after", o.RetrieveAfter)
	}
	if o.Sort != "" {
		params.Set("sort", o.Sort)
	}
	if o.SortDirection != "" {
		params.Set("sort_direction", o.SortDirection)
	}
	if o.Filter != "" {
		params.Set("filter", o.Filter)
	}
	if o.WithProfile != nil {
		params.Set("with_profile", strconv.FormatBool(*o.WithProfile))
	}
	return params
}

// Bool returns a pointer to b, for use with ListOptions.WithProfile and
// InterfaceCreate.Enabled.
func Bool(b bool) *bool {
	return &b
}
