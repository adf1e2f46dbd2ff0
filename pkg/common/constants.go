package common

type contextKey string

const (
	// ContextKeyRequestID carries the per-request correlation id.
	ContextKeyRequestID contextKey = "request_id"

	HeaderRequestID = "X-Request-ID"
)

const (
	// Upstream review API paths.
	CatalogPathModules = "/api/modules"
	CatalogPathSearch  = "/api/search"

	// ModulePagePrefix is where a selected search result navigates to.
	ModulePagePrefix = "/modules/"
)
