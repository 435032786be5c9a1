package shared

// Filter carries the paging, ordering and search options a caller may
// attach to a listing query. OrderBy is validated against a per-table
// whitelist before it reaches SQL.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]string
}
