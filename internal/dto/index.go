package dto

// IndexQuery is one request against the keyword + facet search index.
type IndexQuery struct {
	Query                string
	Filters              string
	HitsPerPage          int
	AttributesToRetrieve []string
	Facets               []string
}

type IndexResult struct {
	NbHits int
	Hits   []map[string]any
	Facets map[string]map[string]int
}
