package dto

// SchemaInfo is what schema discovery learned about the index documents.
type SchemaInfo struct {
	DateFields []string
	SampleKeys []string
}

// SearchArgs are the decoded arguments of search_rfp_database.
type SearchArgs struct {
	Query       string `json:"query"`
	Filters     string `json:"filters"`
	DateRange   string `json:"date_range"`
	HitsPerPage *int   `json:"hits_per_page"`
}

// StatisticsArgs are the decoded arguments of get_rfp_statistics.
type StatisticsArgs struct {
	FacetBy   string `json:"facet_by"`
	Filters   string `json:"filters"`
	DateRange string `json:"date_range"`
}

type SearchResultRecord struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Issuer             string   `json:"issuer"`
	Location           string   `json:"location"`
	Site               string   `json:"site"`
	SiteURL            string   `json:"siteUrl"`
	ScrapedDate        *string  `json:"scrapedDate"`
	ClosingDate        *string  `json:"closingDate"`
	PublishDate        *string  `json:"publishDate"`
	QuestionsDueByDate *string  `json:"questionsDueByDate"`
	CNStatus           string   `json:"cnStatus"`
	CNType             string   `json:"cnType"`
	Categories         []string `json:"categories"`
	Keywords           []string `json:"keywords"`
}

type SearchToolResult struct {
	Success           bool                 `json:"success"`
	TotalMatchingRFPs int                  `json:"total_matching_rfps"`
	ReturnedResults   int                  `json:"returned_results"`
	Results           []SearchResultRecord `json:"results"`
}

type StatisticsBreakdown struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type StatisticsToolResult struct {
	Success    bool                  `json:"success"`
	TotalRFPs  int                   `json:"total_rfps"`
	FacetField string                `json:"facet_field"`
	DateRange  string                `json:"date_range"`
	Breakdown  []StatisticsBreakdown `json:"breakdown"`
}

// ToolFailure is the envelope returned to the model when a tool cannot run.
type ToolFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
