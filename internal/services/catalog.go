package services

import (
	"strings"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
)

const (
	toolSearch     = "search_rfp_database"
	toolStatistics = "get_rfp_statistics"
)

const dateRangeOptions = "'today', 'yesterday', 'past_week', 'past_month', 'past_3_months', " +
	"or a custom range like 'YYYY-MM-DD_to_YYYY-MM-DD'"

// buildToolCatalog declares the tools handed to the model. Names, parameter
// names and enum values are a wire contract with prompts tuned against them.
func buildToolCatalog(schema dto.SchemaInfo) []dto.VertexTool {
	return []dto.VertexTool{
		{
			Name: toolSearch,
			Description: "Search the RFP (Request for Proposal) and solicitations database. " +
				"Use this tool to find government contracts, RFPs, bids, and procurement opportunities. " +
				"You can search by keywords, filter by date ranges, locations, or categories. " +
				"The database contains IT services, managed services, consulting, and other public-sector contracts.",
			Parameters: &dto.VertexSchema{
				Type: "object",
				Properties: map[string]*dto.VertexSchema{
					"query": {Type: "string", Description: "Search keywords. For company or product names " +
						"(Infor, Microsoft, Oracle, SAP) use the exact name only. For general topics use " +
						"descriptive terms such as 'IT managed services' or 'cloud migration'."},
					"filters": {Type: "string", Description: filterDescription(schema)},
					"date_range": {Type: "string", Description: "Simplified filter on when RFPs were scraped. " +
						"Options: " + dateRangeOptions + ". Prefer this over hand-built date filters."},
					"hits_per_page": {Type: "integer", Description: "Number of results to return (default 5, max 50). " +
						"For counts only, 1 is enough because total_matching_rfps is always returned."},
				},
				Required: []string{"query"},
			},
		},
		{
			Name: toolStatistics,
			Description: "Get statistics and trends from the RFP database using facet aggregation. " +
				"Use this for questions about patterns, distributions and percentages, e.g. " +
				"'What % of RFPs are we pursuing?', 'Which states have the most RFPs?', " +
				"'How many RFPs by pursuit status?'",
			Parameters: &dto.VertexSchema{
				Type: "object",
				Properties: map[string]*dto.VertexSchema{
					"facet_by": {Type: "string", Enum: statisticsFacets, Description: "Field to group by. " +
						"'cnStatus': pursuit status (pursuing, notPursuing, monitor, researching, submitted). " +
						"'location': geographic distribution by state or region. " +
						"'site': distribution by source website."},
					"filters": {Type: "string", Description: "Optional filters to narrow the statistics " +
						"(same format as search_rfp_database filters)."},
					"date_range": {Type: "string", Description: "Time period for the analysis. Options: " +
						dateRangeOptions + "."},
				},
				Required: []string{"facet_by"},
			},
		},
	}
}

func filterDescription(schema dto.SchemaInfo) string {
	var b strings.Builder
	b.WriteString("Optional Algolia filter string for refined search. ")
	b.WriteString("Available date fields: " + strings.Join(schema.DateFields, ", ") + ". ")
	b.WriteString("DATE FIELD MEANINGS:\n")
	b.WriteString("- 'created': when the RFP was scraped into our database (use for 'scraped on' questions)\n")
	b.WriteString("- 'publishDate': when the RFP was originally published on the source website\n")
	b.WriteString("- 'closingDate': submission deadline for the RFP\n")
	b.WriteString("- 'updated': when the record was last modified\n\n")
	b.WriteString("Grammar: 'field:value' for equality, 'field>=N AND field<=N' for numeric ranges, " +
		"parentheses and AND to combine. ")
	b.WriteString("Examples: 'created>=1728518400000 AND created<=1728604799000' for RFPs scraped in a range; " +
		"'location:California'; 'categories:IT Services'. ")
	b.WriteString("All dates are Unix timestamps in milliseconds, not seconds.")
	return b.String()
}
