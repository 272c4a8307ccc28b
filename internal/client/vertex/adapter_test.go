package vertexclient

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
)

func TestParseContentResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Looking "),
				genai.FunctionCall{Name: "search_rfp_database", Args: map[string]any{"query": "Infor"}},
				genai.Text("now."),
			}},
		}},
	}

	text, calls := parseContentResponse(resp)
	if text != "Looking now." {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(calls) != 1 || calls[0].Name != "search_rfp_database" || calls[0].Args["query"] != "Infor" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestParseContentResponseEmpty(t *testing.T) {
	text, calls := parseContentResponse(nil)
	if text != "" || calls != nil {
		t.Fatalf("expected empty output, got %q %+v", text, calls)
	}
}

func TestToGenaiParts(t *testing.T) {
	parts := toGenaiParts(dto.VertexChatMessage{
		ToolResults: []dto.VertexToolResult{{Name: "get_rfp_statistics", Response: map[string]any{"result": "{}"}}},
	})
	if len(parts) != 1 {
		t.Fatalf("expected one part, got %d", len(parts))
	}
	fr, ok := parts[0].(genai.FunctionResponse)
	if !ok || fr.Name != "get_rfp_statistics" || fr.Response["result"] != "{}" {
		t.Fatalf("unexpected part: %#v", parts[0])
	}
	if got := toGenaiParts(dto.VertexChatMessage{}); len(got) != 0 {
		t.Fatalf("expected no parts for empty message")
	}
}

func TestToGenaiSchema(t *testing.T) {
	schema := toGenaiSchema(&dto.VertexSchema{
		Type:     "object",
		Required: []string{"facet_by"},
		Properties: map[string]*dto.VertexSchema{
			"facet_by":      {Type: "string", Enum: []string{"cnStatus", "location", "site"}},
			"hits_per_page": {Type: "integer"},
		},
	})
	if schema.Type != genai.TypeObject || len(schema.Required) != 1 {
		t.Fatalf("unexpected root schema: %+v", schema)
	}
	if schema.Properties["facet_by"].Type != genai.TypeString || len(schema.Properties["facet_by"].Enum) != 3 {
		t.Fatalf("unexpected facet_by schema: %+v", schema.Properties["facet_by"])
	}
	if schema.Properties["hits_per_page"].Type != genai.TypeInteger {
		t.Fatalf("unexpected hits_per_page type")
	}
	if toGenaiSchema(nil) != nil {
		t.Fatalf("nil schema should stay nil")
	}
}

func TestToGenaiTools(t *testing.T) {
	tools := toGenaiTools([]dto.VertexTool{
		{Name: "search_rfp_database", Parameters: &dto.VertexSchema{Type: "object"}},
		{Name: "get_rfp_statistics", Parameters: &dto.VertexSchema{Type: "mystery"}},
	})
	if len(tools) != 1 || len(tools[0].FunctionDeclarations) != 2 {
		t.Fatalf("expected one tool with two declarations, got %+v", tools)
	}
	if tools[0].FunctionDeclarations[1].Parameters.Type != genai.TypeUnspecified {
		t.Fatalf("unknown type should map to TypeUnspecified")
	}
	if toGenaiTools(nil) != nil {
		t.Fatalf("no tools should give nil")
	}
}
