package vertexclient

import (
	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/solicitation-agent/internal/dto"
)

var schemaTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
}

// toGenaiTools declares every tool as a function of a single genai tool.
func toGenaiTools(tools []dto.VertexTool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	tool := &genai.Tool{FunctionDeclarations: make([]*genai.FunctionDeclaration, len(tools))}
	for i, t := range tools {
		tool.FunctionDeclarations[i] = &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  toGenaiSchema(t.Parameters),
		}
	}
	return []*genai.Tool{tool}
}

// toGenaiSchema converts recursively; unknown type names become TypeUnspecified.
func toGenaiSchema(in *dto.VertexSchema) *genai.Schema {
	if in == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        schemaTypes[in.Type],
		Description: in.Description,
		Enum:        in.Enum,
		Required:    in.Required,
		Items:       toGenaiSchema(in.Items),
	}
	if len(in.Properties) == 0 {
		return out
	}

	out.Properties = make(map[string]*genai.Schema, len(in.Properties))
	for name, prop := range in.Properties {
		out.Properties[name] = toGenaiSchema(prop)
	}
	return out
}
