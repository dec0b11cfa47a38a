package llm

// ToolDefinition describes a caller-defined capability the model may
// invoke. Parameters keep insertion order; that order is the wire order
// in both vendors' schemas. A tool with no parameters is valid.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  []ToolParameter
}

// ToolParameter is one named parameter of a tool. Enum restricts the
// accepted values when non-nil.
type ToolParameter struct {
	Name        string
	Type        string // JSON-schema type, e.g. "string", "number".
	Description string
	Required    bool
	Enum        []string
}

// ToolBuilder accumulates a ToolDefinition through chained calls. Each
// method returns an updated copy, so a builder value is never shared
// mutable state; reuse after Build starts a fresh sequence. Not for
// concurrent use during a single build sequence.
type ToolBuilder struct {
	name        string
	description string
	params      []ToolParameter
}

// NewTool starts a tool definition.
func NewTool() ToolBuilder {
	return ToolBuilder{}
}

// Name sets the tool name.
func (b ToolBuilder) Name(name string) ToolBuilder {
	b.name = name
	return b
}

// Description sets the tool description.
func (b ToolBuilder) Description(description string) ToolBuilder {
	b.description = description
	return b
}

// AddParameter appends a parameter of the given JSON-schema type.
func (b ToolBuilder) AddParameter(name, paramType, description string, required bool) ToolBuilder {
	return b.append(ToolParameter{
		Name:        name,
		Type:        paramType,
		Description: description,
		Required:    required,
	})
}

// AddEnumParameter appends a string parameter restricted to the given
// allowed values.
func (b ToolBuilder) AddEnumParameter(name, description string, required bool, allowed []string) ToolBuilder {
	return b.append(ToolParameter{
		Name:        name,
		Type:        "string",
		Description: description,
		Required:    required,
		Enum:        append([]string(nil), allowed...),
	})
}

func (b ToolBuilder) append(p ToolParameter) ToolBuilder {
	params := make([]ToolParameter, 0, len(b.params)+1)
	params = append(params, b.params...)
	params = append(params, p)
	b.params = params
	return b
}

// Build validates the accumulated definition. It fails if the name or
// description is empty, or if two parameters share a name.
func (b ToolBuilder) Build() (ToolDefinition, error) {
	if b.name == "" {
		return ToolDefinition{}, NewValidationError("tool name is required")
	}
	if b.description == "" {
		return ToolDefinition{}, NewValidationError("tool description is required")
	}

	seen := make(map[string]struct{}, len(b.params))
	for _, p := range b.params {
		if _, dup := seen[p.Name]; dup {
			return ToolDefinition{}, NewValidationError("duplicate tool parameter " + p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	return ToolDefinition{
		Name:        b.name,
		Description: b.description,
		Parameters:  append([]ToolParameter(nil), b.params...),
	}, nil
}
