// Package armtemplate assembles ARM deployment templates as plain JSON
// maps, for commands that create resources through a deployment instead
// of a direct PUT.
package armtemplate

const (
	schemaURL      = "https://schema.management.azure.com/schemas/2015-01-01/deploymentTemplate.json#"
	contentVersion = "1.0.0.0"
)

// Builder accumulates the sections of a deployment template.
type Builder struct {
	parameters map[string]any
	variables  map[string]any
	resources  []map[string]any
	outputs    map[string]any
}

func NewBuilder() *Builder {
	return &Builder{
		parameters: map[string]any{},
		variables:  map[string]any{},
		outputs:    map[string]any{},
	}
}

// Resource is one resource entry in the template.
type Resource struct {
	Name       string
	Type       string
	APIVersion string
	Location   string
	DependsOn  []string
	Tags       map[string]*string
	Properties any
}

// AddResource appends a resource entry, dropping empty optional fields.
func (b *Builder) AddResource(r Resource) {
	entry := map[string]any{
		"name":       r.Name,
		"type":       r.Type,
		"apiVersion": r.APIVersion,
	}
	if r.Location != "" {
		entry["location"] = r.Location
	}
	if len(r.DependsOn) > 0 {
		entry["dependsOn"] = r.DependsOn
	}
	if len(r.Tags) > 0 {
		entry["tags"] = r.Tags
	}
	if r.Properties != nil {
		entry["properties"] = r.Properties
	}
	b.resources = append(b.resources, entry)
}

func (b *Builder) AddParameter(name string, parameter any) {
	b.parameters[name] = parameter
}

func (b *Builder) AddVariable(name string, value any) {
	b.variables[name] = value
}

func (b *Builder) AddOutput(name string, output any) {
	b.outputs[name] = output
}

// Template renders the accumulated sections as the JSON document the
// deployments API expects.
func (b *Builder) Template() map[string]any {
	resources := b.resources
	if resources == nil {
		resources = []map[string]any{}
	}
	return map[string]any{
		"$schema":        schemaURL,
		"contentVersion": contentVersion,
		"parameters":     b.parameters,
		"variables":      b.variables,
		"resources":      resources,
		"outputs":        b.outputs,
	}
}
