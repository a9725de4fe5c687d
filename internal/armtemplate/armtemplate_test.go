package armtemplate

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTemplateSkeleton(t *testing.T) {
	got := NewBuilder().Template()

	want := map[string]any{
		"$schema":        schemaURL,
		"contentVersion": "1.0.0.0",
		"parameters":     map[string]any{},
		"variables":      map[string]any{},
		"resources":      []map[string]any{},
		"outputs":        map[string]any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestAddResource(t *testing.T) {
	b := NewBuilder()
	b.AddResource(Resource{
		Name:       "conn1",
		Type:       "Microsoft.Network/connections",
		APIVersion: "2022-01-01",
		Location:   "westus2",
		DependsOn:  []string{"[resourceId('Microsoft.Network/virtualNetworkGateways', 'gw1')]"},
		Properties: map[string]any{"connectionType": "Vnet2Vnet"},
	})

	raw, err := json.Marshal(b.Template())
	if err != nil {
		t.Fatalf("marshal template: %v", err)
	}
	var decoded struct {
		Resources []map[string]any `json:"resources"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal template: %v", err)
	}
	if len(decoded.Resources) != 1 {
		t.Fatalf("resources = %d, want 1", len(decoded.Resources))
	}
	resource := decoded.Resources[0]
	if resource["name"] != "conn1" || resource["type"] != "Microsoft.Network/connections" {
		t.Errorf("resource identity = %v / %v", resource["name"], resource["type"])
	}
	if resource["location"] != "westus2" {
		t.Errorf("location = %v", resource["location"])
	}
	props, ok := resource["properties"].(map[string]any)
	if !ok || props["connectionType"] != "Vnet2Vnet" {
		t.Errorf("properties = %v", resource["properties"])
	}
}

func TestAddResourceOmitsEmptyFields(t *testing.T) {
	b := NewBuilder()
	b.AddResource(Resource{Name: "r", Type: "t", APIVersion: "v"})

	resource := b.Template()["resources"].([]map[string]any)[0]
	for _, key := range []string{"location", "dependsOn", "tags", "properties"} {
		if _, present := resource[key]; present {
			t.Errorf("empty field %q should be omitted", key)
		}
	}
}

func TestSections(t *testing.T) {
	b := NewBuilder()
	b.AddParameter("sharedKey", map[string]any{"type": "securestring"})
	b.AddVariable("apiVersion", "2022-01-01")
	b.AddOutput("resource", map[string]any{"type": "object"})

	tmpl := b.Template()
	if _, ok := tmpl["parameters"].(map[string]any)["sharedKey"]; !ok {
		t.Error("parameter missing")
	}
	if tmpl["variables"].(map[string]any)["apiVersion"] != "2022-01-01" {
		t.Error("variable missing")
	}
	if _, ok := tmpl["outputs"].(map[string]any)["resource"]; !ok {
		t.Error("output missing")
	}
}
