package connectors

import "testing"

func TestRegistryLoadsEmbeddedSpecs(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	spec, err := r.Get("docuware")
	if err != nil {
		t.Fatalf("Get(docuware): %v", err)
	}
	if spec.Label != "DocuWare" {
		t.Errorf("docuware label = %q", spec.Label)
	}
	if !spec.KnownKind("cabinet") || !spec.KnownKind("folder") {
		t.Error("docuware should know cabinet and folder kinds")
	}
	if spec.KnownKind("vault") {
		t.Error("docuware should not know the vault kind")
	}
}

func TestRegistryUnknownType(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, err := r.Get("sharepoint"); err == nil {
		t.Error("expected error for unknown connector type")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	specs := r.List()
	if len(specs) < 2 {
		t.Fatalf("expected at least 2 embedded specs, got %d", len(specs))
	}
	for i := 1; i < len(specs); i++ {
		if specs[i-1].Type >= specs[i].Type {
			t.Errorf("List not sorted: %q before %q", specs[i-1].Type, specs[i].Type)
		}
	}
}
