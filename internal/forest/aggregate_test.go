package forest

import "testing"

func TestTotalDocuments(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     int
	}{
		{name: "empty selection", selected: nil, want: 0},
		{name: "single leaf", selected: []string{"f1"}, want: 40},
		{name: "leaves under different parents", selected: []string{"f1", "f3"}, want: 60},
		{name: "parent count is local, not pre-aggregated", selected: []string{"c1"}, want: 100},
		{name: "everything", selected: []string{"c1", "f1", "f2", "f3"}, want: 220},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleForest()
			sel := NewSelection()
			sel.Seed(f, tt.selected)

			if got := TotalDocuments(f, sel); got != tt.want {
				t.Errorf("TotalDocuments with %v = %d, want %d", tt.selected, got, tt.want)
			}
		})
	}
}

func TestTotalDocumentsSkipsNodesWithoutCount(t *testing.T) {
	f := New([]NodeRecord{
		{
			ID: "v", Name: "Vault",
			Children: []NodeRecord{
				{ID: "a", Name: "Counted", DocumentCount: intPtr(5)},
				{ID: "b", Name: "Uncounted"},
			},
		},
	})
	sel := NewSelection()
	sel.Seed(f, []string{"v", "a", "b"})

	if got := TotalDocuments(f, sel); got != 5 {
		t.Errorf("TotalDocuments = %d, want 5 (nodes without a count contribute zero)", got)
	}
}

func TestTotalDocumentsIgnoresFilter(t *testing.T) {
	// Select a leaf with 5 docs and a deeper leaf with 7 docs, then apply a
	// filter that hides one of them. Aggregation runs over the full forest,
	// so the total stays 12.
	f := New([]NodeRecord{
		{
			ID: "root", Name: "Root",
			Children: []NodeRecord{
				{ID: "shallow", Name: "alpha", DocumentCount: intPtr(5)},
				{
					ID: "mid", Name: "middle",
					Children: []NodeRecord{
						{ID: "deep", Name: "omega", DocumentCount: intPtr(7)},
					},
				},
			},
		},
	})
	sel := NewSelection()
	sel.Toggle(f, "shallow")
	sel.Toggle(f, "deep")

	filtered := Filter(f, "alpha")
	if _, ok := filtered.Find("deep"); ok {
		t.Fatal("fixture broken: filter should hide the deep leaf")
	}

	if got := TotalDocuments(f, sel); got != 12 {
		t.Errorf("TotalDocuments = %d, want 12 under an active filter", got)
	}
}

func TestSelectedCount(t *testing.T) {
	f := sampleForest()
	sel := NewSelection()
	sel.Toggle(f, "f1")
	sel.Toggle(f, "f2")

	if got := SelectedCount(sel); got != 2 {
		t.Errorf("SelectedCount = %d, want 2", got)
	}
}

// TestPickerScenario walks the full cabinet/folder interaction from the
// picker: toggles, totals and indeterminate flags evolving together.
func TestPickerScenario(t *testing.T) {
	f := sampleForest()
	sel := NewSelection()

	sel.Toggle(f, "f2")

	if got := sel.IDs(); len(got) != 1 || got[0] != "f2" {
		t.Fatalf("after first toggle selected = %v, want [f2]", got)
	}
	if got := TotalDocuments(f, sel); got != 60 {
		t.Errorf("total after selecting f2 = %d, want 60", got)
	}
	if !Indeterminate(f, sel, "c1") {
		t.Error("c1 should be indeterminate: f2 selected, f1 and f3 not")
	}

	sel.Toggle(f, "f3")

	if got := TotalDocuments(f, sel); got != 80 {
		t.Errorf("total after selecting f3 = %d, want 80", got)
	}
	if Indeterminate(f, sel, "f2") {
		t.Error("f2's only descendant is selected; fully selected is not indeterminate")
	}
	if !Indeterminate(f, sel, "c1") {
		t.Error("c1 stays indeterminate while f1 is unselected")
	}
}
