package forest

import "testing"

func TestIndeterminateAcrossDepth(t *testing.T) {
	// root → child → {g1, g2}; only g1 is selected. Both the child and the
	// root must report indeterminate even though the intermediate child is
	// unselected: the check covers the full subtree, not just immediate
	// children, so root sees 1 of 3 descendants selected.
	f := New([]NodeRecord{
		{
			ID: "root", Name: "Root",
			Children: []NodeRecord{
				{
					ID: "child", Name: "Child",
					Children: []NodeRecord{
						{ID: "g1", Name: "First"},
						{ID: "g2", Name: "Second"},
					},
				},
			},
		},
	})
	sel := NewSelection()
	sel.Toggle(f, "g1")

	if !Indeterminate(f, sel, "root") {
		t.Error("root should be indeterminate with only a grandchild selected")
	}
	if !Indeterminate(f, sel, "child") {
		t.Error("child should be indeterminate with one of two children selected")
	}
	if sel.IsSelected("root") || sel.IsSelected("child") {
		t.Error("indeterminate must not imply selected")
	}
}

func TestIndeterminate(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		id       string
		want     bool
	}{
		{name: "nothing selected", selected: nil, id: "c1", want: false},
		{name: "partial subtree", selected: []string{"f2"}, id: "c1", want: true},
		{name: "fully selected subtree", selected: []string{"f1", "f2", "f3"}, id: "c1", want: false},
		{name: "fully selected including node itself", selected: []string{"c1", "f1", "f2", "f3"}, id: "c1", want: false},
		{name: "leaf never indeterminate", selected: []string{"f3"}, id: "f3", want: false},
		{name: "single-child subtree fully selected", selected: []string{"f3"}, id: "f2", want: false},
		{name: "own selection state irrelevant", selected: []string{"c1", "f1"}, id: "c1", want: true},
		{name: "unknown id", selected: []string{"f1"}, id: "gone", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleForest()
			sel := NewSelection()
			sel.Seed(f, tt.selected)

			if got := Indeterminate(f, sel, tt.id); got != tt.want {
				t.Errorf("Indeterminate(%q) with %v selected = %v, want %v",
					tt.id, tt.selected, got, tt.want)
			}
		})
	}
}
