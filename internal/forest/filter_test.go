package forest

import (
	"reflect"
	"testing"
)

func TestFilterEmptyQueryReturnsIdentity(t *testing.T) {
	f := sampleForest()

	for _, query := range []string{"", "   ", "\t\n"} {
		if got := Filter(f, query); got != f {
			t.Errorf("Filter(f, %q) should return the forest unchanged", query)
		}
	}
}

func TestFilterKeepsAncestorsNotDescendants(t *testing.T) {
	// root → a → b, where only b matches; a also has a non-matching child c.
	// The filtered view must contain root and a (ancestors) and b (match),
	// but not c.
	f := New([]NodeRecord{
		{
			ID: "root", Name: "Root",
			Children: []NodeRecord{
				{
					ID: "a", Name: "Middle",
					Children: []NodeRecord{
						{ID: "b", Name: "xyz reports"},
						{ID: "c", Name: "drafts"},
					},
				},
			},
		},
	})

	got := Filter(f, "xyz")

	for _, id := range []string{"root", "a", "b"} {
		if _, ok := got.Find(id); !ok {
			t.Errorf("filtered forest missing %q", id)
		}
	}
	if _, ok := got.Find("c"); ok {
		t.Error("non-matching sibling c must be pruned")
	}
}

func TestFilterMatchDoesNotRevealChildren(t *testing.T) {
	// arch matches by name; its child matches neither by name nor by path
	// (explicit paths avoid inheriting the matched token) and must stay
	// hidden even though its parent matched.
	f := New([]NodeRecord{
		{
			ID: "cab", Name: "Invoices", Path: "Invoices",
			Children: []NodeRecord{
				{
					ID: "arch", Name: "2024 archive", Path: "Invoices/archive",
					Children: []NodeRecord{
						{ID: "jan", Name: "January", Path: "Invoices/archive/January"},
					},
				},
			},
		},
	})

	got := Filter(f, "2024")

	if _, ok := got.Find("arch"); !ok {
		t.Fatal("matched node arch missing from filtered forest")
	}
	if _, ok := got.Find("cab"); !ok {
		t.Error("ancestor cab of a match must be kept")
	}
	if _, ok := got.Find("jan"); ok {
		t.Error("child of a match must not be revealed unless it matches itself")
	}
	node, _ := got.Find("arch")
	if len(node.Children) != 0 {
		t.Errorf("arch children in filtered view = %v, want none", node.Children)
	}
}

func TestFilterKeepsDescendantWithInheritedPathMatch(t *testing.T) {
	// Without explicit paths, New derives a child's path from its ancestors'
	// names, so a child under a matching parent can match through the
	// inherited path segment. Such a child is a match in its own right and
	// stays visible.
	f := sampleForest()

	got := Filter(f, "2024")

	if _, ok := got.Find("f2"); !ok {
		t.Fatal("matched node f2 missing from filtered forest")
	}
	if _, ok := got.Find("f3"); !ok {
		t.Error("f3 matches via its derived path and must be kept")
	}
}

func TestFilterMatchesPathCaseInsensitive(t *testing.T) {
	f := New([]NodeRecord{
		{
			ID: "v", Name: "Vault", Path: "Corp/Vault",
			Children: []NodeRecord{
				{ID: "n", Name: "Notes", Path: "Corp/Vault/Notes"},
			},
		},
	})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "lowercase query against mixed-case name", query: "vault", want: []string{"v", "n"}},
		{name: "path segment match", query: "corp/", want: []string{"v", "n"}},
		{name: "uppercase query", query: "NOTES", want: []string{"n", "v"}},
		{name: "no match", query: "missing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(f, tt.query)
			for _, id := range tt.want {
				if _, ok := got.Find(id); !ok {
					t.Errorf("Filter(%q) missing %q", tt.query, id)
				}
			}
			if got.Len() != len(tt.want) {
				t.Errorf("Filter(%q) kept %d nodes, want %d", tt.query, got.Len(), len(tt.want))
			}
		})
	}
}

func TestFilterPreservesSiblingOrder(t *testing.T) {
	f := New([]NodeRecord{
		{
			ID: "r", Name: "Archive",
			Children: []NodeRecord{
				{ID: "s1", Name: "Q1 report"},
				{ID: "s2", Name: "summary"},
				{ID: "s3", Name: "Q3 report"},
			},
		},
	})

	got := Filter(f, "report")

	node, ok := got.Find("r")
	if !ok {
		t.Fatal("ancestor r missing")
	}
	want := []string{"s1", "s3"}
	if !reflect.DeepEqual(node.Children, want) {
		t.Errorf("kept children = %v, want %v (original order)", node.Children, want)
	}
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	f := sampleForest()
	before := f.DescendantIDs("c1")

	Filter(f, "2024")

	if got := f.DescendantIDs("c1"); !reflect.DeepEqual(got, before) {
		t.Errorf("source forest changed by Filter: %v vs %v", got, before)
	}
	node, _ := f.Find("f2")
	if len(node.Children) != 1 {
		t.Errorf("f2 children mutated: %v", node.Children)
	}
}
