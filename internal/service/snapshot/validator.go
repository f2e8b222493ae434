package snapshot

import (
	"fmt"

	"arbor/internal/config"
	"arbor/internal/connectors"
	"arbor/internal/forest"
)

// structuralIssue is one defect found in an ingested listing.
type structuralIssue struct {
	NodeID string
	Reason string
}

func (i structuralIssue) String() string {
	if i.NodeID == "" {
		return i.Reason
	}
	return fmt.Sprintf("node %q: %s", i.NodeID, i.Reason)
}

// validateStructure walks a listing and collects structural defects:
// missing ids or names, duplicate ids, unknown kinds for the connector
// type, over-long fields, excessive depth or node count. The engine itself
// tolerates malformed forests; rejecting them here keeps bad listings out
// of the store entirely.
func validateStructure(spec *connectors.ConnectorSpec, roots []forest.NodeRecord) []structuralIssue {
	maxDepth := config.MaxSnapshotDepth
	if spec.MaxDepth > 0 && spec.MaxDepth < maxDepth {
		maxDepth = spec.MaxDepth
	}

	var issues []structuralIssue
	seen := make(map[string]bool)
	total := 0

	var walk func(rec *forest.NodeRecord, depth int)
	walk = func(rec *forest.NodeRecord, depth int) {
		total++
		if total > config.MaxSnapshotNodes {
			return
		}
		if depth > maxDepth {
			issues = append(issues, structuralIssue{NodeID: rec.ID,
				Reason: fmt.Sprintf("exceeds maximum depth %d", maxDepth)})
			return
		}

		switch {
		case rec.ID == "":
			issues = append(issues, structuralIssue{Reason: "missing id"})
		case seen[rec.ID]:
			issues = append(issues, structuralIssue{NodeID: rec.ID, Reason: "duplicate id"})
		default:
			seen[rec.ID] = true
		}

		if rec.Name == "" {
			issues = append(issues, structuralIssue{NodeID: rec.ID, Reason: "missing name"})
		} else if len(rec.Name) > config.MaxNodeNameLength {
			issues = append(issues, structuralIssue{NodeID: rec.ID, Reason: "name too long"})
		}
		if len(rec.Path) > config.MaxNodePathLength {
			issues = append(issues, structuralIssue{NodeID: rec.ID, Reason: "path too long"})
		}
		if rec.Kind != "" && !spec.KnownKind(string(rec.Kind)) {
			issues = append(issues, structuralIssue{NodeID: rec.ID,
				Reason: fmt.Sprintf("kind %q not defined for connector type %q", rec.Kind, spec.Type)})
		}
		if rec.DocumentCount != nil && *rec.DocumentCount < 0 {
			issues = append(issues, structuralIssue{NodeID: rec.ID, Reason: "negative document count"})
		}

		for i := range rec.Children {
			walk(&rec.Children[i], depth+1)
		}
	}

	for i := range roots {
		walk(&roots[i], 1)
	}

	if total > config.MaxSnapshotNodes {
		issues = append(issues, structuralIssue{
			Reason: fmt.Sprintf("listing has more than %d nodes", config.MaxSnapshotNodes)})
	}
	return issues
}

// countNodes returns the total node count of a listing.
func countNodes(roots []forest.NodeRecord) int {
	count := 0
	var walk func(recs []forest.NodeRecord)
	walk = func(recs []forest.NodeRecord) {
		for i := range recs {
			count++
			walk(recs[i].Children)
		}
	}
	walk(roots)
	return count
}
