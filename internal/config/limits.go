package config

const (
	// MaxConnectorIDLength is the maximum length for connector identifiers.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxConnectorIDLength = 255

	// MaxNodeNameLength is the maximum length for a node display name.
	MaxNodeNameLength = 255

	// MaxNodePathLength is the maximum length for a node's slash-delimited
	// path. Set to 1000; connector listings deeper than that indicate a
	// malformed export.
	MaxNodePathLength = 1000

	// MaxSnapshotNodes caps the node count of one ingested listing. The
	// picker renders trees interactively, so listings beyond this are
	// rejected at ingest rather than streamed.
	MaxSnapshotNodes = 50000

	// MaxSnapshotDepth caps nesting depth of an ingested listing. Also the
	// bound the ingest validator uses to cut off runaway recursion.
	MaxSnapshotDepth = 64

	// MaxQueryLength is the maximum length of a search query string.
	MaxQueryLength = 255
)
