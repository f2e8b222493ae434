package connectors

// KindSpec describes one level of a connector's location hierarchy and how
// the wizard should label it.
type KindSpec struct {
	Kind  string `yaml:"kind" json:"kind"`
	Label string `yaml:"label" json:"label"`
	// Selectable marks kinds the picker lets users toggle directly. A
	// non-selectable kind still appears in the tree as structure.
	Selectable bool `yaml:"selectable" json:"selectable"`
}

// ConnectorSpec describes a supported document-management connector type:
// its display name and the node-kind vocabulary its listings may use.
type ConnectorSpec struct {
	Type     string     `yaml:"type" json:"type"`
	Label    string     `yaml:"label" json:"label"`
	Kinds    []KindSpec `yaml:"kinds" json:"kinds"`
	MaxDepth int        `yaml:"max_depth" json:"max_depth"`
}

// KnownKind reports whether the given kind string is part of this
// connector's vocabulary.
func (s *ConnectorSpec) KnownKind(kind string) bool {
	for _, k := range s.Kinds {
		if k.Kind == kind {
			return true
		}
	}
	return false
}
