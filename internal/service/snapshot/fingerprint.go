package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"arbor/internal/forest"
)

// Fingerprint computes a stable xxhash over a node listing. Two listings
// with the same ids, names, kinds, paths, counts and ordering produce the
// same fingerprint, so a changed connector listing is detectable without
// diffing trees.
func Fingerprint(roots []forest.NodeRecord) string {
	h := xxhash.New()
	for i := range roots {
		hashRecord(h, &roots[i])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// hashRecord feeds one record and its subtree into the hash. Fields are
// length-prefixed so adjacent values cannot collide by concatenation.
func hashRecord(h *xxhash.Digest, rec *forest.NodeRecord) {
	writeField(h, rec.ID)
	writeField(h, rec.Name)
	writeField(h, string(rec.Kind))
	writeField(h, rec.Path)
	if rec.DocumentCount != nil {
		writeField(h, fmt.Sprintf("#%d", *rec.DocumentCount))
	} else {
		writeField(h, "-")
	}
	for i := range rec.Children {
		hashRecord(h, &rec.Children[i])
	}
	// Subtree terminator keeps (a(b),c) distinct from (a(b,c))
	writeField(h, "/")
}

func writeField(w io.Writer, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	w.Write(buf[:])
	io.WriteString(w, s)
}
