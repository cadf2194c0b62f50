package tester

import "strings"

type LinkOp int

const (
	LinkApply LinkOp = iota
	LinkRemove
	LinkAdd
)

// LinkEdit is one change to an animation's link list. Index addresses the
// row for apply and remove; Text is the new destination for apply and add.
type LinkEdit struct {
	Op    LinkOp
	Index int
	Text  string
}

// ApplyLinkEdits applies edits to a working copy of links in order. It
// reports whether anything changed; when nothing did the caller leaves the
// stored list alone.
func ApplyLinkEdits(links []string, edits []LinkEdit) ([]string, bool) {
	out := append([]string(nil), links...)
	changed := false
	for _, e := range edits {
		text := strings.TrimSpace(e.Text)
		switch e.Op {
		case LinkApply:
			if e.Index < 0 || e.Index >= len(out) || text == "" || out[e.Index] == text {
				continue
			}
			out[e.Index] = text
			changed = true
		case LinkRemove:
			if e.Index < 0 || e.Index >= len(out) {
				continue
			}
			out = append(out[:e.Index], out[e.Index+1:]...)
			changed = true
		case LinkAdd:
			if text == "" {
				continue
			}
			out = append(out, text)
			changed = true
		}
	}
	return out, changed
}
