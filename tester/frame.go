package tester

// State is the reload state of the edited object.
type State int

const (
	StateClean State = iota
	StateDirty
	StateReloading
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// Frame is the per-frame context threaded through the update. It is owned by
// the caller and survives across frames.
type Frame struct {
	state    State
	savePath string

	linkEdits []queuedLinkEdit
}

type queuedLinkEdit struct {
	anim string
	edit LinkEdit
}

func (f *Frame) State() State { return f.state }

func (f *Frame) Dirty() bool { return f.state == StateDirty }

// MarkDirty requests a reload at the start of the next frame. Marks raised
// while reloading are kept.
func (f *Frame) MarkDirty() {
	f.state = StateDirty
}

// RequestSave schedules a save to path on the next frame.
func (f *Frame) RequestSave(path string) {
	f.savePath = path
}

// PendingSave returns the scheduled save destination, if any.
func (f *Frame) PendingSave() (string, bool) {
	return f.savePath, f.savePath != ""
}

// QueueLinkEdit records a link edit on anim, committed at the end of the
// frame.
func (f *Frame) QueueLinkEdit(anim string, e LinkEdit) {
	f.linkEdits = append(f.linkEdits, queuedLinkEdit{anim: anim, edit: e})
}

func (f *Frame) takeLinkEdits() []queuedLinkEdit {
	edits := f.linkEdits
	f.linkEdits = nil
	return edits
}
