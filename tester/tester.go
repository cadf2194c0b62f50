package tester

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/animtester/config"
	"github.com/milk9111/animtester/engine"
)

// DefaultObjectName is the config section the edited object is created from.
const DefaultObjectName = "Character"

var ErrNoObject = errors.New("tester: no edited object")

// Options configures a Tester.
type Options struct {
	ObjectName string
	// RestoreTarget re-applies the target animation after a reload. When
	// false only the current animation and its time are carried over.
	RestoreTarget bool
}

// Archiver keeps a copy of a file before it is overwritten.
type Archiver interface {
	Archive(path string) error
}

// Carry is the animation state carried across a reload.
type Carry struct {
	Current string
	Target  string
	Time    float64
}

func Capture(in *engine.Instance) Carry {
	return Carry{
		Current: in.CurrentAnim(),
		Target:  in.TargetAnim(),
		Time:    in.AnimTime(),
	}
}

// Apply restores c on in: current animation, then target, then time.
func (c Carry) Apply(in *engine.Instance, restoreTarget bool) {
	if c.Current != "" && !in.SetCurrentAnim(c.Current) {
		log.Printf("tester: animation %q no longer exists, keeping %q", c.Current, in.CurrentAnim())
		return
	}
	if restoreTarget && c.Target != "" && !in.SetTargetAnim(c.Target) {
		log.Printf("tester: target animation %q no longer exists", c.Target)
	}
	in.SetAnimTime(c.Time)
}

// Tester owns the edited object and drives its reload and save cycle.
type Tester struct {
	world *engine.World
	store *config.Store
	opts  Options

	obj      engine.Object
	reloads  int
	archiver Archiver
}

// New creates the edited object from opts.ObjectName.
func New(world *engine.World, opts Options) (*Tester, error) {
	if opts.ObjectName == "" {
		opts.ObjectName = DefaultObjectName
	}
	t := &Tester{world: world, store: world.Store(), opts: opts}
	obj, err := world.CreateFromConfig(opts.ObjectName)
	if err != nil {
		return nil, fmt.Errorf("tester: %w", err)
	}
	t.obj = obj
	return t, nil
}

// SetArchiver makes saves archive the previous file content first.
func (t *Tester) SetArchiver(a Archiver) {
	t.archiver = a
}

func (t *Tester) Store() *config.Store { return t.store }

func (t *Tester) Object() engine.Object { return t.obj }

// Instance returns the live edited object.
func (t *Tester) Instance() (*engine.Instance, error) {
	if !t.obj.Valid() {
		return nil, ErrNoObject
	}
	return t.world.Object(t.obj)
}

// Reloads returns how many times the object was rebuilt.
func (t *Tester) Reloads() int { return t.reloads }

// AnimSet returns the config accessor for the edited object's animation set.
func (t *Tester) AnimSet() (config.AnimSet, error) {
	in, err := t.Instance()
	if err != nil {
		return config.AnimSet{}, err
	}
	return t.store.AnimSet(in.AnimSet().Name), nil
}

// BeginFrame runs at the top of every frame: a dirty frame rebuilds the
// object once, then a pending save is written.
func (t *Tester) BeginFrame(f *Frame) error {
	var errs []error
	if f.Dirty() {
		f.state = StateReloading
		if err := t.Reload(); err != nil {
			errs = append(errs, err)
		}
		if f.state == StateReloading {
			f.state = StateClean
		}
	}
	if path, ok := f.PendingSave(); ok {
		f.savePath = ""
		if err := t.Save(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EndFrame commits the link edits queued during the frame. Lists are only
// rewritten when an edit changed them.
func (t *Tester) EndFrame(f *Frame) {
	edits := f.takeLinkEdits()
	if len(edits) == 0 {
		return
	}
	set, err := t.AnimSet()
	if err != nil {
		log.Printf("tester: commit links: %v", err)
		return
	}

	var order []string
	byAnim := make(map[string][]LinkEdit)
	for _, q := range edits {
		if _, ok := byAnim[q.anim]; !ok {
			order = append(order, q.anim)
		}
		byAnim[q.anim] = append(byAnim[q.anim], q.edit)
	}
	for _, anim := range order {
		links, changed := ApplyLinkEdits(set.Links(anim), byAnim[anim])
		if !changed {
			continue
		}
		set.SetLinks(anim, links)
		f.MarkDirty()
	}
}

// Reload destroys the edited object and recreates it from config, carrying
// over its animation state.
func (t *Tester) Reload() error {
	var carry *Carry
	if in, err := t.Instance(); err == nil {
		c := Capture(in)
		carry = &c
		t.world.Delete(t.obj)
	}
	t.obj = engine.Object{}

	obj, err := t.world.CreateFromConfig(t.opts.ObjectName)
	if err != nil {
		return fmt.Errorf("tester: reload: %w", err)
	}
	t.obj = obj
	t.reloads++

	if carry != nil {
		in, err := t.world.Object(obj)
		if err != nil {
			return fmt.Errorf("tester: reload: %w", err)
		}
		carry.Apply(in, t.opts.RestoreTarget)
	}
	return nil
}

// SaveSections returns the sections a save writes: the animation set's
// section and one section per animation, sorted.
func (t *Tester) SaveSections() ([]string, error) {
	set, err := t.AnimSet()
	if err != nil {
		return nil, err
	}

	collected := map[string]struct{}{set.Name(): {}}
	for _, anim := range set.AnimNames() {
		if set.Collides(anim) {
			log.Printf("tester: section %s of animation %s collides with another section", set.AnimSectionName(anim), anim)
		}
		collected[set.AnimSectionName(anim)] = struct{}{}
	}

	names := make([]string, 0, len(collected))
	for n := range collected {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Save writes the edited object's sections to path, leaving other sections
// of the file untouched.
func (t *Tester) Save(path string) error {
	names, err := t.SaveSections()
	if err != nil {
		return fmt.Errorf("tester: save %s: %w", path, err)
	}
	collected := make(map[string]struct{}, len(names))
	for _, n := range names {
		collected[n] = struct{}{}
	}

	if t.archiver != nil {
		if err := t.archiver.Archive(path); err != nil {
			return fmt.Errorf("tester: save %s: %w", path, err)
		}
	}
	err = t.store.Save(path, false, func(section, _ string) bool {
		_, ok := collected[section]
		return ok
	})
	if err != nil {
		return fmt.Errorf("tester: save %s: %w", path, err)
	}
	log.Printf("tester: saved %d sections to %s", len(names), path)
	return nil
}

// SavePath returns where the animation set is saved: the file its section
// came from, else the first loaded file.
func (t *Tester) SavePath() (string, error) {
	set, err := t.AnimSet()
	if err != nil {
		return "", err
	}
	if p := t.store.Origin(set.Name()); p != "" {
		return p, nil
	}
	if paths := t.store.Paths(); len(paths) > 0 {
		return paths[0], nil
	}
	return "", fmt.Errorf("tester: no file to save %s to", set.Name())
}

// CopyText renders the sections a save would write.
func (t *Tester) CopyText() (string, error) {
	names, err := t.SaveSections()
	if err != nil {
		return "", err
	}
	return t.store.SectionText(names...)
}
