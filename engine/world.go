package engine

import (
	"errors"
	"fmt"

	"github.com/milk9111/animtester/config"
)

var (
	ErrObjectNotAlive = errors.New("engine: object not alive")
	ErrNoAnimSet      = errors.New("engine: no animation set")
)

// World owns the objects created from config and advances their playback.
type World struct {
	store     *config.Store
	objects   objectStore
	instances SparseSet[*Instance]
}

func NewWorld(store *config.Store) *World {
	return &World{store: store}
}

func (w *World) Store() *config.Store {
	return w.store
}

// CreateFromConfig creates an object from the named section. The section
// must name an animation set; the object starts on the set's start
// animation.
func (w *World) CreateFromConfig(name string) (Object, error) {
	sec := w.store.Section(name)
	if !sec.Exists() {
		return Object{}, fmt.Errorf("engine: create %s: %w", name, config.ErrSectionNotFound)
	}
	setName := sec.String(config.KeyAnimationSet)
	if setName == "" {
		return Object{}, fmt.Errorf("engine: create %s: %w", name, ErrNoAnimSet)
	}
	set, err := LoadAnimSet(w.store, setName)
	if err != nil {
		return Object{}, fmt.Errorf("engine: create %s: %w", name, err)
	}

	in := &Instance{
		name:      name,
		set:       set,
		scale:     config.Vector{X: 1, Y: 1},
		frequency: 1,
		current:   set.Start,
	}
	if sec.Has(config.KeyScale) {
		in.scale = sec.Vector(config.KeyScale)
	}
	if sec.Has(config.KeyAnimationFrequency) {
		in.SetAnimFrequency(sec.Float(config.KeyAnimationFrequency))
	}

	o := w.objects.create()
	w.instances.Set(o.ID, in)
	return o, nil
}

// Delete destroys o. Deleting a dead handle is a no-op that returns false.
func (w *World) Delete(o Object) bool {
	if !w.objects.destroy(o) {
		return false
	}
	w.instances.Remove(o.ID)
	return true
}

func (w *World) IsAlive(o Object) bool {
	return w.objects.isAlive(o)
}

// Object resolves a handle to its live instance.
func (w *World) Object(o Object) (*Instance, error) {
	if !w.objects.isAlive(o) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotAlive, o)
	}
	in, ok := w.instances.Get(o.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotAlive, o)
	}
	return in, nil
}

// Update advances every object's playback by dt seconds.
func (w *World) Update(dt float64) {
	for _, in := range w.instances.Values() {
		in.update(dt)
	}
}

// Len returns the number of live objects.
func (w *World) Len() int {
	return w.instances.Len()
}
