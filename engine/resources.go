package engine

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultStorage is the resource directory registered when no other is given.
const DefaultStorage = "../data/config"

var ErrResourceNotFound = errors.New("engine: resource not found")

// Resources locates files in registered storage directories and caches
// decoded textures.
type Resources struct {
	storages []string
	textures map[string]*Texture
}

func NewResources() *Resources {
	return &Resources{textures: make(map[string]*Texture)}
}

// Bootstrap registers the storage directories searched for resources, in
// order. Without any, DefaultStorage is used.
func Bootstrap(storages ...string) (*Resources, error) {
	if len(storages) == 0 {
		storages = []string{DefaultStorage}
	}
	r := NewResources()
	for _, s := range storages {
		if err := r.AddStorage(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// AddStorage appends a directory to the search path.
func (r *Resources) AddStorage(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("engine: add storage %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("engine: add storage %s: not a directory", dir)
	}
	r.storages = append(r.storages, dir)
	return nil
}

func (r *Resources) Storages() []string {
	return append([]string(nil), r.storages...)
}

// Locate resolves name against the storages. Absolute names are returned
// as is when they exist.
func (r *Resources) Locate(name string) (string, error) {
	if name == "" {
		return "", ErrResourceNotFound
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("engine: locate %s: %w", name, ErrResourceNotFound)
		}
		return name, nil
	}
	for _, dir := range r.storages {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("engine: locate %s: %w", name, ErrResourceNotFound)
}

// Texture returns the named texture, decoding it on first use.
func (r *Resources) Texture(name string) (*Texture, error) {
	if t, ok := r.textures[name]; ok {
		return t, nil
	}
	path, err := r.Locate(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("engine: texture %s: %w", name, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("engine: texture %s: %w", name, err)
	}
	b := src.Bounds()
	t := &Texture{Name: name, Path: path, Width: b.Dx(), Height: b.Dy(), src: src}
	r.textures[name] = t
	return t, nil
}

// Invalidate drops every cached texture so the next lookup re-reads it.
func (r *Resources) Invalidate() {
	for k, t := range r.textures {
		if t.img != nil {
			t.img.Deallocate()
		}
		delete(r.textures, k)
	}
}

// Texture is a decoded image uploaded to the GPU on first draw.
type Texture struct {
	Name   string
	Path   string
	Width  int
	Height int

	src image.Image
	img *ebiten.Image
}

func (t *Texture) Image() *ebiten.Image {
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}

// Size returns the texture dimensions.
func (t *Texture) Size() (int, int) {
	return t.Width, t.Height
}
