package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

var (
	ErrSectionNotFound       = errors.New("config: section not found")
	ErrEncryptionUnsupported = errors.New("config: encrypted save is not supported")
)

const (
	// ListSeparator splits list values: `Idle-> = Idle # Run`.
	ListSeparator = "#"

	parentSeparator = "@"
	maxParentDepth  = 16
)

// Lists use '#' so inline comments must stay off; full-line ';' and '#'
// comments are still skipped by the parser.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment:      true,
	SkipUnrecognizableLines:  true,
	KeyValueDelimiters:       "=",
	KeyValueDelimiterOnWrite: "=",
}

// Filter decides whether a key of a section is written by Save.
type Filter func(section, key string) bool

// Store is an in-memory view of one or more config files merged together.
// Sections are addressed by their logical name; a section declared as
// [Child@Parent] is addressed as "Child" and inherits absent keys from Parent.
type Store struct {
	paths  []string
	file   *ini.File
	origin map[string]string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		file:   ini.Empty(loadOptions),
		origin: make(map[string]string),
	}
}

// Load reads and merges the given files. Later files override keys of earlier
// ones.
func Load(paths ...string) (*Store, error) {
	s := New()
	if err := s.load(paths); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every file the store was loaded from, discarding in-memory
// edits.
func (s *Store) Reload() error {
	return s.load(s.paths)
}

func (s *Store) load(paths []string) error {
	if len(paths) == 0 {
		s.file = ini.Empty(loadOptions)
		s.origin = make(map[string]string)
		s.paths = nil
		return nil
	}

	origin := make(map[string]string)
	for _, p := range paths {
		f, err := ini.LoadSources(loadOptions, p)
		if err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
		for _, sec := range f.Sections() {
			if sec.Name() == ini.DefaultSection {
				continue
			}
			origin[logicalName(sec.Name())] = p
		}
	}

	others := make([]any, 0, len(paths)-1)
	for _, p := range paths[1:] {
		others = append(others, p)
	}
	merged, err := ini.LoadSources(loadOptions, paths[0], others...)
	if err != nil {
		return fmt.Errorf("config: merge %s: %w", strings.Join(paths, ", "), err)
	}

	s.file = merged
	s.origin = origin
	s.paths = append([]string(nil), paths...)
	return nil
}

// Paths returns the files the store was loaded from.
func (s *Store) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Origin returns the file a section was loaded from, or "" for sections that
// only exist in memory.
func (s *Store) Origin(section string) string {
	return s.origin[section]
}

// HasSection reports whether a section exists.
func (s *Store) HasSection(name string) bool {
	return findSection(s.file, name) != nil
}

// Sections returns the logical names of all sections, sorted.
func (s *Store) Sections() []string {
	var names []string
	for _, sec := range s.file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, logicalName(sec.Name()))
	}
	sort.Strings(names)
	return names
}

// Section returns an accessor scoped to the named section. The section does
// not need to exist; reads yield zero values and the first write creates it.
func (s *Store) Section(name string) Section {
	return Section{store: s, name: name}
}

// Save writes every key accepted by filter into path. Sections and keys
// already present in path that the filter does not accept are preserved.
func (s *Store) Save(path string, encrypt bool, filter Filter) error {
	if encrypt {
		return ErrEncryptionUnsupported
	}
	if filter == nil {
		filter = func(string, string) bool { return true }
	}

	out := ini.Empty(loadOptions)
	if _, err := os.Stat(path); err == nil {
		loaded, err := ini.LoadSources(loadOptions, path)
		if err != nil {
			return fmt.Errorf("config: save %s: %w", path, err)
		}
		out = loaded
	}

	written := copySections(s.file, out, filter)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: save %s: %w", path, err)
		}
	}
	if err := out.SaveTo(path); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}

	for _, name := range written {
		if _, ok := s.origin[name]; !ok {
			s.origin[name] = path
		}
	}
	return nil
}

// SectionText renders the named sections in config file syntax.
func (s *Store) SectionText(names ...string) (string, error) {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := ini.Empty(loadOptions)
	copySections(s.file, out, func(section, _ string) bool {
		_, ok := want[section]
		return ok
	})

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("config: render sections: %w", err)
	}
	return buf.String(), nil
}

// copySections mirrors accepted keys of src into dst and returns the logical
// names of the sections it touched. Accepted keys missing from src are removed
// from dst so cleared values stay cleared on disk.
func copySections(src, dst *ini.File, filter Filter) []string {
	var touched []string
	for _, sec := range src.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		name := logicalName(sec.Name())

		var keys []*ini.Key
		for _, k := range sec.Keys() {
			if filter(name, k.Name()) {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 && !filter(name, "") {
			continue
		}

		target := findSection(dst, name)
		if target == nil {
			var err error
			target, err = dst.NewSection(sec.Name())
			if err != nil {
				continue
			}
		}
		for _, k := range target.Keys() {
			if filter(name, k.Name()) && !sec.HasKey(k.Name()) {
				target.DeleteKey(k.Name())
			}
		}
		for _, k := range keys {
			_, _ = target.NewKey(k.Name(), k.Value())
		}
		touched = append(touched, name)
	}
	return touched
}

func findSection(f *ini.File, name string) *ini.Section {
	if f == nil || name == "" {
		return nil
	}
	if sec, err := f.GetSection(name); err == nil {
		return sec
	}
	for _, sec := range f.Sections() {
		if logicalName(sec.Name()) == name {
			return sec
		}
	}
	return nil
}

func logicalName(raw string) string {
	name, _, _ := strings.Cut(raw, parentSeparator)
	return strings.TrimSpace(name)
}

func parentName(raw string) string {
	_, parent, ok := strings.Cut(raw, parentSeparator)
	if !ok {
		return ""
	}
	return strings.TrimSpace(parent)
}

// Section is a scoped accessor over one config section.
type Section struct {
	store *Store
	name  string
}

// Name returns the logical section name.
func (sec Section) Name() string {
	return sec.name
}

// Exists reports whether the section is present in the store.
func (sec Section) Exists() bool {
	return sec.raw() != nil
}

func (sec Section) raw() *ini.Section {
	if sec.store == nil {
		return nil
	}
	return findSection(sec.store.file, sec.name)
}

func (sec Section) ensure() *ini.Section {
	if raw := sec.raw(); raw != nil {
		return raw
	}
	raw, err := sec.store.file.NewSection(sec.name)
	if err != nil {
		return nil
	}
	return raw
}

// lookup finds key in the section or, failing that, along its parent chain.
func (sec Section) lookup(key string) (*ini.Key, bool) {
	raw := sec.raw()
	for depth := 0; raw != nil && depth < maxParentDepth; depth++ {
		if raw.HasKey(key) {
			k, err := raw.GetKey(key)
			if err == nil {
				return k, true
			}
		}
		parent := parentName(raw.Name())
		if parent == "" {
			break
		}
		raw = findSection(sec.store.file, parent)
	}
	return nil, false
}

// Has reports whether key resolves in the section or its parents.
func (sec Section) Has(key string) bool {
	_, ok := sec.lookup(key)
	return ok
}

// HasOwn reports whether key is declared directly in the section.
func (sec Section) HasOwn(key string) bool {
	raw := sec.raw()
	return raw != nil && raw.HasKey(key)
}

// Keys returns the keys declared directly in the section, in file order.
func (sec Section) Keys() []string {
	raw := sec.raw()
	if raw == nil {
		return nil
	}
	return raw.KeyStrings()
}

func (sec Section) String(key string) string {
	k, ok := sec.lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(k.Value())
}

func (sec Section) U32(key string) uint32 {
	v, err := strconv.ParseUint(sec.String(key), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

func (sec Section) Float(key string) float64 {
	v, err := strconv.ParseFloat(sec.String(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func (sec Section) Vector(key string) Vector {
	v, _ := ParseVector(sec.String(key))
	return v
}

// List returns the entries of a list value. Empty entries are dropped, so an
// absent or cleared key yields an empty list.
func (sec Section) List(key string) []string {
	return splitList(sec.String(key))
}

func (sec Section) ListCount(key string) int {
	return len(sec.List(key))
}

func (sec Section) SetString(key, value string) {
	raw := sec.ensure()
	if raw == nil {
		return
	}
	_, _ = raw.NewKey(key, value)
}

func (sec Section) SetU32(key string, value uint32) {
	sec.SetString(key, strconv.FormatUint(uint64(value), 10))
}

func (sec Section) SetFloat(key string, value float64) {
	sec.SetString(key, formatFloat(value))
}

func (sec Section) SetVector(key string, value Vector) {
	sec.SetString(key, value.String())
}

// SetList replaces a list value. An empty list clears the key.
func (sec Section) SetList(key string, values []string) {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		sec.Clear(key)
		return
	}
	sec.SetString(key, strings.Join(clean, " "+ListSeparator+" "))
}

// AppendList appends entries to a list value, creating it if absent.
func (sec Section) AppendList(key string, values ...string) {
	sec.SetList(key, append(sec.List(key), values...))
}

// Clear removes key from the section. Inherited values are not affected.
func (sec Section) Clear(key string) {
	if raw := sec.raw(); raw != nil {
		raw.DeleteKey(key)
	}
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ListSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
