package layout

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and parses JSON/YAML layout files. When fsys is nil or no
// layout files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isLayoutFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("layout: read %s: %w", path, err)
		}
		return store.addDocument(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single layout file, or every layout file below a
// directory.
func LoadFile(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("layout: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	store := newStore()
	if err := store.addDocument(data, path); err != nil {
		return nil, err
	}
	return store, nil
}

// Parse parses one layout document held in memory.
func Parse(data []byte, source string) (*Store, error) {
	store := newStore()
	if err := store.addDocument(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Scope returns the definition for id.
func (s *Store) Scope(id string) (ScopeDefinition, bool) {
	if s == nil {
		return ScopeDefinition{}, false
	}
	def, ok := s.scopes[strings.TrimSpace(id)]
	return def, ok
}

// IDs lists the scope ids in load order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Empty reports whether the store holds any scopes.
func (s *Store) Empty() bool {
	return s == nil || len(s.scopes) == 0
}

// Add registers a definition built elsewhere, for example from OpenAPI.
func (s *Store) Add(def ScopeDefinition) error {
	def.ID = strings.TrimSpace(def.ID)
	if def.ID == "" {
		return fmt.Errorf("layout: source %s defines a scope without id", def.Source)
	}
	if existing, ok := s.scopes[def.ID]; ok {
		return fmt.Errorf("layout: duplicate scope %q (%s and %s)", def.ID, existing.Source, def.Source)
	}
	s.scopes[def.ID] = def
	s.order = append(s.order, def.ID)
	return nil
}

func newStore() *Store {
	return &Store{scopes: make(map[string]ScopeDefinition)}
}

func (s *Store) addDocument(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for _, def := range doc.Scopes {
		def.Source = source
		if err := s.Add(def); err != nil {
			return err
		}
	}
	s.AddValueHelp(doc.ValueHelp...)
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("layout: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("layout: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func isLayoutFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
