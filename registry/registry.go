// Package registry keeps the named schema models of an application.
//
// Schemas are loaded from an fs.FS: every *.json, *.yaml and *.yml file of a
// directory becomes one model, named by its "$id" or else by its file name
// without extension. YAML files may hold several documents; each of them
// must then carry an "$id". Default returns a registry with the bundled
// client, user, profile, credentials and token schemas.
package registry

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/reoring/schemamodel"
	"github.com/reoring/schemamodel/jsonschema"
)

//go:embed schemas
var bundled embed.FS

// BundledDir is the directory of the bundled schemas inside Bundled().
const BundledDir = "schemas"

// Bundled returns the file system holding the bundled schemas.
func Bundled() fs.FS { return bundled }

// ErrNotFound is returned for unknown schema names.
var ErrNotFound = errors.New("registry: schema not found")

// Registry maps schema names to models. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*schemamodel.Model
	opts   []schemamodel.Option
	log    *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithModelOptions passes opts to every model the registry builds.
func WithModelOptions(opts ...schemamodel.Option) Option {
	return func(r *Registry) { r.opts = append(r.opts, opts...) }
}

// WithLogger sets the registry logger. It is also handed to the models unless
// WithModelOptions sets another one.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		models: map[string]*schemamodel.Model{},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.opts = append([]schemamodel.Option{schemamodel.WithLogger(r.log)}, r.opts...)
	return r
}

// Default returns a registry loaded with the bundled schemas.
func Default(opts ...Option) (*Registry, error) {
	r := New(opts...)
	if err := r.LoadFS(bundled, BundledDir); err != nil {
		return nil, err
	}
	return r, nil
}

// Register builds a model for schema and stores it under name, replacing any
// previous model of that name.
func (r *Registry) Register(name string, schema any) error {
	if name == "" {
		return errors.New("registry: schema name cannot be empty")
	}
	m, err := schemamodel.New(schema, r.opts...)
	if err != nil {
		return fmt.Errorf("registry: %s: %w", name, err)
	}
	r.mu.Lock()
	r.models[name] = m
	r.mu.Unlock()
	r.log.Debug("schema registered", "name", name)
	return nil
}

// LoadFS registers every schema file found directly in dir.
func (r *Registry) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		file := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("registry: %w", err)
		}
		docs, err := decodeFile(data, ext)
		if err != nil {
			return fmt.Errorf("registry: %s: %w", file, err)
		}
		stem := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		for i, doc := range docs {
			name := schemaID(doc)
			if name == "" {
				if len(docs) > 1 {
					return fmt.Errorf("registry: %s: document %d has no $id", file, i)
				}
				name = stem
			}
			if err := r.Register(name, doc); err != nil {
				return err
			}
		}
		r.log.Debug("schema file loaded", "file", file, "documents", len(docs))
	}
	return nil
}

// LoadDir is LoadFS over a directory on disk.
func (r *Registry) LoadDir(dir string) error {
	return r.LoadFS(os.DirFS(dir), ".")
}

// Model returns the model registered under name.
func (r *Registry) Model(name string) (*schemamodel.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m, nil
}

// Names lists the registered schema names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.models)
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func decodeFile(data []byte, ext string) ([]any, error) {
	if ext == ".json" {
		doc, err := jsonschema.Decode(data)
		if err != nil {
			return nil, err
		}
		return []any{doc}, nil
	}
	docs, err := jsonschema.NewYAMLReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New("no yaml documents")
	}
	return docs, nil
}

func schemaID(doc any) string {
	o, _ := doc.(*jsonschema.Object)
	return o.String("$id")
}
