package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	playground "github.com/go-playground/validator/v10"

	"github.com/reoring/schemamodel/jsonschema"
)

// Factory compiles validators sharing one set of options and custom keywords.
// Build one at application start and pass it to whatever needs validators.
type Factory struct {
	mu       sync.RWMutex
	opts     Options
	keywords []Keyword
	tags     *playground.Validate
}

// NewFactory returns a Factory seeded with DefaultOptions, the given overrides
// and the built-in custom keywords.
func NewFactory(opts ...Option) *Factory {
	return &Factory{
		opts:     buildOptions(DefaultOptions(), opts),
		keywords: builtinKeywords(),
		tags:     playground.New(),
	}
}

// Options returns the factory's options.
func (f *Factory) Options() Options {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts
}

// AddKeyword registers a custom keyword for validators compiled afterwards.
func (f *Factory) AddKeyword(k Keyword) error {
	if k.Name == "" {
		return errors.New("validator: keyword name must not be empty")
	}
	if k.Validate == nil {
		return fmt.Errorf("validator: keyword %q has no Validate func", k.Name)
	}
	if reservedKeywords[k.Name] {
		return fmt.Errorf("validator: keyword %q is reserved", k.Name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.keywords {
		if existing.Name == k.Name {
			return fmt.Errorf("validator: keyword %q already registered", k.Name)
		}
	}
	f.keywords = append(f.keywords, k)
	return nil
}

// Compile checks the schema (every $ref must resolve, every pattern must
// compile) and returns a Validator. opts override the factory options for
// this validator only.
func (f *Factory) Compile(schema any, opts ...Option) (*Validator, error) {
	if schema == nil {
		return nil, errors.New("validator: nil schema")
	}
	root := jsonschema.Normalize(schema)

	f.mu.RLock()
	o := buildOptions(f.opts, opts)
	keywords := append([]Keyword(nil), f.keywords...)
	f.mu.RUnlock()

	err := jsonschema.WalkRefs(root, func(ptr, ref string) error {
		if _, err := jsonschema.Deref(jsonschema.ObjectOf("$ref", ref), root); err != nil {
			return fmt.Errorf("validator: %s: %w", ptr, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	patterns := map[string]*regexp.Regexp{}
	err = walkSubschemas(root, "#", func(node *jsonschema.Object, ptr string) error {
		if p, ok := node.Value("pattern").(string); ok {
			if err := compilePattern(patterns, p); err != nil {
				return fmt.Errorf("validator: %s/pattern: %w", ptr, err)
			}
		}
		for _, p := range node.Object("patternProperties").Keys() {
			if err := compilePattern(patterns, p); err != nil {
				return fmt.Errorf("validator: %s/patternProperties: %w", ptr, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	formats := builtinFormats(f.tags)
	for name, fn := range o.Formats {
		formats[name] = fn
	}
	return &Validator{
		root:     root,
		opts:     o,
		keywords: keywords,
		formats:  formats,
		patterns: patterns,
	}, nil
}

func compilePattern(cache map[string]*regexp.Regexp, p string) error {
	if _, ok := cache[p]; ok {
		return nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return err
	}
	cache[p] = re
	return nil
}

// walkSubschemas visits every schema node reachable through schema-valued
// keywords, without following $ref.
func walkSubschemas(node any, ptr string, fn func(*jsonschema.Object, string) error) error {
	o, ok := node.(*jsonschema.Object)
	if !ok {
		return nil
	}
	if err := fn(o, ptr); err != nil {
		return err
	}
	for _, kw := range []string{"additionalProperties", "additionalItems", "contains", "propertyNames", "not", "if", "then", "else", "items"} {
		if err := walkSubschemas(o.Value(kw), ptr+"/"+kw, fn); err != nil {
			return err
		}
	}
	for _, kw := range []string{"items", "allOf", "anyOf", "oneOf"} {
		for i, sub := range o.Array(kw) {
			if err := walkSubschemas(sub, ptr+"/"+kw+"/"+strconv.Itoa(i), fn); err != nil {
				return err
			}
		}
	}
	for _, kw := range []string{"properties", "patternProperties", "definitions", "$defs", "dependencies"} {
		var err error
		o.Object(kw).Range(func(k string, sub any) bool {
			err = walkSubschemas(sub, ptr+"/"+kw+"/"+k, fn)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
