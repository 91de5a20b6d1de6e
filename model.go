package schemamodel

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/reoring/schemamodel/jsonschema"
	"github.com/reoring/schemamodel/validator"
)

// Model answers field questions about one schema and validates entities
// against it. Each Model owns its field cache.
type Model struct {
	schema    *jsonschema.Object
	fields    *fieldResolver
	validator *validator.Validator
	entity    any
	log       *slog.Logger
}

type config struct {
	factory *validator.Factory
	vopts   []validator.Option
	logger  *slog.Logger
}

// Option configures a Model.
type Option func(*config)

// WithFactory compiles the model's validator with f instead of a fresh
// validator.NewFactory().
func WithFactory(f *validator.Factory) Option {
	return func(c *config) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithValidatorOptions overrides the factory options for this model.
func WithValidatorOptions(opts ...validator.Option) Option {
	return func(c *config) { c.vopts = append(c.vopts, opts...) }
}

// WithErrorVariant selects how validation errors encode to JSON.
func WithErrorVariant(v validator.Variant) Option {
	return WithValidatorOptions(validator.WithVariant(v))
}

// WithLogger sets the logger used for debug output. Logs are discarded by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a Model from a decoded schema document (a *jsonschema.Object or
// a plain map[string]any tree). The validator is compiled and the default
// entity computed up front.
func New(schema any, opts ...Option) (*Model, error) {
	if schema == nil {
		return nil, errors.New("schemamodel: nil schema")
	}
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.factory == nil {
		cfg.factory = validator.NewFactory()
	}

	root, ok := jsonschema.Normalize(schema).(*jsonschema.Object)
	if !ok {
		return nil, fmt.Errorf("schemamodel: schema must be a JSON object, got %T", schema)
	}
	v, err := cfg.factory.Compile(root, cfg.vopts...)
	if err != nil {
		return nil, fmt.Errorf("schemamodel: %w", err)
	}

	m := &Model{
		schema:    root,
		fields:    newFieldResolver(root, cfg.logger),
		validator: v,
		log:       cfg.logger,
	}
	m.entity = m.defaultEntity()
	return m, nil
}

// FromJSON decodes a JSON schema document and builds a Model.
func FromJSON(data []byte, opts ...Option) (*Model, error) {
	doc, err := jsonschema.Decode(data)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// FromYAML decodes the first document of a YAML stream and builds a Model.
func FromYAML(data []byte, opts ...Option) (*Model, error) {
	doc, err := jsonschema.DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// defaultEntity validates an empty seed so that schema defaults fill it in.
// Array-rooted schemas are seeded with an empty list.
func (m *Model) defaultEntity() any {
	var seed any = map[string]any{}
	if jsonschema.TypeOf(m.schema) == "array" {
		seed = []any{}
	}
	out, err := m.validator.Validate(seed)
	if err != nil {
		m.log.Debug("default entity is not valid", "error", err)
	}
	return out
}

// Schema returns the schema document.
func (m *Model) Schema() *jsonschema.Object { return m.schema }

// Validator returns the compiled validator.
func (m *Model) Validator() *validator.Validator { return m.validator }

// Field resolves name to its definition. Results are cached per model; the
// same *Field is returned for repeated calls.
func (m *Model) Field(name string) (*Field, error) {
	return m.fields.field(name)
}

// SubFields lists the property names of the object field name ("" for the
// root). Fields of any other type have no sub fields.
func (m *Model) SubFields(name string) ([]string, error) {
	f, err := m.Field(name)
	if err != nil {
		return nil, err
	}
	if name != "" && f.Type() != "object" {
		return []string{}, nil
	}
	keys := f.Properties().Keys()
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// Entity returns the default entity. The same value is returned on every
// call; copy it before mutating if the model is reused.
func (m *Model) Entity() any { return m.entity }

// Validate normalizes and validates entity, returning the normalized value;
// use it rather than entity. The error is a *validator.EntityValidationError
// on failure.
func (m *Model) Validate(entity any) (any, error) {
	return m.validator.Validate(entity)
}

// IsValid is Validate returning the error bag; the bag is nil for a valid
// entity.
func (m *Model) IsValid(entity any) (any, validator.ErrorBag) {
	return m.validator.IsValid(entity)
}
