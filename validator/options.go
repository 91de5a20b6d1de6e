package validator

import "github.com/reoring/schemamodel/i18n"

const (
	// DefaultAllErrors collects every violation instead of stopping at the first.
	DefaultAllErrors = true
	// DefaultUseDefaults fills schema defaults into absent properties.
	DefaultUseDefaults = true
	// DefaultRemoveAdditional strips properties rejected by additionalProperties: false.
	DefaultRemoveAdditional = true
)

// Variant selects the JSON shape of an EntityValidationError.
type Variant int

const (
	// VariantEntity encodes errors as {message, <field>: message} keyed by
	// top-level entity property.
	VariantEntity Variant = iota
	// VariantSchema encodes errors as the raw detail list.
	VariantSchema
)

// FormatFunc reports whether s conforms to a named "format".
type FormatFunc func(s string) bool

// Options configures validators. Type coercion is always on in "array" mode
// and cannot be configured.
type Options struct {
	AllErrors        bool
	UseDefaults      bool
	RemoveAdditional bool
	Variant          Variant
	Formats          map[string]FormatFunc
	Translator       i18n.Translator
}

// DefaultOptions returns the options every Factory starts from.
func DefaultOptions() Options {
	return Options{
		AllErrors:        DefaultAllErrors,
		UseDefaults:      DefaultUseDefaults,
		RemoveAdditional: DefaultRemoveAdditional,
		Variant:          VariantEntity,
		Translator:       i18n.Default(),
	}
}

// Option mutates Options during construction.
type Option func(*Options)

// WithAllErrors sets AllErrors.
func WithAllErrors(all bool) Option {
	return func(o *Options) { o.AllErrors = all }
}

// WithUseDefaults sets UseDefaults.
func WithUseDefaults(use bool) Option {
	return func(o *Options) { o.UseDefaults = use }
}

// WithRemoveAdditional sets RemoveAdditional.
func WithRemoveAdditional(remove bool) Option {
	return func(o *Options) { o.RemoveAdditional = remove }
}

// WithVariant selects the error encoding.
func WithVariant(v Variant) Option {
	return func(o *Options) { o.Variant = v }
}

// WithFormat registers (or replaces) a named format check.
func WithFormat(name string, fn FormatFunc) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		formats := make(map[string]FormatFunc, len(o.Formats)+1)
		for k, v := range o.Formats {
			formats[k] = v
		}
		formats[name] = fn
		o.Formats = formats
	}
}

// WithTranslator replaces the message Translator; nil restores English.
func WithTranslator(tr i18n.Translator) Option {
	return func(o *Options) {
		if tr == nil {
			tr = i18n.Default()
		}
		o.Translator = tr
	}
}

// WithLanguage selects a built-in message dictionary ("en" or "ja").
func WithLanguage(lang string) Option {
	return func(o *Options) { o.Translator = i18n.Dictionary(lang) }
}

func buildOptions(base Options, opts []Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&base)
		}
	}
	if base.Translator == nil {
		base.Translator = i18n.Default()
	}
	return base
}
