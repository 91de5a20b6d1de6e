package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	"github.com/reoring/schemamodel"
	"github.com/reoring/schemamodel/registry"
	"github.com/reoring/schemamodel/validator"
)

const (
	envDir  = "SCHEMAMODEL_DIR"
	envLang = "SCHEMAMODEL_LANG"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `schemamodel CLI

Usage:
  schemamodel list     [-dir DIR]
  schemamodel fields   -schema NAME [-field PATH] [-dir DIR]
  schemamodel props    -schema NAME -field PATH [-label TEXT] [-placeholder TEXT] [-dir DIR]
  schemamodel defaults -schema NAME [-field PATH -count N] [-dir DIR]
  schemamodel validate -schema NAME [-file ENTITY.json] [-lang en|ja] [-dir DIR]

Schemas are read from -dir (or $SCHEMAMODEL_DIR); the bundled schemas are
used when neither is set. validate reads the entity from stdin when -file is
omitted and exits with status 1 when it is invalid.`)
}

// common holds the flags every subcommand accepts.
type common struct {
	dir     string
	lang    string
	schema  string
	field   string
	verbose bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.dir, "dir", os.Getenv(envDir), "directory of schema files")
	fs.StringVar(&c.lang, "lang", os.Getenv(envLang), "validation message language (en, ja)")
	fs.StringVar(&c.schema, "schema", "", "schema name")
	fs.StringVar(&c.field, "field", "", "dotted field path")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logs")
}

func (c *common) logger(stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func (c *common) registry(log *slog.Logger) (*registry.Registry, error) {
	opts := []registry.Option{registry.WithLogger(log)}
	if c.lang != "" {
		opts = append(opts, registry.WithModelOptions(
			schemamodel.WithValidatorOptions(validator.WithLanguage(c.lang)),
		))
	}
	if c.dir == "" {
		return registry.Default(opts...)
	}
	r := registry.New(opts...)
	if err := r.LoadDir(c.dir); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *common) model(log *slog.Logger) (*schemamodel.Model, error) {
	if c.schema == "" {
		return nil, errors.New("-schema is required")
	}
	r, err := c.registry(log)
	if err != nil {
		return nil, err
	}
	return r.Model(c.schema)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	sub, args := args[0], args[1:]
	var c common
	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c.register(fs)

	var (
		label, placeholder, file string
		count                    int
	)
	switch sub {
	case "list", "fields", "defaults", "validate":
	case "props":
		fs.StringVar(&label, "label", "", "explicit label (default: derived from the field name)")
		fs.StringVar(&placeholder, "placeholder", "", "explicit placeholder")
	case "-h", "-help", "help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
	if sub == "defaults" {
		fs.IntVar(&count, "count", 0, "initial item count for array fields")
	}
	if sub == "validate" {
		fs.StringVar(&file, "file", "", "entity JSON file (default: stdin)")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := c.logger(stderr)
	var err error
	switch sub {
	case "list":
		err = listCmd(&c, log, stdout)
	case "fields":
		err = fieldsCmd(&c, log, stdout)
	case "props":
		err = propsCmd(&c, log, stdout, label, placeholder)
	case "defaults":
		err = defaultsCmd(&c, log, stdout, count)
	case "validate":
		var valid bool
		valid, err = validateCmd(&c, log, stdin, stdout, file)
		if err == nil && !valid {
			return 1
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "schemamodel %s: %v\n", sub, err)
		if schemamodel.IsSchemaError(err) {
			return 3
		}
		return 1
	}
	return 0
}

func listCmd(c *common, log *slog.Logger, stdout io.Writer) error {
	r, err := c.registry(log)
	if err != nil {
		return err
	}
	for _, name := range r.Names() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}

func fieldsCmd(c *common, log *slog.Logger, stdout io.Writer) error {
	m, err := c.model(log)
	if err != nil {
		return err
	}
	names, err := m.SubFields(c.field)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
	return nil
}

func propsCmd(c *common, log *slog.Logger, stdout io.Writer, label, placeholder string) error {
	if c.field == "" {
		return errors.New("-field is required")
	}
	m, err := c.model(log)
	if err != nil {
		return err
	}
	var opts schemamodel.PropsOptions
	if label != "" {
		opts.Label = schemamodel.Text(label)
	}
	if placeholder != "" {
		opts.Placeholder = schemamodel.Text(placeholder)
	}
	p, err := m.Props(c.field, opts)
	if err != nil {
		return err
	}
	kind, err := m.Type(c.field)
	if err != nil {
		return err
	}
	out := map[string]any{
		"type":          kind.String(),
		"allowedValues": p.AllowedValues,
		"decimal":       p.Decimal,
		"label":         p.Label,
		"placeholder":   p.Placeholder,
		"required":      p.Required,
	}
	if p.Transform != nil {
		texts := make(map[string]string, len(p.AllowedValues))
		for _, v := range p.AllowedValues {
			texts[fmt.Sprint(v)] = p.Transform(v)
		}
		out["options"] = texts
	}
	return writeJSON(stdout, out)
}

func defaultsCmd(c *common, log *slog.Logger, stdout io.Writer, count int) error {
	m, err := c.model(log)
	if err != nil {
		return err
	}
	if c.field == "" {
		return writeJSON(stdout, m.Entity())
	}
	v, err := m.InitialValue(c.field, schemamodel.InitialOptions{InitialCount: count})
	if err != nil {
		return err
	}
	return writeJSON(stdout, v)
}

// validateCmd prints the normalized entity, or the encoded validation error,
// and reports whether the entity was valid.
func validateCmd(c *common, log *slog.Logger, stdin io.Reader, stdout io.Writer, file string) (bool, error) {
	m, err := c.model(log)
	if err != nil {
		return false, err
	}
	var data []byte
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return false, err
	}
	var entity any
	if err := json.Unmarshal(data, &entity); err != nil {
		return false, fmt.Errorf("decode entity: %w", err)
	}
	out, err := m.Validate(entity)
	if ve, ok := validator.AsEntityError(err); ok {
		log.Debug("entity rejected", "schema", c.schema, "details", len(ve.Details))
		return false, writeJSON(stdout, ve)
	}
	if err != nil {
		return false, err
	}
	return true, writeJSON(stdout, out)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
