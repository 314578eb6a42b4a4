package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	j "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/propschema"
	"github.com/reoring/propschema/codec"
	"github.com/reoring/propschema/i18n"
	zaplog "github.com/reoring/propschema/log/zap"
	"github.com/reoring/propschema/schemafile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "propschema CLI\n\nUsage:\n  propschema init    -schema s.yaml -o doc.json\n  propschema get     -schema s.yaml -doc doc.json [-format table|json]\n  propschema set     -schema s.yaml -doc doc.json -name N -value V\n  propschema check   -schema s.yaml -doc doc.json\n  propschema convert -in doc.json -out doc.cbor\n\nCommon flags:\n  -v     verbose logs\n  -lang  message language (en|ja, default $PROPSCHEMA_LANG)")
}

// errFailed signals a non-zero exit whose details were already printed.
var errFailed = errors.New("failed")

// env bundles what every subcommand needs.
type env struct {
	stdout, stderr io.Writer
	helper         *propschema.Helper
	logger         *zap.Logger

	verbose *bool
	lang    *string
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	var cmd func(*env, *flag.FlagSet, []string) error
	switch args[0] {
	case "init":
		cmd = initCmd
	case "get":
		cmd = getCmd
	case "set":
		cmd = setCmd
	case "check":
		cmd = checkCmd
	case "convert":
		cmd = convertCmd
	default:
		usage(stderr)
		return 2
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	e := &env{
		stdout:  stdout,
		stderr:  stderr,
		verbose: fs.Bool("v", false, "enable verbose logs"),
		lang:    fs.String("lang", os.Getenv("PROPSCHEMA_LANG"), "message language (en|ja)"),
	}
	err := cmd(e, fs, args[1:])
	if e.logger != nil {
		_ = e.logger.Sync()
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 2
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}

// parse parses subcommand flags and builds the logger and helper from the
// common ones.
func (e *env) parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range required {
		if f := fs.Lookup(name); f == nil || f.Value.String() == "" {
			fs.Usage()
			return fmt.Errorf("-%s is required", name)
		}
	}
	i18n.SetLanguage(*e.lang)
	logger, err := newLogger(*e.verbose)
	if err != nil {
		return err
	}
	e.logger = logger
	e.helper = propschema.New(
		propschema.WithLogger(zaplog.ZapLogger{L: logger}),
		propschema.WithIssueSink(func(it propschema.Issue) {
			fmt.Fprintln(e.stderr, "warning:", i18n.Describe(it))
		}),
	)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func initCmd(e *env, fs *flag.FlagSet, args []string) error {
	schemaPath := fs.String("schema", "", "schema definition file (yaml/json)")
	out := fs.String("o", "", "output document file; format from extension")
	if err := e.parse(fs, args, "schema", "o"); err != nil {
		return err
	}
	schema, err := schemafile.Load(*schemaPath)
	if err != nil {
		return err
	}
	doc := propschema.NewNode()
	e.helper.InitializeContent(schema, doc)
	e.logger.Debug("initialized document", zap.String("schema", *schemaPath), zap.Int("properties", schema.Len()))
	return writeDoc(*out, doc)
}

func getCmd(e *env, fs *flag.FlagSet, args []string) error {
	schemaPath := fs.String("schema", "", "schema definition file (yaml/json)")
	docPath := fs.String("doc", "", "document file; missing file means empty document")
	format := fs.String("format", "table", "output format: table|json")
	if err := e.parse(fs, args, "schema", "doc"); err != nil {
		return err
	}
	schema, doc, err := loadPair(*schemaPath, *docPath, true)
	if err != nil {
		return err
	}
	props := e.helper.GetPropertiesOrdered(schema, doc)
	switch *format {
	case "json":
		values := make(map[string]string, len(props))
		for _, p := range props {
			values[p.Name] = p.Value
		}
		b, err := j.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, string(b))
	case "table":
		tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tTYPE\tVALUE\tGROUP")
		for _, p := range props {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Type, p.Value, p.Group)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown -format %q", *format)
	}
	return nil
}

func setCmd(e *env, fs *flag.FlagSet, args []string) error {
	schemaPath := fs.String("schema", "", "schema definition file (yaml/json)")
	docPath := fs.String("doc", "", "document file to update (created when missing)")
	name := fs.String("name", "", "property name")
	value := fs.String("value", "", `new value (booleans: "1" for true)`)
	if err := e.parse(fs, args, "schema", "doc", "name"); err != nil {
		return err
	}
	schema, doc, err := loadPair(*schemaPath, *docPath, true)
	if err != nil {
		return err
	}
	if !e.helper.UpdateProperty(schema, doc, *name, *value) {
		fmt.Fprintln(e.stderr, "error:", i18n.Describe(propschema.Issue{Path: propschema.Pointer(*name), Code: propschema.CodeUnknownProperty}))
		return errFailed
	}
	return writeDoc(*docPath, doc)
}

func checkCmd(e *env, fs *flag.FlagSet, args []string) error {
	schemaPath := fs.String("schema", "", "schema definition file (yaml/json)")
	docPath := fs.String("doc", "", "document file")
	if err := e.parse(fs, args, "schema", "doc"); err != nil {
		return err
	}
	schema, doc, err := loadPair(*schemaPath, *docPath, false)
	if err != nil {
		return err
	}
	iss := propschema.Check(schema, doc)
	for _, it := range iss {
		fmt.Fprintln(e.stdout, i18n.Describe(it))
	}
	if len(iss) > 0 {
		return errFailed
	}
	fmt.Fprintln(e.stdout, "ok")
	return nil
}

func convertCmd(e *env, fs *flag.FlagSet, args []string) error {
	in := fs.String("in", "", "input document file")
	out := fs.String("out", "", "output document file")
	if err := e.parse(fs, args, "in", "out"); err != nil {
		return err
	}
	doc, err := readDoc(*in, false)
	if err != nil {
		return err
	}
	return writeDoc(*out, doc)
}

func loadPair(schemaPath, docPath string, allowMissing bool) (*propschema.Schema, *propschema.Node, error) {
	schema, err := schemafile.Load(schemaPath)
	if err != nil {
		return nil, nil, err
	}
	doc, err := readDoc(docPath, allowMissing)
	if err != nil {
		return nil, nil, err
	}
	return schema, doc, nil
}

// maxDocBytes bounds documents read from disk.
const maxDocBytes = 16 << 20

func readDoc(path string, allowMissing bool) (*propschema.Node, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return propschema.NewNode(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := codec.Limit{Inner: c, MaxDecode: maxDocBytes}.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

func writeDoc(path string, doc *propschema.Node) error {
	c, err := codec.ForPath(path)
	if err != nil {
		return err
	}
	data, err := c.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
