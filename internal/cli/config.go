package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/duplexsheet/duplexsheet/pkg/errors"
	"github.com/duplexsheet/duplexsheet/pkg/pipeline"
)

const (
	// defaultConfigFile is read from the working directory when --config is not given.
	defaultConfigFile = "duplexsheet.toml"

	// envPrefix namespaces every environment variable the CLI reads.
	envPrefix = "DUPLEXSHEET_"
)

// paperSizes maps --paper names to width x height in millimeters (portrait).
var paperSizes = map[string][2]float64{
	"a3":     {297, 420},
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// optionFlags holds the flags shared by every command that packs images.
type optionFlags struct {
	paper     string
	width     float64
	height    float64
	dpi       int
	margin    float64
	spacing   float64
	scale     float64
	input     string
	output    string
	pdf       bool
	manifest  bool
	noCache   bool
	landscape bool
}

// register adds the packing flags to cmd. Defaults are shown for reference
// only; a flag overrides the config file and environment only when set.
func (f *optionFlags) register(cmd *cobra.Command, withOutputs bool) {
	d := pipeline.DefaultOptions()
	fs := cmd.Flags()
	fs.StringVar(&f.paper, "paper", "", "paper size: a3, a4 (default), a5, letter, legal")
	fs.BoolVar(&f.landscape, "landscape", false, "swap page width and height")
	fs.Float64Var(&f.width, "width", d.PageWidthMM, "page width in mm")
	fs.Float64Var(&f.height, "height", d.PageHeightMM, "page height in mm")
	fs.IntVar(&f.dpi, "dpi", d.DPI, "print resolution")
	fs.Float64Var(&f.margin, "margin", d.MarginMM, "page margin in mm")
	fs.Float64Var(&f.spacing, "spacing", d.SpacingMM, "gap between images in mm")
	fs.Float64Var(&f.scale, "scale", d.Scale, "resize every image by this factor")
	fs.StringVarP(&f.input, "input", "i", d.InputDir, "input directory")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the decoded-image cache")
	if withOutputs {
		fs.StringVarP(&f.output, "output", "o", d.OutputDir, "output directory")
		fs.BoolVar(&f.pdf, "pdf", false, "also write layout_print.pdf in print order")
		fs.BoolVar(&f.manifest, "manifest", false, "also write layout_manifest.json")
	}
}

// loadOptions resolves pipeline options for cmd: defaults, then the config
// file, then DUPLEXSHEET_* environment variables, then explicitly set flags.
func (c *CLI) loadOptions(cmd *cobra.Command, f *optionFlags) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
	}

	path := c.configPath
	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		if err := readConfigFile(path, &opts); err != nil {
			return opts, err
		}
		c.Logger.Debug("loaded config", "path", path)
	}

	if err := applyEnv(&opts, os.LookupEnv); err != nil {
		return opts, err
	}
	if err := f.apply(cmd, &opts); err != nil {
		return opts, err
	}

	opts.SetDefaults()
	return opts, opts.Validate()
}

// readConfigFile decodes a TOML or YAML file, chosen by extension, over opts.
// Keys missing from the file keep their current values.
func readConfigFile(path string, opts *pipeline.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	var cfg struct {
		pipeline.Options `yaml:",inline"`
		Paper            string `toml:"paper" yaml:"paper"`
	}
	cfg.Options = *opts

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "config %s: unsupported extension (use .toml or .yaml)", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if cfg.Paper != "" {
		if err := setPaper(&cfg.Options, cfg.Paper); err != nil {
			return err
		}
	}
	*opts = cfg.Options
	return nil
}

// applyEnv overlays DUPLEXSHEET_* variables found through lookup onto opts.
func applyEnv(opts *pipeline.Options, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "PAPER"); ok && v != "" {
		if err := setPaper(opts, v); err != nil {
			return err
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"PAGE_WIDTH_MM", &opts.PageWidthMM},
		{"PAGE_HEIGHT_MM", &opts.PageHeightMM},
		{"MARGIN_MM", &opts.MarginMM},
		{"SPACING_MM", &opts.SpacingMM},
		{"SCALE", &opts.Scale},
	}
	for _, f := range floats {
		v, ok := lookup(envPrefix + f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", envPrefix, f.key)
		}
		*f.dst = n
	}

	if v, ok := lookup(envPrefix + "DPI"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sDPI", envPrefix)
		}
		opts.DPI = n
	}
	if v, ok := lookup(envPrefix + "INPUT_DIR"); ok && v != "" {
		opts.InputDir = v
	}
	if v, ok := lookup(envPrefix + "OUTPUT_DIR"); ok && v != "" {
		opts.OutputDir = v
	}
	return nil
}

// apply copies the flags the user set on cmd onto opts.
func (f *optionFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	fs := cmd.Flags()
	if fs.Changed("paper") {
		if err := setPaper(opts, f.paper); err != nil {
			return err
		}
	}
	if fs.Changed("width") {
		opts.PageWidthMM = f.width
	}
	if fs.Changed("height") {
		opts.PageHeightMM = f.height
	}
	if fs.Changed("dpi") {
		opts.DPI = f.dpi
	}
	if fs.Changed("margin") {
		opts.MarginMM = f.margin
	}
	if fs.Changed("spacing") {
		opts.SpacingMM = f.spacing
	}
	if fs.Changed("scale") {
		opts.Scale = f.scale
	}
	if fs.Changed("input") {
		opts.InputDir = f.input
	}
	if fs.Changed("output") {
		opts.OutputDir = f.output
	}
	if fs.Changed("pdf") {
		opts.PDF = f.pdf
	}
	if fs.Changed("manifest") {
		opts.Manifest = f.manifest
	}
	if f.landscape && opts.PageWidthMM < opts.PageHeightMM {
		opts.PageWidthMM, opts.PageHeightMM = opts.PageHeightMM, opts.PageWidthMM
	}
	return nil
}

// setPaper sets the page size from a named paper format.
func setPaper(opts *pipeline.Options, name string) error {
	size, ok := paperSizes[strings.ToLower(name)]
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown paper size %q (want a3, a4, a5, letter or legal)", name)
	}
	opts.PageWidthMM, opts.PageHeightMM = size[0], size[1]
	return nil
}
