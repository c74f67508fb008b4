package config

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/32bitkid/dopefish/export"
	"github.com/32bitkid/dopefish/resource"
)

const (
	EnvVarPrefix = "DOPEFISH"

	DefaultConfigFile = "dopefish.toml"
	DefaultOutputDir  = "output"
	DefaultFormat     = string(export.PNG)
	DefaultScale      = 1
)

var (
	// VERSION gets set during build
	VERSION = "0.0.0"
)

type Config struct {
	CLI  *CLI
	TOML *TOML
}

type TOML struct {
	Output *TOMLOutput          `toml:"output"`
	Tiles  *resource.TileRanges `toml:"tiles"`
}

type TOMLOutput struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
	Scale  int    `toml:"scale"`
}

type CLI struct {
	Exe   string `kong:"arg,help='Path to the unpacked game executable',type='existingfile'"`
	Graph string `kong:"arg,help='Path to EGAGRAPH',type='existingfile'"`
	Maps  string `kong:"arg,help='Path to GAMEMAPS',type='existingfile'"`

	ConfigFile   string `kong:"help='Path to the TOML config file',type='path',default='dopefish.toml',short='c'"`
	Output       string `kong:"help='Directory to write images to',short='o'"`
	Format       string `kong:"help='Image format (png or bmp)',short='f'"`
	Scale        int    `kong:"help='Integer scale factor for images',short='s'"`
	Chart        string `kong:"help='Write a chart of chunk lengths to this SVG file',type='path'"`
	SkipGraphics bool   `kong:"help='Do not export graphics'"`
	SkipMaps     bool   `kong:"help='Do not export maps'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v" env:"-"`

	// Internal bits
	Ctx *kong.Context `kong:"-"`
}

func NewConfig() (*Config, error) {
	// Attempt to load .env
	_ = godotenv.Load(".env")

	cli, err := readCLIArgs()
	if err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	return load(cli)
}

func load(cli *CLI) (*Config, error) {
	tomlConfig, err := readTOML(cli.ConfigFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	applyCLIOverrides(cli, tomlConfig)

	if err := validateTOML(tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error validating TOML config")
	}

	return &Config{
		CLI:  cli,
		TOML: tomlConfig,
	}, nil
}

// Exporter builds the exporter described by the [output] section.
func (c *Config) Exporter() (*export.Exporter, error) {
	format, err := export.ParseFormat(c.TOML.Output.Format)
	if err != nil {
		return nil, err
	}
	return export.New(c.TOML.Output.Dir, format, c.TOML.Output.Scale)
}

func setTOMLDefaults(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	if t.Output == nil {
		t.Output = &TOMLOutput{}
	}

	if t.Tiles == nil {
		tiles := resource.DefaultTileRanges
		t.Tiles = &tiles
	}

	// Set defaults for [output]
	if t.Output.Dir == "" {
		t.Output.Dir = DefaultOutputDir
	}

	if t.Output.Format == "" {
		t.Output.Format = DefaultFormat
	}

	if t.Output.Scale == 0 {
		t.Output.Scale = DefaultScale
	}

	// Set defaults for [tiles], one bound at a time
	if t.Tiles.UnmaskedMin == 0 {
		t.Tiles.UnmaskedMin = resource.DefaultTileRanges.UnmaskedMin
	}

	if t.Tiles.UnmaskedMax == 0 {
		t.Tiles.UnmaskedMax = resource.DefaultTileRanges.UnmaskedMax
	}

	if t.Tiles.MaskedMin == 0 {
		t.Tiles.MaskedMin = resource.DefaultTileRanges.MaskedMin
	}

	if t.Tiles.MaskedMax == 0 {
		t.Tiles.MaskedMax = resource.DefaultTileRanges.MaskedMax
	}

	return nil
}

func applyCLIOverrides(cli *CLI, t *TOML) {
	if cli.Output != "" {
		t.Output.Dir = cli.Output
	}

	if cli.Format != "" {
		t.Output.Format = cli.Format
	}

	if cli.Scale != 0 {
		t.Output.Scale = cli.Scale
	}
}

func validateTOML(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	// Validate [output]
	if err := validateTOMLOutput(t.Output); err != nil {
		return errors.Wrap(err, "output error(s)")
	}

	// Validate [tiles]
	if t.Tiles == nil {
		return errors.New("tiles cannot be empty")
	}

	if err := t.Tiles.Validate(); err != nil {
		return errors.Wrap(err, "tiles error(s)")
	}

	return nil
}

func validateTOMLOutput(o *TOMLOutput) error {
	if o == nil {
		return errors.New("output cannot be empty")
	}

	if o.Dir == "" {
		return errors.New("output.dir cannot be empty")
	}

	if _, err := export.ParseFormat(o.Format); err != nil {
		return errors.Wrap(err, "output.format is invalid")
	}

	if o.Scale < export.MinScale || o.Scale > export.MaxScale {
		return errors.Errorf("output.scale must be between %d and %d", export.MinScale, export.MaxScale)
	}

	return nil
}

func readCLIArgs() (*CLI, error) {
	cli := &CLI{}
	cli.Ctx = kong.Parse(cli,
		kong.Name("dopefish"),
		kong.Description("Extracts graphics and maps from Commander Keen 4-6"),
		kong.UsageOnError(),
		kong.DefaultEnvars(EnvVarPrefix),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
		})

	if err := validateCLIArgs(cli); err != nil {
		return nil, errors.Wrap(err, "error validating args")
	}

	return cli, nil
}

// readTOML loads file. A missing file leaves every setting at its default.
func readTOML(file string) (*TOML, error) {
	tomlConfig := &TOML{}

	data, err := os.ReadFile(file)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(err, "error reading file")
	default:
		if err := toml.Unmarshal(data, tomlConfig); err != nil {
			return nil, errors.Wrap(err, "error parsing TOML config")
		}
	}

	// Set defaults
	if err := setTOMLDefaults(tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error setting TOML defaults")
	}

	return tomlConfig, nil
}

func validateCLIArgs(cli *CLI) error {
	if cli == nil {
		return errors.New("config cannot be nil")
	}

	if cli.SkipGraphics && cli.SkipMaps && cli.Chart == "" {
		return errors.New("nothing to do: graphics and maps are both skipped")
	}

	if cli.Scale < 0 {
		return errors.New("scale cannot be negative")
	}

	return nil
}
