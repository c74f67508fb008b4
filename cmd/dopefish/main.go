package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/32bitkid/dopefish"
	"github.com/32bitkid/dopefish/config"
	"github.com/32bitkid/dopefish/export"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}

	if cfg.CLI.Debug {
		logrus.Info("debug mode enabled")
		logrus.SetLevel(logrus.DebugLevel)
	}

	displayConfig(cfg)

	if err := run(cfg); err != nil {
		logrus.Errorf("error during extraction: %s", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	root, err := dopefish.Open(cfg.CLI.Exe, cfg.CLI.Graph, cfg.CLI.Maps)
	if err != nil {
		return errors.Wrap(err, "unable to open game files")
	}
	logrus.Infof("detected %s", root.Version)

	if cfg.CLI.Chart != "" {
		if err := writeChart(root, cfg.CLI.Chart); err != nil {
			return err
		}
		logrus.Infof("wrote chunk chart to %s", cfg.CLI.Chart)
	}

	if cfg.CLI.SkipGraphics && cfg.CLI.SkipMaps {
		return nil
	}

	exporter, err := cfg.Exporter()
	if err != nil {
		return errors.Wrap(err, "unable to create exporter")
	}

	// Maps are drawn with the 16x16 tiles, so graphics are always decoded.
	graphics, err := root.Graphics(*cfg.TOML.Tiles)
	if err != nil {
		return errors.Wrap(err, "unable to decode graphics")
	}

	if !cfg.CLI.SkipGraphics {
		n, err := exporter.ExportGraphics(graphics)
		if err != nil {
			return errors.Wrap(err, "unable to export graphics")
		}
		logrus.Infof("exported %d images", n)
	}

	if !cfg.CLI.SkipMaps {
		maps, err := root.Maps()
		if err != nil {
			return errors.Wrap(err, "unable to decode maps")
		}

		n, err := exporter.ExportMaps(maps, graphics)
		if err != nil {
			return errors.Wrap(err, "unable to export maps")
		}
		logrus.Infof("exported %d maps", n)
	}

	return nil
}

func writeChart(root *dopefish.Root, path string) error {
	idx, err := root.ChunkIndex()
	if err != nil {
		return errors.Wrap(err, "unable to index graphics")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create chart file")
	}

	if err := export.ChunkChart(f, idx); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func displayConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	logrus.Info("dopefish settings:")
	logrus.Info("  [CLI]")
	logrus.Infof("  version: %s", config.VERSION)
	logrus.Infof("  debug: %v", cfg.CLI.Debug)
	logrus.Infof("  config file: %s", cfg.CLI.ConfigFile)
	logrus.Infof("  exe: %s", cfg.CLI.Exe)
	logrus.Infof("  graph: %s", cfg.CLI.Graph)
	logrus.Infof("  maps: %s", cfg.CLI.Maps)
	logrus.Infof("  chart: %s", cfg.CLI.Chart)
	logrus.Infof("  skip graphics: %v", cfg.CLI.SkipGraphics)
	logrus.Infof("  skip maps: %v", cfg.CLI.SkipMaps)
	logrus.Info("")
	logrus.Info("  [OUTPUT]")
	logrus.Infof("  output.dir: %s", cfg.TOML.Output.Dir)
	logrus.Infof("  output.format: %s", cfg.TOML.Output.Format)
	logrus.Infof("  output.scale: %d", cfg.TOML.Output.Scale)
	logrus.Info("")
	logrus.Info("  [TILES]")
	logrus.Infof("  tiles.unmasked: %d-%d", cfg.TOML.Tiles.UnmaskedMin, cfg.TOML.Tiles.UnmaskedMax)
	logrus.Infof("  tiles.masked: %d-%d", cfg.TOML.Tiles.MaskedMin, cfg.TOML.Tiles.MaskedMax)
}
