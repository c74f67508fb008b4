// Package export writes decoded graphics and rendered maps to disk.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/32bitkid/dopefish/resource"
	"github.com/32bitkid/dopefish/screen"
)

// Format is an image file format.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"

	MapsDir = "maps"

	MinScale = 1
	MaxScale = 16
)

var log = logrus.WithField("pkg", "export")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, BMP:
		return f, nil
	}
	return "", errors.Errorf("unknown image format %q", s)
}

// Exporter writes images under Dir, one directory per kind of image.
type Exporter struct {
	Dir    string
	Format Format
	Scale  int
}

func New(dir string, format Format, scale int) (*Exporter, error) {
	if dir == "" {
		return nil, errors.New("output directory cannot be empty")
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if scale < MinScale || scale > MaxScale {
		return nil, errors.Errorf("scale must be between %d and %d", MinScale, MaxScale)
	}
	return &Exporter{Dir: dir, Format: format, Scale: scale}, nil
}

// WriteImage stores img as dir/name, adding the file extension.
func (e *Exporter) WriteImage(dir, name string, img image.Image) error {
	if err := os.MkdirAll(filepath.Join(e.Dir, dir), 0o755); err != nil {
		return errors.Wrapf(err, "unable to create %s", dir)
	}

	path := filepath.Join(e.Dir, dir, name+"."+string(e.Format))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create image file")
	}

	if err := e.encode(f, scale(img, e.Scale)); err != nil {
		f.Close()
		return errors.Wrapf(err, "unable to encode %s", path)
	}
	return f.Close()
}

func (e *Exporter) encode(w io.Writer, img image.Image) error {
	switch e.Format {
	case BMP:
		return bmp.Encode(w, img)
	case PNG:
		return png.Encode(w, img)
	}
	return errors.Errorf("unknown image format %q", e.Format)
}

func scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ExportGraphics writes every bitmap, one directory per section. Empty slots
// are skipped, but files keep their slot number. It returns the number of
// images written.
func (e *Exporter) ExportGraphics(g *resource.Graphics) (int, error) {
	llog := log.WithFields(logrus.Fields{
		"method": "ExportGraphics",
	})

	written := 0
	for _, section := range resource.Sections {
		bitmaps := g.Section(section)
		for i, b := range bitmaps {
			if b == nil {
				continue
			}
			if err := e.WriteImage(section.Name(), fmt.Sprintf("%04d", i), screen.Image(b)); err != nil {
				return written, errors.Wrapf(err, "unable to export %s %d", section.Name(), i)
			}
			written++
		}
		llog.Debugf("exported %d %s", len(bitmaps), section.Name())
	}
	return written, nil
}

// ExportMaps renders every map with the 16x16 tiles of g.
func (e *Exporter) ExportMaps(maps []*resource.Map, g *resource.Graphics) (int, error) {
	llog := log.WithFields(logrus.Fields{
		"method": "ExportMaps",
	})

	for i, m := range maps {
		img := screen.RenderMap(m, g.Tiles16, g.MaskedTiles16)
		if err := e.WriteImage(MapsDir, mapFileName(i, m.Name), img); err != nil {
			return i, errors.Wrapf(err, "unable to export map %d", i)
		}
		llog.Debugf("exported map %d %q", i, m.Name)
	}
	return len(maps), nil
}

func mapFileName(i int, name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return '-'
	}, strings.TrimSpace(name))

	if slug == "" {
		return fmt.Sprintf("%02d", i)
	}
	return fmt.Sprintf("%02d-%s", i, slug)
}
