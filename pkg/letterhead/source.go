package letterhead

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"sync"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// LogoName is the well-known logo file name inside the asset directory.
	LogoName = "logo.png"
	// MaxLogoWidth bounds the pixel width of the normalised logo.
	MaxLogoWidth = 600
)

// ErrNoLogo reports that no logo asset is configured or present.
var ErrNoLogo = errors.New("letterhead: logo not found")

// Logo is a normalised PNG logo.
type Logo struct {
	PNG    []byte
	Width  int
	Height int
}

// Source lazily loads the logo once and serves the cached result afterwards.
// It is safe for concurrent use.
type Source struct {
	fsys     fs.FS
	name     string
	maxWidth int

	once sync.Once
	logo Logo
	err  error
}

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithLogoName overrides the logo file name.
func WithLogoName(name string) SourceOption {
	return func(s *Source) {
		if name != "" {
			s.name = name
		}
	}
}

// WithMaxWidth overrides the maximum logo width in pixels.
func WithMaxWidth(px int) SourceOption {
	return func(s *Source) {
		if px > 0 {
			s.maxWidth = px
		}
	}
}

// NewSource reads the logo from fsys. A nil fsys yields a source that always
// falls back to text.
func NewSource(fsys fs.FS, opts ...SourceOption) *Source {
	s := &Source{fsys: fsys, name: LogoName, maxWidth: MaxLogoWidth}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// DirSource reads the logo from a directory on the local disk.
func DirSource(dir string, opts ...SourceOption) *Source {
	if dir == "" {
		return NewSource(nil, opts...)
	}
	return NewSource(os.DirFS(dir), opts...)
}

// Logo returns the cached logo. ok is false when the text fallback applies.
func (s *Source) Logo() (Logo, bool) {
	if s == nil {
		return Logo{}, false
	}
	s.once.Do(s.load)
	return s.logo, s.err == nil
}

// Err explains why the text fallback applies. It is nil when a logo loaded.
func (s *Source) Err() error {
	if s == nil {
		return ErrNoLogo
	}
	s.once.Do(s.load)
	return s.err
}

func (s *Source) load() {
	if s.fsys == nil {
		s.err = ErrNoLogo
		return
	}
	raw, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.err = fmt.Errorf("%w: %s", ErrNoLogo, s.name)
			return
		}
		s.err = fmt.Errorf("letterhead: read %s: %w", s.name, err)
		return
	}
	logo, err := Normalize(raw, s.maxWidth)
	if err != nil {
		s.err = fmt.Errorf("letterhead: %s: %w", s.name, err)
		return
	}
	s.logo = logo
}

// Normalize decodes raw, scales it down to at most maxWidth pixels wide and
// re-encodes it as PNG.
func Normalize(raw []byte, maxWidth int) (Logo, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Logo{}, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return Logo{}, fmt.Errorf("decode image: empty image")
	}

	width, height := bounds.Dx(), bounds.Dy()
	if maxWidth > 0 && width > maxWidth {
		height = max(1, height*maxWidth/width)
		width = maxWidth
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == bounds.Dx() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}

	var out bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&out, dst); err != nil {
		return Logo{}, fmt.Errorf("encode png: %w", err)
	}
	return Logo{PNG: out.Bytes(), Width: width, Height: height}, nil
}
