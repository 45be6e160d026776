package icon

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/hrko/streamdeck-gridicon/internal/errs"
)

//go:embed svg/*.svg
var assets embed.FS

// Source supplies the raw markup of an icon.
type Source interface {
	Markup(name Name) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(name Name) (string, error)

// Markup calls f(name).
func (f SourceFunc) Markup(name Name) (string, error) {
	return f(name)
}

type fsSource struct {
	fsys     fs.FS
	fallback Source
}

// Embedded returns the markup compiled into the binary.
func Embedded() Source {
	sub, err := fs.Sub(assets, "svg")
	if err != nil {
		panic(err)
	}
	return &fsSource{fsys: sub}
}

// Dir returns a source reading <dir>/<name>.svg. Icons missing from dir are
// looked up in fallback; a nil fallback means the embedded assets.
func Dir(dir string, fallback Source) Source {
	if fallback == nil {
		fallback = Embedded()
	}
	return &fsSource{fsys: os.DirFS(filepath.Clean(dir)), fallback: fallback}
}

func (s *fsSource) Markup(name Name) (string, error) {
	if !name.Valid() {
		return "", zerr.With(errs.ErrUnknownIconName, "icon", string(name))
	}
	b, err := fs.ReadFile(s.fsys, string(name)+".svg")
	if err == nil {
		return string(b), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if s.fallback != nil {
			return s.fallback.Markup(name)
		}
		return "", zerr.With(errs.ErrMissingMarkup, "icon", string(name))
	}
	return "", zerr.With(zerr.Wrap(err, errs.ErrMissingMarkup.Error()), "icon", string(name))
}
