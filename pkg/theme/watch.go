package theme

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/hrko/streamdeck-gridicon/pkg/graphics"
)

// Live holds the current stylesheet and can be swapped while icons read
// from it.
type Live struct {
	sheet atomic.Pointer[Sheet]
}

// NewLive returns a Live serving s.
func NewLive(s *Sheet) *Live {
	l := &Live{}
	l.Store(s)
	return l
}

// Store replaces the current sheet. A nil sheet is ignored.
func (l *Live) Store(s *Sheet) {
	if s != nil {
		l.sheet.Store(s)
	}
}

// Sheet returns the current sheet.
func (l *Live) Sheet() *Sheet {
	return l.sheet.Load()
}

// ColorSet resolves the icon colors of target from the current sheet.
func (l *Live) ColorSet(target *Target) graphics.ColorSet {
	s := l.Sheet()
	if s == nil {
		return graphics.ColorSet{}
	}
	return s.ColorSet(target)
}

// Watch reloads the stylesheet at path whenever it is written and hands the
// new sheet to onChange. Parse failures go to onError and keep the previous
// sheet. The directory is watched rather than the file so that editors that
// replace the file on save are handled. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Sheet), onError func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			s, err := Load(abs)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onChange(s)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
