package view

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadDelay collapses bursts of file events (editors write several) into one parse.
const ReloadDelay = 200 * time.Millisecond

// Watch re-parses the templates whenever a .tmpl file under the root changes, until
// ctx is done. onReload, when set, is called after every attempt.
func (t *Templates) Watch(ctx context.Context, onReload func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := filepath.WalkDir(t.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	}); err != nil {
		return err
	}

	timer := time.NewTimer(ReloadDelay)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			if !strings.HasSuffix(ev.Name, ".tmpl") {
				continue
			}
			timer.Reset(ReloadDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			t.logger.Warn("template watcher", zap.Error(err))
		case <-timer.C:
			err := t.Reload()
			if err != nil {
				t.logger.Error("template reload failed", zap.Error(err))
			} else {
				t.logger.Info("templates reloaded", zap.String("dir", t.dir))
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}
