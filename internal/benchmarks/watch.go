package benchmarks

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// reloadDebounce collapses the burst of events editors emit on save
const reloadDebounce = 250 * time.Millisecond

// Watch reloads the store whenever the source file changes, until ctx is done.
// The directory is watched rather than the file so atomic renames are seen.
func Watch(ctx context.Context, st *Store, src FileSource) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create benchmark watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(src.Path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", src.Path, err)
	}

	go func() {
		defer w.Close()
		target := filepath.Clean(src.Path)
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(reloadDebounce)
				fire = timer.C
			case <-fire:
				fire = nil
				snap, err := st.Load(ctx, src)
				if err != nil {
					log.Warnf("benchmark reload failed, keeping previous snapshot: %v", err)
					continue
				}
				log.Infof("benchmarks reloaded from %s: version %s, %d rows", src.Path, snap.Version, snap.Len())
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnf("benchmark watcher error: %v", err)
			}
		}
	}()
	return nil
}
