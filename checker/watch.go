package checker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vcrobe/nojs-html/console"
)

// debounce is how long rapid successive changes are folded into one.
const debounce = 100 * time.Millisecond

// Watch calls onChange with the path of every template (files ending in
// suffix) or configuration file written or created under root, until ctx
// is done. Directories created while watching are watched too.
func Watch(ctx context.Context, root, suffix string, onChange func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if err := watchDirRecursive(w, root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(w, event.Name); err != nil {
						console.Error(fmt.Sprintf("failed to watch %s: %v", event.Name, err))
					}
					continue
				}
			}

			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, suffix) && name != ConfigFile {
				continue
			}
			if time.Since(last) < debounce {
				continue
			}
			last = time.Now()
			onChange(event.Name)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			console.Error(fmt.Sprintf("watcher error: %v", err))
		}
	}
}

// watchDirRecursive adds root and its subdirectories, skipping hidden ones.
func watchDirRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
