package devicetree

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/embedded-sdks/simtemp"
	"github.com/embedded-sdks/simtemp/internal/log"
)

// Watcher applies device file edits to a running device through its validated
// setters, so the file doubles as a live parameter surface. Rejected entries
// are logged and the prior values retained.
type Watcher struct {
	filename string
	watcher  *fsnotify.Watcher
	dev      *simtemp.Device
	logger   log.Logger
	last     []byte
}

// Watch starts watching the device file at path for the given device.
func Watch(
	path string,
	dev *simtemp.Device,
	logger *slog.Logger,
) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory so renames and editor save-via-replace
	// still produce events for the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &Watcher{
		filename: path,
		watcher:  watcher,
		dev:      dev,
		logger:   log.Wrap(logger),
	}
	w.last, _ = os.ReadFile(path)

	go w.watch()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) watch() {
	for {
		select {
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			switch evt.Op {
			case fsnotify.Write, fsnotify.Create, fsnotify.Rename:
			default:
				continue
			}

			// Some writes (e.g. using > on the command line) clear the file
			// before rewriting it; skip the intermediate empty state.
			data, err := os.ReadFile(w.filename)
			if err != nil || len(data) == 0 {
				continue
			}

			w.apply(data)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Nothing useful to do; we just don't want to block.
		}
	}
}

func (w *Watcher) apply(data []byte) {
	if bytes.Equal(w.last, data) {
		return
	}
	w.last = data

	ctx := context.Background()

	var node Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		w.logger.Warn(ctx, "device file malformed, keeping current config",
			slog.Any("error", err))
		return
	}

	if node.SamplingMS != nil {
		interval := time.Duration(*node.SamplingMS) * time.Millisecond
		if err := w.dev.SetSamplingInterval(interval); err != nil {
			w.logger.Err(ctx, err)
		}
	}

	if node.ThresholdMC != nil {
		w.dev.SetThreshold(*node.ThresholdMC)
	}

	if node.Mode != nil {
		mode, err := simtemp.ParseMode(*node.Mode)
		if err != nil {
			w.logger.Err(ctx, err)
		} else if err := w.dev.SetMode(mode); err != nil {
			w.logger.Err(ctx, err)
		}
	}
}
