package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// StdinSource is the source name used for traces piped into the process.
const StdinSource = "-"

// TraceUpdate is published every time a trace is loaded or reloaded.
type TraceUpdate struct {
	// Source is the path the trace was read from, or a descriptive name
	// for unnamed streams.
	Source string
	// Revision increases with every update published by a Datasource.
	Revision int
	// NewSource is set when the trace came from a different source than
	// the previous update, rather than a rewrite of the same file.
	NewSource bool
	Trace     Trace
	Err       error
}

// Datasource loads traces and keeps the most recently loaded file watched
// so that it is re-read whenever the evaluator rewrites it.
type Datasource struct {
	appCtx  context.Context
	logger  *log.Logger
	watcher *fsnotify.Watcher

	lock      sync.Mutex
	latest    TraceUpdate
	revision  int
	watched   string
	subs      map[chan TraceUpdate]struct{}
	closeOnce sync.Once
}

func NewDatasource(appCtx context.Context, logger *log.Logger) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		appCtx:  appCtx,
		logger:  logger,
		watcher: watcher,
		subs:    make(map[chan TraceUpdate]struct{}),
	}
	go d.watch()
	return d, nil
}

// Traces streams trace updates until ctx is cancelled. The latest update,
// if any, is delivered immediately. Slow readers only ever see the newest
// update. The signature matches the provider expected by skel streams.
func (d *Datasource) Traces(ctx context.Context) <-chan TraceUpdate {
	out := make(chan TraceUpdate, 1)
	d.lock.Lock()
	d.subs[out] = struct{}{}
	if d.revision > 0 {
		out <- d.latest
	}
	d.lock.Unlock()
	go func() {
		select {
		case <-ctx.Done():
		case <-d.appCtx.Done():
		}
		d.lock.Lock()
		defer d.lock.Unlock()
		if _, ok := d.subs[out]; ok {
			delete(d.subs, out)
			close(out)
		}
	}()
	return out
}

// Latest returns the most recent update. ok is false if nothing has been
// loaded yet.
func (d *Datasource) Latest() (update TraceUpdate, ok bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.latest, d.revision > 0
}

// Load reads the trace at path and watches it for rewrites. A path of "-"
// reads standard input instead.
func (d *Datasource) Load(path string) error {
	if path == StdinSource {
		return d.LoadReader("stdin", os.Stdin)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed opening trace: %w", err)
	}
	return d.LoadReader(path, f)
}

// LoadReader parses a trace from rc, closes it and publishes the result.
// Readers that expose a Name, like the files returned by a file chooser,
// are watched for rewrites and a row still being written is held back until
// the next one. Other readers are parsed to their final EOF.
func (d *Datasource) LoadReader(source string, rc io.ReadCloser) error {
	parse := ParseTrace
	if f, ok := rc.(interface{ Name() string }); ok && rc != os.Stdin {
		source = filepath.Clean(f.Name())
		parse = ParseTraceInProgress
		if err := d.watchPath(source); err != nil {
			d.logger.Warn("trace will not reload automatically", "path", source, "error", err)
		}
	}
	trace, err := parse(rc)
	err = errors.Join(err, rc.Close())
	d.publish(source, trace, err)
	return err
}

func (d *Datasource) reload(path string) {
	f, err := os.Open(path)
	if err != nil {
		d.logger.Warn("failed reopening trace", "path", path, "error", err)
		return
	}
	trace, err := ParseTraceInProgress(f)
	err = errors.Join(err, f.Close())
	d.publish(path, trace, err)
}

func (d *Datasource) publish(source string, trace Trace, err error) {
	for _, skipped := range trace.Skipped {
		d.logger.Warn("failed parsing sample", "source", source, "line", skipped.Line, "error", skipped.Err)
	}
	if err != nil {
		d.logger.Error("failed loading trace", "source", source, "error", err)
	} else {
		d.logger.Info("loaded trace", "source", source, "expression", trace.Expression, "samples", len(trace.Samples))
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	d.revision++
	update := TraceUpdate{
		Source:    source,
		Revision:  d.revision,
		NewSource: d.revision == 1 || d.latest.Source != source,
		Trace:     trace,
		Err:       err,
	}
	d.latest = update
	for ch := range d.subs {
		// Only the publisher sends, so after draining there is room.
		select {
		case dropped := <-ch:
			if dropped.NewSource {
				update.NewSource = true
			}
		default:
		}
		ch <- update
	}
}

// watchPath watches the directory containing path, as evaluators commonly
// replace files rather than writing them in place.
func (d *Datasource) watchPath(path string) error {
	d.lock.Lock()
	prev := d.watched
	d.watched = path
	d.lock.Unlock()
	dir := filepath.Dir(path)
	if prev != "" && filepath.Dir(prev) != dir {
		if err := d.watcher.Remove(filepath.Dir(prev)); err != nil {
			d.logger.Debug("failed removing watch", "path", prev, "error", err)
		}
	}
	if err := d.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed watching %q: %w", dir, err)
	}
	return nil
}

func (d *Datasource) watch() {
	for {
		select {
		case <-d.appCtx.Done():
			if err := d.Close(); err != nil {
				d.logger.Debug("failed closing watcher", "error", err)
			}
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			d.lock.Lock()
			watched := d.watched
			d.lock.Unlock()
			if filepath.Clean(ev.Name) != watched {
				continue
			}
			d.logger.Debug("trace changed", "path", watched, "op", ev.Op.String())
			d.reload(watched)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn("file watcher error", "error", err)
		}
	}
}

// Close stops watching files. It is called automatically when the
// application context ends.
func (d *Datasource) Close() error {
	var err error
	d.closeOnce.Do(func() {
		err = d.watcher.Close()
	})
	return err
}
