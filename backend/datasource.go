package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Snapshot is the complete set of rows read from a source at one point in
// time. Rows must not be modified by receivers.
type Snapshot struct {
	Source string
	Rows   []RawRow
	Err    error
	// Generation increases with every snapshot published by a Datasource.
	Generation uint64
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// Datasource loads rows from files and streams and publishes a new
// Snapshot whenever the data changes. At most one source is active at a
// time; loading a new one stops the previous one.
type Datasource struct {
	watcher *fsnotify.Watcher
	appCtx  context.Context
	opts    LoadOptions

	latest     RWBox[Snapshot]
	hasLatest  atomic.Bool
	generation atomic.Uint64

	lock       sync.Mutex
	subs       map[chan Snapshot]struct{}
	stopSource context.CancelFunc
	// watched is the cleaned path of the active file source and changes
	// receives fsnotify events concerning it.
	watched    string
	watchedDir string
	changes    chan fsnotify.Event
}

func NewDatasource(appCtx context.Context, opts LoadOptions) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	ds := &Datasource{
		watcher: watcher,
		appCtx:  appCtx,
		opts:    opts,
		subs:    make(map[chan Snapshot]struct{}),
	}
	go ds.routeEvents()
	return ds, nil
}

// Close stops the active source and the file watcher. Subscriptions end
// when their contexts are cancelled.
func (d *Datasource) Close() error {
	d.lock.Lock()
	if d.stopSource != nil {
		d.stopSource()
		d.stopSource = nil
	}
	d.lock.Unlock()
	return d.watcher.Close()
}

// Latest returns the most recently published snapshot, if any.
func (d *Datasource) Latest() (Snapshot, bool) {
	var s Snapshot
	d.latest.Read(func(t *Snapshot) {
		s = *t
	})
	return s, d.hasLatest.Load()
}

// Snapshots returns a channel delivering the latest snapshot on subscription
// and every one published afterwards. Slow receivers only observe the most
// recent snapshot. The channel is closed when ctx is done.
func (d *Datasource) Snapshots(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	d.lock.Lock()
	d.subs[ch] = struct{}{}
	if latest, ok := d.Latest(); ok {
		offer(ch, latest)
	}
	d.lock.Unlock()
	go func() {
		<-ctx.Done()
		d.lock.Lock()
		defer d.lock.Unlock()
		delete(d.subs, ch)
		close(ch)
	}()
	return ch
}

// offer replaces any undelivered value in ch with s.
func offer(ch chan Snapshot, s Snapshot) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// publish delivers a snapshot from the source started with ctx. Sources
// that have been replaced publish nothing: begin cancels them while
// holding d.lock.
func (d *Datasource) publish(ctx context.Context, source string, rows []RawRow, err error) bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	if ctx.Err() != nil {
		return false
	}
	s := Snapshot{
		Source: source,
		// Limit capacity so that appends by the reader never alias the
		// rows delivered here.
		Rows:       rows[:len(rows):len(rows)],
		Err:        err,
		Generation: d.generation.Add(1),
	}
	d.latest.Write(func(t *Snapshot) {
		*t = s
	})
	d.hasLatest.Store(true)
	for ch := range d.subs {
		offer(ch, s)
	}
	return true
}

// begin stops any active source and prepares a context for a new one.
func (d *Datasource) begin(path string) (context.Context, <-chan fsnotify.Event) {
	ctx, cancel := context.WithCancel(d.appCtx)
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.stopSource != nil {
		d.stopSource()
	}
	if d.watchedDir != "" {
		if err := d.watcher.Remove(d.watchedDir); err != nil {
			log.Printf("failed removing watch on %q: %v", d.watchedDir, err)
		}
	}
	d.stopSource = cancel
	d.watched, d.watchedDir, d.changes = "", "", nil
	if path == "" {
		return ctx, nil
	}
	d.watched = filepath.Clean(path)
	d.changes = make(chan fsnotify.Event, 1)
	// Watch the directory rather than the file so that editors replacing
	// the file do not end the watch.
	dir := filepath.Dir(d.watched)
	if err := d.watcher.Add(dir); err != nil {
		log.Printf("failed watching %q, changes will not be reloaded: %v", dir, err)
	} else {
		d.watchedDir = dir
	}
	return ctx, d.changes
}

func (d *Datasource) routeEvents() {
	for {
		select {
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			d.lock.Lock()
			if d.changes != nil && filepath.Clean(ev.Name) == d.watched {
				select {
				case d.changes <- ev:
				default:
				}
			}
			d.lock.Unlock()
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher error: %v", err)
		}
	}
}

// Load starts reading rows from the file at path and keeps following it as
// it changes on disk.
func (d *Datasource) Load(path string) {
	ctx, changes := d.begin(path)
	switch FormatFor(path) {
	case FormatCSV:
		go d.followCSV(ctx, path, changes)
	case FormatXLSX:
		go d.followFile(ctx, path, changes)
	default:
		d.publish(ctx, path, nil, &LoadError{Source: path, Err: ErrUnsupportedFormat})
	}
}

// LoadFromStream reads rows from an already opened source, such as a file
// chosen in a picker or standard input. The stream is closed once read.
// CSV data is published row by row as it arrives.
func (d *Datasource) LoadFromStream(name string, rc io.ReadCloser) {
	if f, ok := rc.(*os.File); ok && f != os.Stdin && FormatFor(f.Name()) != FormatUnknown {
		// Prefer following the file on disk so that edits are picked up.
		f.Close()
		d.Load(f.Name())
		return
	}
	ctx, _ := d.begin("")
	format := FormatFor(name)
	go func() {
		defer rc.Close()
		switch format {
		case FormatXLSX:
			rows, err := ReadXLSX(rc, d.opts)
			d.publishResult(ctx, name, rows, err)
		default:
			d.streamCSV(ctx, name, rc)
		}
	}()
}

func (d *Datasource) publishResult(ctx context.Context, source string, rows []RawRow, err error) {
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		err = &LoadError{Source: source, Err: err}
		log.Printf("%v", err)
	} else {
		log.Printf("loaded %d rows from %q", len(rows), source)
	}
	d.publish(ctx, source, rows, err)
}

// streamCSV reads a CSV stream to its end, publishing after every row.
func (d *Datasource) streamCSV(ctx context.Context, source string, r io.Reader) {
	csvReader := newCSVReader(r)
	var headings []string
	var rows []RawRow
	for {
		rec, err := csvReader.Read()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if headings == nil {
					err = ErrNoHeader
				} else {
					err = nil
				}
			}
			d.publishResult(ctx, source, rows, err)
			return
		}
		if headings == nil {
			headings = cleanHeadings(rec)
			continue
		}
		rows = append(rows, rowFromFields(headings, rec))
		d.publish(ctx, source, rows, nil)
	}
}

// followCSV reads the CSV file at path, then waits for writes and keeps
// reading appended rows. A truncated or replaced file is read again from
// the start.
func (d *Datasource) followCSV(ctx context.Context, path string, changes <-chan fsnotify.Event) {
	for {
		restart, err := d.tailCSV(ctx, path, changes)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			d.publishResult(ctx, path, nil, err)
			if !waitForChange(ctx, changes) {
				return
			}
			continue
		}
		if !restart {
			return
		}
		log.Printf("reloading %q", path)
	}
}

func (d *Datasource) tailCSV(ctx context.Context, path string, changes <-chan fsnotify.Event) (restart bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	lr := NewLineReader(f)
	csvReader := newCSVReader(lr)
	var headings []string
	var rows []RawRow
	for {
		rec, err := csvReader.Read()
		if err == nil {
			if headings == nil {
				headings = cleanHeadings(rec)
			} else {
				rows = append(rows, rowFromFields(headings, rec))
			}
			continue
		}
		if !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed reading csv: %w", err)
		}
		d.publish(ctx, path, withPending(headings, rows, lr.Pending()), nil)
		for {
			select {
			case <-ctx.Done():
				return false, nil
			case ev := <-changes:
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) || truncated(f) {
					return true, nil
				}
				if !ev.Has(fsnotify.Write) {
					continue
				}
			}
			break
		}
	}
}

// withPending returns rows followed by the row parsed from an unterminated
// final line, if any. Files written without a trailing newline would
// otherwise never show their last row.
func withPending(headings []string, rows []RawRow, pending []byte) []RawRow {
	if headings == nil || len(bytes.TrimSpace(pending)) == 0 {
		return rows
	}
	rec, err := newCSVReader(bytes.NewReader(pending)).Read()
	if err != nil {
		return rows
	}
	out := make([]RawRow, len(rows), len(rows)+1)
	copy(out, rows)
	return append(out, rowFromFields(headings, rec))
}

// truncated reports whether f now ends before the current read offset.
func truncated(f *os.File) bool {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return true
	}
	return info.Size() < pos
}

// followFile loads the whole file at path and again after every change.
func (d *Datasource) followFile(ctx context.Context, path string, changes <-chan fsnotify.Event) {
	for {
		rows, err := LoadFile(path, d.opts)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("%v", err)
		} else {
			log.Printf("loaded %d rows from %q", len(rows), path)
		}
		d.publish(ctx, path, rows, err)
		if !waitForChange(ctx, changes) {
			return
		}
	}
}

func waitForChange(ctx context.Context, changes <-chan fsnotify.Event) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case ev := <-changes:
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				return true
			}
		}
	}
}
