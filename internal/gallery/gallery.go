// Package gallery implements the viewport-driven thumbnail scheduler.
//
// A Gallery owns the thumbnail cache, the in-flight set, per-path statuses
// and the grid geometry. It is deliberately not goroutine-safe: every method
// must run on the single goroutine that owns it (see Loop), which is what
// makes the cache's single-writer discipline and the plain-bool re-entrancy
// guard sound. Workers hand results back as pool.Result values; they never
// call in here.
package gallery

import (
	"image"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/velikanov/thumbgrid/internal/cache"
	"github.com/velikanov/thumbgrid/internal/domain"
	"github.com/velikanov/thumbgrid/internal/overlay"
	"github.com/velikanov/thumbgrid/internal/pool"
)

// ProduceFunc renders one thumbnail off-thread. It must be pure over its
// arguments: the gallery captures current icon size and annotation dir at
// dispatch time, so a late result is simply data for whatever configuration
// requested it.
type ProduceFunc func(path string, targetSize int, altDir string) (image.Image, error)

// Submitter is the slice of the worker pool the scheduler needs.
type Submitter interface {
	Submit(pool.Task)
}

// Options fixes the gallery's tunables at construction.
type Options struct {
	IconSize      int
	MinIconSize   int
	MaxIconSize   int
	CacheCapacity int
	BufferPx      int
	BorderWidth   int
	AltDir        string
}

// ImageInfo is the listing view of one gallery entry.
type ImageInfo struct {
	Path   string
	Status domain.AnnotationStatus
}

type Gallery struct {
	opts    Options
	cache   *cache.Cache
	pool    Submitter
	produce ProduceFunc

	paths     []string
	cells     []domain.Cell
	cellIndex map[string]int
	statuses  map[string]domain.AnnotationStatus
	inflight  map[string]struct{}

	gridWidth int
	viewport  image.Rectangle

	// scanning guards against re-entrant viewport scans; a plain bool is
	// enough because every caller lives on the owning goroutine.
	scanning bool

	// RequestScan defers a viewport scan by one scheduling tick instead of
	// running it inside the triggering event. Loop wires this to its
	// one-shot timer; tests may substitute their own.
	RequestScan func()

	// OnThumbnail receives the bordered icon for a path, both on cache
	// hits during a scan and on background completions.
	OnThumbnail func(path string, icon image.Image)
}

func New(opts Options, submitter Submitter, produce ProduceFunc) *Gallery {
	return &Gallery{
		opts:        opts,
		cache:       cache.New(opts.CacheCapacity),
		pool:        submitter,
		produce:     produce,
		cellIndex:   make(map[string]int),
		statuses:    make(map[string]domain.AnnotationStatus),
		inflight:    make(map[string]struct{}),
		RequestScan: func() {},
	}
}

// SetImages replaces the gallery content and resets all per-path state.
func (g *Gallery) SetImages(paths []string) {
	g.paths = append([]string(nil), paths...)
	g.statuses = make(map[string]domain.AnnotationStatus, len(paths))
	g.inflight = make(map[string]struct{})
	g.cache.Clear()
	g.relayout()
	g.RequestScan()

	zlog.Logger.Info().Int("images", len(paths)).Msg("gallery populated")
}

// SetGridWidth relayouts the grid for a new client width (resize event).
func (g *Gallery) SetGridWidth(width int) {
	if width == g.gridWidth {
		return
	}
	g.gridWidth = width
	g.relayout()
	g.RequestScan()
}

// SetViewport records the visible rect (scroll event) and defers a scan.
func (g *Gallery) SetViewport(r image.Rectangle) {
	g.viewport = r
	g.RequestScan()
}

// Scan walks every cell intersecting the buffered viewport window: cache
// hits are recomposited and emitted immediately, misses not already in
// flight are dispatched to the pool. Invocations while a scan is running
// are no-ops; layout and scroll cascades would otherwise repeat the same
// walk many times for one user action.
func (g *Gallery) Scan() {
	if g.scanning {
		return
	}
	g.scanning = true
	defer func() { g.scanning = false }()

	window := g.viewport.Inset(-g.opts.BufferPx)
	for _, cell := range g.cells {
		if !cell.Bounds.Overlaps(window) {
			continue
		}
		if img, ok := g.cache.Get(cell.Path); ok {
			g.emit(cell.Path, img)
			continue
		}
		g.dispatch(cell.Path)
	}
}

// dispatch submits production for a path unless a task is already in
// flight; the single-flight guarantee lives here.
func (g *Gallery) dispatch(path string) {
	if _, ok := g.inflight[path]; ok {
		return
	}

	id := uuid.New().String()
	g.inflight[path] = struct{}{}

	size := g.opts.IconSize
	altDir := g.opts.AltDir
	produce := g.produce
	g.pool.Submit(pool.Task{
		ID:   id,
		Path: path,
		Run: func() (image.Image, error) {
			return produce(path, size, altDir)
		},
	})

	zlog.Logger.Debug().
		Str("task_id", id).
		Str("path", path).
		Int("target_size", size).
		Msg("thumbnail task dispatched")
}

// HandleResult applies one background completion. In-flight interest is
// dropped exactly once; a result whose interest was cleared by an
// invalidation is still written, because the next scan supersedes it
// anyway. Failed productions leave the cell in its placeholder state.
func (g *Gallery) HandleResult(res pool.Result) {
	delete(g.inflight, res.Path)

	if !res.OK {
		return
	}
	g.cache.Put(res.Path, res.Image)
	g.emit(res.Path, res.Image)
}

// Thumbnail returns the bordered icon for a cached path; it never triggers
// production. The lookup promotes the entry.
func (g *Gallery) Thumbnail(path string) (image.Image, bool) {
	img, ok := g.cache.Get(path)
	if !ok {
		return nil, false
	}
	return g.bordered(path, img), true
}

// Request dispatches production for a known path without waiting for the
// next scan; unknown paths are ignored.
func (g *Gallery) Request(path string) {
	if _, ok := g.cellIndex[path]; !ok {
		return
	}
	g.dispatch(path)
}

// Knows reports whether a path belongs to the gallery.
func (g *Gallery) Knows(path string) bool {
	_, ok := g.cellIndex[path]
	return ok
}

// SetIconSize changes the display size. Every cached thumbnail is the wrong
// resolution afterwards, so the cache and in-flight interest are cleared and
// a rescan is scheduled; late results for the old size are accepted and
// cheaply overwritten by the next scan.
func (g *Gallery) SetIconSize(size int) error {
	if size < g.opts.MinIconSize || size > g.opts.MaxIconSize {
		return domain.ErrInvalidIconSize
	}
	if size == g.opts.IconSize {
		return nil
	}
	g.opts.IconSize = size
	g.invalidate(true)

	zlog.Logger.Info().Int("icon_size", size).Msg("icon size changed, thumbnails invalidated")
	return nil
}

// SetAltDir changes the alternate annotation directory. Overlays may differ,
// so thumbnails are invalidated; statuses are tracked independently and
// survive untouched.
func (g *Gallery) SetAltDir(dir string) {
	if dir == g.opts.AltDir {
		return
	}
	g.opts.AltDir = dir
	g.invalidate(false)

	zlog.Logger.Info().Str("annotations_dir", dir).Msg("annotation dir changed, thumbnails invalidated")
}

func (g *Gallery) invalidate(relayout bool) {
	g.cache.Clear()
	g.inflight = make(map[string]struct{})
	if relayout {
		g.relayout()
	}
	g.RequestScan()
}

// Refresh drops one path's thumbnail and in-flight interest and reproduces
// it immediately.
func (g *Gallery) Refresh(path string) {
	if _, ok := g.cellIndex[path]; !ok {
		return
	}
	g.cache.Remove(path)
	delete(g.inflight, path)
	g.dispatch(path)
}

// SetStatus updates one path's review status. Only the border is
// recomposited; the cached thumbnail is reused as-is.
func (g *Gallery) SetStatus(path string, status domain.AnnotationStatus) {
	if _, ok := g.cellIndex[path]; !ok {
		return
	}
	g.statuses[path] = status
	if img, ok := g.cache.Get(path); ok {
		g.emit(path, img)
	}
}

// SetStatuses applies a batch of status updates.
func (g *Gallery) SetStatuses(statuses map[string]domain.AnnotationStatus) {
	for path, status := range statuses {
		g.SetStatus(path, status)
	}
}

// Status returns the current review status for a path.
func (g *Gallery) Status(path string) domain.AnnotationStatus {
	return g.statuses[path]
}

// Images lists the gallery content in grid order.
func (g *Gallery) Images() []ImageInfo {
	infos := make([]ImageInfo, 0, len(g.paths))
	for _, path := range g.paths {
		infos = append(infos, ImageInfo{Path: path, Status: g.statuses[path]})
	}
	return infos
}

// IconSize returns the current display size.
func (g *Gallery) IconSize() int {
	return g.opts.IconSize
}

// InFlight reports the number of dispatched, uncompleted tasks.
func (g *Gallery) InFlight() int {
	return len(g.inflight)
}

// CacheLen reports the number of cached thumbnails.
func (g *Gallery) CacheLen() int {
	return g.cache.Len()
}

func (g *Gallery) emit(path string, thumb image.Image) {
	if g.OnThumbnail == nil {
		return
	}
	g.OnThumbnail(path, g.bordered(path, thumb))
}

func (g *Gallery) bordered(path string, thumb image.Image) image.Image {
	return overlay.ApplyBorder(thumb, g.statuses[path], g.opts.IconSize, g.opts.BorderWidth)
}
