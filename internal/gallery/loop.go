package gallery

import (
	"context"
	"image"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/velikanov/thumbgrid/internal/domain"
	"github.com/velikanov/thumbgrid/internal/pool"
)

// Loop owns the goroutine the Gallery is confined to. External callers
// (HTTP handlers, mains) marshal closures onto the command channel; pool
// completions and deferred scan ticks arrive on their own channels. All
// four sources are drained by the single Run goroutine, so Gallery state
// needs no locks.
type Loop struct {
	g          *Gallery
	pool       *pool.Pool
	deferDelay time.Duration

	cmds  chan func(*Gallery)
	ticks chan struct{}
	done  chan struct{}
}

func NewLoop(g *Gallery, p *pool.Pool, deferDelay time.Duration) *Loop {
	l := &Loop{
		g:          g,
		pool:       p,
		deferDelay: deferDelay,
		cmds:       make(chan func(*Gallery), 64),
		ticks:      make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	g.RequestScan = l.ScheduleScan
	return l
}

// Run drains commands, results and ticks until the context ends. It must be
// the only goroutine ever touching the Gallery.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	zlog.Logger.Info().Msg("gallery loop started")
	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("gallery loop stopped")
			return
		case fn := <-l.cmds:
			fn(l.g)
		case res, ok := <-l.pool.Results():
			if !ok {
				zlog.Logger.Info().Msg("pool results channel closed, gallery loop stopped")
				return
			}
			l.g.HandleResult(res)
		case <-l.ticks:
			l.g.Scan()
		}
	}
}

// ScheduleScan arms a one-shot timer that delivers a scan tick to the loop.
// The tick channel holds at most one pending tick, so storms of scroll and
// resize events coalesce into a single deferred scan.
func (l *Loop) ScheduleScan() {
	time.AfterFunc(l.deferDelay, func() {
		select {
		case l.ticks <- struct{}{}:
		default:
		}
	})
}

// Do runs fn on the loop goroutine without waiting for it.
func (l *Loop) Do(fn func(*Gallery)) error {
	select {
	case <-l.done:
		return domain.ErrGalleryStopped
	default:
	}
	select {
	case l.cmds <- fn:
		return nil
	case <-l.done:
		return domain.ErrGalleryStopped
	}
}

func (l *Loop) call(fn func(*Gallery)) error {
	ch := make(chan struct{})
	err := l.Do(func(g *Gallery) {
		fn(g)
		close(ch)
	})
	if err != nil {
		return err
	}
	select {
	case <-ch:
		return nil
	case <-l.done:
		return domain.ErrGalleryStopped
	}
}

// SetImages replaces the gallery content.
func (l *Loop) SetImages(paths []string) error {
	return l.call(func(g *Gallery) { g.SetImages(paths) })
}

// UpdateViewport applies a scroll/resize event: the client's visible rect
// and grid width.
func (l *Loop) UpdateViewport(view image.Rectangle, gridWidth int) error {
	return l.Do(func(g *Gallery) {
		g.SetGridWidth(gridWidth)
		g.SetViewport(view)
	})
}

// FetchOrSchedule returns the bordered icon for a cached path. On a miss it
// dispatches production (unless already in flight) and returns a nil image;
// the client re-fetches after the pipeline catches up. Unknown paths return
// domain.ErrImageNotFound.
func (l *Loop) FetchOrSchedule(path string) (image.Image, error) {
	var (
		icon image.Image
		err  error
	)
	callErr := l.call(func(g *Gallery) {
		if !g.Knows(path) {
			err = domain.ErrImageNotFound
			return
		}
		if img, ok := g.Thumbnail(path); ok {
			icon = img
			return
		}
		g.Request(path)
	})
	if callErr != nil {
		return nil, callErr
	}
	return icon, err
}

// SetIconSize validates and applies a new display size.
func (l *Loop) SetIconSize(size int) error {
	var err error
	if callErr := l.call(func(g *Gallery) { err = g.SetIconSize(size) }); callErr != nil {
		return callErr
	}
	return err
}

// SetAltDir changes the alternate annotation directory.
func (l *Loop) SetAltDir(dir string) error {
	return l.call(func(g *Gallery) { g.SetAltDir(dir) })
}

// SetStatus updates one path's review status.
func (l *Loop) SetStatus(path string, status domain.AnnotationStatus) error {
	return l.call(func(g *Gallery) { g.SetStatus(path, status) })
}

// SetStatuses applies a batch of status updates.
func (l *Loop) SetStatuses(statuses map[string]domain.AnnotationStatus) error {
	return l.call(func(g *Gallery) { g.SetStatuses(statuses) })
}

// Refresh drops and reproduces one thumbnail.
func (l *Loop) Refresh(path string) error {
	return l.call(func(g *Gallery) { g.Refresh(path) })
}

// Images snapshots the gallery listing.
func (l *Loop) Images() ([]ImageInfo, int, error) {
	var (
		infos []ImageInfo
		size  int
	)
	if err := l.call(func(g *Gallery) {
		infos = g.Images()
		size = g.IconSize()
	}); err != nil {
		return nil, 0, err
	}
	return infos, size, nil
}
