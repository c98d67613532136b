// Package app provides the editor session state and application lifecycle
// helpers.
package app

import (
	"errors"
	"sync"

	pximage "pixelmask/internal/image"
	"pixelmask/internal/mask"
	"pixelmask/internal/view"
	"pixelmask/pkg/geometry"
)

// ErrNoImage is returned by operations that require a loaded image when none
// is present. Callers treat it as a no-op, not a failure.
var ErrNoImage = errors.New("no image loaded")

// Brush radius limits in screen units.
const (
	MinBrushRadius = 5.0
	MaxBrushRadius = 100.0
	BrushStep      = 5.0
)

// EventType identifies session events the UI can subscribe to.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventViewChanged
	EventMaskChanged
	EventBrushChanged
	EventModeChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session is the explicitly owned editor state: the loaded image, its mask
// raster, the view transform, and the brush. All mutation happens through
// the session so the mask and image dimensions stay in lockstep.
type Session struct {
	mu sync.RWMutex

	source     *pximage.Buffer
	sourcePath string
	mask       *mask.Canvas
	view       view.State
	brush      float64 // brush radius in screen units
	viewport   geometry.Size

	listeners map[EventType][]EventListener
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		brush:     25,
		viewport:  geometry.Sz(800, 600),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetViewport records the current screen area available to the image. It
// does not recompute the base scale; that stays fixed until the next load.
func (s *Session) SetViewport(size geometry.Size) {
	s.mu.Lock()
	s.viewport = size
	s.mu.Unlock()
}

// Viewport returns the current screen area available to the image.
func (s *Session) Viewport() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// LoadImage decodes the image at path and installs it as the session source.
func (s *Session) LoadImage(path string) error {
	buf, err := pximage.Load(path)
	if err != nil {
		return err
	}
	s.SetImage(buf, path)
	return nil
}

// SetImage installs a decoded buffer as the session source, atomically
// replacing the previous image and all derived state: the mask raster is
// recreated fully transparent at the new dimensions and the view is refit.
func (s *Session) SetImage(buf *pximage.Buffer, path string) {
	s.mu.Lock()
	s.source = buf
	s.sourcePath = path
	s.mask = mask.New(buf.Width(), buf.Height())
	s.view = view.NewState(s.imageSizeLocked(), s.viewport)
	s.mu.Unlock()

	s.Emit(EventImageLoaded, path)
}

// HasImage reports whether an image is loaded.
func (s *Session) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source != nil
}

// Source returns the loaded image buffer and its path, or nil when no image
// is loaded.
func (s *Session) Source() (*pximage.Buffer, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source, s.sourcePath
}

// Mask returns the mask raster, or nil when no image is loaded.
func (s *Session) Mask() *mask.Canvas {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mask
}

// ImageSize returns the loaded image dimensions, or a zero size.
func (s *Session) ImageSize() geometry.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageSizeLocked()
}

func (s *Session) imageSizeLocked() geometry.Size {
	if s.source == nil {
		return geometry.Size{}
	}
	return geometry.Sz(float64(s.source.Width()), float64(s.source.Height()))
}

// View returns the current view state.
func (s *Session) View() view.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView replaces the view state.
func (s *Session) SetView(v view.State) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	s.Emit(EventViewChanged, v)
}

// RefitView recomputes the base scale for the current viewport and resets
// zoom and pan, as if the image had just been loaded.
func (s *Session) RefitView() {
	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return
	}
	s.view = view.NewState(s.imageSizeLocked(), s.viewport)
	v := s.view
	s.mu.Unlock()
	s.Emit(EventViewChanged, v)
}

// BrushRadius returns the brush radius in screen units.
func (s *Session) BrushRadius() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brush
}

// SetBrushRadius sets the brush radius, clamped to [MinBrushRadius, MaxBrushRadius].
func (s *Session) SetBrushRadius(radius float64) {
	s.mu.Lock()
	s.brush = geometry.Clamp(radius, MinBrushRadius, MaxBrushRadius)
	radius = s.brush
	s.mu.Unlock()
	s.Emit(EventBrushChanged, radius)
}

// BrushRadiusImage converts the brush radius to image-space units at the
// current effective scale. Recomputed per stroke since zoom changes between
// strokes.
func (s *Session) BrushRadiusImage() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scale := s.view.Scale()
	if scale <= 0 {
		return s.brush
	}
	return s.brush / scale
}
