// Package annotate implements a drag-to-draw bounding box session over a
// single image, persisted as a JSON sidecar next to the image.
package annotate

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/VJd357/Happyplates/internal/domain"
)

// Box is one rectangle as [start_x, start_y, end_x, end_y] in image pixels.
// Coordinates are stored exactly as drawn; a right-to-left drag keeps its
// start/end order.
type Box [4]int

// Session accumulates boxes drawn over one image. A box is committed on
// release; an in-flight drag only updates the preview rectangle.
type Session struct {
	imagePath string

	mu       sync.Mutex
	boxes    []Box
	dragging bool
	startX   int
	startY   int
	curX     int
	curY     int
}

// NewSession creates an annotation session for the given image.
func NewSession(imagePath string) *Session {
	return &Session{imagePath: imagePath}
}

// Press starts a new rectangle at the given pixel.
func (s *Session) Press(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = true
	s.startX, s.startY = x, y
	s.curX, s.curY = x, y
}

// Drag updates the live end corner of the rectangle being drawn. It is a
// no-op when no press is active.
func (s *Session) Drag(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return
	}
	s.curX, s.curY = x, y
}

// Release commits the rectangle from the press point to the given pixel and
// returns it. It is a no-op when no press is active.
func (s *Session) Release(x, y int) (Box, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return Box{}, false
	}
	s.dragging = false
	box := Box{s.startX, s.startY, x, y}
	s.boxes = append(s.boxes, box)
	return box, true
}

// Preview returns the in-flight rectangle, if a drag is active.
func (s *Session) Preview() (Box, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return Box{}, false
	}
	return Box{s.startX, s.startY, s.curX, s.curY}, true
}

// Boxes returns a copy of the committed rectangles in draw order.
func (s *Session) Boxes() []Box {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// ImagePath returns the image this session annotates.
func (s *Session) ImagePath() string {
	return s.imagePath
}

// BBoxPath returns the sidecar path the session saves to.
func (s *Session) BBoxPath() string {
	return s.imagePath + "_bboxes.json"
}

// Save writes the committed boxes to the sidecar file as a JSON array of
// 4-element arrays and returns the path written.
func (s *Session) Save() (string, error) {
	boxes := s.Boxes()
	data, err := json.Marshal(boxes)
	if err != nil {
		return "", domain.IOError("failed to encode bounding boxes", err)
	}
	path := s.BBoxPath()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", domain.IOError("failed to save bounding boxes", err)
	}
	return path, nil
}

// Load reads a previously saved sidecar file.
func Load(path string) ([]Box, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.IOError("failed to read bounding boxes", err)
	}
	var boxes []Box
	if err := json.Unmarshal(data, &boxes); err != nil {
		return nil, domain.ParseError("malformed bounding box file", err)
	}
	return boxes, nil
}
