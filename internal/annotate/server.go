package annotate

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/VJd357/Happyplates/internal/observability"
)

var canvasTemplate = template.Must(template.New("canvas").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Annotate {{.ImageName}}</title>
  <style>
    body { font-family: sans-serif; margin: 1em; }
    #stage { position: relative; display: inline-block; cursor: crosshair; }
    #stage img { display: block; user-select: none; -webkit-user-drag: none; }
    #overlay { position: absolute; top: 0; left: 0; }
  </style>
</head>
<body>
  <h1>{{.ImageName}}</h1>
  <p>Drag to draw rectangles. <button id="save">Save</button> <span id="saved"></span></p>
  <div id="stage">
    <img id="picture" src="/image">
    <canvas id="overlay"></canvas>
  </div>
  <script>
    const img = document.getElementById('picture');
    const canvas = document.getElementById('overlay');
    const ctx = canvas.getContext('2d');
    let drawing = false;

    img.onload = () => {
      canvas.width = img.width;
      canvas.height = img.height;
      redraw();
    };

    const pos = e => {
      const r = canvas.getBoundingClientRect();
      return [Math.round(e.clientX - r.left), Math.round(e.clientY - r.top)];
    };

    const post = (path, x, y) =>
      fetch(path, {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify({x: x, y: y})
      });

    const redraw = async () => {
      const resp = await fetch('/boxes');
      const boxes = await resp.json();
      ctx.clearRect(0, 0, canvas.width, canvas.height);
      ctx.strokeStyle = 'red';
      ctx.lineWidth = 2;
      for (const b of boxes) {
        ctx.strokeRect(b[0], b[1], b[2] - b[0], b[3] - b[1]);
      }
    };

    canvas.addEventListener('mousedown', async e => {
      drawing = true;
      const [x, y] = pos(e);
      await post('/press', x, y);
    });
    canvas.addEventListener('mousemove', async e => {
      if (!drawing) return;
      const [x, y] = pos(e);
      await post('/drag', x, y);
      await redraw();
    });
    canvas.addEventListener('mouseup', async e => {
      if (!drawing) return;
      drawing = false;
      const [x, y] = pos(e);
      await post('/release', x, y);
      await redraw();
    });

    document.getElementById('save').addEventListener('click', async () => {
      const resp = await fetch('/save', {method: 'POST'});
      const out = await resp.json();
      document.getElementById('saved').textContent = 'saved to ' + out.path;
    });
  </script>
</body>
</html>
`))

// Server exposes one annotation session over HTTP: the canvas page, the
// image itself, and press/drag/release/save endpoints the page drives.
type Server struct {
	session *Session
	logger  *observability.Logger
	router  chi.Router
}

// NewServer creates the annotation UI for a single image.
func NewServer(session *Session, logger *observability.Logger) *Server {
	if logger == nil {
		logger = observability.Nop()
	}
	s := &Server{session: session, logger: logger.WithComponent("annotate")}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleCanvas)
	r.Get("/image", s.handleImage)
	r.Get("/boxes", s.handleBoxes)
	r.Post("/press", s.handlePoint(s.session.Press))
	r.Post("/drag", s.handlePoint(s.session.Drag))
	r.Post("/release", s.handleRelease)
	r.Post("/save", s.handleSave)

	return r
}

// ServeHTTP makes the server usable directly with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks serving HTTP until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Str("image", s.session.ImagePath()).
			Msg("annotator listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func decodePoint(r *http.Request) (point, error) {
	var p point
	err := json.NewDecoder(r.Body).Decode(&p)
	return p, err
}

func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = canvasTemplate.Execute(w, struct{ ImageName string }{
		ImageName: filepath.Base(s.session.ImagePath()),
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.session.ImagePath())
}

func (s *Server) handleBoxes(w http.ResponseWriter, r *http.Request) {
	boxes := s.session.Boxes()
	if preview, ok := s.session.Preview(); ok {
		boxes = append(boxes, preview)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(boxes)
}

func (s *Server) handlePoint(apply func(x, y int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodePoint(r)
		if err != nil {
			http.Error(w, "bad point", http.StatusBadRequest)
			return
		}
		apply(p.X, p.Y)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	p, err := decodePoint(r)
	if err != nil {
		http.Error(w, "bad point", http.StatusBadRequest)
		return
	}
	if box, ok := s.session.Release(p.X, p.Y); ok {
		s.logger.Info().Int("start_x", box[0]).Int("start_y", box[1]).
			Int("end_x", box[2]).Int("end_y", box[3]).Msg("box committed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	path, err := s.session.Save()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save boxes")
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	s.logger.Info().Str("path", path).Int("boxes", len(s.session.Boxes())).
		Msg("boxes saved")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Path string `json:"path"`
	}{Path: path})
}
