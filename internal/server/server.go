// Package server hosts the web shell: an upload form, a background
// conversion job per document and endpoints to poll, view and download the
// combined table.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/VJd357/Happyplates/internal/config"
	"github.com/VJd357/Happyplates/internal/menutable"
	"github.com/VJd357/Happyplates/internal/observability"
)

// maxUploadBytes caps the multipart form size (document plus key).
const maxUploadBytes = 128 << 20

// userFacingFailure is the only error text shown in the browser. Detail goes
// to the log, not to the visitor who typed in a credential.
const userFacingFailure = "Failed to process the PDF. Please check the file and try again."

// Server is the HTTP front end over a Converter.
type Server struct {
	cfg       *config.Config
	logger    *observability.Logger
	converter Converter
	jobs      *JobStore
	router    chi.Router
}

// New creates the web shell. The converter is injected so tests can run the
// full HTTP surface against a stub pipeline.
func New(cfg *config.Config, logger *observability.Logger, converter Converter) *Server {
	if logger == nil {
		logger = observability.Nop()
	}
	s := &Server{
		cfg:       cfg,
		logger:    logger.WithComponent("server"),
		converter: converter,
		jobs:      NewJobStore(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/convert", s.handleConvert)
	r.Route("/jobs/{jobID}", func(r chi.Router) {
		r.Get("/", s.handleJobPage)
		r.Get("/progress", s.handleJobProgress)
		r.Get("/table", s.handleJobTable)
		r.Get("/download", s.handleJobDownload)
	})

	return r
}

// ServeHTTP makes the server usable directly with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks serving HTTP until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout.Std(),
		WriteTimeout: s.cfg.Server.WriteTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Server.Addr).Msg("web shell listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if errMsg != "" {
		w.WriteHeader(http.StatusBadRequest)
	}
	_ = indexTemplate.Execute(w, struct{ Error string }{Error: errMsg})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderIndex(w, "The upload could not be read. Please try again.")
		return
	}

	apiKey := r.FormValue("api_key")
	if strings.TrimSpace(apiKey) == "" {
		s.renderIndex(w, "An API key is required.")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		s.renderIndex(w, "A PDF file is required.")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		s.renderIndex(w, "Only PDF files are accepted.")
		return
	}

	pdfPath, err := s.saveUpload(file, name)
	if err != nil {
		s.logger.Error().Err(err).Str("document", name).Msg("failed to store upload")
		s.renderIndex(w, userFacingFailure)
		return
	}

	job := s.jobs.Create(name)
	s.logger.Info().Str("job_id", job.ID).Str("document", pdfPath).Msg("conversion started")

	go s.runJob(job, pdfPath, apiKey)

	http.Redirect(w, r, "/jobs/"+job.ID, http.StatusSeeOther)
}

func (s *Server) saveUpload(src io.Reader, name string) (string, error) {
	if err := os.MkdirAll(s.cfg.Server.UploadDir, 0o755); err != nil {
		return "", err
	}
	dstPath := filepath.Join(s.cfg.Server.UploadDir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return dstPath, nil
}

// runJob drives the pipeline in the background. The API key lives only on
// this goroutine's stack.
func (s *Server) runJob(job *Job, pdfPath, apiKey string) {
	table, tablePath, err := s.converter.Convert(context.Background(), pdfPath, apiKey,
		func(done, total int, status string) {
			job.setProgress(done, total, status)
		})
	if err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Str("document", pdfPath).
			Msg("conversion failed")
		job.fail(userFacingFailure)
		return
	}
	s.logger.Info().Str("job_id", job.ID).Str("table", tablePath).
		Int("rows", table.Len()).Msg("conversion complete")
	job.complete(table, tablePath)
}

func (s *Server) handleJobPage(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "jobID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = jobTemplate.Execute(w, struct {
		ID       string
		Document string
	}{ID: job.ID, Document: job.Document})
}

func (s *Server) handleJobProgress(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "jobID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleJobTable(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "jobID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	table, _, done := job.Result()
	if !done {
		http.Error(w, "job is not finished", http.StatusConflict)
		return
	}

	rows := make([][]string, 0, table.Len())
	for _, row := range table.Rows {
		rows = append(rows, []string{
			row.ItemName,
			strValue(row.ItemDescription),
			strValue(row.ItemPrice),
			strValue(row.ItemPortion),
			row.ItemType,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tableTemplate.Execute(w, struct {
		ID      string
		Columns []string
		Rows    [][]string
	}{ID: job.ID, Columns: menutable.Columns, Rows: rows})
}

func (s *Server) handleJobDownload(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobs.Get(chi.URLParam(r, "jobID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	table, tablePath, done := job.Result()
	if !done {
		http.Error(w, "job is not finished", http.StatusConflict)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		xlsxPath := strings.TrimSuffix(tablePath, filepath.Ext(tablePath)) + ".xlsx"
		if err := table.WriteXLSX(xlsxPath); err != nil {
			s.logger.Error().Err(err).Str("job_id", job.ID).Msg("xlsx export failed")
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serveFile(w, r, xlsxPath,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return
	}

	serveFile(w, r, tablePath, "text/csv")
}

func serveFile(w http.ResponseWriter, r *http.Request, path, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
