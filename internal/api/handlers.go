package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/scholarmcp/paperparse/internal/docparse"
	"github.com/scholarmcp/paperparse/internal/parser"
	"github.com/scholarmcp/paperparse/internal/pipeline"
	"github.com/scholarmcp/paperparse/internal/stats"
)

type parseRequest struct {
	FilePath string `json:"filePath"`
}

// handleParseFile parses a document already on the server's filesystem,
// addressed by path. Used by co-located services that share a volume.
func (s *Server) handleParseFile(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FilePath == "" {
		jsonError(w, http.StatusBadRequest, "filePath is required")
		return
	}

	info, err := os.Stat(req.FilePath)
	if err != nil || info.IsDir() {
		jsonError(w, http.StatusNotFound, fmt.Sprintf("file not found: %s", req.FilePath))
		return
	}

	f, err := os.Open(req.FilePath)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to open file")
		return
	}
	defer f.Close()

	s.parseAndRespond(w, filepath.Base(req.FilePath), f)
}

// handleParseUpload parses an uploaded document synchronously.
func (s *Server) handleParseUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "missing or oversized file upload")
		return
	}
	defer file.Close()

	s.parseAndRespond(w, sanitizeFilename(header.Filename), file)
}

// parseAndRespond runs extraction plus the heuristic core over one
// document and writes the result, recording the parse latency.
func (s *Server) parseAndRespond(w http.ResponseWriter, filename string, r io.Reader) {
	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	start := time.Now()
	pages, err := p.Parse(r)
	if err != nil {
		s.log.Error("text extraction failed", "filename", filename, "error", err)
		jsonError(w, http.StatusUnprocessableEntity, fmt.Sprintf("extract: %s", err))
		return
	}

	res, err := docparse.Parse(pages, s.parseCfg)
	if err != nil {
		if errors.Is(err, docparse.ErrEmptyDocument) {
			jsonError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.log.Error("parse failed", "filename", filename, "error", err)
		jsonError(w, http.StatusInternalServerError, "parse failed")
		return
	}
	s.stats.Record(strings.ToLower(filepath.Ext(filename)), time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, res)
}

type batchJob struct {
	pipeline.JobSnapshot
	StatusURL string `json:"statusUrl"`
}

type batchResponse struct {
	Jobs []batchJob `json:"jobs"`
}

// handleParseBatch accepts a multipart upload of documents and queues an
// async parse job per file.
func (s *Server) handleParseBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, http.StatusBadRequest, "no files provided")
		return
	}

	resp := batchResponse{Jobs: make([]batchJob, 0, len(files))}
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			jsonError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			jsonError(w, http.StatusBadRequest, "failed to read upload")
			return
		}

		job := pipeline.NewJob(sanitizeFilename(header.Filename), data)
		if err := s.orchestrator.Submit(job); err != nil {
			s.log.Warn("job rejected", "filename", job.Filename, "error", err)
		}
		resp.Jobs = append(resp.Jobs, batchJob{
			JobSnapshot: job.Snapshot(),
			StatusURL:   "/parse/jobs/" + job.ID,
		})
	}

	writeJSON(w, http.StatusAccepted, resp)
}

// handleJobStatus reports the state of a batch job, including the parse
// result once completed.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

type statsResponse struct {
	Parse      stats.Snapshot `json:"parse"`
	QueueDepth int            `json:"queueDepth"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		Parse:      s.stats.Snapshot(),
		QueueDepth: s.orchestrator.QueueDepth(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sanitizeFilename strips path components and control characters from a
// client-provided filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
