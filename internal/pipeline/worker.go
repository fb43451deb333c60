package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/scholarmcp/paperparse/internal/docparse"
	"github.com/scholarmcp/paperparse/internal/parser"
)

// Worker processes a single batch parse job: extract page texts from the
// uploaded file, then run the heuristic core over them.
type Worker struct {
	log         *slog.Logger
	parseCfg    docparse.Config
	pdfFallback bool
}

func NewWorker(log *slog.Logger, parseCfg docparse.Config, pdfFallback bool) *Worker {
	return &Worker{
		log:         log,
		parseCfg:    parseCfg,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full parse pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if ctx.Err() != nil {
		job.Fail("canceled")
		return
	}

	// Phase 1: extract page texts from the file.
	job.SetStatus(StatusExtracting)
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.Fail(err.Error())
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}

	pages, err := p.Parse(bytes.NewReader(job.FileData()))
	if err != nil {
		log.Error("text extraction failed", "error", err)
		job.Fail(fmt.Sprintf("extract: %s", err))
		return
	}

	// Phase 2: run the heuristic core.
	job.SetStatus(StatusParsing)
	res, err := docparse.Parse(pages, w.parseCfg)
	if err != nil {
		if errors.Is(err, docparse.ErrEmptyDocument) {
			log.Warn("document produced no text")
		} else {
			log.Error("parse failed", "error", err)
		}
		job.Fail(err.Error())
		return
	}

	job.Complete(res)
	log.Info("parse complete", "sections", len(res.Sections), "references", len(res.References))
}
