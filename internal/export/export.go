// Package export renders resolved record sets as Excel, CSV, PDF or
// printable HTML reports.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/JonMunkholm/salesadmin/internal/metrics"
)

// ErrUnsupportedFormat is returned for an export token other than
// excel, csv, pdf or print.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is a normalized export token.
type Format string

const (
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
	FormatPrint Format = "print"
)

// ParseFormat normalizes a caller-supplied export token (case-insensitive).
func ParseFormat(token string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(token)))
	if _, ok := renderers[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, token)
	}
	return f, nil
}

// Report is everything a renderer needs.
type Report struct {
	Title       string
	Set         *core.RecordSet
	Headers     []string
	GeneratedAt time.Time
}

// Renderer writes a report in one format.
type Renderer interface {
	ContentType() string
	Extension() string

	// Inline reports whether the output is shown in the browser rather
	// than downloaded.
	Inline() bool

	Render(ctx context.Context, w io.Writer, rep Report) error
}

var renderers = map[Format]Renderer{
	FormatExcel: excelRenderer{},
	FormatCSV:   csvRenderer{},
	FormatPDF:   pdfRenderer{},
	FormatPrint: printRenderer{},
}

// Options configures an Exporter.
type Options struct {
	Title         string
	DatePrefix    bool
	MaxConcurrent int
	MaxWait       time.Duration
}

// Exporter renders record sets to HTTP responses, bounding how many
// renders run at once.
type Exporter struct {
	limiter    *Limiter
	title      string
	datePrefix bool
	now        func() time.Time
}

// NewExporter creates an Exporter.
func NewExporter(opts Options) *Exporter {
	return &Exporter{
		limiter:    NewLimiter(opts.MaxConcurrent, opts.MaxWait),
		title:      opts.Title,
		datePrefix: opts.DatePrefix,
		now:        time.Now,
	}
}

// Filename returns the download name for rs in format f,
// e.g. "2024-05-01-customerslist-report.xlsx".
func (x *Exporter) Filename(rs *core.RecordSet, f Format) string {
	name := rs.Filename
	if x.datePrefix {
		name = x.now().Format("2006-01-02") + "-" + name
	}
	return name + renderers[f].Extension()
}

// Write renders rs in format f and writes it to w. The report is rendered
// fully before any byte is written, so a failed render leaves w untouched.
func (x *Exporter) Write(ctx context.Context, w http.ResponseWriter, f Format, rs *core.RecordSet) error {
	r, ok := renderers[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	if err := x.limiter.Acquire(ctx); err != nil {
		metrics.ExportsTotal.WithLabelValues(string(f), "rejected").Inc()
		return err
	}
	defer x.limiter.Release()

	metrics.ExportsActive.Inc()
	defer metrics.ExportsActive.Dec()

	rep := Report{
		Title:       x.title,
		Set:         rs,
		Headers:     core.Headers(rs.Columns),
		GeneratedAt: x.now(),
	}

	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, rep); err != nil {
		metrics.ExportsTotal.WithLabelValues(string(f), "error").Inc()
		return fmt.Errorf("render %s export: %w", f, err)
	}

	disposition := "attachment"
	if r.Inline() {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", r.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
		"filename": x.Filename(rs, f),
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s export: %w", f, err)
	}

	metrics.ExportsTotal.WithLabelValues(string(f), "ok").Inc()
	return nil
}

// Status returns the current export limiter state.
func (x *Exporter) Status() LimiterStatus {
	return x.limiter.Status()
}

// WaitForDrain blocks until in-flight exports finish or ctx is done.
func (x *Exporter) WaitForDrain(ctx context.Context) error {
	return x.limiter.WaitForDrain(ctx)
}
