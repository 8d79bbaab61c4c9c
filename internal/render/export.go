package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tanakrit-dev/thaidoc/internal/document"
)

// Format selects the artifact type produced by an Exporter.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatXML  Format = "xml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatHTML:
		return FormatHTML, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatXML:
		return FormatXML, nil
	}
	return "", fmt.Errorf("unknown format %q (want pdf, xml or html)", s)
}

func (f Format) contentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXML:
		return "application/xml"
	}
	return "text/html"
}

// Exporter stamps drafts with a running number and renders them in a
// fixed format. It is the unit of work handed to the export queue.
type Exporter struct {
	cfg       document.Config
	format    Format
	numbering *document.Numbering
	pdf       PDFRenderer
}

func NewExporter(cfg document.Config, format Format) *Exporter {
	return &Exporter{
		cfg:       cfg,
		format:    format,
		numbering: document.NewNumbering(),
		pdf:       NewPDFRenderer(cfg),
	}
}

func (e *Exporter) Render(ctx context.Context, draft document.Draft) (Artifact, error) {
	issued := e.numbering.Issue(draft, time.Now())
	totals := draft.Totals()

	var body []byte
	switch e.format {
	case FormatPDF:
		pdf, err := e.pdf.Render(ctx, issued, draft, totals)
		if err != nil {
			return Artifact{}, err
		}
		body = pdf
	case FormatXML:
		out, err := XML(issued, draft, totals)
		if err != nil {
			return Artifact{}, err
		}
		body = []byte(out)
	default:
		out, err := HTML(issued, draft, totals)
		if err != nil {
			return Artifact{}, err
		}
		body = []byte(out)
	}

	return Artifact{
		Name:        fmt.Sprintf("%s.%s", issued.DocNumber, e.format),
		Body:        body,
		ContentType: e.format.contentType(),
	}, nil
}
