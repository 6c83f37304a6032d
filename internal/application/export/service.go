// Package export produces the downloadable invoice artifacts (PDF and XML)
// from a read-only snapshot of the draft. Exporting never mutates the draft
// and can be re-invoked at will.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/grayvally/invoicer-api/internal/application/draft"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/domain/invoice"
	"github.com/grayvally/invoicer-api/pkg/logger"
)

// Input is everything a document generator needs: the draft snapshot, its
// computed totals and the (optional) rasterized logo.
type Input struct {
	Draft   entity.InvoiceDraft
	Totals  invoice.Totals
	Logo    []byte
	LogoExt string // "png" or "jpg"; empty when no logo could be loaded
}

// PDFGenerator is the outbound port for the paginated document layout.
type PDFGenerator interface {
	Generate(ctx context.Context, in Input) ([]byte, error)
}

// XMLGenerator is the outbound port for the XML rendition.
type XMLGenerator interface {
	Generate(in Input) ([]byte, error)
}

// maxLogoBytes caps how much image data the logo loader will read.
const maxLogoBytes = 2 << 20

// Service snapshots the draft and drives the generators.
type Service struct {
	drafts  *draft.Service
	pdf     PDFGenerator
	xml     XMLGenerator
	logoRef string // local path or http(s) URL, possibly empty
	client  *http.Client
	log     *logger.Logger
}

// NewService builds the export service. logoRef may be empty.
func NewService(drafts *draft.Service, pdf PDFGenerator, xml XMLGenerator, logoRef string, log *logger.Logger) *Service {
	return &Service{
		drafts:  drafts,
		pdf:     pdf,
		xml:     xml,
		logoRef: logoRef,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// InvoicePDF renders the current draft as a PDF. Returns the document bytes
// and the download filename (invoice-<number>.pdf).
func (s *Service) InvoicePDF(ctx context.Context) ([]byte, string, error) {
	in := s.input(ctx, true)
	data, err := s.pdf.Generate(ctx, in)
	if err != nil {
		return nil, "", fmt.Errorf("export: generate pdf: %w", err)
	}
	return data, artifactName(in.Draft.InvoiceNumber, "pdf"), nil
}

// InvoiceXML renders the current draft as an XML document.
func (s *Service) InvoiceXML(ctx context.Context) ([]byte, string, error) {
	in := s.input(ctx, false)
	data, err := s.xml.Generate(in)
	if err != nil {
		return nil, "", fmt.Errorf("export: generate xml: %w", err)
	}
	return data, artifactName(in.Draft.InvoiceNumber, "xml"), nil
}

func (s *Service) input(ctx context.Context, withLogo bool) Input {
	d, totals := s.drafts.Totals()
	in := Input{Draft: d, Totals: totals}
	if withLogo {
		in.Logo, in.LogoExt = s.loadLogo(ctx)
	}
	return in
}

// loadLogo is best-effort: any fetch, read or decode problem logs a warning
// and the export continues without the logo.
func (s *Service) loadLogo(ctx context.Context) ([]byte, string) {
	if s.logoRef == "" {
		return nil, ""
	}

	var data []byte
	var err error
	if strings.HasPrefix(s.logoRef, "http://") || strings.HasPrefix(s.logoRef, "https://") {
		data, err = s.fetchLogo(ctx)
	} else {
		data, err = os.ReadFile(s.logoRef)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("logo", s.logoRef).Msg("export: logo unavailable, continuing without it")
		return nil, ""
	}
	if len(data) > maxLogoBytes {
		s.log.Warn().Int("bytes", len(data)).Str("logo", s.logoRef).Msg("export: logo too large, continuing without it")
		return nil, ""
	}

	// Fully decode before handing the bytes to the PDF layer: a file with
	// valid magic bytes but a broken body must not make the export fail.
	switch http.DetectContentType(data) {
	case "image/png":
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			s.log.Warn().Err(err).Str("logo", s.logoRef).Msg("export: logo does not decode, continuing without it")
			return nil, ""
		}
		return data, "png"
	case "image/jpeg":
		if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
			s.log.Warn().Err(err).Str("logo", s.logoRef).Msg("export: logo does not decode, continuing without it")
			return nil, ""
		}
		return data, "jpg"
	default:
		s.log.Warn().Str("logo", s.logoRef).Msg("export: logo is not PNG/JPEG, continuing without it")
		return nil, ""
	}
}

func (s *Service) fetchLogo(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.logoRef, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("logo fetch: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
}

// artifactName embeds the invoice number in the download filename, with
// path-hostile characters replaced.
func artifactName(invoiceNumber, ext string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, invoiceNumber)
	cleaned = strings.Trim(cleaned, "-.")
	if cleaned == "" {
		cleaned = "draft"
	}
	return "invoice-" + cleaned + "." + ext
}
