package export_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayvally/invoicer-api/internal/application/draft"
	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/application/export"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/infrastructure/kv"
	"github.com/grayvally/invoicer-api/internal/infrastructure/pdf"
	"github.com/grayvally/invoicer-api/internal/infrastructure/ubl"
	"github.com/grayvally/invoicer-api/pkg/logger"
)

func strPtr(s string) *string { return &s }

func newExportServiceWithLogo(t *testing.T, logoRef string) (*export.Service, *draft.Service) {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	drafts := draft.NewService(context.Background(), kv.NewMemoryStore(), entity.DraftSeed{
		Issuer:   entity.PartyInfo{Name: "GrayVally"},
		Currency: entity.CurrencyUSD,
	}, log)
	svc := export.NewService(drafts, pdf.NewGenerator(), ubl.NewBuilder(), logoRef, log)
	return svc, drafts
}

func newExportService(t *testing.T) (*export.Service, *draft.Service) {
	t.Helper()
	return newExportServiceWithLogo(t, "")
}

func TestInvoicePDF(t *testing.T) {
	svc, drafts := newExportService(t)
	drafts.Update(dto.UpdateDraftRequest{InvoiceNumber: strPtr("INV-2026-0042")})

	data, name, err := svc.InvoicePDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-2026-0042.pdf", name)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestInvoiceXML(t *testing.T) {
	svc, drafts := newExportService(t)
	drafts.Update(dto.UpdateDraftRequest{InvoiceNumber: strPtr("INV-2026-0042")})

	data, name, err := svc.InvoiceXML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-2026-0042.xml", name)
	assert.Contains(t, string(data), "INV-2026-0042")
}

// Exporting is read-only: the draft is identical before and after, and the
// export can be repeated.
func TestExportDoesNotMutateDraft(t *testing.T) {
	svc, drafts := newExportService(t)
	before := drafts.Current()

	_, _, err := svc.InvoicePDF(context.Background())
	require.NoError(t, err)
	_, _, err = svc.InvoicePDF(context.Background())
	require.NoError(t, err)

	after := drafts.Current()
	assert.Equal(t, before, after)
}

func TestArtifactNameSanitized(t *testing.T) {
	svc, drafts := newExportService(t)

	drafts.Update(dto.UpdateDraftRequest{InvoiceNumber: strPtr("../../etc/passwd #1")})
	_, name, err := svc.InvoiceXML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "invoice-etc-passwd--1.xml", name)
	assert.NotContains(t, name, "/")

	drafts.Update(dto.UpdateDraftRequest{InvoiceNumber: strPtr("///")})
	_, name, err = svc.InvoiceXML(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "invoice-draft.xml", name)
}

func TestMissingLogoIsNotFatal(t *testing.T) {
	svc, _ := newExportServiceWithLogo(t, "/no/such/logo.png")

	data, _, err := svc.InvoicePDF(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

// A file with valid PNG magic bytes but a broken body must be dropped, not
// handed to the PDF layer where it would fail the whole export.
func TestCorruptLogoIsNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	corrupt := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	svc, _ := newExportServiceWithLogo(t, path)
	data, _, err := svc.InvoicePDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestOversizedLogoIsNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, make([]byte, (2<<20)+1), 0o644))

	svc, _ := newExportServiceWithLogo(t, path)
	data, _, err := svc.InvoicePDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestValidLogoIsEmbedded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	svc, _ := newExportServiceWithLogo(t, path)
	data, _, err := svc.InvoicePDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
