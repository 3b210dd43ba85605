package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrExternalRender is returned when a document backend fails to produce
// output. The render can be retried.
var ErrExternalRender = errors.New("document rendering failed")

// Export formats.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
)

// Document is a rendered invoice file ready to be downloaded.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// DocumentRenderer turns a rendered invoice into a downloadable file.
type DocumentRenderer interface {
	Format() string
	Render(ctx context.Context, doc *RenderedDocument, profile CompanyProfile) (*Document, error)
}

// externalRenderError wraps a backend failure in ErrExternalRender.
func externalRenderError(format string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExternalRender, format, err)
}

// VehicleInfo formats the printed identifiers of one vehicle line, e.g.
// "1. LR: 10886 | Veh: MH 43 Y 7655 | Cont: -".
func VehicleInfo(l DocumentLine) string {
	return fmt.Sprintf("%d. LR: %s | Veh: %s | Cont: %s",
		l.SINo, OrDash(l.LRNo), OrDash(l.VehicleNo), OrDash(l.ContainerNo))
}

// OrDash returns "-" for blank identifiers.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
