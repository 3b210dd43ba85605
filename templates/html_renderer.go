package templates

import (
	"context"
	"fmt"

	"ptcmobile/services"
)

// HTMLRenderer serves the invoice markup as a downloadable HTML file.
type HTMLRenderer struct{}

// Format implements services.DocumentRenderer.
func (HTMLRenderer) Format() string { return services.FormatHTML }

// Render implements services.DocumentRenderer.
func (HTMLRenderer) Render(ctx context.Context, doc *services.RenderedDocument, profile services.CompanyProfile) (*services.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: html: %v", services.ErrExternalRender, err)
	}
	markup, err := RenderMarkup(ctx, doc, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: html: %v", services.ErrExternalRender, err)
	}
	return &services.Document{
		Filename:    services.DocumentFilename(doc, services.FormatHTML),
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(markup),
	}, nil
}
