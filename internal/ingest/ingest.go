// internal/ingest/ingest.go
package ingest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
)

// Rasterizer renders a PDF into one PNG per page, in page order. PDF
// rendering is an external collaborator; the server itself ships without an
// implementation and rejects PDFs unless one is plugged in.
type Rasterizer interface {
	RenderPDF(data []byte) ([][]byte, error)
}

// Page is one ingested raster image.
type Page struct {
	Info     string `json:"info"` // display name, e.g. "draft.pdf - P.3"
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

// Result accumulates the content of an upload batch: concatenated text from
// text/markdown files and the ordered page images.
type Result struct {
	Text  string `json:"text"`
	Pages []Page `json:"pages"`
}

// Images returns just the base64 payloads, in page order.
func (r *Result) Images() []string {
	images := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		images = append(images, p.Data)
	}
	return images
}

// PageInfos returns the display names parallel to Images.
func (r *Result) PageInfos() []string {
	infos := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		infos = append(infos, p.Info)
	}
	return infos
}

// Processor converts uploaded files into gateway-ready content.
type Processor struct {
	rasterizer Rasterizer
}

// NewProcessor creates a processor. rasterizer may be nil, in which case
// PDF uploads are rejected as unsupported.
func NewProcessor(rasterizer Rasterizer) *Processor {
	return &Processor{rasterizer: rasterizer}
}

// ProcessFile folds one uploaded file into the result. Text and markdown
// append to the text buffer with a file separator; PNG/JPEG are validated
// and base64-encoded; PDFs go through the rasterizer. Other extensions are
// unsupported.
func (p *Processor) ProcessFile(name string, data []byte, result *Result) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		result.Text += fmt.Sprintf("\n\n--- file: %s ---\n%s", name, string(data))
		return nil

	case ".png":
		return p.addImage(name, data, "image/png", result)

	case ".jpg", ".jpeg":
		return p.addImage(name, data, "image/jpeg", result)

	case ".pdf":
		if p.rasterizer == nil {
			return apperrors.Unsupported(
				fmt.Sprintf("PDF rendering is not available for %s", name), nil)
		}
		pages, err := p.rasterizer.RenderPDF(data)
		if err != nil {
			return apperrors.Unsupported(
				fmt.Sprintf("failed to render PDF %s", name), err)
		}
		for i, pageData := range pages {
			result.Pages = append(result.Pages, Page{
				Info:     fmt.Sprintf("%s - P.%d", name, i+1),
				MIMEType: "image/png",
				Data:     base64.StdEncoding.EncodeToString(pageData),
			})
		}
		return nil

	default:
		return apperrors.Unsupported(
			fmt.Sprintf("unsupported file type: %s", name), nil)
	}
}

func (p *Processor) addImage(name string, data []byte, mimeType string, result *Result) error {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return apperrors.Validation(
			fmt.Sprintf("%s is not a valid image", name), err)
	}
	result.Pages = append(result.Pages, Page{
		Info:     name,
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	})
	return nil
}
