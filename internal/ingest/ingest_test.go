// internal/ingest/ingest_test.go
package ingest

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/MangaStudioMCP/internal/apperrors"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessFileConcatenatesText(t *testing.T) {
	p := NewProcessor(nil)
	var result Result

	require.NoError(t, p.ProcessFile("plot.txt", []byte("act one"), &result))
	require.NoError(t, p.ProcessFile("notes.md", []byte("act two"), &result))

	assert.Contains(t, result.Text, "--- file: plot.txt ---\nact one")
	assert.Contains(t, result.Text, "--- file: notes.md ---\nact two")
	assert.Empty(t, result.Pages)
}

func TestProcessFileAcceptsPNG(t *testing.T) {
	p := NewProcessor(nil)
	var result Result

	data := pngBytes(t)
	require.NoError(t, p.ProcessFile("page1.PNG", data, &result))

	require.Len(t, result.Pages, 1)
	assert.Equal(t, "page1.PNG", result.Pages[0].Info)
	assert.Equal(t, "image/png", result.Pages[0].MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), result.Pages[0].Data)

	assert.Equal(t, []string{result.Pages[0].Data}, result.Images())
	assert.Equal(t, []string{"page1.PNG"}, result.PageInfos())
}

func TestProcessFileRejectsCorruptImage(t *testing.T) {
	p := NewProcessor(nil)
	var result Result

	err := p.ProcessFile("page1.png", []byte("not a png"), &result)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Empty(t, result.Pages)
}

func TestProcessFilePDFWithoutRasterizer(t *testing.T) {
	p := NewProcessor(nil)
	var result Result

	err := p.ProcessFile("draft.pdf", []byte("%PDF-1.7"), &result)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupported, apperrors.KindOf(err))
}

type fakeRasterizer struct {
	pages [][]byte
}

func (f *fakeRasterizer) RenderPDF(data []byte) ([][]byte, error) {
	return f.pages, nil
}

func TestProcessFilePDFWithRasterizer(t *testing.T) {
	p := NewProcessor(&fakeRasterizer{pages: [][]byte{[]byte("p1"), []byte("p2")}})
	var result Result

	require.NoError(t, p.ProcessFile("draft.pdf", []byte("%PDF-1.7"), &result))

	require.Len(t, result.Pages, 2)
	assert.Equal(t, "draft.pdf - P.1", result.Pages[0].Info)
	assert.Equal(t, "draft.pdf - P.2", result.Pages[1].Info)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("p1")), result.Pages[0].Data)
}

func TestProcessFileUnknownExtension(t *testing.T) {
	p := NewProcessor(nil)
	var result Result

	err := p.ProcessFile("cover.psd", []byte("data"), &result)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnsupported, apperrors.KindOf(err))
}
