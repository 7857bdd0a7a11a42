package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

type testFile struct {
	name string
	mime string
	data []byte
}

func makeFileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="fotos"; filename="%s"`, f.name))
		h.Set("Content-Type", f.mime)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File["fotos"]
}

// pngBytes renders a solid-colour PNG of the given size.
func pngBytes(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestPipeline_DirectStore(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(dir, nil, zerolog.Nop())
	p.nowMilli = func() int64 { return 1700000000000 }

	data := pngBytes(t, 10, 10, color.White)
	headers := makeFileHeaders(t,
		testFile{name: "uno.png", mime: "image/png", data: data},
		testFile{name: "dos.jpg", mime: "image/jpeg", data: []byte("jpegdata")},
	)

	refs, err := p.Store(context.Background(), headers)
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if !strings.HasSuffix(refs[0], "1700000000000-uno.png") {
		t.Fatalf("ref order or naming wrong: %v", refs)
	}
	if !strings.HasSuffix(refs[1], "1700000000000-dos.jpg") {
		t.Fatalf("ref order or naming wrong: %v", refs)
	}

	stored, err := os.ReadFile(filepath.FromSlash(refs[0]))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(stored, data) {
		t.Fatalf("direct strategy must not alter file bytes")
	}
}

func TestPipeline_EmptyBatch(t *testing.T) {
	p := NewPipeline(t.TempDir(), nil, zerolog.Nop())

	refs, err := p.Store(context.Background(), nil)
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if refs != nil {
		t.Fatalf("expected no refs, got %v", refs)
	}
}

func TestPipeline_TooManyFiles(t *testing.T) {
	p := NewPipeline(t.TempDir(), nil, zerolog.Nop())

	files := make([]testFile, MaxFiles+1)
	for i := range files {
		files[i] = testFile{
			name: fmt.Sprintf("f%d.jpg", i),
			mime: "image/jpeg",
			data: []byte("x"),
		}
	}

	if _, err := p.Store(context.Background(), makeFileHeaders(t, files...)); err != domain.ErrUploadTooMany {
		t.Fatalf("expected ErrUploadTooMany, got %v", err)
	}
}

func TestPipeline_RenamedTextFileRejected(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(dir, nil, zerolog.Nop())

	// A .txt renamed to .jpg passes the extension check but carries a
	// text/plain declared type; both filters must agree.
	headers := makeFileHeaders(t, testFile{
		name: "notas.jpg",
		mime: "text/plain",
		data: []byte("hola"),
	})

	if _, err := p.Store(context.Background(), headers); err != domain.ErrUploadType {
		t.Fatalf("expected ErrUploadType, got %v", err)
	}
	assertDirEmpty(t, dir)
}

func TestPipeline_BadExtensionRejected(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(dir, nil, zerolog.Nop())

	headers := makeFileHeaders(t, testFile{
		name: "foto.gif",
		mime: "image/jpeg",
		data: []byte("x"),
	})

	if _, err := p.Store(context.Background(), headers); err != domain.ErrUploadType {
		t.Fatalf("expected ErrUploadType, got %v", err)
	}
	assertDirEmpty(t, dir)
}

func TestPipeline_OversizedRejected(t *testing.T) {
	p := NewPipeline(t.TempDir(), nil, zerolog.Nop())

	headers := makeFileHeaders(t, testFile{
		name: "grande.jpg",
		mime: "image/jpeg",
		data: make([]byte, MaxFileSize+1),
	})

	if _, err := p.Store(context.Background(), headers); err != domain.ErrUploadTooLarge {
		t.Fatalf("expected ErrUploadTooLarge, got %v", err)
	}
}

func TestPipeline_OneBadFileAbortsBatch(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(dir, nil, zerolog.Nop())

	headers := makeFileHeaders(t,
		testFile{name: "ok.png", mime: "image/png", data: pngBytes(t, 4, 4, color.White)},
		testFile{name: "malo.txt", mime: "text/plain", data: []byte("no")},
	)

	if _, err := p.Store(context.Background(), headers); err != domain.ErrUploadType {
		t.Fatalf("expected ErrUploadType, got %v", err)
	}
	// The valid file must not have been persisted either.
	assertDirEmpty(t, dir)
}

func TestPipeline_ResizeStrategyDimensions(t *testing.T) {
	dir := t.TempDir()
	p := NewPipeline(dir, ResizeTransform{Width: 300, Height: 250}, zerolog.Nop())

	inputs := []testFile{
		{name: "ancha.png", mime: "image/png", data: pngBytes(t, 600, 100, color.RGBA{R: 200, A: 255})},
		{name: "alta.png", mime: "image/png", data: pngBytes(t, 100, 600, color.RGBA{B: 200, A: 255})},
	}

	for _, in := range inputs {
		refs, err := p.Store(context.Background(), makeFileHeaders(t, in))
		if err != nil {
			t.Fatalf("%s: Store returned error: %v", in.name, err)
		}

		f, err := os.Open(filepath.FromSlash(refs[0]))
		if err != nil {
			t.Fatalf("%s: stored file missing: %v", in.name, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: decode stored image: %v", in.name, err)
		}

		b := img.Bounds()
		if b.Dx() != 300 || b.Dy() != 250 {
			t.Fatalf("%s: expected 300x250, got %dx%d", in.name, b.Dx(), b.Dy())
		}

		// Letterbox regions must be white.
		r, g, bl, _ := img.At(0, 0).RGBA()
		if r>>8 != 255 || g>>8 != 255 || bl>>8 != 255 {
			t.Fatalf("%s: expected white letterbox corner, got %v", in.name, img.At(0, 0))
		}
	}
}

func TestResizeTransform_PreservesPNGFormat(t *testing.T) {
	out, err := ResizeTransform{Width: 300, Height: 250}.Apply(
		bytes.NewReader(pngBytes(t, 50, 50, color.White)))
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if _, format, err := image.Decode(bytes.NewReader(out)); err != nil || format != "png" {
		t.Fatalf("expected png output, got format=%q err=%v", format, err)
	}
}

func TestResizeTransform_GarbageInput(t *testing.T) {
	if _, err := (ResizeTransform{Width: 300, Height: 250}).Apply(strings.NewReader("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no persisted files, found %d", len(entries))
	}
}
