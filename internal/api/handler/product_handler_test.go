package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/commerce-api/internal/api/handler"
	"github.com/mercadito/commerce-api/internal/core/domain"
	"github.com/mercadito/commerce-api/internal/core/ports"
)

type stubProductService struct {
	createFn    func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	listFn      func(ctx context.Context) ([]domain.Product, error)
	getFn       func(ctx context.Context, id string) (*domain.Product, error)
	updateFn    func(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error)
	setActiveFn func(ctx context.Context, id string, active bool) (*domain.Product, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) SetActive(ctx context.Context, id string, active bool) (*domain.Product, error) {
	return s.setActiveFn(ctx, id, active)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubUploader struct {
	storeFn func(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

func (s *stubUploader) Store(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if s.storeFn == nil {
		return nil, nil
	}
	return s.storeFn(ctx, files)
}

// multipartRequest builds a multipart/form-data request with the given text
// fields and one fake image part per file name.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileNames ...string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("writing field %s: %v", key, err)
		}
	}
	for _, name := range fileNames {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="fotos"; filename="`+name+`"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("creating part %s: %v", name, err)
		}
		if _, err := part.Write([]byte("fake-image-bytes")); err != nil {
			t.Fatalf("writing part %s: %v", name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func TestProductCreate_WithPhotos(t *testing.T) {
	var gotInput ports.CreateProductInput
	svc := &stubProductService{
		createFn: func(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			gotInput = input
			return &domain.Product{ID: "p1", Code: input.Code, Name: input.Name, Photos: input.Photos, Active: true}, nil
		},
	}
	var gotFiles int
	up := &stubUploader{
		storeFn: func(_ context.Context, files []*multipart.FileHeader) ([]string, error) {
			gotFiles = len(files)
			return []string{"uploads/1-a.jpg", "uploads/2-b.jpg"}, nil
		},
	}

	e := newEcho()
	e.POST("/api/new-product", handler.NewProductHandler(svc, up).Create)

	req := multipartRequest(t, http.MethodPost, "/api/new-product", map[string]string{
		"codigo":    "CAM001",
		"nombre":    "Camisa",
		"precio":    "19.90",
		"stock":     "10",
		"categoria": "ropa",
	}, "a.jpg", "b.jpg")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if gotFiles != 2 {
		t.Errorf("uploader received %d files, want 2", gotFiles)
	}
	if gotInput.Code != "CAM001" || gotInput.Name != "Camisa" || gotInput.Price != 19.90 || gotInput.Stock != 10 {
		t.Errorf("service input = %+v", gotInput)
	}
	want := []string{"uploads/1-a.jpg", "uploads/2-b.jpg"}
	if !reflect.DeepEqual(gotInput.Photos, want) {
		t.Errorf("photos = %v, want %v", gotInput.Photos, want)
	}
}

func TestProductCreate_WithoutPhotos(t *testing.T) {
	var gotInput ports.CreateProductInput
	svc := &stubProductService{
		createFn: func(_ context.Context, input ports.CreateProductInput) (*domain.Product, error) {
			gotInput = input
			return &domain.Product{ID: "p1", Code: input.Code, Photos: domain.DefaultPhotos(), Active: true}, nil
		},
	}

	e := newEcho()
	e.POST("/api/new-product", handler.NewProductHandler(svc, &stubUploader{}).Create)

	rec := doJSON(e, http.MethodPost, "/api/new-product",
		`{"codigo":"CAM001","nombre":"Camisa","precio":19.9,"stock":10,"categoria":"ropa"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if len(gotInput.Photos) != 0 {
		t.Errorf("photos = %v, want empty so the service assigns placeholders", gotInput.Photos)
	}
}

func TestProductCreate_UploadRejected(t *testing.T) {
	svc := &stubProductService{
		createFn: func(context.Context, ports.CreateProductInput) (*domain.Product, error) {
			t.Fatal("product must not be created when the upload is rejected")
			return nil, nil
		},
	}
	up := &stubUploader{
		storeFn: func(context.Context, []*multipart.FileHeader) ([]string, error) {
			return nil, domain.ErrUploadType
		},
	}

	e := newEcho()
	e.POST("/api/new-product", handler.NewProductHandler(svc, up).Create)

	req := multipartRequest(t, http.MethodPost, "/api/new-product", map[string]string{
		"codigo":    "CAM001",
		"nombre":    "Camisa",
		"precio":    "19.90",
		"stock":     "10",
		"categoria": "ropa",
	}, "virus.exe")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Solo se permiten archivos de imagen") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestProductCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing codigo", `{"nombre":"Camisa","precio":19.9,"stock":10,"categoria":"ropa"}`, "codigo"},
		{"codigo with spaces", `{"codigo":"CAM 001","nombre":"Camisa","precio":19.9,"stock":10,"categoria":"ropa"}`, "codigo"},
		{"missing precio", `{"codigo":"CAM001","nombre":"Camisa","stock":10,"categoria":"ropa"}`, "precio"},
		{"numeric categoria", `{"codigo":"CAM001","nombre":"Camisa","precio":19.9,"stock":10,"categoria":"ropa99"}`, "categoria"},
	}

	svc := &stubProductService{
		createFn: func(context.Context, ports.CreateProductInput) (*domain.Product, error) {
			t.Fatal("service must not be called for invalid payloads")
			return nil, nil
		},
	}
	e := newEcho()
	e.POST("/api/new-product", handler.NewProductHandler(svc, &stubUploader{}).Create)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/new-product", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			errs := decodeFieldErrors(t, rec.Body.Bytes())
			if _, ok := errs[tc.field]; !ok {
				t.Errorf("errors = %v, want key %q", errs, tc.field)
			}
		})
	}
}

func TestProductUpdate_NewPhotosReplaceList(t *testing.T) {
	var gotID string
	var gotInput ports.UpdateProductInput
	svc := &stubProductService{
		updateFn: func(_ context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
			gotID, gotInput = id, input
			return &domain.Product{ID: id, Photos: input.Photos, Active: true}, nil
		},
	}
	up := &stubUploader{
		storeFn: func(_ context.Context, files []*multipart.FileHeader) ([]string, error) {
			if len(files) != 1 {
				t.Fatalf("uploader received %d files, want 1", len(files))
			}
			return []string{"uploads/3-nueva.jpg"}, nil
		},
	}

	e := newEcho()
	e.PUT("/api/product/:id", handler.NewProductHandler(svc, up).Update)

	req := multipartRequest(t, http.MethodPut, "/api/product/p5", map[string]string{
		"precio": "25.50",
	}, "nueva.jpg")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if gotID != "p5" {
		t.Errorf("id = %q, want p5", gotID)
	}
	if gotInput.Price == nil || *gotInput.Price != 25.50 {
		t.Errorf("price = %v, want 25.50", gotInput.Price)
	}
	if gotInput.Stock != nil {
		t.Errorf("stock should stay nil, got %v", *gotInput.Stock)
	}
	if !reflect.DeepEqual(gotInput.Photos, []string{"uploads/3-nueva.jpg"}) {
		t.Errorf("photos = %v", gotInput.Photos)
	}
}

func TestProductPatch_TogglesActive(t *testing.T) {
	var gotID string
	var gotActive bool
	svc := &stubProductService{
		setActiveFn: func(_ context.Context, id string, active bool) (*domain.Product, error) {
			gotID, gotActive = id, active
			return &domain.Product{ID: id, Active: active}, nil
		},
	}

	e := newEcho()
	e.PATCH("/api/product/:id", handler.NewProductHandler(svc, &stubUploader{}).Patch)

	rec := doJSON(e, http.MethodPatch, "/api/product/p2", `{"activo":false}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if gotID != "p2" || gotActive {
		t.Errorf("SetActive(%q, %v), want (\"p2\", false)", gotID, gotActive)
	}
}

func TestProductPatch_MissingActivo(t *testing.T) {
	svc := &stubProductService{
		setActiveFn: func(context.Context, string, bool) (*domain.Product, error) {
			t.Fatal("service must not be called without activo")
			return nil, nil
		},
	}

	e := newEcho()
	e.PATCH("/api/product/:id", handler.NewProductHandler(svc, &stubUploader{}).Patch)

	rec := doJSON(e, http.MethodPatch, "/api/product/p2", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestProductGet_NotFound(t *testing.T) {
	svc := &stubProductService{
		getFn: func(context.Context, string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}

	e := newEcho()
	e.GET("/api/product/:id", handler.NewProductHandler(svc, &stubUploader{}).Get)

	rec := doJSON(e, http.MethodGet, "/api/product/nope", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "No se encontró el producto") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestProductDelete_Success(t *testing.T) {
	var gotID string
	svc := &stubProductService{
		deleteFn: func(_ context.Context, id string) error {
			gotID = id
			return nil
		},
	}

	e := newEcho()
	e.DELETE("/api/product/:id", handler.NewProductHandler(svc, &stubUploader{}).Delete)

	rec := doJSON(e, http.MethodDelete, "/api/product/p9", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != "p9" {
		t.Errorf("deleted id = %q, want p9", gotID)
	}

	var body struct {
		Mensaje string `json:"mensaje"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Mensaje != "Producto eliminado con éxito" {
		t.Errorf("mensaje = %q", body.Mensaje)
	}
}

func TestProductList_Success(t *testing.T) {
	svc := &stubProductService{
		listFn: func(context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: "p1", Code: "CAM001", Active: true},
				{ID: "p2", Code: "PAN002", Active: false},
			}, nil
		},
	}

	e := newEcho()
	e.GET("/api/product", handler.NewProductHandler(svc, &stubUploader{}).List)

	rec := doJSON(e, http.MethodGet, "/api/product", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var products []domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len(products) = %d, want 2", len(products))
	}
}
