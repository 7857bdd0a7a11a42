package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadito/commerce-api/internal/core/ports"
)

// photosField is the multipart field carrying product images.
const photosField = "fotos"

type ProductHandler struct {
	productService ports.ProductService
	uploader       ports.Uploader
}

func NewProductHandler(productService ports.ProductService, uploader ports.Uploader) *ProductHandler {
	return &ProductHandler{productService: productService, uploader: uploader}
}

// formFiles returns the uploaded photo files, or nil when the request is not
// multipart (plain JSON clients).
func formFiles(c echo.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[photosField]
}

// Create adds a product, storing up to 4 uploaded photos first. A rejected
// photo aborts the request before the product document is created.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        codigo     formData  string  true   "Unique product code"
// @Param        nombre     formData  string  true   "Product name"
// @Param        precio     formData  number  true   "Price"
// @Param        stock      formData  integer true   "Stock"
// @Param        categoria  formData  string  true   "Category"
// @Param        fotos      formData  file    false  "Up to 4 images (jpeg, jpg, png)"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  map[string]map[string]string
// @Router       /api/new-product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	photos, err := h.uploader.Store(c.Request().Context(), formFiles(c))
	if err != nil {
		return err
	}

	product, err := h.productService.Create(c.Request().Context(), ports.CreateProductInput{
		Code:     req.Codigo,
		Name:     req.Nombre,
		Price:    req.Precio,
		Stock:    req.Stock,
		Category: req.Categoria,
		Photos:   photos,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// List returns all products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/product [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns a single product by id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  mensajeResponse
// @Router       /api/product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Update modifies a product. Newly uploaded photos replace the photo list
// wholesale; without files the list is left untouched.
//
// @Summary      Update a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "Product id"
// @Param        fotos  formData  file    false "Up to 4 images (jpeg, jpg, png)"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  mensajeResponse
// @Router       /api/product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	photos, err := h.uploader.Store(c.Request().Context(), formFiles(c))
	if err != nil {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Code:     req.Codigo,
		Name:     req.Nombre,
		Price:    req.Precio,
		Stock:    req.Stock,
		Category: req.Categoria,
		Photos:   photos,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// Patch toggles only the activo flag.
//
// @Summary      Toggle a product's active flag
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Product id"
// @Param        body  body      patchProductRequest  true  "New activo value"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  mensajeResponse
// @Router       /api/product/{id} [patch]
func (h *ProductHandler) Patch(c echo.Context) error {
	var req patchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.productService.SetActive(c.Request().Context(), c.Param("id"), *req.Activo)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// Delete removes a product. Its uploaded photos are cleaned up in the
// background; the response does not wait for the files.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  mensajeResponse
// @Failure      404  {object}  mensajeResponse
// @Router       /api/product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.productService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mensajeResponse{Mensaje: "Producto eliminado con éxito"})
}
