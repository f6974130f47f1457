package handler

import (
	"net/http"

	"digital-storefront/internal/dto"
	"digital-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.ListAvailable(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

func (h *CatalogHandler) MostPopular(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.MostPopular(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

func (h *CatalogHandler) Newest(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.Newest(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetProduct(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewProductResponse(product))
}
