package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"digital-storefront/internal/dto"
	"digital-storefront/internal/model"
	"digital-storefront/internal/money"
	"digital-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	dashboard, err := h.adminService.Dashboard(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.adminService.ListProducts(ctx)
	if err != nil {
		return err
	}

	resp := make([]dto.AdminProductResponse, len(products))
	for i, product := range products {
		resp[i] = newAdminProductResponse(product)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	input, closeUploads, err := productInputFromForm(c)
	if err != nil {
		return err
	}
	defer closeUploads()

	product, err := h.adminService.CreateProduct(ctx, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newAdminProductResponse(product))
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	input, closeUploads, err := productInputFromForm(c)
	if err != nil {
		return err
	}
	defer closeUploads()

	product, err := h.adminService.UpdateProduct(ctx, c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newAdminProductResponse(product))
}

func (h *AdminHandler) SetProductAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := h.adminService.SetProductAvailability(ctx, c.Param("id"), req.IsAvailableForPurchase); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.adminService.DeleteProduct(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.adminService.ListOrders(ctx)
	if err != nil {
		return err
	}

	resp := make([]dto.OrderResponse, len(orders))
	for i, order := range orders {
		resp[i] = dto.NewOrderResponse(order)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.adminService.DeleteOrder(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.adminService.ListUsers(ctx)
	if err != nil {
		return err
	}

	resp := make([]dto.UserResponse, len(users))
	for i, user := range users {
		resp[i] = dto.UserResponse{
			ID:               user.ID,
			Email:            user.Email,
			OrderCount:       user.OrderCount,
			TotalPaidInCents: user.TotalPaidInCents,
			TotalPaid:        money.FormatCents(user.TotalPaidInCents),
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.adminService.DeleteUser(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func newAdminProductResponse(product *model.Product) dto.AdminProductResponse {
	return dto.AdminProductResponse{
		ProductResponse: dto.NewProductResponse(product),
		FilePath:        product.FilePath,
	}
}

// productInputFromForm reads the multipart product form. Missing files are left nil
// so the service can report them alongside the other field errors.
func productInputFromForm(c echo.Context) (*service.ProductInput, func(), error) {
	input := &service.ProductInput{
		Name:         c.FormValue("name"),
		Description:  c.FormValue("description"),
		PriceInCents: c.FormValue("priceInCents"),
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, field := range []string{"file", "image"} {
		fh, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			closeAll()
			return nil, nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s upload", field))
		}

		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open %s upload: %w", field, err)
		}
		opened = append(opened, f)

		upload := &service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		}
		if field == "file" {
			input.File = upload
		} else {
			input.Image = upload
		}
	}

	return input, closeAll, nil
}
