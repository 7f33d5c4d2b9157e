package handler

import (
	"errors"
	"io"
	"net/http"

	"hiper-shop-api/internal/dto"
	"hiper-shop-api/internal/middleware"
	"hiper-shop-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	origin := c.Request().Header.Get("Origin")
	userID := middleware.UserID(c)

	resp, err := h.checkoutService.CreateCheckoutSession(ctx, req.Cart, req.CustomerEmail, origin, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) GetOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.QueryParam("session_id")

	view, err := h.checkoutService.GetOrderStatus(ctx, sessionID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID := c.QueryParam("user_id")
	email := c.QueryParam("email")

	orders, err := h.checkoutService.ListOrders(ctx, userID, email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, dto.OrdersResponse{Orders: orders})
}

// StripeWebhook reads the body raw: the signature binds to the exact
// bytes, so nothing may reserialize them first.
func (h *CheckoutHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("failed to read request body"))
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")

	if err := h.checkoutService.HandleWebhook(ctx, body, sigHeader); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrAuthentication):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}

	return c.JSON(status, errorBody(err.Error()))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
