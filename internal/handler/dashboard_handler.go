package handler

import (
	"strconv"

	"salesreport-web/internal/repository"
	"salesreport-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardRepo *repository.DashboardRepository
}

func NewDashboardHandler(dashboardRepo *repository.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{dashboardRepo: dashboardRepo}
}

func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	filter := salesFilterFromQuery(c)

	summary, err := h.dashboardRepo.Summary(filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve summary", err)
	}

	return utils.SuccessResponse(c, "Summary retrieved successfully", summary)
}

func (h *DashboardHandler) GetSalesByMonth(c *fiber.Ctx) error {
	filter := salesFilterFromQuery(c)

	series, err := h.dashboardRepo.SalesByMonth(filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve monthly sales", err)
	}

	return utils.SuccessResponse(c, "Monthly sales retrieved successfully", series)
}

func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	filter := salesFilterFromQuery(c)
	limit := topLimit(c)

	products, err := h.dashboardRepo.TopProducts(limit, filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve top products", err)
	}

	return utils.SuccessResponse(c, "Top products retrieved successfully", products)
}

func (h *DashboardHandler) GetTopCustomers(c *fiber.Ctx) error {
	filter := salesFilterFromQuery(c)
	limit := topLimit(c)

	customers, err := h.dashboardRepo.TopCustomers(limit, filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve top customers", err)
	}

	return utils.SuccessResponse(c, "Top customers retrieved successfully", customers)
}

func (h *DashboardHandler) GetTargetAttainment(c *fiber.Ctx) error {
	period := c.Query("period", "")

	rows, err := h.dashboardRepo.TargetAttainment(period)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve target attainment", err)
	}

	return utils.SuccessResponse(c, "Target attainment retrieved successfully", rows)
}

func topLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return limit
}
