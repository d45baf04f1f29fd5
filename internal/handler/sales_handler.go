package handler

import (
	"fmt"
	"path/filepath"
	"time"

	"salesreport-web/internal/config"
	"salesreport-web/internal/models"
	"salesreport-web/internal/repository"
	"salesreport-web/internal/service"
	"salesreport-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	salesRepo    *repository.SalesRepository
	excelService *service.ExcelService
	cfg          *config.Config
}

func NewSalesHandler(salesRepo *repository.SalesRepository, excelService *service.ExcelService, cfg *config.Config) *SalesHandler {
	return &SalesHandler{
		salesRepo:    salesRepo,
		excelService: excelService,
		cfg:          cfg,
	}
}

func salesFilterFromQuery(c *fiber.Ctx) models.SalesFilter {
	return models.SalesFilter{
		DateFrom:     c.Query("date_from", ""),
		DateTo:       c.Query("date_to", ""),
		CustomerCode: c.Query("customer_code", ""),
		SalesUnit:    c.Query("sales_unit", ""),
	}
}

func (h *SalesHandler) GetSales(c *fiber.Ctx) error {
	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)
	filter := salesFilterFromQuery(c)

	records, total, err := h.salesRepo.FindAll(params.Limit, offset, filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sales", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))
	return utils.PaginatedResponseBuilder(c, "Sales retrieved successfully", fiber.Map{
		"sales": records,
	}, pagination)
}

func (h *SalesHandler) ExportSales(c *fiber.Ctx) error {
	filter := salesFilterFromQuery(c)

	records, err := h.salesRepo.FindAllForExport(filter)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve sales", err)
	}

	fileName := fmt.Sprintf("sales_export_%s.xlsx", time.Now().Format("20060102_150405"))
	outputPath := filepath.Join(h.cfg.ExportPath, fileName)
	if err := h.excelService.ExportSales(records, outputPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export sales", err)
	}

	return c.Download(outputPath, fileName)
}
