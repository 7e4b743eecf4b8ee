package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/application/report"
	"github.com/jhoicas/exesman-api/internal/application/usecase"
)

// ExpenseHandler maneja las peticiones HTTP para el recurso Expense.
type ExpenseHandler struct {
	uc       *usecase.ExpenseUseCase
	reportUC *report.ReportUseCase
}

// NewExpenseHandler construye el handler inyectando los casos de uso.
func NewExpenseHandler(uc *usecase.ExpenseUseCase, reportUC *report.ReportUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, reportUC: reportUC}
}

// Create godoc
// @Summary      Crear gasto (dueño, empresa y aprobador derivados del actor; estado forzado a pending)
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Datos del gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" || in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y category son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar gastos visibles del actor
// @Tags         expenses
// @Produce      json
// @Param        status    query  string  false  "Filtro de estado"     Enums(pending, approved, rejected)
// @Param        category  query  string  false  "Filtro de categoría"  Enums(travel, meals, office, equipment, software, other)
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.ExpenseListResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), GetActor(c), c.Query("status"), c.Query("category"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Listar gastos pendientes de aprobación (manager: asignados; admin: todos)
// @Tags         expenses
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ExpenseListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/expenses/pending [get]
func (h *ExpenseHandler) ListPending(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListPending(c.Context(), GetActor(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas sobre el conjunto visible del actor
// @Tags         expenses
// @Produce      json
// @Success      200  {object}  dto.ExpenseStatsResponse
// @Router       /api/expenses/stats [get]
func (h *ExpenseHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de los gastos visibles del actor
// @Tags         expenses
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/expenses/report [get]
func (h *ExpenseHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.Generate(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="expense-report.pdf"`)
	return c.Send(pdfBytes)
}

// GetByID godoc
// @Summary      Obtener gasto por ID (403 si existe pero está fuera del alcance)
// @Tags         expenses
// @Produce      json
// @Param        id   path  string  true  "ID del gasto"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar gasto (solo el dueño y solo mientras está pending)
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.UpdateExpenseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar gasto (manager asignado o admin; solo desde pending)
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.UpdateExpenseStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id}/status [patch]
func (h *ExpenseHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateExpenseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido (approved o rejected)"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar gasto (admin en cualquier estado; dueño solo pending)
// @Tags         expenses
// @Param        id   path  string  true  "ID del gasto"
// @Success      204  "sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
