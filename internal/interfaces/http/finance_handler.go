package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-core/internal/application/dto"
	"github.com/jhoicas/erp-core/internal/application/finance"
)

// FinanceHandler cuentas, asientos y liquidaciones.
type FinanceHandler struct {
	accounts    *finance.AccountUseCase
	entries     *finance.EntryUseCase
	payables    *finance.PayableUseCase
	receivables *finance.ReceivableUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(
	accounts *finance.AccountUseCase,
	entries *finance.EntryUseCase,
	payables *finance.PayableUseCase,
	receivables *finance.ReceivableUseCase,
) *FinanceHandler {
	return &FinanceHandler{accounts: accounts, entries: entries, payables: payables, receivables: receivables}
}

// CreateAccount godoc
// @Summary      Crear cuenta financiera
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Nombre, tipo y saldo inicial"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/finance/accounts [post]
func (h *FinanceHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.accounts.Create(c.UserContext(), scopeFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetAccount godoc
// @Summary      Obtener cuenta financiera
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/accounts/{id} [get]
func (h *FinanceHandler) GetAccount(c *fiber.Ctx) error {
	out, err := h.accounts.GetByID(c.UserContext(), scopeFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListAccounts godoc
// @Summary      Listar cuentas financieras
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/finance/accounts [get]
func (h *FinanceHandler) ListAccounts(c *fiber.Ctx) error {
	out, err := h.accounts.List(c.UserContext(), scopeFrom(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateEntry godoc
// @Summary      Registrar asiento manual
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Asiento"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/entries [post]
func (h *FinanceHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.entries.Create(c.UserContext(), scopeFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEntries godoc
// @Summary      Listar asientos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        account_id  query  string  false  "Filtrar por cuenta"
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/finance/entries [get]
func (h *FinanceHandler) ListEntries(c *fiber.Ctx) error {
	out, err := h.entries.List(c.UserContext(), scopeFrom(c), c.Query("account_id"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePayable godoc
// @Summary      Registrar cuenta por pagar
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePayableRequest  true  "Cuenta por pagar"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/payables [post]
func (h *FinanceHandler) CreatePayable(c *fiber.Ctx) error {
	var in dto.CreatePayableRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.payables.Create(c.UserContext(), scopeFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SettlePayable godoc
// @Summary      Liquidar cuenta por pagar
// @Description  Registra una salida en la cuenta indicada por monto + intereses + multa (o el monto enviado).
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la cuenta por pagar"
// @Param        body  body  dto.SettleRequest  true  "Datos del pago"
// @Success      200   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/payables/{id}/settle [post]
func (h *FinanceHandler) SettlePayable(c *fiber.Ctx) error {
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.payables.Settle(c.UserContext(), scopeFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelPayable godoc
// @Summary      Cancelar cuenta por pagar
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta por pagar"
// @Success      200  {object}  dto.SettlementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/payables/{id}/cancel [post]
func (h *FinanceHandler) CancelPayable(c *fiber.Ctx) error {
	out, err := h.payables.Cancel(c.UserContext(), scopeFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPayable godoc
// @Summary      Obtener cuenta por pagar
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta por pagar"
// @Success      200  {object}  dto.SettlementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/payables/{id} [get]
func (h *FinanceHandler) GetPayable(c *fiber.Ctx) error {
	out, err := h.payables.GetByID(c.UserContext(), scopeFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPayables godoc
// @Summary      Listar cuentas por pagar
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "OPEN, SETTLED o CANCELLED"
// @Success      200  {array}  dto.SettlementResponse
// @Router       /api/finance/payables [get]
func (h *FinanceHandler) ListPayables(c *fiber.Ctx) error {
	out, err := h.payables.List(c.UserContext(), scopeFrom(c), c.Query("status"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateReceivable godoc
// @Summary      Registrar cuenta por cobrar
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceivableRequest  true  "Cuenta por cobrar"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/receivables [post]
func (h *FinanceHandler) CreateReceivable(c *fiber.Ctx) error {
	var in dto.CreateReceivableRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.receivables.Create(c.UserContext(), scopeFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SettleReceivable godoc
// @Summary      Liquidar cuenta por cobrar
// @Description  Registra una entrada en la cuenta indicada.
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la cuenta por cobrar"
// @Param        body  body  dto.SettleRequest  true  "Datos del cobro"
// @Success      200   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/receivables/{id}/settle [post]
func (h *FinanceHandler) SettleReceivable(c *fiber.Ctx) error {
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.receivables.Settle(c.UserContext(), scopeFrom(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CancelReceivable godoc
// @Summary      Cancelar cuenta por cobrar
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta por cobrar"
// @Success      200  {object}  dto.SettlementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/receivables/{id}/cancel [post]
func (h *FinanceHandler) CancelReceivable(c *fiber.Ctx) error {
	out, err := h.receivables.Cancel(c.UserContext(), scopeFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReceivable godoc
// @Summary      Obtener cuenta por cobrar
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta por cobrar"
// @Success      200  {object}  dto.SettlementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/receivables/{id} [get]
func (h *FinanceHandler) GetReceivable(c *fiber.Ctx) error {
	out, err := h.receivables.GetByID(c.UserContext(), scopeFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReceivables godoc
// @Summary      Listar cuentas por cobrar
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "OPEN, SETTLED o CANCELLED"
// @Success      200  {array}  dto.SettlementResponse
// @Router       /api/finance/receivables [get]
func (h *FinanceHandler) ListReceivables(c *fiber.Ctx) error {
	out, err := h.receivables.List(c.UserContext(), scopeFrom(c), c.Query("status"), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
