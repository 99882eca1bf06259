package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/rhu-inventory-api/internal/application/analytics"
	"github.com/jhoicas/rhu-inventory-api/internal/application/auth"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/procurement"
	"github.com/jhoicas/rhu-inventory-api/internal/application/reports"
	"github.com/jhoicas/rhu-inventory-api/internal/application/usecase"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ItemUC        *appinv.ItemUseCase
	LedgerUC      *appinv.LedgerUseCase
	TransferUC    *appinv.TransferUseCase
	ProcurementUC *procurement.UseCase
	PatientUC     *usecase.PatientUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ReportsUC     *reports.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	can := RequireCapability

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authGroup := protected.Group("/auth")
	authGroup.Get("/me", authHandler.Me)
	authGroup.Get("/menu", authHandler.Menu)
	authGroup.Post("/users", can(access.UsersManage), authHandler.RegisterUser)

	// Items
	inv := protected.Group("/inventory")
	itemHandler := NewItemHandler(deps.ItemUC, deps.LedgerUC)
	inv.Get("/items", can(access.InventoryRead), itemHandler.List)
	inv.Post("/items", can(access.InventoryWrite), itemHandler.Create)
	inv.Get("/items/:id", can(access.InventoryRead), itemHandler.GetByID)
	inv.Put("/items/:id", can(access.InventoryWrite), itemHandler.Update)
	inv.Get("/items/:id/transactions", can(access.InventoryRead), itemHandler.Transactions)

	// Movimientos de stock
	stockHandler := NewStockHandler(deps.LedgerUC)
	inv.Post("/receipts", can(access.InventoryWrite), stockHandler.Receive)
	inv.Post("/dispense", can(access.InventoryWrite), stockHandler.Dispense)
	inv.Post("/disposals", can(access.InventoryAdjust), stockHandler.Dispose)
	inv.Get("/adjustments", can(access.InventoryRead), stockHandler.ListAdjustments)
	inv.Post("/adjustments", can(access.InventoryAdjust), stockHandler.Adjust)
	inv.Get("/transactions", can(access.InventoryRead), stockHandler.ListTransactions)

	// Transferencias
	transferHandler := NewTransferHandler(deps.TransferUC)
	inv.Get("/units", can(access.InventoryRead), transferHandler.Units)
	inv.Get("/transfers", can(access.InventoryRead), transferHandler.List)
	inv.Post("/transfers", can(access.InventoryWrite), transferHandler.Create)
	inv.Get("/transfers/:id", can(access.InventoryRead), transferHandler.GetByID)
	inv.Post("/transfers/:id/approve", can(access.TransfersApprove), transferHandler.Approve)
	inv.Post("/transfers/:id/issue", can(access.InventoryWrite), transferHandler.Issue)
	inv.Post("/transfers/:id/receive", can(access.InventoryWrite), transferHandler.Receive)
	inv.Post("/transfers-in", can(access.InventoryWrite), transferHandler.ReceiveIncoming)

	// Compras
	proc := protected.Group("/procurement")
	procHandler := NewProcurementHandler(deps.ProcurementUC)
	proc.Get("/purchase-requests", can(access.ProcurementRead), procHandler.ListPRs)
	proc.Post("/purchase-requests", can(access.ProcurementWrite), procHandler.CreatePR)
	proc.Get("/purchase-requests/:id", can(access.ProcurementRead), procHandler.GetPR)
	proc.Post("/purchase-requests/:id/submit", can(access.ProcurementWrite), procHandler.SubmitPR)
	proc.Post("/purchase-requests/:id/approve", can(access.ProcurementApprove), procHandler.ApprovePR)
	proc.Post("/purchase-requests/:id/deny", can(access.ProcurementApprove), procHandler.DenyPR)
	proc.Get("/purchase-orders", can(access.ProcurementRead), procHandler.ListPOs)
	proc.Post("/purchase-orders", can(access.ProcurementWrite), procHandler.CreatePO)
	proc.Get("/purchase-orders/:id", can(access.ProcurementRead), procHandler.GetPO)
	proc.Post("/purchase-orders/:id/approve", can(access.ProcurementApprove), procHandler.ApprovePO)
	proc.Post("/purchase-orders/:id/cancel", can(access.ProcurementApprove), procHandler.CancelPO)
	proc.Get("/receiving-reports", can(access.ProcurementRead), procHandler.ListWRRs)
	proc.Post("/receiving-reports", can(access.InventoryWrite), procHandler.CreateWRR)
	proc.Get("/receiving-reports/:id", can(access.ProcurementRead), procHandler.GetWRR)
	proc.Get("/invoices", can(access.ProcurementRead), procHandler.ListInvoices)
	proc.Get("/invoices/outstanding", can(access.ProcurementRead), procHandler.Outstanding)
	proc.Post("/invoices", can(access.ProcurementWrite), procHandler.CreateInvoice)
	proc.Post("/invoices/:id/pay", can(access.ProcurementApprove), procHandler.PayInvoice)

	// Pacientes
	patients := protected.Group("/patients")
	patientHandler := NewPatientHandler(deps.PatientUC)
	patients.Get("/", can(access.PatientsRead), patientHandler.List)
	patients.Post("/", can(access.PatientsWrite), patientHandler.Create)
	patients.Get("/:id", can(access.PatientsRead), patientHandler.GetByID)
	patients.Put("/:id", can(access.PatientsWrite), patientHandler.Update)

	// Dashboard y reportes
	protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
	reportHandler := NewReportHandler(deps.ReportsUC)
	protected.Get("/reports/inventory.xlsx", can(access.ReportsRead), reportHandler.InventoryXLSX)
	protected.Get("/reports/stock-card/:itemId.pdf", can(access.ReportsRead), reportHandler.StockCardPDF)
}
