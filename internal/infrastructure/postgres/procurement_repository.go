package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var (
	_ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)
	_ repository.PurchaseOrderRepository   = (*PurchaseOrderRepo)(nil)
	_ repository.ReceivingReportRepository = (*ReceivingReportRepo)(nil)
	_ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)
)

// procurementWhere aplica los filtros comunes de compras sobre la columna de número dada.
func procurementWhere(f repository.ProcurementFilter, numberCol string, withStatus bool) where {
	var w where
	if f.Search != "" {
		w.add("lower("+numberCol+") LIKE ?", like(f.Search))
	}
	if withStatus && f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Department != "" {
		w.add("lower(department) = lower(?)", f.Department)
	}
	if f.Supplier != "" {
		w.add("lower(supplier) LIKE ?", like(f.Supplier))
	}
	return w
}

// collect lee todas las filas con scan.
func collect[T any](rows pgx.Rows, op string, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, v)
	}
	return out, wrap(op, rows.Err())
}

// ── Solicitudes de compra (PR) ──────────────────────────────────────────────

// PurchaseRequestRepo implementa repository.PurchaseRequestRepository.
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el repositorio de PR.
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

const prColumns = `id, pr_number, department, purpose, status, denial_reason, requested_by, approved_by,
	created_at, updated_at`

func scanPR(row pgx.Row) (*entity.PurchaseRequest, error) {
	var pr entity.PurchaseRequest
	err := row.Scan(&pr.ID, &pr.PRNumber, &pr.Department, &pr.Purpose, &pr.Status, &pr.DenialReason,
		&pr.RequestedBy, &pr.ApprovedBy, &pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *PurchaseRequestRepo) Create(ctx context.Context, pr *entity.PurchaseRequest) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_requests (`+prColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pr.ID, pr.PRNumber, pr.Department, pr.Purpose, pr.Status, pr.DenialReason,
		pr.RequestedBy, pr.ApprovedBy, pr.CreatedAt, pr.UpdatedAt)
	if err != nil {
		return wrap("insert purchase request", err)
	}
	for i, l := range pr.Lines {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO purchase_request_lines (purchase_request_id, line_no, item_id, description, unit,
				quantity, estimated_unit_cost)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)`,
			pr.ID, i+1, l.ItemID, l.Description, l.Unit, l.Quantity, l.EstimatedUnitCost); err != nil {
			return wrap("insert purchase request line", err)
		}
	}
	return nil
}

func (r *PurchaseRequestRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	pr, err := scanPR(r.q.QueryRow(ctx, `SELECT `+prColumns+` FROM purchase_requests WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get purchase request", err)
	}
	return pr, r.loadLines(ctx, []*entity.PurchaseRequest{pr})
}

func (r *PurchaseRequestRepo) Update(ctx context.Context, pr *entity.PurchaseRequest) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_requests SET status = $2, approved_by = $3, denial_reason = $4, updated_at = $5
		WHERE id = $1`, pr.ID, pr.Status, pr.ApprovedBy, pr.DenialReason, pr.UpdatedAt)
	return mustAffect(tag, err, "update purchase request")
}

func (r *PurchaseRequestRepo) List(ctx context.Context, f repository.ProcurementFilter) ([]*entity.PurchaseRequest, int, error) {
	w := procurementWhere(f, "pr_number", true)
	total, err := w.count(ctx, r.q, "purchase_requests")
	if err != nil {
		return nil, 0, wrap("count purchase requests", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx,
		`SELECT `+prColumns+` FROM purchase_requests`+w.sql()+` ORDER BY created_at DESC, pr_number DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list purchase requests", err)
	}
	out, err := collect(rows, "scan purchase request", scanPR)
	if err != nil {
		return nil, 0, err
	}
	return out, total, r.loadLines(ctx, out)
}

func (r *PurchaseRequestRepo) loadLines(ctx context.Context, prs []*entity.PurchaseRequest) error {
	if len(prs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.PurchaseRequest, len(prs))
	ids := make([]string, 0, len(prs))
	for _, pr := range prs {
		byID[pr.ID] = pr
		ids = append(ids, pr.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT purchase_request_id, COALESCE(item_id, ''), description, unit, quantity, estimated_unit_cost
		FROM purchase_request_lines WHERE purchase_request_id = ANY($1)
		ORDER BY purchase_request_id, line_no`, ids)
	if err != nil {
		return wrap("list purchase request lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			prID string
			l    entity.PurchaseRequestLine
		)
		if err := rows.Scan(&prID, &l.ItemID, &l.Description, &l.Unit, &l.Quantity, &l.EstimatedUnitCost); err != nil {
			return wrap("scan purchase request line", err)
		}
		byID[prID].Lines = append(byID[prID].Lines, l)
	}
	return wrap("list purchase request lines", rows.Err())
}

// ── Órdenes de compra (PO) ──────────────────────────────────────────────────

// PurchaseOrderRepo implementa repository.PurchaseOrderRepository.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el repositorio de PO.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, po_number, purchase_request_id, supplier, status, created_by, approved_by,
	created_at, updated_at`

func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.PONumber, &po.PurchaseRequestID, &po.Supplier, &po.Status,
		&po.CreatedBy, &po.ApprovedBy, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (`+poColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		po.ID, po.PONumber, po.PurchaseRequestID, po.Supplier, po.Status,
		po.CreatedBy, po.ApprovedBy, po.CreatedAt, po.UpdatedAt)
	if err != nil {
		return wrap("insert purchase order", err)
	}
	for i, l := range po.Lines {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_lines (purchase_order_id, line_no, item_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5)`,
			po.ID, i+1, l.ItemID, l.Quantity, l.UnitCost); err != nil {
			return wrap("insert purchase order line", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la PO mientras se registra su recepción.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, sql, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPO(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, wrap("get purchase order", err)
	}
	return po, r.loadLines(ctx, []*entity.PurchaseOrder{po})
}

func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, approved_by = $3, updated_at = $4 WHERE id = $1`,
		po.ID, po.Status, po.ApprovedBy, po.UpdatedAt)
	return mustAffect(tag, err, "update purchase order")
}

func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.ProcurementFilter) ([]*entity.PurchaseOrder, int, error) {
	f.Department = ""
	w := procurementWhere(f, "po_number", true)
	total, err := w.count(ctx, r.q, "purchase_orders")
	if err != nil {
		return nil, 0, wrap("count purchase orders", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx,
		`SELECT `+poColumns+` FROM purchase_orders`+w.sql()+` ORDER BY created_at DESC, po_number DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list purchase orders", err)
	}
	out, err := collect(rows, "scan purchase order", scanPO)
	if err != nil {
		return nil, 0, err
	}
	return out, total, r.loadLines(ctx, out)
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, pos []*entity.PurchaseOrder) error {
	if len(pos) == 0 {
		return nil
	}
	byID := make(map[string]*entity.PurchaseOrder, len(pos))
	ids := make([]string, 0, len(pos))
	for _, po := range pos {
		byID[po.ID] = po
		ids = append(ids, po.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT purchase_order_id, item_id, quantity, unit_cost
		FROM purchase_order_lines WHERE purchase_order_id = ANY($1)
		ORDER BY purchase_order_id, line_no`, ids)
	if err != nil {
		return wrap("list purchase order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			poID string
			l    entity.PurchaseOrderLine
		)
		if err := rows.Scan(&poID, &l.ItemID, &l.Quantity, &l.UnitCost); err != nil {
			return wrap("scan purchase order line", err)
		}
		byID[poID].Lines = append(byID[poID].Lines, l)
	}
	return wrap("list purchase order lines", rows.Err())
}

// ── Reportes de recepción (WRR) ─────────────────────────────────────────────

// ReceivingReportRepo implementa repository.ReceivingReportRepository. No hay Update: un WRR es inmutable.
type ReceivingReportRepo struct {
	q Querier
}

// NewReceivingReportRepository construye el repositorio de WRR.
func NewReceivingReportRepository(q Querier) *ReceivingReportRepo {
	return &ReceivingReportRepo{q: q}
}

const wrrColumns = `id, wrr_number, purchase_order_id, supplier, received_by, received_date, created_at`

func scanWRR(row pgx.Row) (*entity.WarehouseReceivingReport, error) {
	var w entity.WarehouseReceivingReport
	err := row.Scan(&w.ID, &w.WRRNumber, &w.PurchaseOrderID, &w.Supplier, &w.ReceivedBy, &w.ReceivedDate, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *ReceivingReportRepo) Create(ctx context.Context, wrr *entity.WarehouseReceivingReport) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receiving_reports (`+wrrColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		wrr.ID, wrr.WRRNumber, wrr.PurchaseOrderID, wrr.Supplier, wrr.ReceivedBy, wrr.ReceivedDate, wrr.CreatedAt)
	if err != nil {
		return wrap("insert receiving report", err)
	}
	for i, l := range wrr.Lines {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO receiving_report_lines (receiving_report_id, line_no, item_id, batch_id, lot_number,
				quantity, expiry_date, location, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			wrr.ID, i+1, l.ItemID, l.BatchID, l.LotNumber, l.Quantity, l.ExpiryDate, l.Location, l.UnitCost); err != nil {
			return wrap("insert receiving report line", err)
		}
	}
	return nil
}

func (r *ReceivingReportRepo) GetByID(ctx context.Context, id string) (*entity.WarehouseReceivingReport, error) {
	wrr, err := scanWRR(r.q.QueryRow(ctx, `SELECT `+wrrColumns+` FROM receiving_reports WHERE id = $1`, id))
	if err != nil {
		return nil, wrap("get receiving report", err)
	}
	return wrr, r.loadLines(ctx, []*entity.WarehouseReceivingReport{wrr})
}

func (r *ReceivingReportRepo) List(ctx context.Context, f repository.ProcurementFilter) ([]*entity.WarehouseReceivingReport, int, error) {
	f.Department = ""
	w := procurementWhere(f, "wrr_number", false)
	total, err := w.count(ctx, r.q, "receiving_reports")
	if err != nil {
		return nil, 0, wrap("count receiving reports", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx,
		`SELECT `+wrrColumns+` FROM receiving_reports`+w.sql()+` ORDER BY created_at DESC, wrr_number DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list receiving reports", err)
	}
	out, err := collect(rows, "scan receiving report", scanWRR)
	if err != nil {
		return nil, 0, err
	}
	return out, total, r.loadLines(ctx, out)
}

func (r *ReceivingReportRepo) loadLines(ctx context.Context, wrrs []*entity.WarehouseReceivingReport) error {
	if len(wrrs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.WarehouseReceivingReport, len(wrrs))
	ids := make([]string, 0, len(wrrs))
	for _, w := range wrrs {
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT receiving_report_id, item_id, batch_id, lot_number, quantity, expiry_date, location, unit_cost
		FROM receiving_report_lines WHERE receiving_report_id = ANY($1)
		ORDER BY receiving_report_id, line_no`, ids)
	if err != nil {
		return wrap("list receiving report lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			wrrID string
			l     entity.ReceivingLine
		)
		if err := rows.Scan(&wrrID, &l.ItemID, &l.BatchID, &l.LotNumber, &l.Quantity, &l.ExpiryDate,
			&l.Location, &l.UnitCost); err != nil {
			return wrap("scan receiving report line", err)
		}
		byID[wrrID].Lines = append(byID[wrrID].Lines, l)
	}
	return wrap("list receiving report lines", rows.Err())
}

// ── Facturas de proveedor ───────────────────────────────────────────────────

// PurchaseInvoiceRepo implementa repository.PurchaseInvoiceRepository.
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el repositorio de facturas de compra.
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, receiving_report_id, supplier, amount, status, due_date, paid_at,
	created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ReceivingReportID, &inv.Supplier, &inv.Amount, &inv.Status,
		&inv.DueDate, &inv.PaidAt, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *PurchaseInvoiceRepo) Create(ctx context.Context, inv *entity.PurchaseInvoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		inv.ID, inv.InvoiceNumber, inv.ReceivingReportID, inv.Supplier, inv.Amount, inv.Status,
		inv.DueDate, inv.PaidAt, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
	return wrap("insert purchase invoice", err)
}

func (r *PurchaseInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM purchase_invoices WHERE id = $1`, id))
	return inv, wrap("get purchase invoice", err)
}

func (r *PurchaseInvoiceRepo) Update(ctx context.Context, inv *entity.PurchaseInvoice) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_invoices SET status = $2, paid_at = $3, due_date = $4, updated_at = $5 WHERE id = $1`,
		inv.ID, inv.Status, inv.PaidAt, inv.DueDate, inv.UpdatedAt)
	return mustAffect(tag, err, "update purchase invoice")
}

func (r *PurchaseInvoiceRepo) List(ctx context.Context, f repository.ProcurementFilter) ([]*entity.PurchaseInvoice, int, error) {
	f.Department = ""
	w := procurementWhere(f, "invoice_number", true)
	total, err := w.count(ctx, r.q, "purchase_invoices")
	if err != nil {
		return nil, 0, wrap("count purchase invoices", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM purchase_invoices`+w.sql()+` ORDER BY created_at DESC, invoice_number DESC`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list purchase invoices", err)
	}
	out, err := collect(rows, "scan purchase invoice", scanInvoice)
	return out, total, err
}
