package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rhu-inventory-api/pkg/logger"
)

// LedgerUseCase registra todo cambio de cantidad: recepción, despacho, baja y ajuste.
// Cada mutación toma el lock de sus items, corre en una transacción y agrega exactamente un asiento al libro.
type LedgerUseCase struct {
	tx          ports.TxRunner
	locker      ports.ItemLocker
	clock       ports.Clock
	observer    ports.InventoryObserver
	log         *logger.Logger
	batches     repository.BatchRepository
	ledger      repository.TransactionRepository
	adjustments repository.AdjustmentRepository
}

// LedgerDeps agrupa las dependencias del caso de uso. Observer y Log son opcionales.
type LedgerDeps struct {
	Tx          ports.TxRunner
	Locker      ports.ItemLocker
	Clock       ports.Clock
	Observer    ports.InventoryObserver
	Log         *logger.Logger
	Batches     repository.BatchRepository
	Ledger      repository.TransactionRepository
	Adjustments repository.AdjustmentRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(d LedgerDeps) *LedgerUseCase {
	uc := &LedgerUseCase{
		tx:          d.Tx,
		locker:      d.Locker,
		clock:       d.Clock,
		observer:    d.Observer,
		log:         d.Log,
		batches:     d.Batches,
		ledger:      d.Ledger,
		adjustments: d.Adjustments,
	}
	if uc.observer == nil {
		uc.observer = ports.NopObserver{}
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.clock == nil {
		uc.clock = ports.ZoneClock{}
	}
	return uc
}

// Now is the use case's clock reading.
func (uc *LedgerUseCase) Now() time.Time { return uc.clock.Now() }

// WithItems runs fn in a transaction while holding the locks of itemIDs.
// Inside fn, item rows must be read with GetForUpdate.
func (uc *LedgerUseCase) WithItems(ctx context.Context, itemIDs []string, fn func(r ports.TxRepos) error) error {
	start := time.Now()
	unlock, err := uc.locker.Lock(ctx, itemIDs...)
	if err != nil {
		return fmt.Errorf("lock items: %w", err)
	}
	defer unlock()
	uc.observer.LockWaited(time.Since(start))
	return uc.tx.Run(ctx, fn)
}

// Receipt describes stock arriving in a new batch.
type Receipt struct {
	ItemID       string
	LotNumber    string
	Quantity     int64
	ExpiryDate   time.Time
	ReceivedDate time.Time // zero means today
	Supplier     string
	WRRNumber    string
	Location     string
	UnitCost     decimal.Decimal
	TxType       string // warehouse_receiving or transfer_in
	PerformedBy  string
	Reference    string
	Remarks      string
}

func (rc Receipt) validate() error {
	if rc.Quantity <= 0 {
		return domain.NewQuantityError("received quantity must be positive, got %d", rc.Quantity)
	}
	if strings.TrimSpace(rc.LotNumber) == "" {
		return domain.NewValidationError("lot_number", "is required")
	}
	if rc.ExpiryDate.IsZero() {
		return domain.NewValidationError("expiry_date", "is required")
	}
	if rc.UnitCost.IsNegative() {
		return domain.NewValidationError("unit_cost", "must not be negative")
	}
	return nil
}

// ReceiveTx creates the batch and its ledger entry inside an open transaction.
// The caller must hold the item lock.
func (uc *LedgerUseCase) ReceiveTx(ctx context.Context, r ports.TxRepos, rc Receipt) (*entity.Batch, *entity.InventoryTransaction, error) {
	if err := rc.validate(); err != nil {
		return nil, nil, err
	}
	item, err := r.Items.GetForUpdate(ctx, rc.ItemID)
	if err != nil {
		return nil, nil, err
	}
	now := uc.clock.Now()
	txn, err := inventory.NewTransaction(inventory.EntryInput{
		ItemID:      item.ID,
		Type:        rc.TxType,
		Delta:       rc.Quantity,
		PerformedBy: rc.PerformedBy,
		Reference:   rc.Reference,
		Remarks:     rc.Remarks,
	}, item.AvailableQuantity, now)
	if err != nil {
		return nil, nil, err
	}

	received := rc.ReceivedDate
	if received.IsZero() {
		received = now
	}
	batch := &entity.Batch{
		ID:              uuid.New().String(),
		ItemID:          item.ID,
		LotNumber:       strings.TrimSpace(rc.LotNumber),
		Quantity:        rc.Quantity,
		InitialQuantity: rc.Quantity,
		ExpiryDate:      rc.ExpiryDate,
		ReceivedDate:    received,
		Supplier:        rc.Supplier,
		WRRNumber:       rc.WRRNumber,
		Location:        rc.Location,
		UnitCost:        rc.UnitCost,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.Batches.Create(ctx, batch); err != nil {
		return nil, nil, err
	}
	if err := uc.applyToItem(ctx, r, item, rc.Quantity); err != nil {
		return nil, nil, err
	}
	txn.BatchID = batch.ID
	if err := uc.appendEntry(ctx, r, txn); err != nil {
		return nil, nil, err
	}
	return batch, txn, nil
}

// Draw describes stock leaving through FEFO allocation.
type Draw struct {
	ItemID      string
	Quantity    int64
	TxType      string // dispense, transfer_out or adjustment
	PerformedBy string
	Reference   string
	Remarks     string
}

// DrawTx allocates FEFO, decrements the drawn batches and the item, and appends one entry.
// The caller must hold the item lock. On error nothing has been written by this call.
func (uc *LedgerUseCase) DrawTx(ctx context.Context, r ports.TxRepos, d Draw) ([]entity.BatchAllocation, *entity.InventoryTransaction, error) {
	item, err := r.Items.GetForUpdate(ctx, d.ItemID)
	if err != nil {
		return nil, nil, err
	}
	batches, err := r.Batches.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, nil, err
	}
	allocs, err := inventory.AllocateFEFO(item.ID, batches, d.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.observer.Rejected(d.TxType, "insufficient_stock")
		}
		return nil, nil, err
	}
	txn, err := inventory.NewTransaction(inventory.EntryInput{
		ItemID:      item.ID,
		Type:        d.TxType,
		Delta:       -d.Quantity,
		PerformedBy: d.PerformedBy,
		Reference:   d.Reference,
		Remarks:     d.Remarks,
	}, item.AvailableQuantity, uc.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]*entity.Batch, len(batches))
	for _, b := range batches {
		byID[b.ID] = b
	}
	for _, a := range allocs {
		b := byID[a.BatchID]
		if err := r.Batches.UpdateQuantity(ctx, b.ID, b.Quantity-a.Quantity); err != nil {
			return nil, nil, err
		}
	}
	if err := uc.applyToItem(ctx, r, item, -d.Quantity); err != nil {
		return nil, nil, err
	}
	if len(allocs) == 1 {
		txn.BatchID = allocs[0].BatchID
	}
	if err := uc.appendEntry(ctx, r, txn); err != nil {
		return nil, nil, err
	}
	return allocs, txn, nil
}

func (uc *LedgerUseCase) applyToItem(ctx context.Context, r ports.TxRepos, item *entity.InventoryItem, delta int64) error {
	if err := inventory.ApplyDelta(item, delta); err != nil {
		return err
	}
	return r.Items.UpdateQuantities(ctx, item.ID, item.TotalQuantity, item.AvailableQuantity)
}

func (uc *LedgerUseCase) appendEntry(ctx context.Context, r ports.TxRepos, txn *entity.InventoryTransaction) error {
	txn.ID = uuid.New().String()
	if err := r.Transactions.Append(ctx, txn); err != nil {
		return err
	}
	uc.observer.EntryAppended(txn.Type, txn.Quantity)
	uc.log.Info().
		Str("item_id", txn.ItemID).
		Str("type", txn.Type).
		Int64("delta", txn.Quantity).
		Int64("beginning", txn.BeginningQuantity).
		Int64("ending", txn.EndingQuantity).
		Str("number", txn.Number).
		Msg("ledger entry appended")
	return nil
}

// Receive registra la entrada de un lote nuevo (warehouse_receiving).
func (uc *LedgerUseCase) Receive(ctx context.Context, userID string, in dto.ReceiveRequest) (*dto.ReceiveResponse, error) {
	expiry, err := dto.ParseDate("expiry_date", in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	received, err := dto.ParseOptionalDate("received_date", in.ReceivedDate)
	if err != nil {
		return nil, err
	}
	rc := Receipt{
		ItemID:      in.ItemID,
		LotNumber:   in.LotNumber,
		Quantity:    in.Quantity,
		ExpiryDate:  expiry,
		Supplier:    in.Supplier,
		WRRNumber:   in.WRRNumber,
		Location:    in.Location,
		UnitCost:    in.UnitCost,
		TxType:      entity.TxTypeWarehouseReceiving,
		PerformedBy: userID,
		Reference:   in.WRRNumber,
		Remarks:     in.Remarks,
	}
	if received != nil {
		rc.ReceivedDate = *received
	}

	var out dto.ReceiveResponse
	err = uc.WithItems(ctx, []string{in.ItemID}, func(r ports.TxRepos) error {
		batch, txn, err := uc.ReceiveTx(ctx, r, rc)
		if err != nil {
			return err
		}
		out.Batch = ToBatchResponse(batch, txn.CreatedAt)
		out.Transaction = ToTransactionResponse(txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Dispense entrega unidades a un paciente o servicio tomando lotes en orden FEFO.
func (uc *LedgerUseCase) Dispense(ctx context.Context, userID string, in dto.DispenseRequest) (*dto.DispenseResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewQuantityError("dispensed quantity must be positive, got %d", in.Quantity)
	}
	var out dto.DispenseResponse
	err := uc.WithItems(ctx, []string{in.ItemID}, func(r ports.TxRepos) error {
		reference := strings.TrimSpace(in.Reference)
		if in.PatientID != "" {
			p, err := r.Patients.GetByID(ctx, in.PatientID)
			if err != nil {
				return err
			}
			reference = strings.TrimSpace(p.PatientNumber + " " + reference)
		}
		allocs, txn, err := uc.DrawTx(ctx, r, Draw{
			ItemID:      in.ItemID,
			Quantity:    in.Quantity,
			TxType:      entity.TxTypeDispense,
			PerformedBy: userID,
			Reference:   reference,
			Remarks:     in.Remarks,
		})
		if err != nil {
			return err
		}
		out.Transaction = ToTransactionResponse(txn)
		out.Allocations = ToAllocationResponses(allocs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Dispose da de baja unidades de un lote específico (vencido o dañado).
func (uc *LedgerUseCase) Dispose(ctx context.Context, userID string, in dto.DisposeRequest) (*dto.TransactionResponse, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "is required")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewQuantityError("disposed quantity must be positive, got %d", in.Quantity)
	}
	batch, err := uc.batches.GetByID(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}

	var out dto.TransactionResponse
	err = uc.WithItems(ctx, []string{batch.ItemID}, func(r ports.TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, batch.ItemID)
		if err != nil {
			return err
		}
		current, err := r.Batches.GetByID(ctx, batch.ID)
		if err != nil {
			return err
		}
		if in.Quantity > current.Quantity {
			uc.observer.Rejected(entity.TxTypeDisposal, "insufficient_stock")
			return &domain.InsufficientStockError{ItemID: item.ID, Requested: in.Quantity, Available: current.Quantity}
		}
		txn, err := inventory.NewTransaction(inventory.EntryInput{
			ItemID:      item.ID,
			BatchID:     current.ID,
			Type:        entity.TxTypeDisposal,
			Delta:       -in.Quantity,
			PerformedBy: userID,
			Reference:   current.LotNumber,
			Remarks:     reason,
		}, item.AvailableQuantity, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := r.Batches.UpdateQuantity(ctx, current.ID, current.Quantity-in.Quantity); err != nil {
			return err
		}
		if err := uc.applyToItem(ctx, r, item, -in.Quantity); err != nil {
			return err
		}
		if err := uc.appendEntry(ctx, r, txn); err != nil {
			return err
		}
		out = ToTransactionResponse(txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Adjust fija la cantidad contada de un item. La diferencia se calcula con la cantidad leída bajo lock.
// Una disminución sin lote se toma FEFO; un aumento exige batch_id.
func (uc *LedgerUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	var out dto.AdjustmentResponse
	err := uc.WithItems(ctx, []string{in.ItemID}, func(r ports.TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		adj, err := inventory.NewStockAdjustment(inventory.AdjustmentInput{
			ItemID:        item.ID,
			BatchID:       in.BatchID,
			Type:          in.Type,
			QuantityAfter: in.QuantityAfter,
			Reason:        in.Reason,
			PerformedBy:   userID,
		}, item.AvailableQuantity, now)
		if err != nil {
			return err
		}
		txn, err := inventory.NewTransaction(inventory.EntryInput{
			ItemID:      item.ID,
			BatchID:     in.BatchID,
			Type:        entity.TxTypeAdjustment,
			Delta:       adj.Difference,
			PerformedBy: userID,
			Remarks:     adj.Reason,
		}, item.AvailableQuantity, now)
		if err != nil {
			return err
		}

		switch {
		case in.BatchID != "":
			b, err := r.Batches.GetByID(ctx, in.BatchID)
			if err != nil {
				return err
			}
			if b.ItemID != item.ID {
				return domain.NewValidationError("batch_id", "batch does not belong to the item")
			}
			if b.Quantity+adj.Difference < 0 {
				return domain.NewQuantityError("batch %s holds %d, cannot remove %d", b.LotNumber, b.Quantity, -adj.Difference)
			}
			if err := r.Batches.UpdateQuantity(ctx, b.ID, b.Quantity+adj.Difference); err != nil {
				return err
			}
		case adj.Difference < 0:
			batches, err := r.Batches.ListByItem(ctx, item.ID)
			if err != nil {
				return err
			}
			allocs, err := inventory.AllocateFEFO(item.ID, batches, -adj.Difference)
			if err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					uc.observer.Rejected(entity.TxTypeAdjustment, "insufficient_stock")
				}
				return err
			}
			byID := make(map[string]*entity.Batch, len(batches))
			for _, b := range batches {
				byID[b.ID] = b
			}
			for _, a := range allocs {
				if err := r.Batches.UpdateQuantity(ctx, a.BatchID, byID[a.BatchID].Quantity-a.Quantity); err != nil {
					return err
				}
			}
			if len(allocs) == 1 {
				txn.BatchID = allocs[0].BatchID
			}
		default:
			return domain.NewValidationError("batch_id", "is required when increasing stock")
		}

		if err := uc.applyToItem(ctx, r, item, adj.Difference); err != nil {
			return err
		}
		if err := uc.appendEntry(ctx, r, txn); err != nil {
			return err
		}
		seq, err := r.Sequences.Next(ctx, repository.SeqAdjustment)
		if err != nil {
			return err
		}
		adj.ID = uuid.New().String()
		adj.Number = domain.DocumentNumber("ADJ", now.Year(), seq)
		adj.BatchID = txn.BatchID
		adj.TransactionID = txn.ID
		if err := r.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		out = ToAdjustmentResponse(adj)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTransactions lista el libro de movimientos, más reciente primero.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, in dto.TransactionListRequest) (*dto.TransactionListResponse, error) {
	in.DefaultPage()
	from, err := dto.ParseOptionalDate("from", in.From)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseOptionalDate("to", in.To)
	if err != nil {
		return nil, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	if in.Type != "" && !entity.IsValidTxType(in.Type) {
		return nil, domain.NewValidationError("type", "unknown transaction type")
	}
	list, total, err := uc.ledger.List(ctx, repository.TransactionFilter{
		ItemID: in.ItemID,
		Type:   in.Type,
		From:   from,
		To:     to,
		Page:   repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Transactions: out,
		Page:         dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ListAdjustments lista ajustes con su etiqueta de presentación.
func (uc *LedgerUseCase) ListAdjustments(ctx context.Context, itemID string, page dto.PageRequest) (*dto.AdjustmentListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.adjustments.List(ctx, repository.AdjustmentFilter{
		ItemID: itemID,
		Page:   repository.Page{Limit: page.Limit, Offset: page.Offset},
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{
		Adjustments: out,
		Page:        dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
