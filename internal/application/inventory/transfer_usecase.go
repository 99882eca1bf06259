package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

// TransferUseCase maneja transferencias entre unidades: draft → approved → issued → received.
type TransferUseCase struct {
	ledger    *LedgerUseCase
	tx        ports.TxRunner
	transfers repository.TransferRepository
	units     repository.UnitRepository
	items     repository.ItemRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	ledger *LedgerUseCase,
	tx ports.TxRunner,
	transfers repository.TransferRepository,
	units repository.UnitRepository,
	items repository.ItemRepository,
) *TransferUseCase {
	return &TransferUseCase{ledger: ledger, tx: tx, transfers: transfers, units: units, items: items}
}

// Create registra una transferencia en borrador. No mueve stock.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.NewValidationError("lines", "at least one line is required")
	}
	unit, err := uc.units.GetByID(ctx, in.DestinationUnitID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(in.Lines))
	lines := make([]entity.TransferLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, domain.NewQuantityError("transfer quantity must be positive, got %d", l.Quantity)
		}
		if seen[l.ItemID] {
			return nil, domain.NewValidationError("lines", "item "+l.ItemID+" appears more than once")
		}
		seen[l.ItemID] = true
		if _, err := uc.items.GetByID(ctx, l.ItemID); err != nil {
			return nil, err
		}
		lines = append(lines, entity.TransferLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}

	now := uc.ledger.Now()
	t := &entity.TransferOut{
		ID:                uuid.New().String(),
		DestinationUnitID: unit.ID,
		DestinationName:   unit.Name,
		Status:            entity.TransferDraft,
		Remarks:           in.Remarks,
		Lines:             lines,
		RequestedBy:       userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		seq, err := r.Sequences.Next(ctx, repository.SeqTransfer)
		if err != nil {
			return err
		}
		t.Number = domain.DocumentNumber("TRF", now.Year(), seq)
		return r.Transfers.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	resp := ToTransferResponse(t)
	return &resp, nil
}

// Approve pasa de draft a approved.
func (uc *TransferUseCase) Approve(ctx context.Context, userID, id string) (*dto.TransferResponse, error) {
	return uc.advance(ctx, id, entity.TransferApproved, func(t *entity.TransferOut, now time.Time) {
		t.ApprovedBy = userID
		t.ApprovedAt = &now
	})
}

// Receive marca como recibida una transferencia emitida.
func (uc *TransferUseCase) Receive(ctx context.Context, userID, id string) (*dto.TransferResponse, error) {
	return uc.advance(ctx, id, entity.TransferReceived, func(t *entity.TransferOut, now time.Time) {
		t.ReceivedBy = userID
		t.ReceivedAt = &now
	})
}

func (uc *TransferUseCase) advance(ctx context.Context, id, to string, stamp func(*entity.TransferOut, time.Time)) (*dto.TransferResponse, error) {
	var out dto.TransferResponse
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		t, err := r.Transfers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := inventory.CheckTransferTransition(t.Status, to); err != nil {
			return err
		}
		now := uc.ledger.Now()
		t.Status = to
		t.UpdatedAt = now
		stamp(t, now)
		if err := r.Transfers.Update(ctx, t); err != nil {
			return err
		}
		out = ToTransferResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Issue despacha una transferencia aprobada: por cada línea asigna lotes FEFO y registra transfer_out.
// Todas las líneas se confirman juntas o ninguna.
func (uc *TransferUseCase) Issue(ctx context.Context, userID, id string) (*dto.TransferResponse, error) {
	pending, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]string, 0, len(pending.Lines))
	for _, l := range pending.Lines {
		itemIDs = append(itemIDs, l.ItemID)
	}

	var out dto.TransferResponse
	err = uc.ledger.WithItems(ctx, itemIDs, func(r ports.TxRepos) error {
		t, err := r.Transfers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := inventory.CheckTransferTransition(t.Status, entity.TransferIssued); err != nil {
			return err
		}
		for i, line := range t.Lines {
			allocs, _, err := uc.ledger.DrawTx(ctx, r, Draw{
				ItemID:      line.ItemID,
				Quantity:    line.Quantity,
				TxType:      entity.TxTypeTransferOut,
				PerformedBy: userID,
				Reference:   t.Number,
				Remarks:     "to " + t.DestinationName,
			})
			if err != nil {
				return err
			}
			t.Lines[i].Allocations = allocs
		}
		now := uc.ledger.Now()
		t.Status = entity.TransferIssued
		t.IssuedBy = userID
		t.IssuedAt = &now
		t.UpdatedAt = now
		if err := r.Transfers.Update(ctx, t); err != nil {
			return err
		}
		out = ToTransferResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReceiveIncoming registra stock llegado desde otra unidad como lote nuevo (transfer_in).
func (uc *TransferUseCase) ReceiveIncoming(ctx context.Context, userID string, in dto.TransferInRequest) (*dto.ReceiveResponse, error) {
	unit, err := uc.units.GetByID(ctx, in.SourceUnitID)
	if err != nil {
		return nil, err
	}
	expiry, err := dto.ParseDate("expiry_date", in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	var out dto.ReceiveResponse
	err = uc.ledger.WithItems(ctx, []string{in.ItemID}, func(r ports.TxRepos) error {
		batch, txn, err := uc.ledger.ReceiveTx(ctx, r, Receipt{
			ItemID:      in.ItemID,
			LotNumber:   in.LotNumber,
			Quantity:    in.Quantity,
			ExpiryDate:  expiry,
			Supplier:    unit.Name,
			Location:    in.Location,
			UnitCost:    in.UnitCost,
			TxType:      entity.TxTypeTransferIn,
			PerformedBy: userID,
			Reference:   in.Reference,
			Remarks:     in.Remarks,
		})
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

// Get obtiene una transferencia.
func (uc *TransferUseCase) Get(ctx context.Context, id string) (*dto.TransferResponse, error) {
	t, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransferResponse(t)
	return &resp, nil
}

// List lista transferencias, opcionalmente por estado.
func (uc *TransferUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.transfers.List(ctx, repository.TransferFilter{
		Status: status,
		Page:   repository.Page{Limit: page.Limit, Offset: page.Offset},
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Transfers: out,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Units lista las unidades administrativas destino.
func (uc *TransferUseCase) Units(ctx context.Context) ([]dto.UnitResponse, error) {
	units, err := uc.units.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, dto.UnitResponse{ID: u.ID, Code: u.Code, Name: u.Name, Municipality: u.Municipality, Province: u.Province})
	}
	return out, nil
}
