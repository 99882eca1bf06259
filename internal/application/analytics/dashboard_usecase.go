// Package analytics contiene los casos de uso del dashboard de la unidad de salud.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rhu-inventory-api/pkg/format"
)

const dashboardRecentEntries = 10 // asientos del libro en el widget de actividad

// DashboardDeps agrupa los repositorios de solo lectura del dashboard.
type DashboardDeps struct {
	Items            repository.ItemRepository
	Batches          repository.BatchRepository
	Transactions     repository.TransactionRepository
	Transfers        repository.TransferRepository
	PurchaseRequests repository.PurchaseRequestRepository
	PurchaseOrders   repository.PurchaseOrderRepository
	Clock            ports.Clock
}

// DashboardUseCase genera el resumen operativo: estados de items, lotes por vencer,
// actividad reciente y pendientes de compras y transferencias.
type DashboardUseCase struct {
	d DashboardDeps
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(d DashboardDeps) *DashboardUseCase {
	return &DashboardUseCase{d: d}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. items + lotes           → TotalItems, ItemsByStatus
//  2. lotes que vencen en 180 → ExpiringBatches
//  3. últimos asientos        → RecentActivity
//  4. pendientes              → PendingPRs, PendingPOs, PendingTransfers
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.d.Clock.Now()

	type statusResult struct {
		total    int
		byStatus map[string]int
		names    map[string]string
		err      error
	}
	type expiringResult struct {
		batches []*entity.Batch
		err     error
	}
	type recentResult struct {
		entries []*entity.InventoryTransaction
		err     error
	}
	type pendingResult struct {
		prs, pos, transfers int
		err                 error
	}

	statusCh := make(chan statusResult, 1)
	expiringCh := make(chan expiringResult, 1)
	recentCh := make(chan recentResult, 1)
	pendingCh := make(chan pendingResult, 1)

	go func() {
		total, byStatus, names, err := uc.countByStatus(ctx, now)
		statusCh <- statusResult{total, byStatus, names, err}
	}()
	go func() {
		horizon := inventory.ExpiryInstant(now, now.Location()).AddDate(0, 0, inventory.ExpiryWarningDays+1)
		batches, err := uc.d.Batches.ListExpiringBefore(ctx, horizon)
		expiringCh <- expiringResult{batches, err}
	}()
	go func() {
		entries, _, err := uc.d.Transactions.List(ctx, repository.TransactionFilter{
			Page: repository.Page{Limit: dashboardRecentEntries},
		})
		recentCh <- recentResult{entries, err}
	}()
	go func() {
		prs, pos, transfers, err := uc.pending(ctx)
		pendingCh <- pendingResult{prs, pos, transfers, err}
	}()

	status := <-statusCh
	expiring := <-expiringCh
	recent := <-recentCh
	pending := <-pendingCh

	if status.err != nil {
		return nil, fmt.Errorf("dashboard: items by status: %w", status.err)
	}
	if expiring.err != nil {
		return nil, fmt.Errorf("dashboard: expiring batches: %w", expiring.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: recent activity: %w", recent.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("dashboard: pending documents: %w", pending.err)
	}

	activity := make([]dto.TransactionResponse, 0, len(recent.entries))
	for _, e := range recent.entries {
		activity = append(activity, appinv.ToTransactionResponse(e))
	}

	return &dto.DashboardSummaryDTO{
		TotalItems:       status.total,
		ItemsByStatus:    status.byStatus,
		ExpiringBatches:  toExpiring(expiring.batches, status.names, now),
		RecentActivity:   activity,
		PendingPRs:       pending.prs,
		PendingPOs:       pending.pos,
		PendingTransfers: pending.transfers,
		DateLabel:        format.Date(now),
	}, nil
}

func (uc *DashboardUseCase) countByStatus(ctx context.Context, now time.Time) (int, map[string]int, map[string]string, error) {
	items, total, err := uc.d.Items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return 0, nil, nil, err
	}
	ids := make([]string, 0, len(items))
	names := make(map[string]string, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
		names[it.ID] = it.Name
	}
	batches, err := uc.d.Batches.ListByItems(ctx, ids)
	if err != nil {
		return 0, nil, nil, err
	}
	byStatus := map[string]int{
		entity.StatusActive:       0,
		entity.StatusLowStock:     0,
		entity.StatusExpiringSoon: 0,
		entity.StatusExpired:      0,
		entity.StatusOutOfStock:   0,
	}
	for _, it := range items {
		s := inventory.DeriveItemStatus(it.AvailableQuantity, it.ReorderLevel, inventory.ExpiriesOf(batches[it.ID]), now)
		byStatus[s]++
	}
	return total, byStatus, names, nil
}

// pending cuenta PRs enviadas, POs pendientes y transferencias sin despachar.
func (uc *DashboardUseCase) pending(ctx context.Context) (int, int, int, error) {
	_, prs, err := uc.d.PurchaseRequests.List(ctx, repository.ProcurementFilter{
		Status: entity.PRSubmitted, Page: repository.Page{Limit: 1},
	})
	if err != nil {
		return 0, 0, 0, err
	}
	_, pos, err := uc.d.PurchaseOrders.List(ctx, repository.ProcurementFilter{
		Status: entity.POPending, Page: repository.Page{Limit: 1},
	})
	if err != nil {
		return 0, 0, 0, err
	}
	transfers := 0
	for _, st := range []string{entity.TransferDraft, entity.TransferApproved} {
		_, n, err := uc.d.Transfers.List(ctx, repository.TransferFilter{Status: st, Page: repository.Page{Limit: 1}})
		if err != nil {
			return 0, 0, 0, err
		}
		transfers += n
	}
	return prs, pos, transfers, nil
}

func toExpiring(batches []*entity.Batch, names map[string]string, now time.Time) []dto.ExpiringBatchDTO {
	sorted := inventory.SortFEFO(batches)
	out := make([]dto.ExpiringBatchDTO, 0, len(sorted))
	for _, b := range sorted {
		out = append(out, dto.ExpiringBatchDTO{
			BatchID:         b.ID,
			ItemID:          b.ItemID,
			ItemName:        names[b.ItemID],
			LotNumber:       b.LotNumber,
			Quantity:        b.Quantity,
			ExpiryDate:      b.ExpiryDate.Format(dto.DateLayout),
			DaysUntilExpiry: inventory.DaysUntilExpiry(b.ExpiryDate, now),
		})
	}
	return out
}
