package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var knownStatuses = map[string]bool{
	entity.StatusActive:       true,
	entity.StatusLowStock:     true,
	entity.StatusExpiringSoon: true,
	entity.StatusExpired:      true,
	entity.StatusOutOfStock:   true,
}

// ItemUseCase casos de uso del catálogo. El estado se deriva en cada lectura.
type ItemUseCase struct {
	items   repository.ItemRepository
	batches repository.BatchRepository
	clock   ports.Clock
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(items repository.ItemRepository, batches repository.BatchRepository, clock ports.Clock) *ItemUseCase {
	return &ItemUseCase{items: items, batches: batches, clock: clock}
}

// Create crea un item con cantidades en cero; el stock entra por recepción.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	switch {
	case code == "":
		return nil, domain.NewValidationError("code", "is required")
	case name == "":
		return nil, domain.NewValidationError("name", "is required")
	case strings.TrimSpace(in.Unit) == "":
		return nil, domain.NewValidationError("unit", "is required")
	case !entity.IsValidSubType(in.SubType):
		return nil, domain.NewValidationError("sub_type", "must be supplied or donated")
	case in.ReorderLevel < 0:
		return nil, domain.NewQuantityError("reorder_level must not be negative")
	}
	now := uc.clock.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		SubType:      in.SubType,
		Unit:         strings.TrimSpace(in.Unit),
		Description:  in.Description,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item, nil, now)
	return &resp, nil
}

// Update modifica metadatos. Cantidades y estado no son editables.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "must not be empty")
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.SubType != nil {
		if !entity.IsValidSubType(*in.SubType) {
			return nil, domain.NewValidationError("sub_type", "must be supplied or donated")
		}
		item.SubType = *in.SubType
	}
	if in.Unit != nil {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.NewQuantityError("reorder_level must not be negative")
		}
		item.ReorderLevel = *in.ReorderLevel
	}
	now := uc.clock.Now()
	item.UpdatedAt = now
	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}
	batches, err := uc.batches.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item, batches, now)
	return &resp, nil
}

// Get devuelve el item con sus lotes, cada uno con estado y días para vencer.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.ItemDetailResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	batches, err := uc.batches.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	out := &dto.ItemDetailResponse{
		Item:            ToItemResponse(item, batches, now),
		Batches:         make([]dto.BatchResponse, 0, len(batches)),
		AverageUnitCost: inventory.WeightedAverageCost(batches),
		StockValue:      inventory.StockValue(batches),
	}
	for _, b := range inventory.SortFEFO(batches) {
		out.Batches = append(out.Batches, ToBatchResponse(b, now))
	}
	for _, b := range batches {
		if b.Quantity <= 0 {
			out.Batches = append(out.Batches, ToBatchResponse(b, now))
		}
	}
	return out, nil
}

// List lista items. Con filtro de estado se evalúa el estado derivado de todo el catálogo filtrado.
func (uc *ItemUseCase) List(ctx context.Context, in dto.ItemListRequest) (*dto.ItemListResponse, error) {
	in.DefaultPage()
	if in.Status != "" && !knownStatuses[in.Status] {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	filter := repository.ItemFilter{Search: in.Search, Category: in.Category, SubType: in.SubType}
	if in.Status == "" {
		filter.Page = repository.Page{Limit: in.Limit, Offset: in.Offset}
	}
	items, total, err := uc.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses, err := uc.enrich(ctx, items, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if in.Status != "" {
		filtered := responses[:0]
		for _, r := range responses {
			if r.Status == in.Status {
				filtered = append(filtered, r)
			}
		}
		total = len(filtered)
		responses = paginate(filtered, in.Limit, in.Offset)
	}
	return &dto.ItemListResponse{
		Items: responses,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// All returns every item with its derived status; used by exports and the dashboard.
func (uc *ItemUseCase) All(ctx context.Context) ([]dto.ItemResponse, error) {
	items, _, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	return uc.enrich(ctx, items, uc.clock.Now())
}

func (uc *ItemUseCase) enrich(ctx context.Context, items []*entity.InventoryItem, now time.Time) ([]dto.ItemResponse, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	byItem, err := uc.batches.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it, byItem[it.ID], now))
	}
	return out, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
