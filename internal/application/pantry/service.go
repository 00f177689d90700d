// Package pantry provides the application layer for pantry inventory
// management. It implements the use cases defined in the inbound ports:
// the domain operates on snapshots, this layer owns the load/mutate/save
// cycle against the profile store.
package pantry

import (
	"context"
	"sync"
	"time"

	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/inbound"
	"github.com/nourishly/v1/internal/ports/outbound"
	"github.com/nourishly/v1/pkg/errors"
	"go.uber.org/zap"
)

// PantryService implements the pantry use cases
type PantryService struct {
	profiles outbound.ProfileRepository
	ai       outbound.AIService
	labels   outbound.UnitLabeler
	logger   *zap.Logger
	now      func() time.Time

	// One scan request may be in flight at a time.
	scanMu   sync.Mutex
	scanning bool
}

// NewPantryService creates a new pantry service
func NewPantryService(
	profiles outbound.ProfileRepository,
	ai outbound.AIService,
	labels outbound.UnitLabeler,
	logger *zap.Logger,
) inbound.PantryService {
	return &PantryService{
		profiles: profiles,
		ai:       ai,
		labels:   labels,
		logger:   logger.Named("pantry-service"),
		now:      time.Now,
	}
}

// AddItem creates a new pantry item and persists the updated snapshot.
func (s *PantryService) AddItem(ctx context.Context, cmd inbound.AddItemCommand) (*inbound.ItemDTO, error) {
	category := cmd.Category
	if !cmd.CategoryExplicit {
		// Default-fill only; an explicit user choice is never overwritten.
		if suggested, ok := pantry.SuggestCategory(cmd.Name); ok {
			category = suggested
		}
	}

	quantity := cmd.Quantity
	if quantity == "" {
		quantity = "1"
	}

	item, err := pantry.NewItem(cmd.Name, quantity, cmd.Unit, cmd.ExpiryDate, category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}

	items, err := pantry.AddItem(prof.PantrySnapshot(), item)
	if err == pantry.ErrDuplicateID {
		return nil, errors.NewDuplicateItemError(item.ID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to add pantry item")
	}
	prof.SetPantry(items)
	s.save(ctx, prof)

	s.logger.Info("Pantry item added",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("category", string(item.Category)),
	)

	dto := s.itemToDTO(item, profile.LanguageEnglish)
	return &dto, nil
}

// UpdateItem replaces an item wholesale and persists the snapshot.
func (s *PantryService) UpdateItem(ctx context.Context, cmd inbound.UpdateItemCommand) (*inbound.ItemDTO, error) {
	replacement := pantry.Item{
		ID:         cmd.ID,
		Name:       cmd.Name,
		Quantity:   cmd.Quantity,
		Unit:       cmd.Unit,
		ExpiryDate: cmd.ExpiryDate,
		Category:   cmd.Category,
	}
	if err := replacement.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}

	items, err := pantry.UpdateItem(prof.PantrySnapshot(), replacement)
	if err != nil {
		if err == pantry.ErrItemNotFound {
			s.logger.Warn("Update for missing pantry item", zap.String("item_id", cmd.ID))
			return nil, errors.NewItemNotFoundError(cmd.ID)
		}
		return nil, errors.Wrap(err, "failed to update pantry item")
	}
	prof.SetPantry(items)
	s.save(ctx, prof)

	dto := s.itemToDTO(replacement, profile.LanguageEnglish)
	return &dto, nil
}

// DeleteItem removes an item. Missing ids are a no-op.
func (s *PantryService) DeleteItem(ctx context.Context, itemID string) error {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return errors.NewPersistenceError("load profile", err)
	}

	prof.SetPantry(pantry.DeleteItem(prof.PantrySnapshot(), itemID))
	s.save(ctx, prof)

	s.logger.Info("Pantry item deleted", zap.String("item_id", itemID))
	return nil
}

// DecrementItem applies the consume gesture. When the quantity cannot be
// reduced any further, removal happens only if the supplied confirmation
// callback answers yes; a nil callback counts as a denial.
func (s *PantryService) DecrementItem(ctx context.Context, itemID string, confirm inbound.ConfirmFunc) (*inbound.DecrementDTO, error) {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}

	snapshot := prof.PantrySnapshot()
	items, outcome, err := pantry.DecrementItem(snapshot, itemID)
	if err != nil {
		s.logger.Warn("Decrement for missing pantry item", zap.String("item_id", itemID))
		return nil, errors.NewItemNotFoundError(itemID)
	}

	if outcome == pantry.DecrementApplied {
		prof.SetPantry(items)
		s.save(ctx, prof)
		if dto, ok := s.findItemDTO(items, itemID); ok {
			return &inbound.DecrementDTO{Outcome: outcome, Item: &dto}, nil
		}
		return &inbound.DecrementDTO{Outcome: outcome}, nil
	}

	if confirm == nil || !confirm() {
		// Confirmation denied: the item stays untouched.
		dto, _ := s.findItemDTO(snapshot, itemID)
		return &inbound.DecrementDTO{Outcome: outcome, Item: &dto}, nil
	}

	prof.SetPantry(pantry.DeleteItem(snapshot, itemID))
	s.save(ctx, prof)

	s.logger.Info("Pantry item removed after confirmation",
		zap.String("item_id", itemID),
		zap.String("outcome", string(outcome)),
	)
	return &inbound.DecrementDTO{Outcome: outcome, Removed: true}, nil
}

// ListItems returns the raw pantry collection in storage order.
func (s *PantryService) ListItems(ctx context.Context) ([]inbound.ItemDTO, error) {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}

	items := prof.PantrySnapshot()
	dtos := make([]inbound.ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, s.itemToDTO(item, profile.LanguageEnglish))
	}
	return dtos, nil
}

// InventoryView derives the sorted, grouped, filtered projection.
func (s *PantryService) InventoryView(ctx context.Context, query inbound.ViewQuery) (*inbound.InventoryViewDTO, error) {
	prof, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("load profile", err)
	}

	lang := query.Language
	if lang == "" {
		lang = profile.LanguageEnglish
	}

	view := pantry.BuildView(prof.PantrySnapshot(), s.now(), pantry.ViewFilter{
		Category: query.Category,
		Search:   query.Search,
	})

	dto := &inbound.InventoryViewDTO{
		ExpiringSoon: make([]inbound.ItemDTO, 0, len(view.ExpiringSoon)),
		Total:        view.Total(),
	}
	for _, item := range view.ExpiringSoon {
		dto.ExpiringSoon = append(dto.ExpiringSoon, s.itemToDTO(item, lang))
	}
	for _, group := range view.Groups {
		groupDTO := inbound.CategoryGroupDTO{
			Category: group.Category,
			Label:    s.labels.CategoryLabel(group.Category, lang),
			Items:    make([]inbound.ItemDTO, 0, len(group.Items)),
		}
		for _, item := range group.Items {
			groupDTO.Items = append(groupDTO.Items, s.itemToDTO(item, lang))
		}
		dto.Groups = append(dto.Groups, groupDTO)
	}
	return dto, nil
}

// SuggestCategory exposes the keyword heuristic for form default-fill.
func (s *PantryService) SuggestCategory(name string) (pantry.Category, bool) {
	return pantry.SuggestCategory(name)
}

// ScanItem runs the AI image recognition. Only one scan may be in flight
// at a time; a concurrent submission fails fast. An unidentifiable image
// is a recoverable result, not an error.
func (s *PantryService) ScanItem(ctx context.Context, image []byte, lang profile.Language) (*inbound.ScanResultDTO, error) {
	s.scanMu.Lock()
	if s.scanning {
		s.scanMu.Unlock()
		return nil, errors.NewScanInFlightError()
	}
	s.scanning = true
	s.scanMu.Unlock()

	defer func() {
		s.scanMu.Lock()
		s.scanning = false
		s.scanMu.Unlock()
	}()

	analysis, err := s.ai.IdentifyPantryItem(ctx, image, lang)
	if err != nil {
		s.logger.Warn("Pantry scan failed", zap.Error(err))
		return nil, errors.NewRecognitionError(err)
	}
	if analysis == nil {
		return &inbound.ScanResultDTO{Identified: false}, nil
	}

	s.logger.Info("Pantry item identified",
		zap.String("name", analysis.Name),
		zap.String("category", string(analysis.Category)),
	)
	return &inbound.ScanResultDTO{Identified: true, Analysis: analysis}, nil
}

// save writes the profile back. Persistence failures are logged and
// swallowed: the in-memory snapshot stays authoritative for the caller
// and there is no retry.
func (s *PantryService) save(ctx context.Context, prof *profile.Profile) {
	if err := s.profiles.Save(ctx, prof); err != nil {
		s.logger.Error("Failed to persist profile", zap.Error(err))
	}
}

func (s *PantryService) findItemDTO(items []pantry.Item, id string) (inbound.ItemDTO, bool) {
	for _, item := range items {
		if item.ID == id {
			return s.itemToDTO(item, profile.LanguageEnglish), true
		}
	}
	return inbound.ItemDTO{}, false
}

func (s *PantryService) itemToDTO(item pantry.Item, lang profile.Language) inbound.ItemDTO {
	classification := pantry.Classify(s.now(), item.ExpiryDate)
	return inbound.ItemDTO{
		ID:            item.ID,
		Name:          item.Name,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		UnitLabel:     s.labels.UnitLabel(item.Unit, lang),
		ExpiryDate:    item.ExpiryDate,
		Category:      item.Category,
		CategoryLabel: s.labels.CategoryLabel(item.Category, lang),
		DaysRemaining: classification.DaysRemaining,
		Bucket:        classification.Bucket,
	}
}
