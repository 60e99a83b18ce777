package economy

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ironhorse/railyard/internal/achievement"
	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/event"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/market"
	"github.com/ironhorse/railyard/internal/metrics"
	"github.com/ironhorse/railyard/internal/state"
)

// PurchaseNew buys quantity factory-fresh units of a catalog model from
// the dealership.
func (s *service) PurchaseNew(ctx context.Context, playerID, model string, quantity int) ([]domain.Locomotive, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	if quantity < 1 {
		return nil, domain.ErrInsufficientStock
	}
	m, ok := catalog.ModelByName(model)
	if !ok {
		return nil, domain.ErrListingNotFound
	}

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if p.DealershipStock[model] < quantity {
		return nil, domain.ErrInsufficientStock
	}
	total := m.BaseValue * int64(quantity)
	if p.Stats.Cash < total {
		return nil, domain.ErrInsufficientFunds
	}

	bought := make([]domain.Locomotive, 0, quantity)
	for i := 0; i < quantity; i++ {
		l := newLocomotive(m, s.nextUnitNumber(p), now)
		p.Locomotives = append(p.Locomotives, l)
		bought = append(bought, l)
	}
	p.DealershipStock[model] -= quantity
	p.Stats.Cash -= total

	achievement.Apply(p, achievement.Action{
		Requirement: domain.ReqLocosPurchased, Amount: int64(quantity),
	})

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return nil, err
	}

	metrics.LocomotivesPurchased.WithLabelValues("new").Add(float64(quantity))
	s.publish(ctx, event.NewLocomotivePurchasedEvent(playerID, model, "new", quantity, total))
	log.Info("new locomotives purchased",
		"player_id", playerID, "model", model, "quantity", quantity, "total", total)
	return bought, nil
}

// PurchaseUsed buys one listing off the loaner market, carrying its
// mileage, condition and flavor over to the fleet.
func (s *service) PurchaseUsed(ctx context.Context, playerID, listingID string) (*domain.Locomotive, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range p.LoanerMarket {
		if p.LoanerMarket[i].ID == listingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrListingNotFound
	}
	listing := p.LoanerMarket[idx]

	if p.Stats.Cash < listing.Price {
		return nil, domain.ErrInsufficientFunds
	}

	l := usedLocomotive(listing, s.nextUnitNumber(p), now)
	p.Locomotives = append(p.Locomotives, l)
	p.LoanerMarket = append(p.LoanerMarket[:idx], p.LoanerMarket[idx+1:]...)
	p.Stats.Cash -= listing.Price

	achievement.Apply(p, achievement.Action{
		Requirement: domain.ReqLocosPurchased, Amount: 1,
	})

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return nil, err
	}

	metrics.LocomotivesPurchased.WithLabelValues("used").Inc()
	s.publish(ctx, event.NewLocomotivePurchasedEvent(playerID, listing.Model, "used", 1, listing.Price))
	log.Info("used locomotive purchased",
		"player_id", playerID, "model", listing.Model, "price", listing.Price)
	return &l, nil
}

// SellLocomotive removes an available unit and credits its resale
// value.
func (s *service) SellLocomotive(ctx context.Context, playerID, locoID string) (int64, error) {
	return s.disposeLocomotive(ctx, playerID, locoID, event.LocomotiveSold, ResaleValue)
}

// ScrapLocomotive removes an available unit and credits its scrap
// value.
func (s *service) ScrapLocomotive(ctx context.Context, playerID, locoID string) (int64, error) {
	return s.disposeLocomotive(ctx, playerID, locoID, event.LocomotiveScrapped, ScrapValue)
}

func (s *service) disposeLocomotive(ctx context.Context, playerID, locoID string, eventType event.Type, value func(*domain.Locomotive) int64) (int64, error) {
	log := logger.FromContext(ctx)

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return 0, err
	}

	l := p.LocomotiveByID(locoID)
	if l == nil {
		return 0, domain.ErrLocomotiveNotFound
	}
	if l.Status != domain.LocoStatusAvailable {
		return 0, domain.ErrLocoNotAvailable
	}

	credit := value(l)
	model := l.Model
	p.Stats.Cash += credit
	removeLocomotive(p, locoID)
	achievement.RefreshDerived(p)

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return 0, err
	}

	s.publish(ctx, event.NewLocomotiveDisposedEvent(eventType, playerID, locoID, model, credit))
	log.Info("locomotive disposed",
		"player_id", playerID, "loco_id", locoID, "event", eventType, "credit", credit)
	return credit, nil
}

// RenameLocomotive changes a unit number for a flat fee. The canonical
// format is four digits, zero-padded; display layers prepend '#'.
func (s *service) RenameLocomotive(ctx context.Context, playerID, locoID, unitNumber string) error {
	log := logger.FromContext(ctx)

	if !ValidUnitNumber(unitNumber) {
		return domain.ErrInvalidUnitNumber
	}

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return err
	}

	l := p.LocomotiveByID(locoID)
	if l == nil {
		return domain.ErrLocomotiveNotFound
	}
	for i := range p.Locomotives {
		if p.Locomotives[i].ID != locoID && p.Locomotives[i].UnitNumber == unitNumber {
			return domain.ErrDuplicateUnitNumber
		}
	}
	if p.Stats.Cash < RenameFee {
		return domain.ErrInsufficientFunds
	}

	old := l.UnitNumber
	l.UnitNumber = unitNumber
	p.Stats.Cash -= RenameFee

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return err
	}

	log.Info("locomotive renamed",
		"player_id", playerID, "loco_id", locoID, "from", old, "to", unitNumber)
	return nil
}

// RepairLocomotive restores a unit to full health by rebasing its wear
// offset. The odometer is untouched; returns the fee charged.
func (s *service) RepairLocomotive(ctx context.Context, playerID, locoID string) (int64, error) {
	log := logger.FromContext(ctx)

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return 0, err
	}

	l := p.LocomotiveByID(locoID)
	if l == nil {
		return 0, domain.ErrLocomotiveNotFound
	}
	if l.Status != domain.LocoStatusAvailable && l.Status != domain.LocoStatusNeedsRepair {
		return 0, domain.ErrLocoNotAvailable
	}

	cost := RepairCost(l)
	if p.Stats.Cash < cost {
		return 0, domain.ErrInsufficientFunds
	}

	p.Stats.Cash -= cost
	l.WearOffset = l.Mileage
	l.Health = 100
	l.Status = domain.LocoStatusAvailable

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return 0, err
	}

	log.Info("locomotive repaired", "player_id", playerID, "loco_id", locoID, "cost", cost)
	return cost, nil
}

// PaintLocomotive books a unit into the paint shop. The minute sweep
// releases it when the work is done.
func (s *service) PaintLocomotive(ctx context.Context, playerID, locoID string) error {
	log := logger.FromContext(ctx)
	now := s.now()

	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return err
	}

	l := p.LocomotiveByID(locoID)
	if l == nil {
		return domain.ErrLocomotiveNotFound
	}
	if l.Status != domain.LocoStatusAvailable {
		return domain.ErrLocoNotAvailable
	}
	if p.Stats.Cash < PaintCost {
		return domain.ErrInsufficientFunds
	}

	done := now.Add(PaintDuration)
	p.Stats.Cash -= PaintCost
	l.Status = domain.LocoStatusInPaintShop
	l.PaintDoneAt = &done

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return err
	}

	log.Info("locomotive sent to paint shop",
		"player_id", playerID, "loco_id", locoID, "done_at", done)
	return nil
}

// SetStored toggles a unit in and out of storage. Stored units are not
// assignable and invisible to auto-assign.
func (s *service) SetStored(ctx context.Context, playerID, locoID string, stored bool) error {
	p, err := s.store.Get(ctx, playerID)
	if err != nil {
		return err
	}

	l := p.LocomotiveByID(locoID)
	if l == nil {
		return domain.ErrLocomotiveNotFound
	}
	switch {
	case stored && l.Status == domain.LocoStatusAvailable:
		l.Status = domain.LocoStatusStored
	case !stored && l.Status == domain.LocoStatusStored:
		l.Status = domain.LocoStatusAvailable
	default:
		return domain.ErrLocoNotAvailable
	}

	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.CommitConflicts.Inc()
		}
		return err
	}
	return nil
}

// nextUnitNumber formats and advances the unit number sequence,
// skipping numbers a rename has already taken.
func (s *service) nextUnitNumber(p *domain.PlayerState) string {
	for {
		n := state.FormatUnitNumber(p.Stats.NextLocoID)
		p.Stats.NextLocoID++
		taken := false
		for i := range p.Locomotives {
			if p.Locomotives[i].UnitNumber == n {
				taken = true
				break
			}
		}
		if !taken {
			return n
		}
	}
}

func newLocomotive(m catalog.LocomotiveModel, unitNumber string, now time.Time) domain.Locomotive {
	return domain.Locomotive{
		ID:         uuid.NewString(),
		UnitNumber: unitNumber,

		Model:        m.Model,
		Manufacturer: m.Manufacturer,
		Tier:         m.Tier,
		Tags:         append([]string(nil), m.Tags...),

		Horsepower:      m.Horsepower,
		TopSpeed:        m.TopSpeed,
		Weight:          m.Weight,
		Reliability:     m.Reliability,
		FuelCapacity:    m.FuelCapacity,
		FuelEfficiency:  m.FuelEfficiency,
		MaintenanceCost: m.MaintenanceCost,
		BaseValue:       m.BaseValue,

		Mileage:        0,
		Health:         100,
		PaintCondition: 100,
		Status:         domain.LocoStatusAvailable,

		PurchasedAt: now,
	}
}

func usedLocomotive(listing domain.UsedLocomotiveItem, unitNumber string, now time.Time) domain.Locomotive {
	l := domain.Locomotive{
		ID:         uuid.NewString(),
		UnitNumber: unitNumber,

		Model:        listing.Model,
		Manufacturer: listing.Manufacturer,
		Tier:         listing.Tier,

		Horsepower:      listing.Horsepower,
		TopSpeed:        listing.TopSpeed,
		Weight:          listing.Weight,
		Reliability:     listing.Reliability,
		FuelCapacity:    listing.FuelCapacity,
		FuelEfficiency:  listing.FuelEfficiency,
		MaintenanceCost: listing.MaintenanceCost,

		Mileage:        listing.Mileage,
		Health:         listing.Health,
		PaintCondition: listing.PaintCondition,
		Status:         domain.LocoStatusAvailable,

		PreviousOwner: listing.PreviousOwner,
		Livery:        listing.Livery,

		PurchasedAt: now,
	}
	if m, ok := catalog.ModelByName(listing.Model); ok {
		l.BaseValue = m.BaseValue
		l.Tags = append([]string(nil), m.Tags...)
	} else {
		l.BaseValue = listing.Price
	}
	if l.Health < NeedsRepairHealth {
		l.Status = domain.LocoStatusNeedsRepair
	}
	return l
}

// ResaleValue prices a unit for sale back to the dealer: sticker price
// depreciated by accumulated wear, then discounted by the dealer
// spread.
func ResaleValue(l *domain.Locomotive) int64 {
	wearFraction := (100 - l.Health) / 100
	depreciation := wearFraction * market.DepreciationPerWear
	if depreciation > market.DepreciationCap {
		depreciation = market.DepreciationCap
	}
	return int64(float64(l.BaseValue) * (1 - depreciation) * ResaleRate)
}

// ScrapValue pays a flat fraction of sticker price regardless of
// condition.
func ScrapValue(l *domain.Locomotive) int64 {
	return int64(float64(l.BaseValue) * ScrapRate)
}

// RepairCost charges one maintenance fee per RepairCostPointsPerFee
// points of missing health, never less than one fee.
func RepairCost(l *domain.Locomotive) int64 {
	missing := math.Ceil(100 - l.Health)
	if missing < 0 {
		missing = 0
	}
	fees := int64(missing) / RepairCostPointsPerFee
	if fees < 1 {
		fees = 1
	}
	return l.MaintenanceCost * fees
}

func removeLocomotive(p *domain.PlayerState, id string) {
	for i := range p.Locomotives {
		if p.Locomotives[i].ID == id {
			p.Locomotives = append(p.Locomotives[:i], p.Locomotives[i+1:]...)
			return
		}
	}
}
