package economy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironhorse/railyard/internal/catalog"
	"github.com/ironhorse/railyard/internal/domain"
	"github.com/ironhorse/railyard/internal/state"
)

func TestPurchaseNew(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.DealershipStock = domain.DealershipStock{"SW1500": 3}
	})

	bought, err := svc.PurchaseNew(ctx, "p1", "SW1500", 2)
	require.NoError(t, err)
	require.Len(t, bought, 2)

	sw, _ := catalog.ModelByName("SW1500")
	assert.Equal(t, "0002", bought[0].UnitNumber)
	assert.Equal(t, "0003", bought[1].UnitNumber)
	assert.Equal(t, sw.BaseValue, bought[0].BaseValue)
	assert.Equal(t, float64(100), bought[0].Health)

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(state.StarterCash)-2*sw.BaseValue, p.Stats.Cash)
	assert.Equal(t, 1, p.DealershipStock["SW1500"])
	assert.Equal(t, 4, p.Stats.NextLocoID)
	assert.Len(t, p.Locomotives, 3)
}

func TestPurchaseNewSkipsRenamedUnitNumbers(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	// The starter unit has been renamed onto the number the sequence
	// would hand out next. The counter skips past it rather than
	// issuing a duplicate, so it can advance by more than the
	// purchased quantity.
	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.DealershipStock = domain.DealershipStock{"SW1500": 1}
		p.Locomotives[0].UnitNumber = state.FormatUnitNumber(p.Stats.NextLocoID)
	})

	bought, err := svc.PurchaseNew(ctx, "p1", "SW1500", 1)
	require.NoError(t, err)
	require.Len(t, bought, 1)
	assert.Equal(t, "0003", bought[0].UnitNumber)

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stats.NextLocoID)
}

func TestPurchaseNewValidation(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.DealershipStock = domain.DealershipStock{"SW1500": 1, "ES44AC": 5}
		p.Stats.Cash = 100000
	})

	_, err := svc.PurchaseNew(ctx, "p1", "SW1500", 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.PurchaseNew(ctx, "p1", "ES44AC", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = svc.PurchaseNew(ctx, "p1", "Big Boy", 1)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	// Failed purchases leave everything untouched.
	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), p.Stats.Cash)
	assert.Equal(t, 1, p.DealershipStock["SW1500"])
	assert.Len(t, p.Locomotives, 1)
}

func TestPurchaseUsedCarriesConditionOver(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	listing := domain.UsedLocomotiveItem{
		ID: "l1", Model: "SD40-2", Manufacturer: "EMD", Tier: 2,
		Horsepower: 3000, TopSpeed: 70, Weight: 184, Reliability: 0.96,
		FuelCapacity: 3200, FuelEfficiency: 0.72, MaintenanceCost: 1800,
		AgeYears: 20, Mileage: 450000, Health: 82, PaintCondition: 71,
		Price: 120000, PreviousOwner: "Granite Pacific", Livery: "Harvest Gold",
		GeneratedAt: testNow,
	}
	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.LoanerMarket = []domain.UsedLocomotiveItem{listing}
	})

	bought, err := svc.PurchaseUsed(ctx, "p1", "l1")
	require.NoError(t, err)

	assert.Equal(t, "0002", bought.UnitNumber)
	assert.Equal(t, int64(450000), bought.Mileage)
	assert.Equal(t, float64(82), bought.Health)
	assert.Equal(t, float64(71), bought.PaintCondition)
	assert.Equal(t, "Granite Pacific", bought.PreviousOwner)
	assert.Equal(t, "Harvest Gold", bought.Livery)
	sd40, _ := catalog.ModelByName("SD40-2")
	assert.Equal(t, sd40.BaseValue, bought.BaseValue)

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, p.LoanerMarket, "listing is removed on purchase")
	assert.Equal(t, int64(state.StarterCash-120000), p.Stats.Cash)

	// Strictly one unit per listing.
	_, err = svc.PurchaseUsed(ctx, "p1", "l1")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestSellLocomotive(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, nil)
	locoID := firstLocoID(t, store)

	// Pristine starter: no wear depreciation, only the dealer spread.
	gp38, _ := catalog.ModelByName(catalog.StarterModel)
	want := int64(float64(gp38.BaseValue) * ResaleRate)

	credit, err := svc.SellLocomotive(ctx, "p1", locoID)
	require.NoError(t, err)
	assert.Equal(t, want, credit)

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, p.Locomotives)
	assert.Equal(t, int64(state.StarterCash)+want, p.Stats.Cash)
}

func TestScrapLocomotive(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, nil)
	locoID := firstLocoID(t, store)

	gp38, _ := catalog.ModelByName(catalog.StarterModel)
	want := int64(float64(gp38.BaseValue) * ScrapRate)

	credit, err := svc.ScrapLocomotive(ctx, "p1", locoID)
	require.NoError(t, err)
	assert.Equal(t, want, credit)
}

func TestSellRequiresAvailableStatus(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.Locomotives[0].Status = domain.LocoStatusStored
	})

	_, err := svc.SellLocomotive(ctx, "p1", firstLocoID(t, store))
	assert.ErrorIs(t, err, domain.ErrLocoNotAvailable)

	_, err = svc.SellLocomotive(ctx, "p1", "missing")
	assert.ErrorIs(t, err, domain.ErrLocomotiveNotFound)
}

func TestRenameLocomotive(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, nil)
	locoID := firstLocoID(t, store)

	require.NoError(t, svc.RenameLocomotive(ctx, "p1", locoID, "4014"))

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "4014", p.LocomotiveByID(locoID).UnitNumber)
	assert.Equal(t, int64(state.StarterCash-RenameFee), p.Stats.Cash)
}

func TestRenameRejectsDuplicateUnitNumber(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, func(p *domain.PlayerState) {
		sw, _ := catalog.ModelByName("SW1500")
		p.Locomotives = append(p.Locomotives, newLocomotive(sw, "0002", testNow))
	})
	locoID := firstLocoID(t, store)

	err := svc.RenameLocomotive(ctx, "p1", locoID, "0002")
	assert.ErrorIs(t, err, domain.ErrDuplicateUnitNumber)

	// Nothing changed: no fee, both numbers intact.
	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(state.StarterCash), p.Stats.Cash)
	assert.Equal(t, "0001", p.LocomotiveByID(locoID).UnitNumber)
}

func TestRenameRejectsBadFormat(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, nil)
	locoID := firstLocoID(t, store)

	for _, bad := range []string{"", "12", "12345", "#1234", "40A4"} {
		err := svc.RenameLocomotive(ctx, "p1", locoID, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidUnitNumber, bad)
	}
}

func TestRepairRebasesWearWithoutTouchingOdometer(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	// 500k miles: health 80, four repair fees of maintenance cost.
	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.Locomotives[0].Mileage = 500000
	})
	locoID := firstLocoID(t, store)

	gp38, _ := catalog.ModelByName(catalog.StarterModel)
	wantCost := gp38.MaintenanceCost * 4

	cost, err := svc.RepairLocomotive(ctx, "p1", locoID)
	require.NoError(t, err)
	assert.Equal(t, wantCost, cost)

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	l := p.LocomotiveByID(locoID)
	assert.Equal(t, float64(100), l.Health)
	assert.Equal(t, int64(500000), l.Mileage)
	assert.Equal(t, int64(500000), l.WearOffset)
	assert.Equal(t, domain.LocoStatusAvailable, l.Status)
	assert.Equal(t, int64(state.StarterCash)-wantCost, p.Stats.Cash)
}

func TestPaintShopCycle(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, func(p *domain.PlayerState) {
		p.Locomotives[0].PaintCondition = 40
		// Non-empty board keeps the tick from regenerating mid-test.
		p.Jobs = []domain.Job{availableJob("j1", 1, 1500, 10, 10, 2000, 50)}
	})
	locoID := firstLocoID(t, store)

	require.NoError(t, svc.PaintLocomotive(ctx, "p1", locoID))

	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	l := p.LocomotiveByID(locoID)
	assert.Equal(t, domain.LocoStatusInPaintShop, l.Status)
	require.NotNil(t, l.PaintDoneAt)
	assert.Equal(t, int64(state.StarterCash-PaintCost), p.Stats.Cash)

	// Mid-paint the unit is untouchable.
	_, err = svc.SellLocomotive(ctx, "p1", locoID)
	assert.ErrorIs(t, err, domain.ErrLocoNotAvailable)

	// Sweep before completion: still in the shop.
	clock.now = testNow.Add(PaintDuration - time.Minute)
	require.NoError(t, svc.Tick(ctx, "p1"))
	p, err = store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.LocoStatusInPaintShop, p.LocomotiveByID(locoID).Status)

	// Sweep after completion: released with fresh paint.
	clock.now = testNow.Add(PaintDuration + time.Minute)
	require.NoError(t, svc.Tick(ctx, "p1"))
	p, err = store.Get(ctx, "p1")
	require.NoError(t, err)
	l = p.LocomotiveByID(locoID)
	assert.Equal(t, domain.LocoStatusAvailable, l.Status)
	assert.Nil(t, l.PaintDoneAt)
	assert.Equal(t, float64(100), l.PaintCondition)
}

func TestSetStoredToggle(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPlayer(t, store, nil)
	locoID := firstLocoID(t, store)

	require.NoError(t, svc.SetStored(ctx, "p1", locoID, true))
	p, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.LocoStatusStored, p.LocomotiveByID(locoID).Status)

	// Storing a stored unit is a no-op error, not a state change.
	assert.ErrorIs(t, svc.SetStored(ctx, "p1", locoID, true), domain.ErrLocoNotAvailable)

	require.NoError(t, svc.SetStored(ctx, "p1", locoID, false))
	p, err = store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.LocoStatusAvailable, p.LocomotiveByID(locoID).Status)
}
