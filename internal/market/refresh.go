package market

import (
	"time"

	"github.com/ironhorse/railyard/internal/domain"
)

// RefreshDue reports whether the periodic check should regenerate the
// market. Boundaries are the :00 and :30 wall-clock minutes; the
// staleness test uses 29 minutes rather than 30 so a tick that fires
// seconds past the boundary still refreshes (intentional slack, not an
// off-by-one; see DESIGN.md).
func RefreshDue(now time.Time, jobs []domain.Job) bool {
	if len(jobs) == 0 {
		// First-ever initialization: never wait for a boundary.
		return true
	}

	minute := now.Minute()
	if minute != 0 && minute != 30 {
		return false
	}

	oldest, ok := oldestAvailable(jobs)
	if !ok {
		// Everything on the board is in progress; the available set is
		// empty and overdue by definition.
		return true
	}
	return now.Sub(oldest) >= RefreshStaleness*time.Minute
}

func oldestAvailable(jobs []domain.Job) (time.Time, bool) {
	var oldest time.Time
	found := false
	for i := range jobs {
		if jobs[i].Status != domain.JobStatusAvailable {
			continue
		}
		if !found || jobs[i].GeneratedAt.Before(oldest) {
			oldest = jobs[i].GeneratedAt
			found = true
		}
	}
	return oldest, found
}

// Refresh regenerates the market in place: in-progress jobs are
// preserved verbatim, every other job is discarded and replaced with a
// fresh full board, and the stock sheet and loaner marketplace are
// re-rolled under the same refresh stamp. The caller commits the
// mutated state as a single update.
func (g *Generator) Refresh(state *domain.PlayerState, homeCity string, now time.Time) {
	preserved := make([]domain.Job, 0, len(state.Jobs))
	for i := range state.Jobs {
		if state.Jobs[i].Status == domain.JobStatusInProgress {
			preserved = append(preserved, state.Jobs[i])
		}
	}

	state.Jobs = append(preserved, g.GenerateJobBoard(homeCity, now)...)
	state.DealershipStock = g.RollDealershipStock()
	state.LoanerMarket = g.LoanerMarket(now)
	state.MarketRefreshedAt = now
}
