package cooldown

import (
	"fmt"
	"time"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Policy evaluates the time-based eligibility rules of a case template.
// It is pure: the caller supplies the clock reading and the open history read
// under the (user, template) lock.
type Policy struct {
	config Config
}

// NewPolicy creates a policy using the given reference clock
func NewPolicy(config Config) *Policy {
	return &Policy{config: config}
}

// Check returns nil when a new opening is allowed at now. Templates with a free
// claim allowance are paced from the first claim; all others use cooldown_hours
// from the last opening.
func (p *Policy) Check(now time.Time, template *domain.CaseTemplate, history domain.OpenHistory) error {
	if template.HasAllowance() {
		return p.checkAllowance(now, template, history)
	}
	return checkCooldown(now, template, history)
}

// CooldownDuration converts fractional hours to a duration.
func CooldownDuration(hours float64) time.Duration {
	if hours <= 0 {
		return 0
	}
	return time.Duration(hours * float64(time.Hour))
}

func checkCooldown(now time.Time, template *domain.CaseTemplate, history domain.OpenHistory) error {
	cd := CooldownDuration(template.CooldownHours)
	if cd == 0 || history.LastOpenedAt == nil {
		return nil
	}

	next := history.LastOpenedAt.Add(cd)
	if now.Before(next) {
		return domain.CooldownActiveError{TemplateID: template.ID, NextEligibleAt: next}
	}
	return nil
}

func (p *Policy) checkAllowance(now time.Time, template *domain.CaseTemplate, history domain.OpenHistory) error {
	limit := *template.FreeClaimLimit
	if history.Opens >= limit {
		return fmt.Errorf(ErrMsgQuotaReachedFormat, domain.ErrQuotaExceeded, history.Opens, limit)
	}
	if history.Opens == 0 || history.FirstOpenedAt == nil {
		return nil
	}

	first := *history.FirstOpenedAt
	if window := template.FreeClaimWindowDays; window > 0 {
		if days := p.CalendarDaysBetween(first, now); days > window {
			return fmt.Errorf(ErrMsgForfeitedFormat, domain.ErrAllowanceForfeited, days, window)
		}
	}

	unlock := p.AllowanceUnlockAt(first, history.Opens+1)
	if now.Before(unlock) {
		return domain.CooldownActiveError{TemplateID: template.ID, NextEligibleAt: unlock}
	}
	return nil
}

// AllowanceUnlockAt returns when claim number claim (counting from 1) unlocks,
// given the first claim's timestamp. Claim 2 unlocks at the cutoff on the first
// claim's day when the first claim was made before the cutoff, or at the cutoff
// two days later when it was made at or after it. Each further claim unlocks one
// day after the previous one.
func (p *Policy) AllowanceUnlockAt(first time.Time, claim int) time.Time {
	if claim <= 1 {
		return first
	}

	loc := p.config.location()
	local := first.In(loc)

	shift := 0
	if local.Hour() >= p.config.CutoffHour {
		shift = afterCutoffDayShift
	}

	y, m, d := local.Date()
	return time.Date(y, m, d+shift+(claim-2), p.config.CutoffHour, 0, 0, 0, loc)
}

// CalendarDaysBetween counts reference-timezone calendar days from a to b.
func (p *Policy) CalendarDaysBetween(a, b time.Time) int {
	loc := p.config.location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// ReferenceDate returns the calendar date of t in the reference timezone,
// as midnight UTC. Daily counters are keyed by it.
func (p *Policy) ReferenceDate(t time.Time) time.Time {
	y, m, d := t.In(p.config.location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
