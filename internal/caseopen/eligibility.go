package caseopen

import (
	"fmt"
	"time"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// checkEligibility runs the template, tier, cooldown and quota preconditions.
// It must be called with the (user, template) lock held.
func (s *service) checkEligibility(now time.Time, tmpl *domain.CaseTemplate, user *domain.User, history domain.OpenHistory) error {
	if !tmpl.IsActive {
		return fmt.Errorf("%w: template %d", domain.ErrTemplateInactive, tmpl.ID)
	}
	if !tmpl.WithinWindow(now) {
		return fmt.Errorf("%w: template %d", domain.ErrOutsideAvailabilityWindow, tmpl.ID)
	}
	if user.SubscriptionTier < tmpl.MinSubscriptionTier {
		return fmt.Errorf("%w: tier %d, template %d requires %d",
			domain.ErrTierTooLow, user.SubscriptionTier, tmpl.ID, tmpl.MinSubscriptionTier)
	}
	if err := s.policy.Check(now, tmpl, history); err != nil {
		return err
	}
	if tmpl.MaxOpensPerUser != nil && history.Opens >= *tmpl.MaxOpensPerUser {
		return fmt.Errorf("%w: %d of %d opens used", domain.ErrQuotaExceeded, history.Opens, *tmpl.MaxOpensPerUser)
	}
	return nil
}
