package lootbox

import (
	"github.com/samber/lo"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// DuplicatePreventionEnabled reports whether the guard applies to this draw.
// Prevention is opt-in per tier rule or per template.
func DuplicatePreventionEnabled(template *domain.CaseTemplate, rule *domain.DropRule) bool {
	if template != nil && template.PreventDuplicates {
		return true
	}
	return rule != nil && rule.PreventDuplicates
}

// GuardDuplicates removes items the user already received from this template.
// If that would empty the pool, the unfiltered pool is returned and lifted is
// true: exhaustion never blocks an entitled case from resolving.
func GuardDuplicates(pool Pool, previous []int) (guarded Pool, lifted bool) {
	if len(previous) == 0 {
		return pool, false
	}

	seen := lo.SliceToMap(previous, func(id int) (int, struct{}) {
		return id, struct{}{}
	})

	guarded = lo.OmitBy(pool, func(id int, _ float64) bool {
		_, dup := seen[id]
		return dup
	})
	if guarded.TotalWeight() <= 0 {
		return pool, true
	}
	return guarded, false
}
