package achievement

import "github.com/osse101/CaseDrop_Go/internal/domain"

// DefaultPremiumPriceThreshold is used by premium_items_found achievements that
// carry no min_item_price_for_bonus
const DefaultPremiumPriceThreshold = 100.0

// DefaultMinRarity is used by rare_items_found achievements that carry no min_rarity
const DefaultMinRarity = domain.RarityClassified
