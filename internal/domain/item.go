package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item is a catalog entry. The engine only ever reads items.
type Item struct {
	ID          int     `json:"item_id" db:"item_id"`
	Name        string  `json:"name" db:"name"`
	Price       float64 `json:"price" db:"price"`
	Rarity      Rarity  `json:"rarity" db:"rarity"`
	IsAvailable bool    `json:"is_available" db:"is_available"`
}

// Rarity is the ordered item grade, consumer through exotic.
// Values unknown to this build parse to RarityUnknown instead of failing.
type Rarity string

const (
	RarityUnknown    Rarity = "unknown"
	RarityConsumer   Rarity = "consumer"
	RarityIndustrial Rarity = "industrial"
	RarityMilSpec    Rarity = "mil-spec"
	RarityRestricted Rarity = "restricted"
	RarityClassified Rarity = "classified"
	RarityCovert     Rarity = "covert"
	RarityExotic     Rarity = "exotic"
)

var rarityRanks = map[Rarity]int{
	RarityConsumer:   1,
	RarityIndustrial: 2,
	RarityMilSpec:    3,
	RarityRestricted: 4,
	RarityClassified: 5,
	RarityCovert:     6,
	RarityExotic:     7,
}

// ParseRarity normalizes a stored rarity string.
func ParseRarity(s string) Rarity {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rarityRanks[r]; ok {
		return r
	}
	return RarityUnknown
}

// Rank returns the ordinal of the rarity; RarityUnknown ranks below consumer.
func (r Rarity) Rank() int {
	return rarityRanks[r]
}

// AtLeast reports whether r is graded at or above min.
func (r Rarity) AtLeast(min Rarity) bool {
	return r.Rank() >= min.Rank() && r.Rank() > 0
}

// DisplayName returns a human readable name, e.g. "Mil Spec".
func (r Rarity) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(r), "-", " "))
}
