package model

import "github.com/google/uuid"

// Domain classifies what kind of contribution a deed is.
type Domain string

const (
	DomainCare      Domain = "Care"
	DomainHousehold Domain = "Household"
	DomainCustom    Domain = "Custom"
)

func Domains() []Domain {
	return []Domain{DomainCare, DomainHousehold, DomainCustom}
}

// Deed is a loggable action category. Duplicate names are allowed;
// deeds are archived rather than deleted so historical moments keep
// resolving.
type Deed struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Domain    Domain    `json:"domain"`
	SortOrder int       `json:"sort_order"`
	Archived  bool      `json:"archived"`
	Default   bool      `json:"default"`
}

// NewDeed creates a custom (non-default) deed with a fresh id.
func NewDeed(name, icon string, domain Domain, sortOrder int) Deed {
	return Deed{
		ID:        uuid.New(),
		Name:      name,
		Icon:      icon,
		Domain:    domain,
		SortOrder: sortOrder,
	}
}

// DefaultDeeds returns the ten deeds seeded on first launch. Each call
// mints fresh ids, so it must run at most once per installation.
func DefaultDeeds() []Deed {
	seed := []struct {
		name   string
		icon   string
		domain Domain
	}{
		{"Bathed", "drop.fill", DomainCare},
		{"Walked", "figure.walk", DomainCare},
		{"Put to Bed", "moon.zzz.fill", DomainCare},
		{"Read", "book.fill", DomainCare},
		{"Played", "puzzlepiece.fill", DomainCare},
		{"Cooked", "frying.pan.fill", DomainHousehold},
		{"Dishes", "cup.and.saucer.fill", DomainHousehold},
		{"Cleaned", "sparkles", DomainHousehold},
		{"Laundry", "washer.fill", DomainHousehold},
		{"Shopping", "cart.fill", DomainHousehold},
	}

	deeds := make([]Deed, 0, len(seed))
	for i, s := range seed {
		deeds = append(deeds, Deed{
			ID:        uuid.New(),
			Name:      s.name,
			Icon:      s.icon,
			Domain:    s.domain,
			SortOrder: i,
			Default:   true,
		})
	}
	return deeds
}
