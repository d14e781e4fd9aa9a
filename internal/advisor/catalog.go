package advisor

import (
	"strings"

	"tripcircle/internal/types"
)

// ActivityProfile holds the weather compatibility rules for one catalog
// activity.
type ActivityProfile struct {
	Key           string
	Ideal         []types.Condition
	Avoid         []types.Condition
	TempMin       float64 // degrees C
	TempMax       float64
	MaxWind       float64 // m/s
	MaxPrecipProb float64 // percent
	Category      types.ActivityCategory
}

// Catalog is the ordered, immutable table of activity profiles. Order
// matters: substring resolution scans entries in insertion order, which
// keeps tie-breaks reproducible.
type Catalog struct {
	profiles []ActivityProfile
	byKey    map[string]*ActivityProfile
}

// NewCatalog builds a catalog from an ordered profile list.
func NewCatalog(profiles []ActivityProfile) *Catalog {
	c := &Catalog{
		profiles: profiles,
		byKey:    make(map[string]*ActivityProfile, len(profiles)),
	}
	for i := range c.profiles {
		c.byKey[c.profiles[i].Key] = &c.profiles[i]
	}
	return c
}

// DefaultCatalog returns the built-in activity catalog.
func DefaultCatalog() *Catalog {
	clear := types.ConditionClear
	clouds := types.ConditionClouds
	rain := types.ConditionRain
	storm := types.ConditionThunderstorm
	snow := types.ConditionSnow
	mist := types.ConditionMist
	fog := types.ConditionFog

	return NewCatalog([]ActivityProfile{
		{
			Key:   "hiking",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{rain, storm, snow},
			TempMin: 5, TempMax: 28,
			MaxWind: 10, MaxPrecipProb: 30,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "beach",
			Ideal: []types.Condition{clear},
			Avoid: []types.Condition{rain, storm},
			TempMin: 22, TempMax: 38,
			MaxWind: 8, MaxPrecipProb: 20,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "swimming",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{storm},
			TempMin: 22, TempMax: 40,
			MaxWind: 8, MaxPrecipProb: 40,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "surfing",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{storm},
			TempMin: 18, TempMax: 35,
			MaxWind: 12, MaxPrecipProb: 40,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "kayaking",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{storm, rain},
			TempMin: 15, TempMax: 32,
			MaxWind: 9, MaxPrecipProb: 30,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "snorkeling",
			Ideal: []types.Condition{clear},
			Avoid: []types.Condition{storm, rain},
			TempMin: 22, TempMax: 38,
			MaxWind: 7, MaxPrecipProb: 30,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "cycling",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{rain, storm, snow},
			TempMin: 8, TempMax: 30,
			MaxWind: 10, MaxPrecipProb: 30,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "sightseeing",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{storm},
			TempMin: 5, TempMax: 32,
			MaxWind: 14, MaxPrecipProb: 50,
			Category: types.CategoryMixed,
		},
		{
			Key:   "picnic",
			Ideal: []types.Condition{clear},
			Avoid: []types.Condition{rain, storm, snow},
			TempMin: 14, TempMax: 30,
			MaxWind: 8, MaxPrecipProb: 20,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "camping",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{storm, snow},
			TempMin: 8, TempMax: 30,
			MaxWind: 10, MaxPrecipProb: 30,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "skiing",
			Ideal: []types.Condition{snow, clear, clouds},
			Avoid: []types.Condition{rain, storm, fog},
			TempMin: -15, TempMax: 5,
			MaxWind: 12, MaxPrecipProb: 60,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "golf",
			Ideal: []types.Condition{clear, clouds},
			Avoid: []types.Condition{rain, storm},
			TempMin: 10, TempMax: 32,
			MaxWind: 9, MaxPrecipProb: 30,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "fishing",
			Ideal: []types.Condition{clouds, clear, mist},
			Avoid: []types.Condition{storm},
			TempMin: 5, TempMax: 32,
			MaxWind: 10, MaxPrecipProb: 60,
			Category: types.CategoryOutdoor,
		},
		{
			Key:   "museum",
			Ideal: []types.Condition{rain, clouds, storm, snow, mist, fog, clear},
			Avoid: nil,
			TempMin: -30, TempMax: 45,
			MaxWind: 30, MaxPrecipProb: 100,
			Category: types.CategoryIndoor,
		},
		{
			Key:   "shopping",
			Ideal: []types.Condition{rain, clouds, storm, snow, mist, fog, clear},
			Avoid: nil,
			TempMin: -30, TempMax: 45,
			MaxWind: 30, MaxPrecipProb: 100,
			Category: types.CategoryIndoor,
		},
		{
			Key:   "spa",
			Ideal: []types.Condition{rain, clouds, storm, snow, mist, fog, clear},
			Avoid: nil,
			TempMin: -30, TempMax: 45,
			MaxWind: 30, MaxPrecipProb: 100,
			Category: types.CategoryIndoor,
		},
		{
			Key:   "cinema",
			Ideal: []types.Condition{rain, clouds, storm, snow, mist, fog, clear},
			Avoid: nil,
			TempMin: -30, TempMax: 45,
			MaxWind: 30, MaxPrecipProb: 100,
			Category: types.CategoryIndoor,
		},
	})
}

// Resolve maps a free-text activity name to a catalog profile using a
// two-phase lookup: exact match against the key map first, then an ordered
// scan for the first key that is a substring of, or contains, the
// normalized input. Returns nil when nothing matches.
func (c *Catalog) Resolve(name string) *ActivityProfile {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil
	}

	if p, ok := c.byKey[normalized]; ok {
		return p
	}

	for i := range c.profiles {
		key := c.profiles[i].Key
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return &c.profiles[i]
		}
	}
	return nil
}

// Keys returns catalog keys in insertion order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		keys[i] = p.Key
	}
	return keys
}

func conditionIn(cond types.Condition, set []types.Condition) bool {
	for _, c := range set {
		if c == cond {
			return true
		}
	}
	return false
}
