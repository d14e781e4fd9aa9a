package advisor

import (
	"strings"

	"tripcircle/internal/types"
)

// Packing trigger thresholds.
const (
	humidItemThreshold  = 70.0 // avg humidity percent
	windyItemThreshold  = 10.0 // any day's avg wind, m/s
	layersTipSwing      = 15.0 // trip-wide temperature swing, degrees C
	rainTipProbability  = 50.0 // any day's max precip probability
	coldTipTemperature  = 10.0
	hotTipTemperature   = 30.0
)

// temperatureBand associates a half-open temperature range with its fixed
// item set. A day whose min or max falls inside the range contributes the
// items.
type temperatureBand struct {
	min   float64 // inclusive; -inf expressed as a very low sentinel
	max   float64 // exclusive
	items []string
}

// PackingRules is the immutable configuration for the packing generator.
type PackingRules struct {
	Bands          []temperatureBand
	ConditionItems map[types.Condition][]string
	Essentials     []string
	HumidItems     []string
	WindItems      []string
	UVItems        []string
}

// PackingGenerator maps daily summaries and planned activities to a
// categorized packing list. Rule tables and the gear catalog are injected
// at construction.
type PackingGenerator struct {
	rules PackingRules
	gear  *GearCatalog
}

// GearCatalog is the ordered activity-to-gear table. It resolves free-text
// activity names with the same exact-then-substring rule as the activity
// catalog, but is a separate table: gear items land in a dedicated bucket,
// never merged into clothing or accessories.
type GearCatalog struct {
	keys  []string
	items map[string][]string
}

// NewGearCatalog builds a gear catalog preserving key order.
func NewGearCatalog(keys []string, items map[string][]string) *GearCatalog {
	return &GearCatalog{keys: keys, items: items}
}

// Resolve returns the gear set for an activity name, or nil.
func (g *GearCatalog) Resolve(name string) []string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil
	}
	if items, ok := g.items[normalized]; ok {
		return items
	}
	for _, key := range g.keys {
		if strings.Contains(normalized, key) || strings.Contains(key, normalized) {
			return g.items[key]
		}
	}
	return nil
}

// DefaultGearCatalog returns the built-in activity gear table.
func DefaultGearCatalog() *GearCatalog {
	items := map[string][]string{
		"hiking":     {"hiking boots", "daypack", "trekking poles", "refillable water bottle"},
		"beach":      {"swimsuit", "beach towel", "flip-flops"},
		"swimming":   {"swimsuit", "swim goggles", "quick-dry towel"},
		"surfing":    {"rash guard", "board leash", "surf wax"},
		"snorkeling": {"snorkel mask", "fins", "swimsuit"},
		"kayaking":   {"dry bag", "water shoes", "paddling gloves"},
		"cycling":    {"cycling helmet", "bike lights", "repair kit"},
		"skiing":     {"ski goggles", "thermal base layers", "ski socks"},
		"camping":    {"tent", "sleeping bag", "headlamp"},
		"golf":       {"golf glove", "tees"},
		"fishing":    {"travel rod", "tackle kit"},
		"running":    {"running shoes", "reflective band"},
	}
	keys := []string{
		"hiking", "beach", "swimming", "surfing", "snorkeling", "kayaking",
		"cycling", "skiing", "camping", "golf", "fishing", "running",
	}
	return NewGearCatalog(keys, items)
}

// negInf is the lower sentinel for the coldest temperature band.
const negInf = -1000.0

// posInf is the upper sentinel for the hottest temperature band.
const posInf = 1000.0

// DefaultPackingRules returns the built-in packing rule tables.
func DefaultPackingRules() PackingRules {
	return PackingRules{
		Bands: []temperatureBand{
			{negInf, 0, []string{"heavy winter coat", "thermal underwear", "winter boots", "wool hat", "insulated gloves"}},
			{0, 10, []string{"warm coat", "sweater", "long pants", "scarf", "warm socks"}},
			{10, 20, []string{"light jacket", "long-sleeve shirt", "jeans", "closed shoes"}},
			{20, 28, []string{"t-shirt", "light pants", "shorts", "breathable clothing"}},
			{28, posInf, []string{"tank top shirt", "shorts", "sun hat", "sandals"}},
		},
		ConditionItems: map[types.Condition][]string{
			types.ConditionRain:         {"umbrella", "rain jacket", "waterproof shoes"},
			types.ConditionThunderstorm: {"umbrella", "rain jacket", "waterproof cover for your bag"},
			types.ConditionSnow:         {"snow boots", "waterproof gloves", "thermal socks"},
			types.ConditionClear:        {"sunglasses", "sunscreen"},
			types.ConditionClouds:       {"light jacket"},
			types.ConditionMist:         {"water-resistant jacket"},
			types.ConditionFog:          {"warm outer jacket"},
		},
		Essentials: []string{
			"travel documents",
			"phone charger",
			"medications",
			"toiletries",
			"credit cards and cash",
		},
		HumidItems: []string{"moisture-wicking shirts", "anti-chafe balm", "extra deodorant"},
		WindItems:  []string{"windproof jacket", "hair ties"},
		UVItems:    []string{"sunscreen", "lip balm with SPF", "sunglasses"},
	}
}

// NewPackingGenerator creates a generator with the given rule tables.
func NewPackingGenerator(rules PackingRules, gear *GearCatalog) *PackingGenerator {
	return &PackingGenerator{rules: rules, gear: gear}
}

// itemSet is an insertion-ordered set of item strings.
type itemSet struct {
	order []string
	seen  map[string]struct{}
}

func newItemSet() *itemSet {
	return &itemSet{seen: make(map[string]struct{})}
}

func (s *itemSet) add(items ...string) {
	for _, item := range items {
		if _, ok := s.seen[item]; ok {
			continue
		}
		s.seen[item] = struct{}{}
		s.order = append(s.order, item)
	}
}

// clothingKeywords are checked before accessoryKeywords; order of checks
// matters for items like "waterproof shoes" vs "rain jacket".
var clothingKeywords = []string{
	"coat", "jacket", "shirt", "pants", "shorts", "dress", "sweater",
	"underwear", "clothing",
}

var accessoryKeywords = []string{
	"hat", "sunglasses", "gloves", "scarf", "shoes", "boots", "sandals",
	"umbrella", "bag",
}

// categorize assigns a raw item string to clothing, accessories, or other
// via keyword substring checks, clothing first.
func categorize(item string) string {
	lower := strings.ToLower(item)
	for _, kw := range clothingKeywords {
		if strings.Contains(lower, kw) {
			return "clothing"
		}
	}
	for _, kw := range accessoryKeywords {
		if strings.Contains(lower, kw) {
			return "accessories"
		}
	}
	return "other"
}

// Generate builds a packing list from the trip's daily summaries and the
// list of planned activities. Essentials are always included regardless of
// weather.
func (p *PackingGenerator) Generate(days []types.DailySummary, activities []string) *types.PackingList {
	clothing := newItemSet()
	accessories := newItemSet()
	other := newItemSet()
	gear := newItemSet()
	essentials := newItemSet()

	addCategorized := func(items []string) {
		for _, item := range items {
			switch categorize(item) {
			case "clothing":
				clothing.add(item)
			case "accessories":
				accessories.add(item)
			default:
				other.add(item)
			}
		}
	}

	summary := types.PackingSummary{}
	if len(days) > 0 {
		summary.TempMin = days[0].TempMin
		summary.TempMax = days[0].TempMax
	}

	var (
		humiditySum float64
		anyWindy    bool
		anyClear    bool
		condSeen    = make(map[types.Condition]struct{})
	)

	for _, day := range days {
		if day.TempMin < summary.TempMin {
			summary.TempMin = day.TempMin
		}
		if day.TempMax > summary.TempMax {
			summary.TempMax = day.TempMax
		}
		humiditySum += day.AvgHumidity
		if day.AvgWindSpeed > windyItemThreshold {
			anyWindy = true
		}
		if day.DominantCondition == types.ConditionClear {
			anyClear = true
		}
		if day.TotalRain > 0 || day.DominantCondition == types.ConditionRain ||
			day.DominantCondition == types.ConditionThunderstorm {
			summary.ExpectRain = true
		}

		// Both the day's min and max are matched against the bands, so a
		// large daily swing can pull in more than one band's items.
		for _, band := range p.rules.Bands {
			if inBand(day.TempMin, band) || inBand(day.TempMax, band) {
				addCategorized(band.items)
			}
		}

		if _, ok := condSeen[day.DominantCondition]; !ok {
			condSeen[day.DominantCondition] = struct{}{}
			summary.Conditions = append(summary.Conditions, day.DominantCondition)
			addCategorized(p.rules.ConditionItems[day.DominantCondition])
		}
	}

	for _, activity := range activities {
		gear.add(p.gear.Resolve(activity)...)
	}

	essentials.add(p.rules.Essentials...)

	avgHumidity := 0.0
	if len(days) > 0 {
		avgHumidity = humiditySum / float64(len(days))
	}
	if avgHumidity > humidItemThreshold {
		addCategorized(p.rules.HumidItems)
	}
	if anyWindy {
		addCategorized(p.rules.WindItems)
	}
	if anyClear {
		addCategorized(p.rules.UVItems)
	}

	summary.PackingTips = p.tips(days, summary, avgHumidity)
	summary.ItemCount = len(clothing.order) + len(accessories.order) +
		len(gear.order) + len(essentials.order) + len(other.order)

	return &types.PackingList{
		Clothing:     clothing.order,
		Accessories:  accessories.order,
		ActivityGear: gear.order,
		Essentials:   essentials.order,
		Other:        other.order,
		Summary:      summary,
	}
}

func inBand(t float64, band temperatureBand) bool {
	return t >= band.min && t < band.max
}

// tips appends packing tips in fixed order: layers, rain, cold, hot,
// humidity. Tips are additive, not mutually exclusive.
func (p *PackingGenerator) tips(days []types.DailySummary, summary types.PackingSummary, avgHumidity float64) []string {
	if len(days) == 0 {
		return nil
	}

	var tips []string
	if summary.TempMax-summary.TempMin > layersTipSwing {
		tips = append(tips, "Temperatures vary a lot on this trip — pack layers you can add or remove.")
	}
	for _, day := range days {
		if day.MaxPrecipProb > rainTipProbability {
			tips = append(tips, "Rain is likely on at least one day — keep waterproof gear handy.")
			break
		}
	}
	if summary.TempMin < coldTipTemperature {
		tips = append(tips, "Expect cold spells — warm outerwear is a must.")
	}
	if summary.TempMax > hotTipTemperature {
		tips = append(tips, "Hot days ahead — favor light fabrics and stay hydrated.")
	}
	if avgHumidity > humidItemThreshold {
		tips = append(tips, "High humidity expected — breathable, quick-drying clothes will help.")
	}
	return tips
}
