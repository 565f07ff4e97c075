package partcontroller

import (
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	categorycontroller "github.com/AgentGrom/autoshop/controllers/category"
	"github.com/AgentGrom/autoshop/models"
)

const (
	FacetRange   = "range"
	FacetOptions = "options"
)

// FacetDescriptor describes one filterable attribute of a leaf
// category: either a numeric range with observed bounds or a finite
// option set.
type FacetDescriptor struct {
	Type   string   `json:"type"`
	Values []string `json:"values,omitempty"`
	Min    float64  `json:"min,omitempty"`
	Max    float64  `json:"max,omitempty"`
	Unit   string   `json:"unit,omitempty"`
}

// SpecValue is one distinct (value, unit) pair observed for an
// attribute name within a category.
type SpecValue struct {
	Value string
	Unit  *string
}

// ParseNumeric applies the shared permissive parser: every character
// except digits, sign and decimal separators is stripped, a comma is
// treated as a decimal point, and the rest must parse as a float.
// "280 мм" parses to 280; "ABS, EBD" does not parse.
func ParseNumeric(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '+', r == '-', r == '.':
			b.WriteRune(r)
		case r == ',':
			b.WriteRune('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SpecsForCategory returns the distinct specification values per
// attribute name across all parts directly in the given leaf category
// (descendants are not mixed in: facets only exist at leaf level).
func SpecsForCategory(db *gorm.DB, categoryID uint) (map[string][]SpecValue, error) {
	leaf, err := categorycontroller.IsLeaf(db, categoryID)
	if err != nil {
		return nil, err
	}
	if !leaf {
		return nil, apperrors.InvalidOperation("category %d is not a leaf category", categoryID)
	}

	var rows []models.PartSpecification
	if err := db.Model(&models.PartSpecification{}).
		Select("part_specifications.name, part_specifications.value, part_specifications.unit").
		Joins("JOIN parts ON parts.id = part_specifications.part_id").
		Where("parts.category_id = ?", categoryID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	type pair struct {
		value string
		unit  string
	}
	seen := make(map[string]map[pair]bool)
	specs := make(map[string][]SpecValue)
	for _, row := range rows {
		unit := ""
		if row.Unit != nil {
			unit = *row.Unit
		}
		p := pair{value: row.Value, unit: unit}
		if seen[row.Name] == nil {
			seen[row.Name] = make(map[pair]bool)
		}
		if seen[row.Name][p] {
			continue
		}
		seen[row.Name][p] = true
		specs[row.Name] = append(specs[row.Name], SpecValue{Value: row.Value, Unit: row.Unit})
	}
	return specs, nil
}

// ClassifyFacet turns the distinct values of one attribute into a facet
// descriptor. If at least half of the distinct values parse numerically
// the attribute is a range facet (bounds from the parsed values, unit =
// most frequent unit among the numeric entries); otherwise it is an
// options facet with value+unit strings, deduplicated and sorted.
func ClassifyFacet(values []SpecValue) FacetDescriptor {
	if len(values) == 0 {
		return FacetDescriptor{Type: FacetOptions}
	}

	var parsed []float64
	unitCount := make(map[string]int)
	for _, v := range values {
		n, ok := ParseNumeric(v.Value)
		if !ok {
			continue
		}
		parsed = append(parsed, n)
		if v.Unit != nil && *v.Unit != "" {
			unitCount[*v.Unit]++
		}
	}

	if len(parsed)*2 >= len(values) && len(parsed) > 0 {
		min, max := parsed[0], parsed[0]
		for _, n := range parsed[1:] {
			if n < min {
				min = n
			}
			if n > max {
				max = n
			}
		}
		var unit string
		best := 0
		for u, cnt := range unitCount {
			if cnt > best || (cnt == best && u < unit) {
				unit, best = u, cnt
			}
		}
		return FacetDescriptor{Type: FacetRange, Min: min, Max: max, Unit: unit}
	}

	dedup := make(map[string]bool)
	var options []string
	for _, v := range values {
		label := v.Value
		if v.Unit != nil && *v.Unit != "" {
			label = label + " " + *v.Unit
		}
		if !dedup[label] {
			dedup[label] = true
			options = append(options, label)
		}
	}
	sort.Strings(options)
	return FacetDescriptor{Type: FacetOptions, Values: options}
}

// FilterConfig computes (or serves from cache) the facet configuration
// of a leaf category.
func FilterConfig(db *gorm.DB, categoryID uint) (map[string]FacetDescriptor, error) {
	if config, ok := facetCache.get(categoryID); ok {
		return config, nil
	}

	specs, err := SpecsForCategory(db, categoryID)
	if err != nil {
		return nil, err
	}
	config := make(map[string]FacetDescriptor, len(specs))
	for name, values := range specs {
		config[name] = ClassifyFacet(values)
	}
	facetCache.put(categoryID, config)
	return config, nil
}
