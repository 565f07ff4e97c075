package partcontroller

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	categorycontroller "github.com/AgentGrom/autoshop/controllers/category"
	"github.com/AgentGrom/autoshop/models"
)

const (
	DefaultLimit = 12
	MaxLimit     = 50
)

// SpecSelection is one facet selection: either a set of option values
// or a numeric band for range facets.
type SpecSelection struct {
	Values []string
	Min    *float64
	Max    *float64
}

// SpecsFilter maps attribute names to selections. The wire format
// accepts "Name": "Value", "Name": ["V1","V2"] and
// "Name": {"min": 290, "max": 310}.
type SpecsFilter map[string]SpecSelection

// ParseSpecsFilter decodes the specs query parameter. Malformed input
// is rejected, never silently ignored.
func ParseSpecsFilter(raw string) (SpecsFilter, error) {
	if raw == "" {
		return nil, nil
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err, "malformed specs filter JSON")
	}

	filter := make(SpecsFilter, len(generic))
	for name, rawVal := range generic {
		var sel SpecSelection

		var single string
		if err := json.Unmarshal(rawVal, &single); err == nil {
			sel.Values = []string{single}
			filter[name] = sel
			continue
		}
		var many []string
		if err := json.Unmarshal(rawVal, &many); err == nil {
			if len(many) == 0 {
				return nil, apperrors.Validation("specs filter %q has an empty value list", name)
			}
			sel.Values = many
			filter[name] = sel
			continue
		}
		var band struct {
			Min *float64 `json:"min"`
			Max *float64 `json:"max"`
		}
		if err := json.Unmarshal(rawVal, &band); err == nil && (band.Min != nil || band.Max != nil) {
			if band.Min != nil && band.Max != nil && *band.Min > *band.Max {
				return nil, apperrors.Validation("specs filter %q has min greater than max", name)
			}
			sel.Min, sel.Max = band.Min, band.Max
			filter[name] = sel
			continue
		}
		return nil, apperrors.Validation("specs filter %q is neither a value, a list nor a range", name)
	}
	return filter, nil
}

// likeOp picks the case-insensitive substring operator for the dialect:
// ILIKE on postgres, plain LIKE elsewhere (sqlite LIKE is already
// case-insensitive for ASCII).
func likeOp(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

// Tokenize splits a free-text query on whitespace and drops tokens
// shorter than two characters.
func Tokenize(query string) []string {
	var tokens []string
	for _, tok := range strings.Fields(query) {
		if len([]rune(tok)) >= 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

type SearchParams struct {
	Query      string
	CategoryID *uint
	Specs      SpecsFilter
	Offset     int
	Limit      int
}

// SearchParts runs the full parts pipeline: free-text search, category
// scope (with descendants), facet filters and pagination. The second
// return value reports whether more rows exist past offset+limit.
func SearchParts(db *gorm.DB, params SearchParams) ([]models.Part, bool, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	var scopeIDs []uint
	if params.CategoryID != nil {
		ids, err := categorycontroller.Descendants(db, []uint{*params.CategoryID})
		if err != nil {
			return nil, false, err
		}
		scopeIDs = ids
	}

	// Range selections are resolved up front: candidate spec values are
	// parsed with the shared numeric parser and only parts whose value
	// falls inside the band survive. Values that fail to parse never
	// match a range filter.
	rangeIDs := make(map[string][]uint)
	for name, sel := range params.Specs {
		if sel.Min == nil && sel.Max == nil {
			continue
		}
		ids, err := partIDsInRange(db, name, sel.Min, sel.Max)
		if err != nil {
			return nil, false, err
		}
		if len(ids) == 0 {
			return []models.Part{}, false, nil
		}
		rangeIDs[name] = ids
	}

	build := func() *gorm.DB {
		q := db.Model(&models.Part{})

		if tokens := Tokenize(params.Query); len(tokens) > 0 {
			like := likeOp(db)
			search := db
			for i, tok := range tokens {
				pattern := "%" + tok + "%"
				specSub := db.Model(&models.PartSpecification{}).
					Select("part_id").
					Where("name "+like+" ? OR value "+like+" ?", pattern, pattern)
				cond := db.Where("parts.name "+like+" ?", pattern).
					Or("parts.article "+like+" ?", pattern).
					Or("parts.manufacturer "+like+" ?", pattern).
					Or("parts.id IN (?)", specSub)
				if i == 0 {
					search = cond
				} else {
					search = search.Or(cond)
				}
			}
			q = q.Where(search)
		}

		if scopeIDs != nil {
			q = q.Where("parts.category_id IN ?", scopeIDs)
		}

		for name, sel := range params.Specs {
			if len(sel.Values) > 0 {
				sub := db.Model(&models.PartSpecification{}).
					Select("part_id").
					Where("name = ? AND value IN ?", name, sel.Values)
				q = q.Where("parts.id IN (?)", sub)
			}
		}
		for _, ids := range rangeIDs {
			q = q.Where("parts.id IN ?", ids)
		}
		return q
	}

	var parts []models.Part
	err := build().
		Preload("Category").
		Preload("Specifications").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&parts).Error
	if err != nil {
		return nil, false, err
	}

	// Look-ahead instead of a count query: one row past the page is
	// enough to know whether more exist.
	var nextIDs []uint
	if err := build().
		Offset(params.Offset + params.Limit).
		Limit(1).
		Pluck("parts.id", &nextIDs).Error; err != nil {
		return nil, false, err
	}
	return parts, len(nextIDs) > 0, nil
}

// partIDsInRange loads every spec row with the given attribute name and
// keeps the parts whose parsed value lies inside [min, max].
func partIDsInRange(db *gorm.DB, name string, min, max *float64) ([]uint, error) {
	var rows []models.PartSpecification
	if err := db.Model(&models.PartSpecification{}).
		Select("part_id, value").
		Where("name = ?", name).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var ids []uint
	for _, row := range rows {
		v, ok := ParseNumeric(row.Value)
		if !ok {
			continue
		}
		if min != nil && v < *min {
			continue
		}
		if max != nil && v > *max {
			continue
		}
		if !seen[row.PartID] {
			seen[row.PartID] = true
			ids = append(ids, row.PartID)
		}
	}
	return ids, nil
}
