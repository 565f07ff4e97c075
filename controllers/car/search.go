package carcontroller

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/models"
)

const (
	DefaultLimit = 12
	MaxLimit     = 50

	maxPlausibleYear   = 2030
	maxPlausiblePower  = 1000
	minPlausibleVolume = 0.1
	maxPlausibleVolume = 10.0
)

// ExtractVIN strips everything outside the VIN alphabet and returns the
// uppercased remainder if it is exactly 17 characters long.
func ExtractVIN(query string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(query) {
		switch {
		case r >= 'A' && r <= 'Z' && r != 'I' && r != 'O' && r != 'Q':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	vin := b.String()
	if len(vin) == 17 {
		return vin, true
	}
	return "", false
}

// numericHint classifies a bare numeric token: integers within 0..2030
// hint at a production year, integers within 0..1000 at engine power,
// and decimals within 0.1..10.0 at engine volume.
type numericHint struct {
	year   *int
	power  *int
	volume *float64
}

func parseNumericHint(token string) (numericHint, bool) {
	var b strings.Builder
	for _, r := range token {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." || strings.Count(cleaned, ".") > 1 {
		return numericHint{}, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return numericHint{}, false
	}

	var hint numericHint
	if v == float64(int(v)) {
		n := int(v)
		if n >= 0 && n <= maxPlausibleYear {
			hint.year = &n
		} else if n >= 0 && n <= maxPlausiblePower {
			hint.power = &n
		}
	} else if v >= minPlausibleVolume && v <= maxPlausibleVolume {
		hint.volume = &v
	}
	if hint.year == nil && hint.power == nil && hint.volume == nil {
		return numericHint{}, false
	}
	return hint, true
}

// CarFilters are the structured column filters of the cars pipeline.
type CarFilters struct {
	Colors     []string `json:"colors" form:"colors"`
	Conditions []string `json:"conditions" form:"conditions"`
	Brands     []string `json:"brands" form:"brands"`
	FuelTypes  []string `json:"fuel_types" form:"fuel_types"`

	Transmissions []string `json:"transmissions" form:"transmissions"`
	DriveTypes    []string `json:"drive_types" form:"drive_types"`
	BodyTypes     []string `json:"body_types" form:"body_types"`

	MinMileage *int `json:"min_mileage" form:"min_mileage"`
	MaxMileage *int `json:"max_mileage" form:"max_mileage"`

	MinProductionYear *int `json:"min_production_year" form:"min_production_year"`
	MaxProductionYear *int `json:"max_production_year" form:"max_production_year"`

	MinPrice *decimal.Decimal `json:"min_price" form:"min_price"`
	MaxPrice *decimal.Decimal `json:"max_price" form:"max_price"`

	MinEngineVolume *float64 `json:"min_engine_volume" form:"min_engine_volume"`
	MaxEngineVolume *float64 `json:"max_engine_volume" form:"max_engine_volume"`
	MinEnginePower  *int     `json:"min_engine_power" form:"min_engine_power"`
	MaxEnginePower  *int     `json:"max_engine_power" form:"max_engine_power"`
	MinEngineTorque *int     `json:"min_engine_torque" form:"min_engine_torque"`
	MaxEngineTorque *int     `json:"max_engine_torque" form:"max_engine_torque"`
}

type SearchParams struct {
	Query   string
	Filters CarFilters
	Offset  int
	Limit   int

	// IncludeHidden lets staff see cars bound to active orders and cars
	// flagged invisible; customer-facing callers leave it false.
	IncludeHidden bool
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

// activeCarOrderSubquery selects the car ids referenced by any
// non-cancelled order.
func activeCarOrderSubquery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.CarOrder{}).
		Select("car_orders.car_id").
		Joins("JOIN orders ON orders.id = car_orders.order_id").
		Where("orders.status <> ?", models.OrderStatusCancelled)
}

func applyColumnFilters(q *gorm.DB, f CarFilters) *gorm.DB {
	if len(f.Colors) > 0 {
		q = q.Where("cars.color IN ?", f.Colors)
	}
	if len(f.Conditions) > 0 {
		q = q.Where("cars.condition IN ?", f.Conditions)
	}
	if f.MinMileage != nil {
		q = q.Where("cars.mileage >= ?", *f.MinMileage)
	}
	if f.MaxMileage != nil {
		q = q.Where("cars.mileage <= ?", *f.MaxMileage)
	}
	if f.MinProductionYear != nil {
		q = q.Where("cars.production_year >= ?", *f.MinProductionYear)
	}
	if f.MaxProductionYear != nil {
		q = q.Where("cars.production_year <= ?", *f.MaxProductionYear)
	}
	if f.MinPrice != nil {
		q = q.Where("cars.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("cars.price <= ?", *f.MaxPrice)
	}
	if len(f.Brands) > 0 {
		q = q.Where("car_trims.brand_name IN ?", f.Brands)
	}
	if len(f.FuelTypes) > 0 {
		q = q.Where("car_trims.fuel_type IN ?", f.FuelTypes)
	}
	if len(f.Transmissions) > 0 {
		q = q.Where("car_trims.transmission IN ?", f.Transmissions)
	}
	if len(f.DriveTypes) > 0 {
		q = q.Where("car_trims.drive_type IN ?", f.DriveTypes)
	}
	if len(f.BodyTypes) > 0 {
		q = q.Where("car_trims.body_type IN ?", f.BodyTypes)
	}
	if f.MinEngineVolume != nil {
		q = q.Where("car_trims.engine_volume >= ?", *f.MinEngineVolume)
	}
	if f.MaxEngineVolume != nil {
		q = q.Where("car_trims.engine_volume <= ?", *f.MaxEngineVolume)
	}
	if f.MinEnginePower != nil {
		q = q.Where("car_trims.engine_power >= ?", *f.MinEnginePower)
	}
	if f.MaxEnginePower != nil {
		q = q.Where("car_trims.engine_power <= ?", *f.MaxEnginePower)
	}
	if f.MinEngineTorque != nil {
		q = q.Where("car_trims.engine_torque >= ?", *f.MinEngineTorque)
	}
	if f.MaxEngineTorque != nil {
		q = q.Where("car_trims.engine_torque <= ?", *f.MaxEngineTorque)
	}
	return q
}

// applyTextSearch adds the free-text conditions. A query that cleans up
// to a full VIN short-circuits to an exact match; otherwise tokens
// match brand, model and color substrings, with bare numbers treated as
// year/power/volume hints.
func applyTextSearch(db *gorm.DB, q *gorm.DB, query string) (*gorm.DB, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return q, true
	}

	if vin, ok := ExtractVIN(query); ok {
		return q.Where("cars.vin = ?", vin), true
	}

	var cond *gorm.DB
	add := func(c *gorm.DB) {
		if cond == nil {
			cond = c
		} else {
			cond = cond.Or(c)
		}
	}

	like := likeOp(db)
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(tok)) < 2 {
			continue
		}
		pattern := "%" + tok + "%"
		add(db.Where("car_trims.brand_name "+like+" ?", pattern))
		add(db.Where("car_trims.model_name "+like+" ?", pattern))
		add(db.Where("cars.color "+like+" ?", pattern))

		if hint, ok := parseNumericHint(tok); ok {
			if hint.year != nil {
				add(db.Where("cars.production_year = ?", *hint.year))
			}
			if hint.power != nil {
				add(db.Where("car_trims.engine_power >= ?", *hint.power))
			}
			if hint.volume != nil {
				add(db.Where("car_trims.engine_volume >= ?", *hint.volume))
			}
		}
	}

	if cond == nil {
		// Nothing usable in the query: no car can match.
		return q, false
	}
	return q.Where(cond), true
}

// SearchCars runs the cars pipeline: text search, column filters,
// availability exclusion and pagination with a has-more look-ahead.
func SearchCars(db *gorm.DB, params SearchParams) ([]models.Car, bool, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	matchable := true
	build := func() *gorm.DB {
		q := db.Model(&models.Car{}).
			Joins("JOIN car_trims ON car_trims.id = cars.trim_id")

		if !params.IncludeHidden {
			q = q.Where("cars.is_visible = ?", true).
				Where("cars.price IS NOT NULL").
				Where("cars.id NOT IN (?)", activeCarOrderSubquery(db))
		}

		q, ok := applyTextSearch(db, q, params.Query)
		if !ok {
			matchable = false
		}
		return applyColumnFilters(q, params.Filters)
	}

	q := build()
	if !matchable {
		return []models.Car{}, false, nil
	}

	var cars []models.Car
	err := q.
		Preload("Trim").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&cars).Error
	if err != nil {
		return nil, false, err
	}

	var nextIDs []uint
	if err := build().
		Offset(params.Offset + params.Limit).
		Limit(1).
		Pluck("cars.id", &nextIDs).Error; err != nil {
		return nil, false, err
	}
	return cars, len(nextIDs) > 0, nil
}
