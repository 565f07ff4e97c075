package partcontroller

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	categorycontroller "github.com/AgentGrom/autoshop/controllers/category"
	"github.com/AgentGrom/autoshop/models"
)

type SpecInput struct {
	Name  string  `json:"name" binding:"required"`
	Value string  `json:"value" binding:"required"`
	Unit  *string `json:"unit"`
}

type ImageInput struct {
	URL       string `json:"url" binding:"required"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"sort_order"`
}

type CreatePartRequest struct {
	Name         string          `json:"name" binding:"required"`
	Article      *string         `json:"article"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	StockCount   int             `json:"stock_count"`
	Manufacturer string          `json:"manufacturer"`
	CategoryID   uint            `json:"category_id" binding:"required"`

	Specifications []SpecInput  `json:"specifications"`
	Images         []ImageInput `json:"images"`
}

type UpdatePartRequest struct {
	Name         *string          `json:"name"`
	Article      *string          `json:"article"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	StockCount   *int             `json:"stock_count"`
	Manufacturer *string          `json:"manufacturer"`
	CategoryID   *uint            `json:"category_id"`

	// nil leaves the current set untouched; non-nil rewrites it.
	Specifications *[]SpecInput  `json:"specifications"`
	Images         *[]ImageInput `json:"images"`
}

func GetPart(db *gorm.DB, id uint) (*models.Part, error) {
	var part models.Part
	err := db.
		Preload("Category").
		Preload("Specifications").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&part, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("part %d not found", id)
		}
		return nil, err
	}
	return &part, nil
}

// CreatePart validates the target category (must exist and be a leaf),
// enforces article uniqueness, and writes the part with its
// specifications and images in one transaction.
func CreatePart(db *gorm.DB, req CreatePartRequest) (*models.Part, error) {
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}
	if req.StockCount < 0 {
		return nil, apperrors.Validation("stock_count must not be negative")
	}

	leaf, err := categorycontroller.IsLeaf(db, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !leaf {
		return nil, apperrors.InvalidOperation("parts can only be placed in leaf categories")
	}

	if req.Article != nil && *req.Article != "" {
		var count int64
		if err := db.Model(&models.Part{}).
			Where("article = ?", *req.Article).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperrors.Validation("part with article %q already exists", *req.Article)
		}
	}

	part := models.Part{
		Name:         req.Name,
		Article:      req.Article,
		Description:  req.Description,
		Price:        req.Price,
		StockCount:   req.StockCount,
		Manufacturer: req.Manufacturer,
		CategoryID:   req.CategoryID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&part).Error; err != nil {
			return err
		}
		return writeSpecsAndImages(tx, part.ID, req.Specifications, req.Images)
	})
	if err != nil {
		return nil, err
	}

	InvalidateSpecCache(req.CategoryID)
	return GetPart(db, part.ID)
}

// UpdatePart applies the non-nil fields; a non-nil specification or
// image list rewrites the whole set, matching how staff edit forms
// submit.
func UpdatePart(db *gorm.DB, id uint, req UpdatePartRequest) (*models.Part, error) {
	var part models.Part
	if err := db.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("part %d not found", id)
		}
		return nil, err
	}
	oldCategory := part.CategoryID

	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.Article != nil {
		part.Article = req.Article
	}
	if req.Description != nil {
		part.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.Validation("price must not be negative")
		}
		part.Price = *req.Price
	}
	if req.StockCount != nil {
		if *req.StockCount < 0 {
			return nil, apperrors.Validation("stock_count must not be negative")
		}
		part.StockCount = *req.StockCount
	}
	if req.Manufacturer != nil {
		part.Manufacturer = *req.Manufacturer
	}
	if req.CategoryID != nil && *req.CategoryID != oldCategory {
		leaf, err := categorycontroller.IsLeaf(db, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !leaf {
			return nil, apperrors.InvalidOperation("parts can only be placed in leaf categories")
		}
		part.CategoryID = *req.CategoryID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&part).Error; err != nil {
			return err
		}
		if req.Specifications != nil {
			if err := tx.Where("part_id = ?", id).
				Delete(&models.PartSpecification{}).Error; err != nil {
				return err
			}
		}
		if req.Images != nil {
			if err := tx.Where("part_id = ?", id).
				Delete(&models.Image{}).Error; err != nil {
				return err
			}
		}
		var specs []SpecInput
		if req.Specifications != nil {
			specs = *req.Specifications
		}
		var images []ImageInput
		if req.Images != nil {
			images = *req.Images
		}
		return writeSpecsAndImages(tx, id, specs, images)
	})
	if err != nil {
		return nil, err
	}

	InvalidateSpecCache(oldCategory)
	if part.CategoryID != oldCategory {
		InvalidateSpecCache(part.CategoryID)
	}
	return GetPart(db, id)
}

func DeletePart(db *gorm.DB, id uint) error {
	var part models.Part
	if err := db.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("part %d not found", id)
		}
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ?", id).
			Delete(&models.PartSpecification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("part_id = ?", id).
			Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&part).Error
	})
	if err != nil {
		return err
	}

	InvalidateSpecCache(part.CategoryID)
	return nil
}

func writeSpecsAndImages(tx *gorm.DB, partID uint, specs []SpecInput, images []ImageInput) error {
	for _, s := range specs {
		name := strings.TrimSpace(s.Name)
		value := strings.TrimSpace(s.Value)
		if name == "" || value == "" {
			continue
		}
		spec := models.PartSpecification{
			PartID: partID,
			Name:   name,
			Value:  value,
			Unit:   s.Unit,
		}
		if err := tx.Create(&spec).Error; err != nil {
			return err
		}
	}
	for _, img := range images {
		pid := partID
		image := models.Image{
			URL:       img.URL,
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
			PartID:    &pid,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}
