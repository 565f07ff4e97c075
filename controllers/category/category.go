package categorycontroller

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

// Descendants returns the ids of the given categories plus every
// category below them. Traversal is bounded by a visited set so a tree
// corrupted into a cycle still terminates.
func Descendants(db *gorm.DB, ids []uint) ([]uint, error) {
	visited := make(map[uint]bool, len(ids))
	queue := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}

	result := append([]uint{}, queue...)
	for len(queue) > 0 {
		batch := queue
		queue = nil

		var childIDs []uint
		if err := db.Model(&models.Category{}).
			Where("parent_id IN ?", batch).
			Pluck("id", &childIDs).Error; err != nil {
			return nil, err
		}
		for _, id := range childIDs {
			if !visited[id] {
				visited[id] = true
				result = append(result, id)
				queue = append(queue, id)
			}
		}
	}
	return result, nil
}

// IsLeaf reports whether the category has no children.
func IsLeaf(db *gorm.DB, id uint) (bool, error) {
	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.NotFound("category %d not found", id)
		}
		return false, err
	}
	var children int64
	if err := db.Model(&models.Category{}).
		Where("parent_id = ?", id).
		Count(&children).Error; err != nil {
		return false, err
	}
	return children == 0, nil
}

// Tree returns the full category forest, children sorted by name at
// every level, each node flagged as leaf or not.
func Tree(db *gorm.DB) ([]models.CategoryNode, error) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}

	childrenOf := make(map[uint][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}

	var build func(cats []models.Category) []models.CategoryNode
	build = func(cats []models.Category) []models.CategoryNode {
		sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
		nodes := make([]models.CategoryNode, 0, len(cats))
		for _, c := range cats {
			kids := childrenOf[c.ID]
			nodes = append(nodes, models.CategoryNode{
				ID:       c.ID,
				Name:     c.Name,
				ParentID: c.ParentID,
				IsLeaf:   len(kids) == 0,
				Children: build(kids),
			})
		}
		return nodes
	}
	return build(roots), nil
}

// CreateCategory adds a node, optionally under an existing parent.
func CreateCategory(db *gorm.DB, name string, parentID *uint) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}
	if parentID != nil {
		var parent models.Category
		if err := db.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("parent category %d not found", *parentID)
			}
			return nil, err
		}
	}
	cat := models.Category{Name: name, ParentID: parentID}
	if err := db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func RenameCategory(db *gorm.DB, id uint, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}
	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category %d not found", id)
		}
		return nil, err
	}
	cat.Name = name
	if err := db.Save(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category and every descendant, along with
// the parts they contain. invalidate, when non-nil, is called once per
// removed category id after the transaction commits so facet caches can
// drop stale entries.
func DeleteCategory(db *gorm.DB, id uint, invalidate func(categoryID uint)) error {
	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("category %d not found", id)
		}
		return err
	}

	ids, err := Descendants(db, []uint{id})
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var partIDs []uint
		if err := tx.Model(&models.Part{}).
			Where("category_id IN ?", ids).
			Pluck("id", &partIDs).Error; err != nil {
			return err
		}
		if len(partIDs) > 0 {
			if err := tx.Where("part_id IN ?", partIDs).
				Delete(&models.PartSpecification{}).Error; err != nil {
				return err
			}
			if err := tx.Where("part_id IN ?", partIDs).
				Delete(&models.Image{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Part{}, partIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Category{}, ids).Error
	})
	if err != nil {
		return err
	}

	if invalidate != nil {
		for _, cid := range ids {
			invalidate(cid)
		}
	}
	return nil
}
