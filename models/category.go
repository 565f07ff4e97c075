package models

// Category is a node in the part category tree. Only leaf categories
// (no children) carry parts and expose specification facets.
type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:50;not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent_id"`

	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
	Parts    []Part     `gorm:"foreignKey:CategoryID" json:"-"`
}

// CategoryNode is the serialized form used by the category tree endpoint.
type CategoryNode struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	ParentID *uint          `json:"parent_id"`
	IsLeaf   bool           `json:"is_leaf"`
	Children []CategoryNode `json:"children"`
}
