package categorycontroller

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Part{},
		&models.PartSpecification{},
		&models.Image{},
	))
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, name string, parentID *uint) *models.Category {
	t.Helper()
	cat, err := CreateCategory(db, name, parentID)
	require.NoError(t, err)
	return cat
}

func TestDescendants(t *testing.T) {
	db := newTestDB(t)
	root := mustCreate(t, db, "Parts", nil)
	brakes := mustCreate(t, db, "Brakes", &root.ID)
	discs := mustCreate(t, db, "Brake discs", &brakes.ID)
	pads := mustCreate(t, db, "Brake pads", &brakes.ID)
	mustCreate(t, db, "Engines", nil)

	ids, err := Descendants(db, []uint{root.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{root.ID, brakes.ID, discs.ID, pads.ID}, ids)

	ids, err = Descendants(db, []uint{discs.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{discs.ID}, ids)
}

func TestDescendantsSurvivesCycle(t *testing.T) {
	db := newTestDB(t)
	a := mustCreate(t, db, "A", nil)
	b := mustCreate(t, db, "B", &a.ID)
	// Corrupt the tree: A becomes a child of its own child.
	require.NoError(t, db.Model(&models.Category{}).
		Where("id = ?", a.ID).Update("parent_id", b.ID).Error)

	ids, err := Descendants(db, []uint{a.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)
}

func TestIsLeaf(t *testing.T) {
	db := newTestDB(t)
	root := mustCreate(t, db, "Brakes", nil)
	leaf := mustCreate(t, db, "Brake discs", &root.ID)

	isLeaf, err := IsLeaf(db, root.ID)
	require.NoError(t, err)
	assert.False(t, isLeaf)

	isLeaf, err = IsLeaf(db, leaf.ID)
	require.NoError(t, err)
	assert.True(t, isLeaf)

	_, err = IsLeaf(db, 999)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestTree(t *testing.T) {
	db := newTestDB(t)
	parts := mustCreate(t, db, "Parts", nil)
	mustCreate(t, db, "Brakes", &parts.ID)
	mustCreate(t, db, "Air filters", &parts.ID)

	tree, err := Tree(db)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Parts", tree[0].Name)
	assert.False(t, tree[0].IsLeaf)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Air filters", tree[0].Children[0].Name, "children sorted by name")
	assert.Equal(t, "Brakes", tree[0].Children[1].Name)
	assert.True(t, tree[0].Children[0].IsLeaf)
}

func TestCreateCategoryValidation(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateCategory(db, "", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	missing := uint(42)
	_, err = CreateCategory(db, "Orphan", &missing)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRenameCategory(t *testing.T) {
	db := newTestDB(t)
	cat := mustCreate(t, db, "Brakse", nil)

	renamed, err := RenameCategory(db, cat.ID, "Brakes")
	require.NoError(t, err)
	assert.Equal(t, "Brakes", renamed.Name)

	_, err = RenameCategory(db, 999, "X")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteCategoryRemovesSubtreeAndParts(t *testing.T) {
	db := newTestDB(t)
	root := mustCreate(t, db, "Brakes", nil)
	leaf := mustCreate(t, db, "Brake discs", &root.ID)
	keep := mustCreate(t, db, "Engines", nil)

	part := models.Part{
		Name: "front disc", Price: decimal.NewFromInt(90),
		StockCount: 3, CategoryID: leaf.ID,
	}
	require.NoError(t, db.Create(&part).Error)
	require.NoError(t, db.Create(&models.PartSpecification{
		PartID: part.ID, Name: "Diameter", Value: "280",
	}).Error)
	require.NoError(t, db.Create(&models.Image{
		URL: "https://img.example/disc.jpg", PartID: &part.ID,
	}).Error)

	var invalidated []uint
	err := DeleteCategory(db, root.ID, func(id uint) { invalidated = append(invalidated, id) })
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{root.ID, leaf.ID}, invalidated)

	var categories, parts, specs, images int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Part{}).Count(&parts).Error)
	require.NoError(t, db.Model(&models.PartSpecification{}).Count(&specs).Error)
	require.NoError(t, db.Model(&models.Image{}).Count(&images).Error)
	assert.EqualValues(t, 1, categories, "unrelated category survives")
	assert.Zero(t, parts)
	assert.Zero(t, specs)
	assert.Zero(t, images)

	_, err = IsLeaf(db, keep.ID)
	require.NoError(t, err)
}
