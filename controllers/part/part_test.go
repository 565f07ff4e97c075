package partcontroller

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

func TestCreatePartRequiresLeafCategory(t *testing.T) {
	db := newTestDB(t)
	parent := seedLeafCategory(t, db, "Brakes", nil)
	leaf := seedLeafCategory(t, db, "Brake discs", &parent.ID)

	_, err := CreatePart(db, CreatePartRequest{
		Name: "front disc", Price: decimal.NewFromInt(90), CategoryID: parent.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidOperation, apperrors.KindOf(err))

	part, err := CreatePart(db, CreatePartRequest{
		Name: "front disc", Price: decimal.NewFromInt(90), CategoryID: leaf.ID,
		Specifications: []SpecInput{
			{Name: "Diameter", Value: "280"},
			{Name: "  ", Value: "ignored"},
		},
		Images: []ImageInput{{URL: "https://img.example/disc.jpg", SortOrder: 1}},
	})
	require.NoError(t, err)
	assert.Len(t, part.Specifications, 1, "blank spec names are dropped")
	assert.Len(t, part.Images, 1)
}

func TestCreatePartArticleUniqueness(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)

	article := "BD-280-V"
	_, err := CreatePart(db, CreatePartRequest{
		Name: "disc", Article: &article,
		Price: decimal.NewFromInt(90), CategoryID: leaf.ID,
	})
	require.NoError(t, err)

	_, err = CreatePart(db, CreatePartRequest{
		Name: "another disc", Article: &article,
		Price: decimal.NewFromInt(95), CategoryID: leaf.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreatePartNegativeValues(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)

	_, err := CreatePart(db, CreatePartRequest{
		Name: "disc", Price: decimal.NewFromInt(-1), CategoryID: leaf.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = CreatePart(db, CreatePartRequest{
		Name: "disc", Price: decimal.NewFromInt(1), StockCount: -5, CategoryID: leaf.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestUpdatePartRewritesSpecSet(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)
	part, err := CreatePart(db, CreatePartRequest{
		Name: "disc", Price: decimal.NewFromInt(90), CategoryID: leaf.ID,
		Specifications: []SpecInput{
			{Name: "Diameter", Value: "280"},
			{Name: "Type", Value: "vented"},
		},
	})
	require.NoError(t, err)

	// nil leaves the set alone.
	newName := "disc v2"
	updated, err := UpdatePart(db, part.ID, UpdatePartRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "disc v2", updated.Name)
	assert.Len(t, updated.Specifications, 2)

	// Non-nil replaces the whole set.
	specs := []SpecInput{{Name: "Diameter", Value: "300"}}
	updated, err = UpdatePart(db, part.ID, UpdatePartRequest{Specifications: &specs})
	require.NoError(t, err)
	require.Len(t, updated.Specifications, 1)
	assert.Equal(t, "300", updated.Specifications[0].Value)

	// Empty non-nil clears it.
	none := []SpecInput{}
	updated, err = UpdatePart(db, part.ID, UpdatePartRequest{Specifications: &none})
	require.NoError(t, err)
	assert.Empty(t, updated.Specifications)
}

func TestUpdatePartCategoryMove(t *testing.T) {
	db := newTestDB(t)
	from := seedLeafCategory(t, db, "Brake discs", nil)
	to := seedLeafCategory(t, db, "Brake pads", nil)
	parent := seedLeafCategory(t, db, "Brakes", nil)
	seedLeafCategory(t, db, "Child", &parent.ID)

	part, err := CreatePart(db, CreatePartRequest{
		Name: "disc", Price: decimal.NewFromInt(90), CategoryID: from.ID,
	})
	require.NoError(t, err)

	_, err = UpdatePart(db, part.ID, UpdatePartRequest{CategoryID: &parent.ID})
	require.Error(t, err, "cannot move a part into a non-leaf category")
	assert.Equal(t, apperrors.KindInvalidOperation, apperrors.KindOf(err))

	moved, err := UpdatePart(db, part.ID, UpdatePartRequest{CategoryID: &to.ID})
	require.NoError(t, err)
	assert.Equal(t, to.ID, moved.CategoryID)
}

func TestDeletePartRemovesChildren(t *testing.T) {
	db := newTestDB(t)
	leaf := seedLeafCategory(t, db, "Brake discs", nil)
	part, err := CreatePart(db, CreatePartRequest{
		Name: "disc", Price: decimal.NewFromInt(90), CategoryID: leaf.ID,
		Specifications: []SpecInput{{Name: "Diameter", Value: "280"}},
		Images:         []ImageInput{{URL: "https://img.example/disc.jpg"}},
	})
	require.NoError(t, err)

	require.NoError(t, DeletePart(db, part.ID))

	var specs, images int64
	require.NoError(t, db.Model(&models.PartSpecification{}).Count(&specs).Error)
	require.NoError(t, db.Model(&models.Image{}).Count(&images).Error)
	assert.Zero(t, specs)
	assert.Zero(t, images)

	err = DeletePart(db, part.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
