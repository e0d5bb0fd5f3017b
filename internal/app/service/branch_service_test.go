package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/db"
)

func setupBranchServiceTest(t *testing.T) (BranchService, *gorm.DB, *model.Place) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	branchRepo := repository.NewBranchRepository(testDB)
	placeRepo := repository.NewPlaceRepository(testDB)
	branchService := NewBranchService(branchRepo, placeRepo)

	place := &model.Place{Name: "Kategna", IsActive: true}
	require.NoError(t, testDB.Create(place).Error)

	return branchService, testDB, place
}

func TestBranchService_Create(t *testing.T) {
	branchService, _, place := setupBranchServiceTest(t)

	city := "Addis Ababa"
	branch, err := branchService.Create(BranchInput{
		PlaceID:      place.ID,
		Name:         "Bole Branch",
		City:         &city,
		IsMainBranch: true,
	})
	require.NoError(t, err)
	assert.Equal(t, place.ID, branch.PlaceID)
	assert.Equal(t, "addis-ababa-bole-branch", branch.Slug, "slug includes the city")
	assert.True(t, branch.IsMainBranch)
	assert.True(t, branch.IsActive)

	_, err = branchService.Create(BranchInput{PlaceID: place.ID, Name: "B"})
	assert.ErrorIs(t, err, ErrNameTooShort)

	_, err = branchService.Create(BranchInput{
		PlaceID: "00000000-0000-0000-0000-000000000000",
		Name:    "Orphan Branch",
	})
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestBranchService_Update(t *testing.T) {
	branchService, _, place := setupBranchServiceTest(t)

	branch, err := branchService.Create(BranchInput{PlaceID: place.ID, Name: "Old Name"})
	require.NoError(t, err)

	phone := "+251-11-123-4567"
	updated, err := branchService.Update(branch.ID, BranchInput{
		PlaceID: place.ID,
		Name:    "New Name",
		Phone:   &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)

	_, err = branchService.Update("00000000-0000-0000-0000-000000000000", BranchInput{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestBranchService_List(t *testing.T) {
	branchService, testDB, place := setupBranchServiceTest(t)

	other := &model.Place{Name: "Tomoca", IsActive: true}
	require.NoError(t, testDB.Create(other).Error)

	_, err := branchService.Create(BranchInput{PlaceID: place.ID, Name: "Main Branch", IsMainBranch: true})
	require.NoError(t, err)
	_, err = branchService.Create(BranchInput{PlaceID: place.ID, Name: "Second Branch"})
	require.NoError(t, err)
	_, err = branchService.Create(BranchInput{PlaceID: other.ID, Name: "Other Branch"})
	require.NoError(t, err)

	t.Run("By place", func(t *testing.T) {
		result, err := branchService.List(repository.BranchFilter{PlaceID: place.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.Total)
	})

	t.Run("Main only", func(t *testing.T) {
		result, err := branchService.List(repository.BranchFilter{Main: repository.MainOnly})
		require.NoError(t, err)
		require.EqualValues(t, 1, result.Total)
		assert.Equal(t, "Main Branch", result.Rows[0].Name)
	})

	t.Run("Search by name", func(t *testing.T) {
		result, err := branchService.List(repository.BranchFilter{Search: "second"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
	})
}

func TestBranchService_SetActiveAndDelete(t *testing.T) {
	branchService, testDB, place := setupBranchServiceTest(t)

	branch, err := branchService.Create(BranchInput{PlaceID: place.ID, Name: "Bole Branch"})
	require.NoError(t, err)

	require.NoError(t, branchService.SetActive(branch.ID, false))
	var row model.Branch
	require.NoError(t, testDB.First(&row, "id = ?", branch.ID).Error)
	assert.False(t, row.IsActive)

	require.NoError(t, branchService.Delete(branch.ID))
	err = branchService.Delete(branch.ID)
	assert.ErrorIs(t, err, ErrBranchNotFound)
}
