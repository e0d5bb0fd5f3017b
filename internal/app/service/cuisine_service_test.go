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

func setupCuisineServiceTest(t *testing.T) (CuisineService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cuisineRepo := repository.NewCuisineRepository(testDB)
	return NewCuisineService(cuisineRepo), testDB
}

func TestCuisineService_CreateNameRetry(t *testing.T) {
	cuisineService, _ := setupCuisineServiceTest(t)

	first, err := cuisineService.Create(CuisineInput{Name: "Ethiopian"})
	require.NoError(t, err)
	assert.Equal(t, "Ethiopian", first.Name)

	second, err := cuisineService.Create(CuisineInput{Name: "Ethiopian"})
	require.NoError(t, err)
	assert.Equal(t, "Ethiopian 2", second.Name)
}

func TestCuisineService_DeleteInUse(t *testing.T) {
	cuisineService, testDB := setupCuisineServiceTest(t)

	cuisine, err := cuisineService.Create(CuisineInput{Name: "Ethiopian"})
	require.NoError(t, err)

	place := &model.Place{Name: "Kategna", IsActive: true}
	require.NoError(t, testDB.Create(place).Error)
	link := &model.PlaceCuisine{PlaceID: place.ID, CuisineID: cuisine.ID}
	require.NoError(t, testDB.Create(link).Error)

	err = cuisineService.Delete(cuisine.ID)
	assert.ErrorIs(t, err, ErrCuisineInUse)

	require.NoError(t, testDB.Delete(link).Error)
	require.NoError(t, cuisineService.Delete(cuisine.ID))
}

func TestCuisineService_GetAndUpdate(t *testing.T) {
	cuisineService, _ := setupCuisineServiceTest(t)

	cuisine, err := cuisineService.Create(CuisineInput{Name: "Italian"})
	require.NoError(t, err)

	found, err := cuisineService.GetByID(cuisine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Italian", found.Name)

	_, err = cuisineService.GetByID(9999)
	assert.ErrorIs(t, err, ErrCuisineNotFound)

	updated, err := cuisineService.Update(cuisine.ID, CuisineInput{Name: "Italian Fusion"})
	require.NoError(t, err)
	assert.Equal(t, "Italian Fusion", updated.Name)
}
