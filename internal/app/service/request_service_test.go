package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/addispot/addispot-backend/internal/app/model"
	"github.com/addispot/addispot-backend/internal/app/repository"
	"github.com/addispot/addispot-backend/internal/db"
)

func setupRequestServiceTest(t *testing.T) (RequestService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	requestRepo := repository.NewRequestRepository(testDB)
	placeRepo := repository.NewPlaceRepository(testDB)
	requestService := NewRequestService(testDB, requestRepo, placeRepo)

	return requestService, testDB
}

func createReviewer(t *testing.T, testDB *gorm.DB) *model.User {
	user := &model.User{
		Email:        "reviewer@example.com",
		PasswordHash: "irrelevant",
		FullName:     "Reviewer",
		Username:     "reviewer",
		IsAdmin:      true,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createPlaceAddRequest(t *testing.T, testDB *gorm.DB, place, branch model.JSONMap) *model.PlaceAddRequest {
	request := &model.PlaceAddRequest{
		ProposedPlace:  place,
		ProposedBranch: branch,
		Status:         model.RequestStatusPending,
	}
	require.NoError(t, testDB.Create(request).Error)
	return request
}

func createBranchAddRequest(t *testing.T, testDB *gorm.DB, placeID string, branch model.JSONMap) *model.BranchAddRequest {
	request := &model.BranchAddRequest{
		PlaceID:        placeID,
		ProposedBranch: branch,
		Status:         model.RequestStatusPending,
	}
	require.NoError(t, testDB.Create(request).Error)
	return request
}

func TestRequestService_ApprovePlaceAdd(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	reviewer := createReviewer(t, testDB)

	request := createPlaceAddRequest(t, testDB,
		model.JSONMap{"name": "Tomoca Coffee", "description": "Historic coffee house"},
		model.JSONMap{"name": "Piassa", "city": "Addis Ababa", "country": "Ethiopia", "latitude": 9.035, "longitude": 38.752},
	)

	outcome, err := requestService.ReviewPlaceAdd(request.ID, ActionApprove, "", reviewer.ID)
	require.NoError(t, err)
	require.NotEmpty(t, outcome.PlaceID)
	require.NotEmpty(t, outcome.BranchID)

	var reviewed model.PlaceAddRequest
	require.NoError(t, testDB.First(&reviewed, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, reviewer.ID, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)

	var place model.Place
	require.NoError(t, testDB.First(&place, "id = ?", outcome.PlaceID).Error)
	assert.Equal(t, "Tomoca Coffee", place.Name)
	require.NotNil(t, place.Description)
	assert.Equal(t, "Historic coffee house", *place.Description)
	assert.True(t, place.IsActive)

	var branch model.Branch
	require.NoError(t, testDB.First(&branch, "id = ?", outcome.BranchID).Error)
	assert.Equal(t, place.ID, branch.PlaceID)
	assert.Equal(t, "Piassa", branch.Name)
	require.NotNil(t, branch.City)
	assert.Equal(t, "Addis Ababa", *branch.City)
	assert.True(t, branch.IsMainBranch, "the first branch of a new place must be main")
	assert.True(t, branch.IsActive)
	require.NotNil(t, branch.Latitude)
	assert.InDelta(t, 9.035, *branch.Latitude, 0.0001)
}

func TestRequestService_ApprovePlaceAdd_Fallbacks(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	reviewer := createReviewer(t, testDB)

	tests := []struct {
		name       string
		place      model.JSONMap
		branch     model.JSONMap
		wantPlace  string
		wantBranch string
	}{
		{
			name:       "Missing place name falls back to Untitled",
			place:      model.JSONMap{"description": "no name here"},
			branch:     nil,
			wantPlace:  "Untitled",
			wantBranch: "",
		},
		{
			name:       "Branch name falls back to place name",
			place:      model.JSONMap{"name": "Kategna"},
			branch:     model.JSONMap{"city": "Addis Ababa"},
			wantPlace:  "Kategna",
			wantBranch: "Kategna",
		},
		{
			name:       "Both names missing",
			place:      model.JSONMap{},
			branch:     model.JSONMap{"city": "Adama"},
			wantPlace:  "Untitled",
			wantBranch: "Branch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := createPlaceAddRequest(t, testDB, tt.place, tt.branch)

			outcome, err := requestService.ReviewPlaceAdd(request.ID, ActionApprove, "", reviewer.ID)
			require.NoError(t, err)

			var place model.Place
			require.NoError(t, testDB.First(&place, "id = ?", outcome.PlaceID).Error)
			assert.Equal(t, tt.wantPlace, place.Name)

			if tt.branch == nil {
				assert.Empty(t, outcome.BranchID, "no branch proposal should create no branch")
				return
			}
			var branch model.Branch
			require.NoError(t, testDB.First(&branch, "id = ?", outcome.BranchID).Error)
			assert.Equal(t, tt.wantBranch, branch.Name)
		})
	}
}

func TestRequestService_RejectPlaceAdd(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	reviewer := createReviewer(t, testDB)

	request := createPlaceAddRequest(t, testDB, model.JSONMap{"name": "Yod Abyssinia"}, nil)

	outcome, err := requestService.ReviewPlaceAdd(request.ID, ActionReject, "Duplicate of an existing place", reviewer.ID)
	require.NoError(t, err)
	assert.Empty(t, outcome.PlaceID)

	var reviewed model.PlaceAddRequest
	require.NoError(t, testDB.First(&reviewed, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestStatusRejected, reviewed.Status)
	require.NotNil(t, reviewed.RejectionReason)
	assert.Equal(t, "Duplicate of an existing place", *reviewed.RejectionReason)

	var placeCount int64
	require.NoError(t, testDB.Model(&model.Place{}).Count(&placeCount).Error)
	assert.Zero(t, placeCount, "rejection must not materialize any rows")
}

func TestRequestService_ReviewTwice(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	reviewer := createReviewer(t, testDB)

	request := createPlaceAddRequest(t, testDB, model.JSONMap{"name": "Lucy Lounge"}, nil)

	_, err := requestService.ReviewPlaceAdd(request.ID, ActionApprove, "", reviewer.ID)
	require.NoError(t, err)

	_, err = requestService.ReviewPlaceAdd(request.ID, ActionReject, "changed my mind", reviewer.ID)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// The first decision stands
	var reviewed model.PlaceAddRequest
	require.NoError(t, testDB.First(&reviewed, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestStatusApproved, reviewed.Status)
	assert.Nil(t, reviewed.RejectionReason)
}

func TestRequestService_ReviewErrors(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	reviewer := createReviewer(t, testDB)

	_, err := requestService.ReviewPlaceAdd("00000000-0000-0000-0000-000000000000", ActionApprove, "", reviewer.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	request := createPlaceAddRequest(t, testDB, model.JSONMap{"name": "Effoi Pizza"}, nil)
	_, err = requestService.ReviewPlaceAdd(request.ID, ReviewAction("escalate"), "", reviewer.ID)
	assert.ErrorIs(t, err, ErrInvalidAction)

	// An invalid action must leave the request untouched
	var untouched model.PlaceAddRequest
	require.NoError(t, testDB.First(&untouched, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestStatusPending, untouched.Status)
}

func TestRequestService_ApproveBranchAdd(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	reviewer := createReviewer(t, testDB)

	place := &model.Place{Name: "Kategna", IsActive: true}
	require.NoError(t, testDB.Create(place).Error)

	request := createBranchAddRequest(t, testDB, place.ID,
		model.JSONMap{"name": "Bole Branch", "city": "Addis Ababa", "is_main_branch": false},
	)

	outcome, err := requestService.ReviewBranchAdd(request.ID, ActionApprove, "", reviewer.ID)
	require.NoError(t, err)
	require.NotEmpty(t, outcome.BranchID)
	assert.Empty(t, outcome.PlaceID, "a branch-add approval creates no place")

	var branch model.Branch
	require.NoError(t, testDB.First(&branch, "id = ?", outcome.BranchID).Error)
	assert.Equal(t, place.ID, branch.PlaceID)
	assert.Equal(t, "Bole Branch", branch.Name)
	assert.False(t, branch.IsMainBranch, "branch-add proposals are not forced to main")
	assert.True(t, branch.IsActive)
}

func TestRequestService_List(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	reviewer := createReviewer(t, testDB)

	for i := 0; i < 12; i++ {
		createPlaceAddRequest(t, testDB, model.JSONMap{"name": "Pending Spot"}, nil)
	}
	approved := createPlaceAddRequest(t, testDB, model.JSONMap{"name": "Approved Spot"}, nil)
	_, err := requestService.ReviewPlaceAdd(approved.ID, ActionApprove, "", reviewer.ID)
	require.NoError(t, err)

	t.Run("Defaults to pending", func(t *testing.T) {
		result, err := requestService.ListPlaceAdd(repository.RequestFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 12, result.Total)
		assert.Len(t, result.Rows, 10, "default page size")
		for _, row := range result.Rows {
			assert.Equal(t, model.RequestStatusPending, row.Status)
		}
	})

	t.Run("Second page", func(t *testing.T) {
		result, err := requestService.ListPlaceAdd(repository.RequestFilter{PageIndex: 1, PageSize: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 12, result.Total)
		assert.Len(t, result.Rows, 2)
	})

	t.Run("Status all", func(t *testing.T) {
		result, err := requestService.ListPlaceAdd(repository.RequestFilter{Status: repository.StatusAll, PageSize: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 13, result.Total)
	})

	t.Run("Search over proposal name", func(t *testing.T) {
		result, err := requestService.ListPlaceAdd(repository.RequestFilter{Status: repository.StatusAll, Search: "approved"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, result.Total)
	})
}

func TestRequestService_ListOrder(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)

	first := createPlaceAddRequest(t, testDB, model.JSONMap{"name": "Older"}, nil)
	require.NoError(t, testDB.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	second := createPlaceAddRequest(t, testDB, model.JSONMap{"name": "Newer"}, nil)

	result, err := requestService.ListPlaceAdd(repository.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, second.ID, result.Rows[0].ID, "newest requests come first")
	assert.Equal(t, first.ID, result.Rows[1].ID)
}

func TestRequestService_Submit(t *testing.T) {
	requestService, testDB := setupRequestServiceTest(t)
	author := createReviewer(t, testDB)

	t.Run("Valid place-add", func(t *testing.T) {
		request, err := requestService.SubmitPlaceAdd(author.ID, model.JSONMap{"name": "Sishu"}, nil)
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusPending, request.Status)
		require.NotNil(t, request.AuthorID)
		assert.Equal(t, author.ID, *request.AuthorID)
	})

	t.Run("Name too short", func(t *testing.T) {
		_, err := requestService.SubmitPlaceAdd(author.ID, model.JSONMap{"name": "x"}, nil)
		assert.ErrorIs(t, err, ErrInvalidProposal)
	})

	t.Run("Half a coordinate pair", func(t *testing.T) {
		_, err := requestService.SubmitPlaceAdd(author.ID,
			model.JSONMap{"name": "Sishu"},
			model.JSONMap{"latitude": 9.0},
		)
		assert.ErrorIs(t, err, ErrInvalidProposal)
	})

	t.Run("Branch-add for missing place", func(t *testing.T) {
		_, err := requestService.SubmitBranchAdd(author.ID, "00000000-0000-0000-0000-000000000000", model.JSONMap{"name": "Bole"})
		assert.ErrorIs(t, err, ErrProposalPlaceGone)
	})

	t.Run("Valid branch-add", func(t *testing.T) {
		place := &model.Place{Name: "Sishu", IsActive: true}
		require.NoError(t, testDB.Create(place).Error)

		request, err := requestService.SubmitBranchAdd(author.ID, place.ID, model.JSONMap{"name": "Bole"})
		require.NoError(t, err)
		assert.Equal(t, place.ID, request.PlaceID)
	})
}
