package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*CatalogService, *fakeServiceRepo) {
	services := newFakeServiceRepo()
	categories := &fakeCategoryRepo{categories: []models.ServiceCategory{
		{ID: "cat-catering", Name: "Catering"},
	}}
	return NewCatalogService(services, categories), services
}

func TestCreateService_RejectsInvalidInput(t *testing.T) {
	vendor := models.Actor{ID: "vendor-1", Role: models.RoleVendor}
	valid := models.ServiceInput{
		CategoryID: "cat-catering",
		Title:      "Wedding catering",
		Price:      50,
		PriceUnit:  "per person",
	}

	cases := []struct {
		name   string
		mutate func(*models.ServiceInput)
	}{
		{"empty title", func(in *models.ServiceInput) { in.Title = " " }},
		{"missing category", func(in *models.ServiceInput) { in.CategoryID = "" }},
		{"zero price", func(in *models.ServiceInput) { in.Price = 0 }},
		{"empty price unit", func(in *models.ServiceInput) { in.PriceUnit = "" }},
		{"unknown category", func(in *models.ServiceInput) { in.CategoryID = "cat-nope" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newCatalogFixture()
			input := valid
			tc.mutate(&input)

			service, err := svc.CreateService(context.Background(), vendor, input)

			assert.Nil(t, service)
			requireStatus(t, err, http.StatusBadRequest)
			assert.Empty(t, repo.services)
		})
	}
}

func TestCreateService_OnlyVendors(t *testing.T) {
	svc, _ := newCatalogFixture()
	client := models.Actor{ID: "client-1", Role: models.RoleClient}

	service, err := svc.CreateService(context.Background(), client, models.ServiceInput{
		CategoryID: "cat-catering",
		Title:      "Wedding catering",
		Price:      50,
		PriceUnit:  "per person",
	})

	assert.Nil(t, service)
	requireStatus(t, err, http.StatusForbidden)
}

func TestCreateService_Success(t *testing.T) {
	svc, _ := newCatalogFixture()
	vendor := models.Actor{ID: "vendor-1", Role: models.RoleVendor}

	service, err := svc.CreateService(context.Background(), vendor, models.ServiceInput{
		CategoryID:  "cat-catering",
		Title:       "Wedding catering",
		Description: "Buffet and table service",
		Price:       50,
		PriceUnit:   "per person",
	})

	require.NoError(t, err)
	require.NotNil(t, service)
	assert.Equal(t, vendor.ID, service.VendorID)
	assert.True(t, service.IsAvailable, "new services start available")
}

func TestEditService_OwnershipChecks(t *testing.T) {
	svc, repo := newCatalogFixture()
	vendor := models.Actor{ID: "vendor-1", Role: models.RoleVendor}
	repo.add(&models.Service{ID: "svc-1", VendorID: "someone-else", IsAvailable: true})

	t.Run("foreign service", func(t *testing.T) {
		_, err := svc.EditService(context.Background(), vendor, "svc-1", map[string]interface{}{"title": "New"})
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.EditService(context.Background(), vendor, "missing", map[string]interface{}{"title": "New"})
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestSetAvailability(t *testing.T) {
	svc, repo := newCatalogFixture()
	vendor := models.Actor{ID: "vendor-1", Role: models.RoleVendor}
	repo.add(&models.Service{ID: "svc-1", VendorID: vendor.ID, IsAvailable: true})

	service, err := svc.SetAvailability(context.Background(), vendor, "svc-1", false)

	require.NoError(t, err)
	assert.False(t, service.IsAvailable)

	service, err = svc.SetAvailability(context.Background(), vendor, "svc-1", true)

	require.NoError(t, err)
	assert.True(t, service.IsAvailable)
}

func TestDeleteService(t *testing.T) {
	svc, repo := newCatalogFixture()
	vendor := models.Actor{ID: "vendor-1", Role: models.RoleVendor}
	repo.add(&models.Service{ID: "svc-1", VendorID: vendor.ID, IsAvailable: true})

	require.NoError(t, svc.DeleteService(context.Background(), vendor, "svc-1"))
	assert.Empty(t, repo.services)
}

func TestBrowseServices(t *testing.T) {
	svc, repo := newCatalogFixture()
	repo.add(&models.Service{ID: "svc-1", CategoryID: "cat-catering", IsAvailable: true})
	repo.add(&models.Service{ID: "svc-2", CategoryID: "cat-catering", IsAvailable: false})

	t.Run("hides unavailable", func(t *testing.T) {
		services, err := svc.BrowseServices(context.Background(), "", "", "")
		require.NoError(t, err)
		require.Len(t, services, 1)
		assert.Equal(t, "svc-1", services[0].ID)
	})

	t.Run("bad limit", func(t *testing.T) {
		_, err := svc.BrowseServices(context.Background(), "abc", "", "")
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestGetVendorServices_OnlyVendors(t *testing.T) {
	svc, _ := newCatalogFixture()
	client := models.Actor{ID: "client-1", Role: models.RoleClient}

	_, err := svc.GetVendorServices(context.Background(), client)

	requireStatus(t, err, http.StatusForbidden)
}
