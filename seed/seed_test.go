package main

import (
	"testing"
	"time"

	"lexmarket/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStarterCatalogueIsConsistent(t *testing.T) {
	items := starterCatalogue()

	byKey := map[string]models.TaxonomyItem{}
	for _, it := range items {
		key := string(it.Kind) + "/" + it.ID
		_, dup := byKey[key]
		require.False(t, dup, "duplicate entry %s", key)
		byKey[key] = it
	}

	parentKind := map[models.TaxonomyKind]models.TaxonomyKind{
		models.KindState:          models.KindCountry,
		models.KindCity:           models.KindState,
		models.KindSpecialization: models.KindPracticeArea,
	}
	for _, it := range items {
		want, ok := parentKind[it.Kind]
		if !ok {
			assert.Empty(t, it.ParentID, "%s/%s", it.Kind, it.ID)
			continue
		}
		_, found := byKey[string(want)+"/"+it.ParentID]
		assert.True(t, found, "%s/%s has unknown parent %q", it.Kind, it.ID, it.ParentID)
	}
}

func TestNewAdminAccount(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	acc, err := newAdminAccount(" Ops@Example.com ", "s3cret-pass", "Ops", "", now)
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", acc.Email)
	assert.Equal(t, models.RoleAdmin, acc.Role)
	assert.Equal(t, now, acc.CreatedAt)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("s3cret-pass")))

	_, err = newAdminAccount("ops@example.com", "short", "Ops", "", now)
	assert.Error(t, err)
	_, err = newAdminAccount("not-an-email", "s3cret-pass", "Ops", "", now)
	assert.Error(t, err)
}
