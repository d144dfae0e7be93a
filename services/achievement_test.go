package services

import (
	"testing"

	"partner-growth-system/models"
	"partner-growth-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCatalogIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAchievementService(st)

	require.NoError(t, svc.EnsureCatalog())
	require.NoError(t, svc.EnsureCatalog())

	catalog, err := st.ListAchievements()
	require.NoError(t, err)
	assert.Len(t, catalog, len(models.AchievementCatalog))

	first, err := st.GetAchievementByCode("first-sale")
	require.NoError(t, err)
	assert.Equal(t, "First Sale", first.Name)
}

func TestAutoAwardOnFirstSale(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAchievementService(st)
	require.NoError(t, svc.EnsureCatalog())

	p := newTestPartner(t, st)

	// Nothing earned yet.
	awarded, err := svc.AutoAward(p)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	require.NoError(t, st.CreateSale(&models.Sale{
		PartnerID:        p.ID,
		ProductName:      "Term Plan",
		ProductCategory:  "insurance",
		SaleAmount:       100000,
		CommissionEarned: 5000,
	}))

	awarded, err = svc.AutoAward(p)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	assert.Equal(t, "First Sale", awarded[0].Name)

	// Re-running never duplicates the award.
	again, err := svc.AutoAward(p)
	require.NoError(t, err)
	assert.Empty(t, again)

	earned, err := st.ListPartnerAchievements(p.ID)
	require.NoError(t, err)
	assert.Len(t, earned, 1)
}

func TestAutoAwardCategoryAndEarningsThresholds(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewAchievementService(st)
	require.NoError(t, svc.EnsureCatalog())

	p := newTestPartner(t, st)
	p.EarningsThisMonth = 60000
	require.NoError(t, st.UpdatePartner(p))

	for i := 0; i < 5; i++ {
		require.NoError(t, st.CreateSale(&models.Sale{
			PartnerID:        p.ID,
			ProductName:      "Health Cover",
			ProductCategory:  "insurance",
			SaleAmount:       50000,
			CommissionEarned: 2500,
		}))
	}

	awarded, err := svc.AutoAward(p)
	require.NoError(t, err)

	names := make([]string, 0, len(awarded))
	for _, a := range awarded {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"First Sale", "5 Insurance Sales", "Top Performer"}, names)
}
