package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Calebbuffleben/EAD/internal/models"
	"github.com/Calebbuffleben/EAD/internal/services"
)

func course(title, org, price string, purchases int64, createdAt time.Time) *services.CourseListItem {
	item := &services.CourseListItem{
		Organization: services.OrgRef{ID: uuid.New(), Name: org},
		Count:        services.CourseCounts{Purchases: purchases},
	}
	item.Course = models.Course{
		ID:        uuid.New(),
		Title:     title,
		Price:     decimal.RequireFromString(price),
		CreatedAt: createdAt,
	}
	return item
}

func titles(items []*services.CourseListItem) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Title)
	}
	return out
}

func fixtures() []*services.CourseListItem {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*services.CourseListItem{
		course("Go Basics", "Academy", "0", 50, base),
		course("Advanced Go", "Academy", "49.99", 200, base.AddDate(0, 1, 0)),
		course("Rust Intro", "Systems School", "19.99", 10, base.AddDate(0, 2, 0)),
		course("Databases", "Systems School", "99.90", 120, base.AddDate(0, 3, 0)),
	}
}

func TestApply_SearchMatchesTitleAndOrganization(t *testing.T) {
	got := Apply(fixtures(), Options{Search: "go"})
	assert.Equal(t, []string{"Go Basics", "Advanced Go"}, titles(got))

	got = Apply(fixtures(), Options{Search: "systems"})
	assert.Equal(t, []string{"Rust Intro", "Databases"}, titles(got))
}

func TestApply_PriceCategories(t *testing.T) {
	got := Apply(fixtures(), Options{Price: PriceFree})
	assert.Equal(t, []string{"Go Basics"}, titles(got))

	got = Apply(fixtures(), Options{Price: PricePaid})
	assert.Equal(t, []string{"Advanced Go", "Rust Intro", "Databases"}, titles(got))

	got = Apply(fixtures(), Options{Price: PriceAll})
	assert.Len(t, got, 4)
}

func TestApply_PriceRangeIsInclusive(t *testing.T) {
	min := decimal.RequireFromString("10")
	max := decimal.RequireFromString("50")
	got := Apply(fixtures(), Options{MinPrice: &min, MaxPrice: &max})
	// Бесплатный курс ниже нижней границы и не попадает
	assert.Equal(t, []string{"Advanced Go", "Rust Intro"}, titles(got))

	exact := decimal.RequireFromString("19.99")
	got = Apply(fixtures(), Options{MinPrice: &exact, MaxPrice: &exact})
	assert.Equal(t, []string{"Rust Intro"}, titles(got))
}

func TestApply_OrganizationFilter(t *testing.T) {
	all := fixtures()
	got := Apply(all, Options{Organizations: []uuid.UUID{all[0].Organization.ID, all[3].Organization.ID}})
	assert.Equal(t, []string{"Go Basics", "Databases"}, titles(got))
}

func TestApply_SortOrders(t *testing.T) {
	assert.Equal(t,
		[]string{"Advanced Go", "Databases", "Go Basics", "Rust Intro"},
		titles(Apply(fixtures(), Options{Sort: SortPopular})))

	// rating — псевдоним популярности
	assert.Equal(t,
		titles(Apply(fixtures(), Options{Sort: SortPopular})),
		titles(Apply(fixtures(), Options{Sort: SortRating})))

	assert.Equal(t,
		[]string{"Databases", "Rust Intro", "Advanced Go", "Go Basics"},
		titles(Apply(fixtures(), Options{Sort: SortNewest})))

	low := titles(Apply(fixtures(), Options{Sort: SortPriceLow}))
	high := titles(Apply(fixtures(), Options{Sort: SortPriceHigh}))
	assert.Equal(t, []string{"Go Basics", "Rust Intro", "Advanced Go", "Databases"}, low)
	for i := range low {
		assert.Equal(t, low[i], high[len(high)-1-i])
	}

	assert.Equal(t,
		[]string{"Advanced Go", "Databases", "Go Basics", "Rust Intro"},
		titles(Apply(fixtures(), Options{Sort: SortName})))
}

func TestApply_StableSortKeepsInputOrderOnTies(t *testing.T) {
	base := time.Now()
	items := []*services.CourseListItem{
		course("First", "Org", "10", 5, base),
		course("Second", "Org", "10", 5, base),
		course("Third", "Org", "10", 5, base),
	}
	got := Apply(items, Options{Sort: SortPriceLow})
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(got))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := fixtures()
	Apply(items, Options{Price: PricePaid, Sort: SortPriceHigh})
	assert.Equal(t, []string{"Go Basics", "Advanced Go", "Rust Intro", "Databases"}, titles(items))
}

func TestApply_CombinedPipeline(t *testing.T) {
	min := decimal.RequireFromString("1")
	got := Apply(fixtures(), Options{
		Search:   "go",
		Price:    PricePaid,
		MinPrice: &min,
		Sort:     SortPriceLow,
	})
	assert.Equal(t, []string{"Advanced Go"}, titles(got))
}
