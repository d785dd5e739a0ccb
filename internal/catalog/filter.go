// Package catalog фильтрует и сортирует уже загруженный список курсов в памяти,
// повторяя поведение витрины: поиск → ценовая категория → диапазон цен →
// выбранные организации → сортировка.
package catalog

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Calebbuffleben/EAD/internal/services"
)

// Варианты сортировки витрины. Rating — псевдоним популярности:
// настоящего поля рейтинга в данных нет.
const (
	SortPopular   = "popular"
	SortNewest    = "newest"
	SortRating    = "rating"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

const (
	PriceAll  = "all"
	PriceFree = "free"
	PricePaid = "paid"
)

// Options описывает параметры фильтрации; нулевые значения ничего не фильтруют
type Options struct {
	Search        string
	Price         string // all | free | paid
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	Organizations []uuid.UUID
	Sort          string
}

// Apply применяет фильтры и сортировку к копии списка; входной срез не меняется.
// Сортировка стабильная: равные элементы сохраняют исходный порядок.
func Apply(courses []*services.CourseListItem, opts Options) []*services.CourseListItem {
	filtered := make([]*services.CourseListItem, 0, len(courses))
	filtered = append(filtered, courses...)

	if opts.Search != "" {
		term := strings.ToLower(opts.Search)
		filtered = keep(filtered, func(c *services.CourseListItem) bool {
			return strings.Contains(strings.ToLower(c.Title), term) ||
				strings.Contains(strings.ToLower(c.Description), term) ||
				strings.Contains(strings.ToLower(c.Organization.Name), term)
		})
	}

	switch opts.Price {
	case PriceFree:
		filtered = keep(filtered, func(c *services.CourseListItem) bool { return c.Price.IsZero() })
	case PricePaid:
		filtered = keep(filtered, func(c *services.CourseListItem) bool { return c.Price.IsPositive() })
	}

	if opts.MinPrice != nil {
		filtered = keep(filtered, func(c *services.CourseListItem) bool {
			return c.Price.GreaterThanOrEqual(*opts.MinPrice)
		})
	}
	if opts.MaxPrice != nil {
		filtered = keep(filtered, func(c *services.CourseListItem) bool {
			return c.Price.LessThanOrEqual(*opts.MaxPrice)
		})
	}

	if len(opts.Organizations) > 0 {
		selected := make(map[uuid.UUID]bool, len(opts.Organizations))
		for _, id := range opts.Organizations {
			selected[id] = true
		}
		filtered = keep(filtered, func(c *services.CourseListItem) bool {
			return selected[c.Organization.ID]
		})
	}

	switch opts.Sort {
	case SortPopular, SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Count.Purchases > filtered[j].Count.Purchases
		})
	case SortNewest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.LessThan(filtered[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.GreaterThan(filtered[j].Price)
		})
	case SortName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Title) < strings.ToLower(filtered[j].Title)
		})
	}

	return filtered
}

func keep(courses []*services.CourseListItem, pred func(*services.CourseListItem) bool) []*services.CourseListItem {
	out := courses[:0]
	for _, c := range courses {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}
