// Package catalog holds the static, read-only menu the storefront sells.
// Items are loaded once from the embedded menu file and never mutated;
// lookups hand out deep copies so callers cannot alias catalog state.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/quickbites/storefront/internal/models"
)

//go:embed menu.yaml
var menuYAML []byte

// popularMinRating and popularLimit drive the Popular selection.
const (
	popularMinRating = 4.5
	popularLimit     = 6
)

// Catalog is the static source of orderable items.
type Catalog struct {
	items      []models.FoodItem
	byID       map[int]int
	categories []models.Category
}

type menuFile struct {
	Categories []models.Category `yaml:"categories"`
	Items      []menuItem        `yaml:"items"`
}

type menuItem struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Category    string   `yaml:"category"`
	Image       string   `yaml:"image"`
	Rating      float64  `yaml:"rating"`
	PrepTime    string   `yaml:"prepTime"`
	Ingredients []string `yaml:"ingredients"`
	Calories    int      `yaml:"calories"`
	IsVeg       bool     `yaml:"isVeg"`
}

// Load parses the embedded menu and returns the catalog.
func Load() (*Catalog, error) {
	return load(menuYAML)
}

func load(raw []byte) (*Catalog, error) {
	var mf menuFile
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	c := &Catalog{
		byID:       make(map[int]int, len(mf.Items)),
		categories: mf.Categories,
	}
	for i, mi := range mf.Items {
		price, err := decimal.NewFromString(mi.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid price %q: %w", mi.ID, mi.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("item %d: negative price %s", mi.ID, price)
		}
		if _, dup := c.byID[mi.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", mi.ID)
		}
		c.items = append(c.items, models.FoodItem{
			ID:          mi.ID,
			Name:        mi.Name,
			Description: mi.Description,
			Price:       price,
			Category:    mi.Category,
			Image:       mi.Image,
			Rating:      mi.Rating,
			PrepTime:    mi.PrepTime,
			Ingredients: mi.Ingredients,
			Calories:    mi.Calories,
			IsVeg:       mi.IsVeg,
		})
		c.byID[mi.ID] = i
	}
	return c, nil
}

// ListAll returns every item in catalog-declared order.
func (c *Catalog) ListAll() []models.FoodItem {
	return cloneItems(c.items)
}

// GetByID returns the item with the given id, or false if absent.
func (c *Catalog) GetByID(id int) (models.FoodItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.FoodItem{}, false
	}
	return c.items[i].Clone(), true
}

// ListByCategory returns items in the given category in catalog order.
// The "all" category (or an empty one) returns everything.
func (c *Catalog) ListByCategory(category string) []models.FoodItem {
	if category == "" || strings.EqualFold(category, "all") {
		return c.ListAll()
	}
	var out []models.FoodItem
	for _, it := range c.items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Search returns items whose name, description or category contains the
// query, case-insensitively, in catalog order. An empty query matches all.
func (c *Catalog) Search(query string) []models.FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.ListAll()
	}
	var out []models.FoodItem
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(it.Category), q) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// Popular returns the highest-rated items, capped at six, in catalog order.
func (c *Catalog) Popular() []models.FoodItem {
	var out []models.FoodItem
	for _, it := range c.items {
		if it.Rating >= popularMinRating {
			out = append(out, it.Clone())
			if len(out) == popularLimit {
				break
			}
		}
	}
	return out
}

// Categories returns the browsable category list.
func (c *Catalog) Categories() []models.Category {
	return append([]models.Category(nil), c.categories...)
}

func cloneItems(items []models.FoodItem) []models.FoodItem {
	out := make([]models.FoodItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
