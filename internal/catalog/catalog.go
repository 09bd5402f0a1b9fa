// Package catalog serves the read-only browse surfaces: services,
// beauticians and retail products. Read failures degrade to empty result
// sets; a missing grid beats a blocking error on a browse page.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

// Source is the slice of the salon API the catalog needs.
type Source interface {
	Services(ctx context.Context) ([]salonapi.Service, error)
	Beauticians(ctx context.Context, serviceID string) ([]salonapi.Beautician, error)
	Products(ctx context.Context) ([]salonapi.Product, error)
}

// ProductFilter narrows and orders the product grid.
type ProductFilter struct {
	Category string
	Brand    string
	MinPrice float64
	MaxPrice float64
	Sort     string // price_asc | price_desc | name | newest
}

// Catalog is the storefront's read side.
type Catalog struct {
	source Source
	logger *logging.Logger
}

// New constructs a catalog.
func New(source Source, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Default()
	}
	return &Catalog{source: source, logger: logger.Component("catalog")}
}

// Services lists active services.
func (c *Catalog) Services(ctx context.Context) []salonapi.Service {
	services, err := c.source.Services(ctx)
	if err != nil {
		c.logger.Warn("service catalog read failed", "error", err)
		return []salonapi.Service{}
	}
	out := services[:0:0]
	for _, s := range services {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// Beauticians lists active staff, optionally scoped to a service.
func (c *Catalog) Beauticians(ctx context.Context, serviceID string) []salonapi.Beautician {
	beauticians, err := c.source.Beauticians(ctx, serviceID)
	if err != nil {
		c.logger.Warn("beautician read failed", "error", err)
		return []salonapi.Beautician{}
	}
	out := beauticians[:0:0]
	for _, b := range beauticians {
		if b.Active {
			out = append(out, b)
		}
	}
	return out
}

// Products lists the product grid after filtering and sorting.
func (c *Catalog) Products(ctx context.Context, filter ProductFilter) []salonapi.Product {
	products, err := c.source.Products(ctx)
	if err != nil {
		c.logger.Warn("product catalog read failed", "error", err)
		return []salonapi.Product{}
	}

	out := products[:0:0]
	for _, p := range products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.Brand != "" && !strings.EqualFold(p.Brand, filter.Brand) {
			continue
		}
		price := minPrice(p)
		if filter.MinPrice > 0 && price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && price > filter.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch filter.Sort {
	case "price_asc":
		sort.SliceStable(out, func(i, j int) bool { return minPrice(out[i]) < minPrice(out[j]) })
	case "price_desc":
		sort.SliceStable(out, func(i, j int) bool { return minPrice(out[i]) > minPrice(out[j]) })
	case "name":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case "newest":
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// minPrice is the cheapest variant's price, the grid's display price.
func minPrice(p salonapi.Product) float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	min := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return min
}
