package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maisonbelle/storefront/internal/salonapi"
	"github.com/maisonbelle/storefront/pkg/logging"
)

type fakeSource struct {
	services    []salonapi.Service
	beauticians []salonapi.Beautician
	products    []salonapi.Product
	err         error
}

func (f *fakeSource) Services(context.Context) ([]salonapi.Service, error) {
	return f.services, f.err
}

func (f *fakeSource) Beauticians(context.Context, string) ([]salonapi.Beautician, error) {
	return f.beauticians, f.err
}

func (f *fakeSource) Products(context.Context) ([]salonapi.Product, error) {
	return f.products, f.err
}

func product(id, name, category string, price float64, created time.Time) salonapi.Product {
	return salonapi.Product{
		ID: id, Name: name, Category: category, CreatedAt: created,
		Variants: []salonapi.ProductVariant{{ID: id + "-v1", Name: "std", Price: price}},
	}
}

func TestProducts_FilterAndSort(t *testing.T) {
	now := time.Now()
	src := &fakeSource{products: []salonapi.Product{
		product("p1", "Clay Mask", "skincare", 18, now.Add(-2*time.Hour)),
		product("p2", "Vitamin C Serum", "skincare", 25, now),
		product("p3", "Nail Polish", "nails", 9, now.Add(-time.Hour)),
	}}
	c := New(src, logging.Default())

	got := c.Products(context.Background(), ProductFilter{Category: "skincare", Sort: "price_desc"})
	if len(got) != 2 || got[0].ID != "p2" || got[1].ID != "p1" {
		t.Fatalf("got = %+v", got)
	}

	got = c.Products(context.Background(), ProductFilter{Sort: "newest"})
	if len(got) != 3 || got[0].ID != "p2" {
		t.Fatalf("newest first, got = %+v", got)
	}

	got = c.Products(context.Background(), ProductFilter{MinPrice: 10, MaxPrice: 20})
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("price band, got = %+v", got)
	}
}

func TestReads_DegradeToEmptyOnError(t *testing.T) {
	src := &fakeSource{err: errors.New("backend down")}
	c := New(src, logging.Default())
	ctx := context.Background()

	if got := c.Services(ctx); len(got) != 0 {
		t.Fatalf("services = %+v, want empty", got)
	}
	if got := c.Beauticians(ctx, "s1"); len(got) != 0 {
		t.Fatalf("beauticians = %+v, want empty", got)
	}
	if got := c.Products(ctx, ProductFilter{}); len(got) != 0 {
		t.Fatalf("products = %+v, want empty", got)
	}
}

func TestServices_HidesInactive(t *testing.T) {
	src := &fakeSource{services: []salonapi.Service{
		{ID: "s1", Name: "Lashes", Active: true},
		{ID: "s2", Name: "Retired", Active: false},
	}}
	c := New(src, logging.Default())

	got := c.Services(context.Background())
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("services = %+v", got)
	}
}
