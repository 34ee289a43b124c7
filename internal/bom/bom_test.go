package bom

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
)

// fakeGraph is an in-memory Graph for exercising the engine without a
// database, built from maps keyed by product id.
type fakeGraph struct {
	products map[int64]*domain.Product
	edges    map[int64][]domain.ProductComponent
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		products: make(map[int64]*domain.Product),
		edges:    make(map[int64][]domain.ProductComponent),
	}
}

func (g *fakeGraph) addArticle(id int64, ref string, cost, sale, weight decimal.Decimal) {
	g.products[id] = &domain.Product{
		Audited:     domain.Audited{ID: id},
		ProductType: domain.ProductArticle,
		Reference:   ref,
		CostPrice:   &cost,
		SalePrice:   &sale,
		NetWeight:   &weight,
	}
}

func (g *fakeGraph) addNomenclature(id int64, ref string, mode domain.PriceCalculationMode) {
	g.products[id] = &domain.Product{
		Audited:              domain.Audited{ID: id},
		ProductType:          domain.ProductNomenclature,
		Reference:            ref,
		PriceCalculationMode: mode,
	}
}

func (g *fakeGraph) addEdge(parent, component int64, qty decimal.Decimal) {
	g.edges[parent] = append(g.edges[parent], domain.ProductComponent{
		ParentID: parent, ComponentID: component, Quantity: qty,
	})
}

func (g *fakeGraph) Product(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := g.products[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (g *fakeGraph) ComponentsOf(_ context.Context, parentID int64) ([]domain.ProductComponent, error) {
	return g.edges[parentID], nil
}

type notFoundErr struct{}

func (notFoundErr) Error() string { return "not found" }

var errNotFound = notFoundErr{}

func TestCostRollup_FromComponents(t *testing.T) {
	g := newFakeGraph()
	g.addArticle(1, "SCREW", decimal.NewFromFloat(0.5), decimal.NewFromFloat(1), decimal.NewFromFloat(0.01))
	g.addArticle(2, "PLATE", decimal.NewFromInt(2), decimal.NewFromInt(4), decimal.NewFromFloat(0.2))
	g.addNomenclature(3, "ASSEMBLY", domain.PriceFromComponents)
	g.addEdge(3, 1, decimal.NewFromInt(4))  // 4 screws
	g.addEdge(3, 2, decimal.NewFromInt(1))  // 1 plate

	e := New(g)
	cost, err := e.CostRollup(context.Background(), 3)
	if err != nil {
		t.Fatalf("CostRollup: %v", err)
	}
	want := decimal.NewFromFloat(4).Mul(decimal.NewFromFloat(0.5)).Add(decimal.NewFromInt(2))
	if !cost.Equal(want) {
		t.Errorf("got %s, want %s", cost, want)
	}
}

func TestCostRollup_FromCostMargin(t *testing.T) {
	g := newFakeGraph()
	cost := decimal.NewFromInt(100)
	g.products[1] = &domain.Product{
		Audited:              domain.Audited{ID: 1},
		ProductType:          domain.ProductNomenclature,
		PriceCalculationMode: domain.PriceFromCostMargin,
		CostPrice:            &cost,
		MarginPercentage:     decimalPtr(decimal.NewFromInt(20)),
	}
	e := New(g)

	gotCost, err := e.CostRollup(context.Background(), 1)
	if err != nil {
		t.Fatalf("CostRollup: %v", err)
	}
	if !gotCost.Equal(cost) {
		t.Errorf("cost got %s, want %s", gotCost, cost)
	}

	gotPrice, err := e.PriceRollup(context.Background(), 1)
	if err != nil {
		t.Fatalf("PriceRollup: %v", err)
	}
	wantPrice := decimal.NewFromInt(120)
	if !gotPrice.Equal(wantPrice) {
		t.Errorf("price got %s, want %s", gotPrice, wantPrice)
	}
}

func TestWeightRollup_ServicePropagatesZero(t *testing.T) {
	g := newFakeGraph()
	g.products[1] = &domain.Product{Audited: domain.Audited{ID: 1}, ProductType: domain.ProductService}
	g.addNomenclature(2, "KIT", domain.PriceFromComponents)
	g.addEdge(2, 1, decimal.NewFromInt(3))

	e := New(g)
	weight, err := e.WeightRollup(context.Background(), 2)
	if err != nil {
		t.Fatalf("WeightRollup: %v", err)
	}
	if !weight.IsZero() {
		t.Errorf("got %s, want 0", weight)
	}
}

// TestValidateAcyclic_RejectsIndirectCycle: edges P1->P2, P2->P3 exist;
// adding P3->P1 must fail as it would close an indirect cycle.
func TestValidateAcyclic_RejectsIndirectCycle(t *testing.T) {
	g := newFakeGraph()
	g.addNomenclature(1, "P1", domain.PriceFromComponents)
	g.addNomenclature(2, "P2", domain.PriceFromComponents)
	g.addNomenclature(3, "P3", domain.PriceFromComponents)
	g.addEdge(1, 2, decimal.NewFromInt(1))
	g.addEdge(2, 3, decimal.NewFromInt(1))

	e := New(g)
	if err := e.ValidateAcyclic(context.Background(), 1, 2); err != nil {
		t.Errorf("existing edge reported as cycle: %v", err)
	}
	if err := e.ValidateAcyclic(context.Background(), 3, 1); err == nil {
		t.Error("expected cycle rejection for P3 -> P1")
	}
}

func TestValidateAcyclic_RejectsSelfEdge(t *testing.T) {
	e := New(newFakeGraph())
	if err := e.ValidateAcyclic(context.Background(), 5, 5); err == nil {
		t.Error("expected rejection of self-edge")
	}
}

func TestFlatten_AccumulatesSharedLeaf(t *testing.T) {
	g := newFakeGraph()
	g.addArticle(1, "BOLT", decimal.Zero, decimal.Zero, decimal.Zero)
	g.addNomenclature(2, "ARM", domain.PriceFromComponents)
	g.addNomenclature(3, "ASSEMBLY", domain.PriceFromComponents)
	g.addEdge(2, 1, decimal.NewFromInt(2))
	g.addEdge(3, 1, decimal.NewFromInt(1))
	g.addEdge(3, 2, decimal.NewFromInt(3))

	e := New(g)
	lines, err := e.Flatten(context.Background(), 3)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	// 1 direct bolt + 3 arms * 2 bolts each = 7
	want := decimal.NewFromInt(7)
	if !lines[0].Quantity.Equal(want) {
		t.Errorf("got %s bolts, want %s", lines[0].Quantity, want)
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
