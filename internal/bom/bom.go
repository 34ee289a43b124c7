// Package bom implements the bill-of-materials graph engine:
// cost/price/weight roll-ups, tree and flat views, and the cycle guard
// enforced on every edge mutation.
package bom

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
)

// Graph gives the engine read access to the product catalog and its
// component edges without binding it to a specific storage technology;
// catalog.ProductComponentService supplies the concrete implementation
// over the unit of work's *sql.Tx.
type Graph interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
	ComponentsOf(ctx context.Context, parentID int64) ([]domain.ProductComponent, error)
}

// Engine runs roll-ups and cycle checks against a Graph.
type Engine struct {
	graph Graph
}

// New builds an Engine over graph.
func New(graph Graph) *Engine {
	return &Engine{graph: graph}
}

// Node is one entry of a Tree result: a product reference, the quantity of
// it required by its parent, its depth below the root, and its own
// children.
type Node struct {
	Reference  string
	Quantity   decimal.Decimal
	Level      int
	Components []*Node
}

// FlatLine is one entry of a Flatten result: the total quantity of a leaf
// reference required anywhere in the tree, summed across every path that
// reaches it.
type FlatLine struct {
	Reference string
	Quantity  decimal.Decimal
}

// ValidateAcyclic reports a Conflict error if adding an edge
// parentID -> componentID would create a cycle, including the degenerate
// self-edge case.
func (e *Engine) ValidateAcyclic(ctx context.Context, parentID, componentID int64) error {
	if parentID == componentID {
		return errs.Conflictf("cycle", "a product cannot be a component of itself")
	}
	reaches, err := e.reaches(ctx, componentID, parentID, map[int64]bool{})
	if err != nil {
		return err
	}
	if reaches {
		return errs.Conflictf("cycle", "adding this edge would create a cycle through product %d", componentID)
	}
	return nil
}

// reaches reports whether a DFS from "from" can reach "target" by following
// existing component edges.
func (e *Engine) reaches(ctx context.Context, from, target int64, visited map[int64]bool) (bool, error) {
	if from == target {
		return true, nil
	}
	if visited[from] {
		return false, nil
	}
	visited[from] = true

	edges, err := e.graph.ComponentsOf(ctx, from)
	if err != nil {
		return false, err
	}
	for _, edge := range edges {
		ok, err := e.reaches(ctx, edge.ComponentID, target, visited)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// CostRollup computes the cost of productID: leaves
// return their own cost_price (zero if unset); FROM_COMPONENTS
// nomenclatures sum edge.quantity * child cost; MANUAL and
// FROM_COST_MARGIN nomenclatures return the stored cost_price directly.
func (e *Engine) CostRollup(ctx context.Context, productID int64) (decimal.Decimal, error) {
	product, err := e.graph.Product(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	if product.ProductType != domain.ProductNomenclature {
		return decimalOrZero(product.CostPrice), nil
	}

	switch product.PriceCalculationMode {
	case domain.PriceManual, domain.PriceFromCostMargin:
		return decimalOrZero(product.CostPrice), nil
	default: // FROM_COMPONENTS
		edges, err := e.graph.ComponentsOf(ctx, productID)
		if err != nil {
			return decimal.Zero, err
		}
		total := decimal.Zero
		for _, edge := range edges {
			childCost, err := e.CostRollup(ctx, edge.ComponentID)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(edge.Quantity.Mul(childCost))
		}
		return total, nil
	}
}

// PriceRollup computes the sale price of productID. FROM_COST_MARGIN
// nomenclatures derive price from cost_price * (1 + margin/100); all other
// cases mirror CostRollup with sale_price in place of cost_price.
func (e *Engine) PriceRollup(ctx context.Context, productID int64) (decimal.Decimal, error) {
	product, err := e.graph.Product(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	if product.ProductType != domain.ProductNomenclature {
		return decimalOrZero(product.SalePrice), nil
	}

	switch product.PriceCalculationMode {
	case domain.PriceFromCostMargin:
		cost := decimalOrZero(product.CostPrice)
		margin := decimalOrZero(product.MarginPercentage)
		factor := decimal.NewFromInt(1).Add(margin.Div(decimal.NewFromInt(100)))
		return cost.Mul(factor), nil
	case domain.PriceManual:
		return decimalOrZero(product.SalePrice), nil
	default: // FROM_COMPONENTS
		edges, err := e.graph.ComponentsOf(ctx, productID)
		if err != nil {
			return decimal.Zero, err
		}
		total := decimal.Zero
		for _, edge := range edges {
			childPrice, err := e.PriceRollup(ctx, edge.ComponentID)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(edge.Quantity.Mul(childPrice))
		}
		return total, nil
	}
}

// WeightRollup computes net weight: leaves return their own net_weight
// (SERVICE has none and propagates as zero), nomenclatures sum
// edge.quantity * child weight.
func (e *Engine) WeightRollup(ctx context.Context, productID int64) (decimal.Decimal, error) {
	product, err := e.graph.Product(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}

	if product.ProductType == domain.ProductService {
		return decimal.Zero, nil
	}
	if product.ProductType == domain.ProductArticle {
		return decimalOrZero(product.NetWeight), nil
	}

	edges, err := e.graph.ComponentsOf(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, edge := range edges {
		childWeight, err := e.WeightRollup(ctx, edge.ComponentID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(edge.Quantity.Mul(childWeight))
	}
	return total, nil
}

// Tree builds a depth-first nested view of productID's BOM, rooted with
// quantity 1 and level 0.
func (e *Engine) Tree(ctx context.Context, productID int64) (*Node, error) {
	return e.tree(ctx, productID, decimal.NewFromInt(1), 0)
}

func (e *Engine) tree(ctx context.Context, productID int64, quantity decimal.Decimal, level int) (*Node, error) {
	product, err := e.graph.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	node := &Node{Reference: product.Reference, Quantity: quantity, Level: level}

	if product.ProductType != domain.ProductNomenclature {
		return node, nil
	}
	edges, err := e.graph.ComponentsOf(ctx, productID)
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		child, err := e.tree(ctx, edge.ComponentID, edge.Quantity, level+1)
		if err != nil {
			return nil, err
		}
		node.Components = append(node.Components, child)
	}
	return node, nil
}

// Flatten produces the material-requisition view: every leaf reference
// reachable from productID, with quantities accumulated across every path
// that reaches it.
func (e *Engine) Flatten(ctx context.Context, productID int64) ([]FlatLine, error) {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	if err := e.flatten(ctx, productID, decimal.NewFromInt(1), totals, &order); err != nil {
		return nil, err
	}
	lines := make([]FlatLine, 0, len(order))
	for _, ref := range order {
		lines = append(lines, FlatLine{Reference: ref, Quantity: totals[ref]})
	}
	return lines, nil
}

func (e *Engine) flatten(ctx context.Context, productID int64, quantity decimal.Decimal, totals map[string]decimal.Decimal, order *[]string) error {
	product, err := e.graph.Product(ctx, productID)
	if err != nil {
		return err
	}

	if product.ProductType != domain.ProductNomenclature {
		if _, seen := totals[product.Reference]; !seen {
			*order = append(*order, product.Reference)
			totals[product.Reference] = decimal.Zero
		}
		totals[product.Reference] = totals[product.Reference].Add(quantity)
		return nil
	}

	edges, err := e.graph.ComponentsOf(ctx, productID)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		if err := e.flatten(ctx, edge.ComponentID, quantity.Mul(edge.Quantity), totals, order); err != nil {
			return err
		}
	}
	return nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
