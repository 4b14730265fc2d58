package seeder

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/entity"
)

// Plan returns the generation steps in their fixed order. Referenced
// entities always come before the entities that reference them.
func Plan() []Step {
	return []Step{
		{Name: entity.Products, run: products},
		{Name: entity.Recipes, Requires: []string{entity.Products}, run: recipes},
		{Name: entity.Customers, run: customers},
		{Name: entity.Orders, Requires: []string{entity.Customers, entity.Products}, run: orders},
		{Name: entity.Shipments, Requires: []string{entity.Orders}, run: shipments},
		{Name: entity.Returns, Requires: []string{entity.Orders, entity.Products, entity.Customers}, run: returns},
		{Name: entity.Waste, Optional: []string{entity.Products}, run: waste},
		{Name: entity.QualityInspections, Requires: []string{entity.Products}, Optional: []string{entity.Orders}, run: inspections},
	}
}

// validatePlan checks that every pool a step reads is produced by an
// earlier step.
func validatePlan(plan []Step) error {
	index := make(map[string]int, len(plan))
	for i, st := range plan {
		if _, dup := index[st.Name]; dup {
			return fmt.Errorf("entity %s appears twice in the generation plan", st.Name)
		}
		index[st.Name] = i
	}

	for i, st := range plan {
		deps := append(append([]string{}, st.Requires...), st.Optional...)
		for _, dep := range deps {
			refIdx, exists := index[dep]
			if !exists {
				return fmt.Errorf("entity %s references %s, which is never generated", st.Name, dep)
			}
			if refIdx >= i {
				return fmt.Errorf("entity %s references %s, which is generated later", st.Name, dep)
			}
		}
	}
	return nil
}

func products(env entity.Env, n int, _ *Pools) ([]*dataset.Table, []string, error) {
	rows, err := entity.GenerateProducts(env, n)
	if err != nil {
		return nil, nil, err
	}
	tbl, err := dataset.Build(entity.ProductSchema, rows)
	return []*dataset.Table{tbl}, entity.ProductIDs(rows), err
}

func recipes(env entity.Env, n int, p *Pools) ([]*dataset.Table, []string, error) {
	rows, lines, err := entity.GenerateRecipes(env, n, p.IDs[entity.Products])
	if err != nil {
		return nil, nil, err
	}
	parent, err := dataset.Build(entity.RecipeSchema, rows)
	if err != nil {
		return nil, nil, err
	}
	child, err := dataset.Build(entity.RecipeLineSchema, lines)
	return []*dataset.Table{parent, child}, entity.RecipeIDs(rows), err
}

func customers(env entity.Env, n int, _ *Pools) ([]*dataset.Table, []string, error) {
	rows, err := entity.GenerateCustomers(env, n)
	if err != nil {
		return nil, nil, err
	}
	tbl, err := dataset.Build(entity.CustomerSchema, rows)
	return []*dataset.Table{tbl}, entity.CustomerIDs(rows), err
}

func orders(env entity.Env, n int, p *Pools) ([]*dataset.Table, []string, error) {
	rows, lines, err := entity.GenerateOrders(env, n, p.IDs[entity.Customers], p.IDs[entity.Products])
	if err != nil {
		return nil, nil, err
	}
	parent, err := dataset.Build(entity.OrderSchema, rows)
	if err != nil {
		return nil, nil, err
	}
	child, err := dataset.Build(entity.OrderLineSchema, lines)
	p.Orders = entity.OrderRefs(rows)
	return []*dataset.Table{parent, child}, entity.OrderIDs(rows), err
}

func shipments(env entity.Env, n int, p *Pools) ([]*dataset.Table, []string, error) {
	rows, err := entity.GenerateShipments(env, n, p.Orders)
	if err != nil {
		return nil, nil, err
	}
	tbl, err := dataset.Build(entity.ShipmentSchema, rows)
	return []*dataset.Table{tbl}, nil, err
}

func returns(env entity.Env, n int, p *Pools) ([]*dataset.Table, []string, error) {
	rows, err := entity.GenerateReturns(env, n, p.Orders, p.IDs[entity.Products], p.IDs[entity.Customers])
	if err != nil {
		return nil, nil, err
	}
	tbl, err := dataset.Build(entity.ReturnSchema, rows)
	return []*dataset.Table{tbl}, nil, err
}

func waste(env entity.Env, n int, p *Pools) ([]*dataset.Table, []string, error) {
	rows, err := entity.GenerateWaste(env, n, p.IDs[entity.Products])
	if err != nil {
		return nil, nil, err
	}
	tbl, err := dataset.Build(entity.WasteSchema, rows)
	return []*dataset.Table{tbl}, nil, err
}

func inspections(env entity.Env, n int, p *Pools) ([]*dataset.Table, []string, error) {
	rows, err := entity.GenerateInspections(env, n, p.IDs[entity.Products], p.IDs[entity.Orders])
	if err != nil {
		return nil, nil, err
	}
	tbl, err := dataset.Build(entity.InspectionSchema, rows)
	return []*dataset.Table{tbl}, nil, err
}
