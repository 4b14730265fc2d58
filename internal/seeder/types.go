package seeder

import (
	"github.com/Lumos-Labs-HQ/synthgen/internal/dataset"
	"github.com/Lumos-Labs-HQ/synthgen/internal/entity"
	"github.com/Lumos-Labs-HQ/synthgen/internal/export"
)

// Pools carries what earlier steps produced for later steps to reference:
// the identifiers of every entity, plus the placement date of every order.
type Pools struct {
	IDs    map[string][]string
	Orders []entity.OrderRef
}

func newPools() *Pools {
	return &Pools{IDs: make(map[string][]string)}
}

// Step is one entry of the fixed generation plan.
type Step struct {
	Name     string   // config key of the top-level entity
	Requires []string // pools that must be non-empty when Count > 0
	Optional []string // pools used when present
	run      func(env entity.Env, count int, pools *Pools) ([]*dataset.Table, []string, error)
}

// Result is what a completed run hands back to the caller.
type Result struct {
	Dir      string
	Tables   []*dataset.Table
	Manifest *export.Manifest
}
