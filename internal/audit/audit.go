// Package audit re-reads a written dataset and checks it the way a
// downstream loader would: every artifact is present with its declared
// header and row count, every reference resolves, and order money adds up.
package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lumos-Labs-HQ/synthgen/internal/entity"
	"github.com/Lumos-Labs-HQ/synthgen/internal/export"
	"github.com/shopspring/decimal"
)

type Finding struct {
	Check    string
	Artifact string
	Detail   string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Check, f.Artifact, f.Detail)
}

type Report struct {
	Dir      string
	RunID    string
	Rows     map[string]int
	Findings []Finding
}

func (r *Report) OK() bool { return len(r.Findings) == 0 }

func (r *Report) add(check, artifact, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Check: check, Artifact: artifact, Detail: fmt.Sprintf(format, args...)})
}

// reference is a foreign-key-shaped column that must resolve.
type reference struct {
	from, column, to string
}

var references = []reference{
	{entity.Recipes, "product_id", entity.Products},
	{entity.RecipeLines, "recipe_id", entity.Recipes},
	{entity.Orders, "customer_id", entity.Customers},
	{entity.OrderLines, "order_id", entity.Orders},
	{entity.OrderLines, "product_id", entity.Products},
	{entity.Shipments, "order_id", entity.Orders},
	{entity.Returns, "order_id", entity.Orders},
	{entity.Returns, "product_id", entity.Products},
	{entity.Returns, "customer_id", entity.Customers},
	{entity.Waste, "product_id", entity.Products},
	{entity.QualityInspections, "product_id", entity.Products},
	{entity.QualityInspections, "order_id", entity.Orders},
}

// table is one loaded CSV artifact.
type table struct {
	index map[string]int
	rows  [][]string
}

func (t *table) get(row []string, column string) string {
	return row[t.index[column]]
}

// Check audits the CSV dataset in dir. The returned error covers problems
// that stop the audit itself; data problems are reported as findings.
func Check(dir string) (*Report, error) {
	m, err := export.ReadManifest(filepath.Join(dir, export.ManifestFile))
	if err != nil {
		return nil, err
	}
	if m.Format != "csv" {
		return nil, fmt.Errorf("check supports csv datasets only, %s holds %s", dir, m.Format)
	}

	r := &Report{Dir: dir, RunID: m.RunID, Rows: make(map[string]int)}
	tables := make(map[string]*table)

	for _, schema := range entity.Schemas() {
		a, ok := m.Artifact(schema.Name)
		if !ok {
			r.add("completeness", schema.Name, "not listed in manifest")
			continue
		}
		header, rows, err := readCSV(filepath.Join(dir, a.File))
		if err != nil {
			r.add("completeness", schema.Name, "%v", err)
			continue
		}
		r.Rows[schema.Name] = len(rows)

		want := schema.Names()
		if strings.Join(header, ",") != strings.Join(want, ",") {
			r.add("header", schema.Name, "columns %v, declared %v", header, want)
			continue
		}
		if len(rows) != a.Rows {
			r.add("row-count", schema.Name, "%d rows, manifest says %d", len(rows), a.Rows)
		}
		t := &table{index: make(map[string]int, len(header)), rows: rows}
		for i, h := range header {
			t.index[h] = i
		}
		tables[schema.Name] = t
	}

	checkReferences(r, tables, m.NullMarker)
	checkOrderTotals(r, tables[entity.Orders], tables[entity.OrderLines])
	return r, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%s is empty", filepath.Base(path))
	}
	if err != nil {
		return nil, nil, err
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return header, rows, nil
}

func checkReferences(r *Report, tables map[string]*table, null string) {
	keys := make(map[string]map[string]bool)
	for name, t := range tables {
		set := make(map[string]bool, len(t.rows))
		for _, row := range t.rows {
			set[row[0]] = true
		}
		keys[name] = set
	}

	for _, ref := range references {
		from, ok := tables[ref.from]
		if !ok {
			continue
		}
		target, ok := keys[ref.to]
		if !ok {
			r.add("referential-integrity", ref.from, "cannot check %s without %s", ref.column, ref.to)
			continue
		}
		dangling := 0
		example := ""
		for _, row := range from.rows {
			v := from.get(row, ref.column)
			if v == null {
				continue
			}
			if !target[v] {
				if dangling == 0 {
					example = v
				}
				dangling++
			}
		}
		if dangling > 0 {
			r.add("referential-integrity", ref.from, "%d rows with %s not in %s (e.g. %s)", dangling, ref.column, ref.to, example)
		}
	}
}

var cent = decimal.RequireFromString("0.005")

func checkOrderTotals(r *Report, orders, lines *table) {
	if orders == nil || lines == nil {
		return
	}
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, row := range lines.rows {
		id := lines.get(row, "order_id")
		total, err := decimal.NewFromString(lines.get(row, "line_total"))
		if err != nil {
			r.add("numeric", entity.OrderLines, "line %s: bad line_total: %v", row[0], err)
			continue
		}
		sums[id] = sums[id].Add(total)
		counts[id]++
	}

	for _, row := range orders.rows {
		id := row[0]
		vals := make(map[string]decimal.Decimal, 5)
		bad := false
		for _, col := range []string{"subtotal", "tax_amount", "shipping_cost", "discount_amount", "total_amount"} {
			d, err := decimal.NewFromString(orders.get(row, col))
			if err != nil {
				r.add("numeric", entity.Orders, "order %s: bad %s: %v", id, col, err)
				bad = true
				break
			}
			vals[col] = d
		}
		if bad {
			continue
		}

		if vals["subtotal"].Sub(sums[id]).Abs().GreaterThanOrEqual(cent) {
			r.add("numeric", entity.Orders, "order %s: subtotal %s != sum of lines %s", id, vals["subtotal"], sums[id])
		}
		want := vals["subtotal"].Add(vals["tax_amount"]).Add(vals["shipping_cost"]).Sub(vals["discount_amount"]).Round(2)
		if !vals["total_amount"].Equal(want) {
			r.add("numeric", entity.Orders, "order %s: total_amount %s, recomputed %s", id, vals["total_amount"], want)
		}
		if n := orders.get(row, "line_count"); n != fmt.Sprint(counts[id]) {
			r.add("numeric", entity.Orders, "order %s: line_count %s but %d lines", id, n, counts[id])
		}
	}
}
