// Package testkit builds deterministic synthetic frames for tests. Every
// generator is seeded so two runs produce identical datasets.
package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"datacraft/domain/dataset"
)

// GeneratorConfig configures the synthetic dataset generators
type GeneratorConfig struct {
	Rows       int
	MissingPct float64
	Seed       int64
	StartDate  time.Time
}

// DefaultGeneratorConfig returns sensible defaults for synthetic data
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:       1000,
		MissingPct: 0.05,
		Seed:       42,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Generator produces synthetic frames with known statistical structure
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a seeded generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// TransactionsFrame builds the canonical mixed-type dataset: a sequential id,
// a right-skewed amount with missing cells, a small category set with missing
// cells, and a daily event_time axis.
func (g *Generator) TransactionsFrame() *dataset.Frame {
	rows := g.config.Rows
	categories := []string{"food", "travel", "rent", "utilities", "leisure"}

	id := make([]string, rows)
	amount := make([]string, rows)
	category := make([]string, rows)
	eventTime := make([]string, rows)

	for i := 0; i < rows; i++ {
		id[i] = fmt.Sprintf("%d", i)

		if g.rng.Float64() < g.config.MissingPct {
			amount[i] = ""
		} else {
			amount[i] = fmt.Sprintf("%.2f", g.rng.ExpFloat64()*100)
		}

		if g.rng.Float64() < 2*g.config.MissingPct {
			category[i] = ""
		} else {
			category[i] = categories[g.rng.Intn(len(categories))]
		}

		eventTime[i] = g.config.StartDate.AddDate(0, 0, i%365).Format("2006-01-02")
	}

	return dataset.NewFrame([]dataset.Column{
		{Name: "id", Cells: id},
		{Name: "amount", Cells: amount},
		{Name: "category", Cells: category},
		{Name: "event_time", Cells: eventTime},
	}, dataset.DefaultMissingTokens())
}

// MNARPair builds two columns where the second's missingness depends on the
// first: rows with a driver value in the top decile lose their companion
// cell. The missingness indicator then correlates with the driver.
func (g *Generator) MNARPair() *dataset.Frame {
	rows := g.config.Rows

	driver := make([]string, rows)
	companion := make([]string, rows)
	for i := 0; i < rows; i++ {
		v := float64(i % 100)
		driver[i] = fmt.Sprintf("%g", v)
		if v >= 90 {
			companion[i] = ""
		} else {
			companion[i] = fmt.Sprintf("%.2f", g.rng.Float64()*10)
		}
	}

	return dataset.NewFrame([]dataset.Column{
		{Name: "driver", Cells: driver},
		{Name: "companion", Cells: companion},
	}, dataset.DefaultMissingTokens())
}

// IndependentPair builds two columns whose missingness is random, so no MNAR
// indicator should fire.
func (g *Generator) IndependentPair() *dataset.Frame {
	rows := g.config.Rows

	a := make([]string, rows)
	b := make([]string, rows)
	for i := 0; i < rows; i++ {
		a[i] = fmt.Sprintf("%.3f", g.rng.NormFloat64())
		if g.rng.Float64() < g.config.MissingPct {
			b[i] = ""
		} else {
			b[i] = fmt.Sprintf("%.3f", g.rng.NormFloat64())
		}
	}

	return dataset.NewFrame([]dataset.Column{
		{Name: "a", Cells: a},
		{Name: "b", Cells: b},
	}, dataset.DefaultMissingTokens())
}

// TrendFrame builds a time series with a strong linear trend, so the lag-1
// autocorrelation of the value column is close to 1.
func (g *Generator) TrendFrame() *dataset.Frame {
	rows := g.config.Rows

	date := make([]string, rows)
	value := make([]string, rows)
	for i := 0; i < rows; i++ {
		date[i] = g.config.StartDate.AddDate(0, 0, i).Format("2006-01-02")
		value[i] = fmt.Sprintf("%.3f", float64(i)+g.rng.NormFloat64())
	}

	return dataset.NewFrame([]dataset.Column{
		{Name: "date", Cells: date},
		{Name: "value", Cells: value},
	}, dataset.DefaultMissingTokens())
}

// SalesFrame approximates a point-of-sale export: duplicated rows, sparse
// discount column and inconsistent whitespace, for dashboard scoring tests.
func (g *Generator) SalesFrame() *dataset.Frame {
	rows := g.config.Rows
	products := []string{"widget", "gadget", "gizmo", " widget", "doohickey"}

	order := make([]string, rows)
	product := make([]string, rows)
	quantity := make([]string, rows)
	discount := make([]string, rows)

	for i := 0; i < rows; i++ {
		if i > 0 && g.rng.Float64() < 0.02 {
			order[i] = order[i-1]
			product[i] = product[i-1]
			quantity[i] = quantity[i-1]
			discount[i] = discount[i-1]
			continue
		}
		order[i] = fmt.Sprintf("ORD-%05d", i)
		product[i] = products[g.rng.Intn(len(products))]
		quantity[i] = fmt.Sprintf("%d", 1+g.rng.Intn(9))
		if g.rng.Float64() < 0.7 {
			discount[i] = ""
		} else {
			discount[i] = fmt.Sprintf("%.2f", g.rng.Float64()*0.3)
		}
	}

	return dataset.NewFrame([]dataset.Column{
		{Name: "order_id", Cells: order},
		{Name: "product", Cells: product},
		{Name: "quantity", Cells: quantity},
		{Name: "discount", Cells: discount},
	}, dataset.DefaultMissingTokens())
}
