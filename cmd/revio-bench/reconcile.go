package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/revio-dev/revio/pkg/rdom"
)

func reconcileCmd() *cobra.Command {
	var (
		sizes []int
		iters int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Measure keyed list diffing under random shuffles",
		Long: `Reconciles lists of each size against a fresh random permutation on
every iteration, timing the diff plus the container application and
tallying the emitted operations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewSource(seed))

			tbl := table.NewWriter()
			tbl.SetTitle("Reconcile")
			tbl.SetOutputMirror(os.Stdout)
			tbl.AppendHeader(table.Row{"benchmark", "ops", "avg", "min", "p75", "p99", "max"})

			for _, n := range sizes {
				calc, totalOps, err := benchReconcile(rng, n, iters)
				if err != nil {
					return err
				}
				tbl.AppendRows([]table.Row{{
					fmt.Sprintf("shuffle: %d keys", n),
					humanize.Comma(totalOps),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				}})
			}

			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&sizes, "sizes", []int{10, 100, 1000, 10000}, "list sizes to test")
	cmd.Flags().IntVar(&iters, "iters", 100, "shuffles per size")
	cmd.Flags().Int64Var(&seed, "seed", 1, "shuffle RNG seed")
	return cmd
}

type benchRow struct {
	id int
}

// benchContainer applies operations to an ordered slice, the cheapest
// possible backing so the measurement stays on the diff itself.
type benchContainer struct {
	nodes []rdom.Node
}

func (c *benchContainer) InsertAt(n rdom.Node, index int) {
	if index > len(c.nodes) {
		index = len(c.nodes)
	}
	c.nodes = append(c.nodes, nil)
	copy(c.nodes[index+1:], c.nodes[index:])
	c.nodes[index] = n
}

func (c *benchContainer) Remove(n rdom.Node) {
	for i, existing := range c.nodes {
		if existing == n {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			return
		}
	}
}

func (c *benchContainer) Move(n rdom.Node, index int) {
	c.Remove(n)
	c.InsertAt(n, index)
}

func (c *benchContainer) Update(n rdom.Node, content rdom.Node) {}

func benchReconcile(rng *rand.Rand, n, iters int) (*tachymeter.Metrics, int64, error) {
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	items := make([]*benchRow, n)
	for i := range items {
		items[i] = &benchRow{id: i}
	}
	key := func(r *benchRow) int { return r.id }
	render := func(r *benchRow) rdom.Node { return r }

	container := &benchContainer{}
	tableState, ops, err := rdom.Reconcile(nil, items, key, render, nil)
	if err != nil {
		return nil, 0, err
	}
	rdom.Apply(container, ops)

	var totalOps int64
	for i := 0; i < iters; i++ {
		rng.Shuffle(len(items), func(a, b int) {
			items[a], items[b] = items[b], items[a]
		})

		start := time.Now()
		next, ops, err := rdom.Reconcile(tableState, items, key, render, nil)
		if err != nil {
			return nil, 0, err
		}
		rdom.Apply(container, ops)
		tach.AddTime(time.Since(start))

		tableState = next
		totalOps += int64(len(ops))
	}
	return tach.Calc(), totalOps, nil
}
