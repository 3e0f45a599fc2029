package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/revio-dev/revio/pkg/reactive"
)

func propagateCmd() *cobra.Command {
	var (
		widths     []int
		heights    []int
		iters      int
		cpuprofile string
	)

	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Measure write-to-effect latency across derive chains",
		Long: `Builds width x height grids of derive chains, each chain ending in a
watch effect, then times how long one source write takes to reach every
effect through a synchronous flush.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				defer pprof.StopCPUProfile()
			}

			tbl := table.NewWriter()
			tbl.SetTitle("Propagate")
			tbl.SetOutputMirror(os.Stdout)
			tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

			for _, w := range widths {
				for _, h := range heights {
					calc := benchPropagate(w, h, iters)
					tbl.AppendRows([]table.Row{{
						fmt.Sprintf("propagate: %d * %d", w, h),
						calc.Time.Avg,
						calc.Time.Min,
						calc.Time.P75,
						calc.Time.P99,
						calc.Time.Max,
					}})
				}
			}

			tbl.Render()
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&widths, "widths", []int{1, 10, 100, 1000}, "chain counts to test")
	cmd.Flags().IntSliceVar(&heights, "heights", []int{1, 10, 100}, "chain depths to test")
	cmd.Flags().IntVar(&iters, "iters", 100, "timed writes per configuration")
	cmd.Flags().StringVar(&cpuprofile, "cpuprofile", "", "write a CPU profile to this file")
	return cmd
}

func benchPropagate(width, height, iters int) *tachymeter.Metrics {
	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	rt := reactive.NewRuntime()
	src := reactive.NewCell(rt, 1)
	for i := 0; i < width; i++ {
		last := reactive.Source(src)
		for j := 0; j < height; j++ {
			prev := last
			last = reactive.Derive(rt, []reactive.Source{prev}, func() int {
				return valueOf(prev) + 1
			})
		}
		final := last
		reactive.Watch(rt, []reactive.Source{final}, func() {
			valueOf(final)
		})
	}

	for i := 0; i < iters; i++ {
		start := time.Now()
		src.Set(src.Get() + 1)
		rt.FlushSync()
		tach.AddTime(time.Since(start))
	}
	return tach.Calc()
}

func valueOf(s reactive.Source) int {
	return s.(*reactive.Cell[int]).Get()
}
