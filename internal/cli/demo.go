package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tomfleet/glint/internal/logging"
	"github.com/tomfleet/glint/progress"
)

var (
	demoWorkers  int
	demoDuration time.Duration
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a live progress display fed by concurrent workers",
	Long: `Demo starts a live progress block and advances its tasks from several
goroutines at once, exercising the renderer end to end: concurrent task
updates, per-cycle snapshots, in-place redraw, and the final frame left
on screen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New("demo")
		term := newTerminal()

		prog := progress.New(term)
		ids := make([]progress.TaskID, demoWorkers)
		for i := range ids {
			ids[i] = prog.Add(fmt.Sprintf("worker %d", i+1), 100)
		}
		scan := prog.AddIndeterminate("scanning")

		if err := prog.Start(); err != nil {
			return err
		}
		logger.Debug("started", "workers", demoWorkers, "duration", demoDuration)

		step := demoDuration / 100
		var g errgroup.Group
		for i, id := range ids {
			id := id
			// Stagger the workers so the bars advance visibly out of phase.
			pause := step + time.Duration(i)*step/4
			g.Go(func() error {
				for j := 0; j < 100; j++ {
					time.Sleep(pause)
					if err := prog.Advance(id, 1); err != nil {
						return err
					}
				}
				return nil
			})
		}
		workErr := g.Wait()
		if err := prog.Finish(scan); err != nil && workErr == nil {
			workErr = err
		}

		if err := prog.Stop(); err != nil {
			return err
		}
		return workErr
	},
}

func init() {
	demoCmd.Flags().IntVar(&demoWorkers, "workers", 3, "Number of concurrent tasks")
	demoCmd.Flags().DurationVar(&demoDuration, "duration", 3*time.Second, "Approximate time for a task to complete")
	rootCmd.AddCommand(demoCmd)
}
