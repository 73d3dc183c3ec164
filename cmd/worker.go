package cmd

import (
	"sync"
	"time"

	"builderid/worker"
	"builderid/worker/leaderboard"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "builder id job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		cachedBuilders := provideCachedBuilderStore(database)

		interval, _ := cmd.Flags().GetDuration("interval")

		workers := []worker.Worker{
			leaderboard.New(cachedBuilders, interval),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Duration("interval", time.Minute, "leaderboard sync interval")
}
