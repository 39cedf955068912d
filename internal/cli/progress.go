package cli

import (
	"github.com/spf13/cobra"

	"github.com/circuitlab/circuitlab/api/internal/domain"
)

func newProgressCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Inspect and record experiment progress",
	}

	cmd.AddCommand(newProgressListCmd(o), newProgressUpsertCmd(o))

	return cmd
}

func newProgressListCmd(o *options) *cobra.Command {
	var userID string
	var experimentID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List progress records, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := &domain.ProgressFilter{}
			if cmd.Flags().Changed("user-id") {
				filter.UserID = &userID
			}
			if cmd.Flags().Changed("experiment-id") {
				filter.ExperimentID = &experimentID
			}

			records, err := o.client.ListProgress(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return o.render(cmd, records, progressHeader, progressRows(records...))
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Only records of this user")
	cmd.Flags().IntVar(&experimentID, "experiment-id", 0, "Only records of this experiment")

	return cmd
}

func newProgressUpsertCmd(o *options) *cobra.Command {
	var input domain.ProgressInput
	var completed bool
	var score, timeSpent float64

	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update the record of a user and experiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("completed") {
				input.Completed = &completed
			}
			if flags.Changed("score") {
				input.Score = &score
			}
			if flags.Changed("time-spent") {
				input.TimeSpent = &timeSpent
			}

			rec, created, err := o.client.UpsertProgress(cmd.Context(), &input)
			if err != nil {
				return err
			}
			if created {
				o.logVerbose(cmd, "created progress record %s", rec.ID)
			} else {
				o.logVerbose(cmd, "updated progress record %s", rec.ID)
			}
			return o.render(cmd, rec, progressHeader, progressRows(*rec))
		},
	}

	cmd.Flags().StringVar(&input.UserID, "user-id", "", "User id")
	cmd.Flags().IntVar(&input.ExperimentID, "experiment-id", 0, "Experiment id")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the experiment completed")
	cmd.Flags().Float64Var(&score, "score", 0, "Score")
	cmd.Flags().Float64Var(&timeSpent, "time-spent", 0, "Time spent")

	return cmd
}
