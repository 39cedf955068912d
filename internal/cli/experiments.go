package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/circuitlab/circuitlab/api/internal/domain"
)

func newExperimentsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "experiments",
		Aliases: []string{"exp"},
		Short:   "Manage the experiment catalogue",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List experiments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				experiments, err := o.client.ListExperiments(cmd.Context())
				if err != nil {
					return err
				}
				o.logVerbose(cmd, "%d experiments", len(experiments))
				return o.render(cmd, experiments, experimentHeader, experimentRows(experiments...))
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one experiment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseExperimentArg(args[0])
				if err != nil {
					return err
				}
				e, err := o.client.GetExperiment(cmd.Context(), id)
				if err != nil {
					return err
				}
				return o.render(cmd, e, experimentHeader, experimentRows(*e))
			},
		},
		newExperimentCreateCmd(o),
		newExperimentUpdateCmd(o),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an experiment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseExperimentArg(args[0])
				if err != nil {
					return err
				}
				e, err := o.client.DeleteExperiment(cmd.Context(), id)
				if err != nil {
					return err
				}
				return o.render(cmd, e, experimentHeader, experimentRows(*e))
			},
		},
		&cobra.Command{
			Use:   "embed <id>",
			Short: "Print the simulator embed URL of an experiment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseExperimentArg(args[0])
				if err != nil {
					return err
				}
				embed, err := o.client.ExperimentEmbed(cmd.Context(), id)
				if err != nil {
					return err
				}
				return o.render(cmd, embed, []string{"Experiment", "Embed ID", "URL"}, [][]string{
					{fmt.Sprint(embed.ExperimentID), embed.EmbedID, embed.URL},
				})
			},
		},
	)

	return cmd
}

func newExperimentCreateCmd(o *options) *cobra.Command {
	var input domain.ExperimentInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an experiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := o.client.CreateExperiment(cmd.Context(), &input)
			if err != nil {
				return err
			}
			o.logVerbose(cmd, "created experiment %d", e.ID)
			return o.render(cmd, e, experimentHeader, experimentRows(*e))
		},
	}

	cmd.Flags().StringVar(&input.Title, "title", "", "Experiment title")
	cmd.Flags().StringVar(&input.Description, "description", "", "Experiment description")
	cmd.Flags().StringVar(&input.EmbedID, "embed-id", "", "Simulator embed id")
	cmd.Flags().StringVar(&input.Aim, "aim", "", "Learning aim")

	return cmd
}

func newExperimentUpdateCmd(o *options) *cobra.Command {
	var title, description, embedID, aim string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseExperimentArg(args[0])
			if err != nil {
				return err
			}

			// Only flags given on the command line end up in the patch
			patch := &domain.ExperimentPatch{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("embed-id") {
				patch.EmbedID = &embedID
			}
			if flags.Changed("aim") {
				patch.Aim = &aim
			}

			e, err := o.client.UpdateExperiment(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			return o.render(cmd, e, experimentHeader, experimentRows(*e))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Experiment title")
	cmd.Flags().StringVar(&description, "description", "", "Experiment description")
	cmd.Flags().StringVar(&embedID, "embed-id", "", "Simulator embed id")
	cmd.Flags().StringVar(&aim, "aim", "", "Learning aim")

	return cmd
}
