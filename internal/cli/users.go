package cli

import (
	"github.com/spf13/cobra"

	"github.com/circuitlab/circuitlab/api/internal/domain"
)

func newUsersCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := o.client.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				return o.render(cmd, users, userHeader, userRows(users...))
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one user with experiment lists",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := o.client.GetUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return o.render(cmd, u, userDetailHeader, userDetailRows(u))
			},
		},
		newUserCreateCmd(o),
		newUserUpdateCmd(o),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := o.client.DeleteUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return o.render(cmd, u, userHeader, userRows(*u))
			},
		},
	)

	return cmd
}

func newUserCreateCmd(o *options) *cobra.Command {
	var input domain.UserInput
	var role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Role = domain.Role(role)
			u, err := o.client.CreateUser(cmd.Context(), &input)
			if err != nil {
				return err
			}
			o.logVerbose(cmd, "created user %s", u.ID)
			return o.render(cmd, u, userHeader, userRows(*u))
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email address, unique per user")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (accepted, never stored)")
	cmd.Flags().StringVar(&role, "role", "", "student or teacher (default student)")

	return cmd
}

func newUserUpdateCmd(o *options) *cobra.Command {
	var name, email, role string
	var completed, managed []int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := &domain.UserPatch{}
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("email") {
				patch.Email = &email
			}
			if flags.Changed("role") {
				r := domain.Role(role)
				patch.Role = &r
			}
			if flags.Changed("completed") {
				patch.CompletedExperiments = &completed
			}
			if flags.Changed("managed") {
				patch.ManagedExperiments = &managed
			}

			u, err := o.client.UpdateUser(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			return o.render(cmd, u, userDetailHeader, userDetailRows(u))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&role, "role", "", "student or teacher")
	cmd.Flags().IntSliceVar(&completed, "completed", nil, "Completed experiment ids, replaces the list")
	cmd.Flags().IntSliceVar(&managed, "managed", nil, "Managed experiment ids, replaces the list")

	return cmd
}
