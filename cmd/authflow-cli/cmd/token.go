package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/authflow/internal/session"
)

func newTokenCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.shutdown()

			token, err := rt.store.Token(cmd.Context())
			if errors.Is(err, session.ErrNoToken) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Not signed in.")
				return errNotAuthenticated
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newLogoutCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(cmd, false)
			if err != nil {
				return err
			}
			defer rt.shutdown()

			if err := rt.store.ClearToken(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
