package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/authflow/internal/auth"
	"github.com/nfrund/authflow/internal/validation"
)

func newLoginCmd(opts *cliOptions) *cobra.Command {
	var creds validation.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := newPrompter(cmd)
			var err error
			if creds.Username, err = prompt.Value("Username", creds.Username); err != nil {
				return err
			}
			if creds.Password, err = prompt.Secret("Password", creds.Password); err != nil {
				return err
			}

			rt, err := opts.setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.shutdown()

			out := cmd.OutOrStdout()
			initiator := auth.NewInitiator(rt.api, rt.store, printNavigator{w: out},
				auth.WithLogger(rt.logger),
				auth.WithLoading(busyLabel(cmd.ErrOrStderr(), "Signing in...")),
			)
			result, err := initiator.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if result.Outcome != auth.OutcomeAuthenticated {
				fmt.Fprintln(cmd.ErrOrStderr(), "Sign in failed:")
				printFeedback(cmd.ErrOrStderr(), result.Feedback)
				return errNotAuthenticated
			}
			fmt.Fprintln(out, "Signed in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Username, "username", "", "account username")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password (prompted when omitted)")
	return cmd
}
