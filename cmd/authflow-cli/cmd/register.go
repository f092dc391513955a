package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/authflow/internal/auth"
	"github.com/nfrund/authflow/internal/validation"
)

func newRegisterCmd(opts *cliOptions) *cobra.Command {
	var form validation.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account, then sign in with it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := newPrompter(cmd)
			prompts := []struct {
				label  string
				dst    *string
				secret bool
			}{
				{"Username", &form.Username, false},
				{"Email", &form.Email, false},
				{"Password", &form.Password, true},
				{"Confirm password", &form.ConfirmPassword, true},
			}
			for _, p := range prompts {
				read := prompt.Value
				if p.secret {
					read = prompt.Secret
				}
				v, err := read(p.label, *p.dst)
				if err != nil {
					return err
				}
				*p.dst = v
			}

			rt, err := opts.setup(cmd, true)
			if err != nil {
				return err
			}
			defer rt.shutdown()

			out := cmd.OutOrStdout()
			composer := auth.NewComposer(rt.api, rt.store, printNavigator{w: out},
				auth.WithLogger(rt.logger),
				auth.WithLoading(busyLabel(cmd.ErrOrStderr(), "Registering...")),
			)
			result, err := composer.Register(cmd.Context(), form)
			if err != nil {
				return err
			}

			switch result.Outcome {
			case auth.OutcomeAuthenticated:
				fmt.Fprintf(out, "Account %s created and signed in.\n", result.AccountID)
				return nil
			case auth.OutcomeRegistered:
				fmt.Fprintf(out, "Account %s created. Run \"authflow-cli login\" to sign in.\n", result.AccountID)
				return nil
			default:
				fmt.Fprintln(cmd.ErrOrStderr(), "Sign up failed:")
				printFeedback(cmd.ErrOrStderr(), result.Feedback)
				return errNotAuthenticated
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Username, "username", "", "new username")
	f.StringVar(&form.Email, "email", "", "email address")
	f.StringVar(&form.Password, "password", "", "password (prompted when omitted)")
	f.StringVar(&form.ConfirmPassword, "confirm-password", "", "password again (prompted when omitted)")
	return cmd
}
