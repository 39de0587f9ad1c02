package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/tui"
	"github.com/efreitasn/fuelcalc/internal/urlstate"
)

func formCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in the calculator interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			var initial domain.RawInput
			if query != "" {
				in, _, err := urlstate.ParseQuery(query)
				if err != nil {
					return fmt.Errorf("invalid --query: %w", err)
				}
				initial = in
			}

			calc, err := newCalculator()
			if err != nil {
				return err
			}
			in, err := tui.Run(calc, initial)
			if err != nil {
				return err
			}
			return evaluate(cmd.OutOrStdout(), cmd.ErrOrStderr(), calc, in)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "prefill from a share query string (d, c, p)")
	return cmd
}
