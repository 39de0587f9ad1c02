package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/efreitasn/fuelcalc/internal/domain"
	"github.com/efreitasn/fuelcalc/internal/service"
	"github.com/efreitasn/fuelcalc/internal/urlstate"
)

// errInvalidInput is returned after field errors have been printed.
var errInvalidInput = errors.New("invalid input")

// fieldFlags names the flag of each field, in domain.Fields order.
var fieldFlags = [...]string{"distance", "consumption", "price"}

func evalCmd() *cobra.Command {
	var (
		in    domain.RawInput
		query string
	)
	cmd := &cobra.Command{
		Use:   "eval [distance consumption price]",
		Short: "Compute the fuel cost for a trip",
		Example: `  fuelcalc eval 100 7,5 6,5
  fuelcalc eval --distance 100 --consumption 7.5 --price 6.5
  fuelcalc eval --query 'd=100&c=7.5&p=6.5'`,
		Args: cobra.RangeArgs(0, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query != "" {
				q, _, err := urlstate.ParseQuery(query)
				if err != nil {
					return fmt.Errorf("invalid --query: %w", err)
				}
				// Explicit flags win over the query.
				for i, f := range domain.Fields {
					if !cmd.Flags().Changed(fieldFlags[i]) {
						in.Set(f, q.Get(f))
					}
				}
			}
			for i, arg := range args {
				in.Set(domain.Fields[i], arg)
			}

			calc, err := newCalculator()
			if err != nil {
				return err
			}
			return evaluate(cmd.OutOrStdout(), cmd.ErrOrStderr(), calc, in)
		},
	}

	cmd.Flags().StringVarP(&in.Distance, fieldFlags[domain.FieldDistance], "d", "", "distance in km")
	cmd.Flags().StringVarP(&in.FuelConsumption, fieldFlags[domain.FieldFuelConsumption], "c", "", "fuel consumption in l/100 km")
	cmd.Flags().StringVarP(&in.FuelPrice, fieldFlags[domain.FieldFuelPrice], "p", "", "fuel price per litre")
	cmd.Flags().StringVarP(&query, "query", "q", "", "share query string (d, c, p)")
	return cmd
}

// evaluate prints the cost and share query, or every field error.
func evaluate(stdout, stderr io.Writer, calc *service.CalculatorService, in domain.RawInput) error {
	res, err := calc.Calculate(in)
	if err != nil {
		return err
	}
	if !res.Evaluation.HasResult {
		for _, fe := range res.Evaluation.Errors {
			fmt.Fprintf(stderr, "%s: %s\n", fe.Field.Label(), fe.Kind.Message())
		}
		return errInvalidInput
	}

	fmt.Fprintf(stdout, "You'll pay %s for fuel.\n", res.Display)
	fmt.Fprintf(stdout, "Share: ?%s\n", urlstate.Query(in))
	return nil
}
