package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ttrpg/internal/game/dice"
	"github.com/cory-johannsen/ttrpg/internal/style"
)

func newRollCommand(a *app) *cobra.Command {
	var (
		expr string
		opts dice.Options
	)

	cmd := &cobra.Command{
		Use:   "roll [expression]",
		Short: "Roll dice in [count]d<sides> notation",
		Long: `Roll dice and print the results in draw order.

A 1 is highlighted as a critical failure and the die's maximum as a critical
success. With --advantage or --disadvantage every roll draws two dice; the
discarded die is struck through. When both flags are given, advantage wins.`,
		Example: `  ttrpg roll --roll 2d20
  ttrpg roll d20 --advantage
  ttrpg roll -r 4d6`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if expr != "" {
					return usageError(errors.New("give the expression either as an argument or with --roll, not both"))
				}
				expr = args[0]
			}
			if expr == "" {
				return usageError(errors.New(`a roll expression is required, e.g. "2d20"`))
			}

			out := cmd.OutOrStdout()
			roller := dice.NewLoggedRoller(a.diceSource(), a.styler(out), a.logger)
			result, err := roller.RollExpr(expr, opts)
			if err != nil {
				return err
			}
			a.logger.Info("roll result", zap.String("result", style.StripANSI(result)))
			_, err = fmt.Fprintf(out, "Roll Result: %s\n", result)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&expr, "roll", "r", "", `dice expression in "[count]d<sides>" form, e.g. 2d20`)
	f.BoolVarP(&opts.Advantage, "advantage", "a", false, "roll with advantage")
	f.BoolVarP(&opts.Disadvantage, "disadvantage", "d", false, "roll with disadvantage")
	f.Uint64("seed", 0, "seed for a reproducible roll (0 uses crypto/rand)")
	bindFlags(a.v, f, map[string]string{"dice.seed": "seed"})
	return cmd
}
