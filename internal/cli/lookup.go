package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/ttrpg/internal/open5e"
)

func newClassCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "class <name>",
		Short:   "Look up a character class",
		Example: "  ttrpg class wizard",
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lookup(cmd, func(ctx context.Context, c *open5e.Client) (any, func(io.Writer) error, error) {
				class, err := c.GetClass(ctx, strings.Join(args, " "))
				if err != nil {
					return nil, nil, err
				}
				return class, func(w io.Writer) error { return writeClass(w, class) }, nil
			})
		},
	}
}

func newSpellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "spell <name>",
		Short:   "Look up a spell",
		Example: "  ttrpg spell magic missile\n  ttrpg spell \"Mordenkainen's Sword\" --format yaml",
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lookup(cmd, func(ctx context.Context, c *open5e.Client) (any, func(io.Writer) error, error) {
				spell, err := c.GetSpell(ctx, strings.Join(args, " "))
				if err != nil {
					return nil, nil, err
				}
				return spell, func(w io.Writer) error { return writeSpell(w, spell) }, nil
			})
		},
	}
}

type fetchFunc func(ctx context.Context, c *open5e.Client) (record any, text func(io.Writer) error, err error)

func (a *app) lookup(cmd *cobra.Command, fetch fetchFunc) error {
	client, err := a.open5eClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Open5e.Timeout)
	defer cancel()

	record, text, err := fetch(ctx, client)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), a.cfg.Output.Format, record, text)
}

func writeClass(w io.Writer, c *open5e.Class) error {
	_, err := fmt.Fprintf(w, "Class: %s (%s)\n", c.Name, c.Slug)
	return err
}

func writeSpell(w io.Writer, s *open5e.Spell) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Spell: %s (%s)\n", s.Name, s.Slug)
	fmt.Fprintf(&b, "Level: %s\n", s.Level)
	fmt.Fprintf(&b, "School: %s\n", s.School)
	fmt.Fprintf(&b, "Classes: %s\n", s.DndClass)
	if desc := strings.TrimSpace(s.Desc); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
