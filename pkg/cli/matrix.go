package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/hara/pkg/domain/model"
	"github.com/secmon-lab/hara/pkg/domain/types"
)

var asilColors = map[types.ASIL]*color.Color{
	types.ASILQM: color.New(color.FgGreen),
	types.ASILA:  color.New(color.FgCyan),
	types.ASILB:  color.New(color.FgYellow),
	types.ASILC:  color.New(color.FgMagenta, color.Bold),
	types.ASILD:  color.New(color.FgRed, color.Bold),
}

func printMatrix(w io.Writer, markdown bool) error {
	if markdown {
		_, err := fmt.Fprintln(w, model.RenderMatrix())
		return err
	}

	title := color.New(color.Bold)
	for _, c := range types.AllControllabilities() {
		if _, err := title.Fprintf(w, "Controllability: %s\n", c); err != nil {
			return err
		}

		line := "S \\ E"
		for _, e := range types.AllExposures() {
			line += fmt.Sprintf("  %-3s", e)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		for _, s := range types.AllSeverities() {
			line := fmt.Sprintf("%-5s", s)
			for _, e := range types.AllExposures() {
				asil := types.Classify(s, e, c)
				line += "  " + asilColors[asil].Sprintf("%-3s", asil)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func cmdMatrix() *cli.Command {
	var markdown bool

	return &cli.Command{
		Name:    "matrix",
		Aliases: []string{"m"},
		Usage:   "Print the ASIL risk matrix",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "markdown",
				Usage:       "Print the matrix as GitHub flavored markdown tables",
				Sources:     cli.EnvVars("HARA_MATRIX_MARKDOWN"),
				Destination: &markdown,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return printMatrix(c.Root().Writer, markdown)
		},
	}
}
