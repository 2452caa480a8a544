package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/trainplan/internal/cli/formatter"
	"github.com/alexanderramin/trainplan/internal/notation"
	"github.com/spf13/cobra"
)

func newDecodeCmd(app *App) *cobra.Command {
	var asJSON, block bool

	cmd := &cobra.Command{
		Use:   "decode NOTATION...",
		Short: "Decode exercise notation such as \"Clamshells: 3x15-20 each side\"",
		Long: `Decode runs each argument through the exercise notation grammar and
prints the structured prescriptions. With --block the arguments are read as
the lines of one strength session, so warm-up lines are dropped.`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{annotationNoStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dec := app.decoder()

			var lines []formatter.DecodedLine
			if block {
				lines = []formatter.DecodedLine{{Input: fmt.Sprintf("%d line block", len(args)), Exercises: dec.DecodeBlock(args)}}
			} else {
				for _, arg := range args {
					lines = append(lines, formatter.DecodedLine{Input: arg, Exercises: dec.DecodeLine(arg)})
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeDecodedJSON(out, lines)
			}
			fmt.Fprint(out, formatter.FormatDecoded(lines))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&block, "block", false, "decode the arguments as one strength session")
	return cmd
}

type decodedJSON struct {
	Input     string                  `json:"input"`
	Exercises []notation.Prescription `json:"exercises"`
}

func writeDecodedJSON(w io.Writer, lines []formatter.DecodedLine) error {
	out := make([]decodedJSON, 0, len(lines))
	for _, l := range lines {
		ex := l.Exercises
		if ex == nil {
			ex = []notation.Prescription{}
		}
		out = append(out, decodedJSON{Input: l.Input, Exercises: ex})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
