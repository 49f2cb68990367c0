package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"binviz/internal/config"
	"binviz/internal/grid"
	"binviz/internal/session"
	"binviz/internal/viewer"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

const dumpHexWidth = grid.RowLength*3 - 1

func newDumpCmd(root *rootOptions) *cobra.Command {
	var placeholder string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the hex and character grids of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("placeholder") {
				cfg, err := config.Load(root.configPath)
				if err != nil {
					return err
				}
				placeholder = cfg.Display.ControlPlaceholder
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			doc, err := session.Load(ctx, args[0])
			if err != nil {
				return err
			}
			return writeDump(cmd.OutOrStdout(), doc, placeholder)
		},
	}

	cmd.Flags().StringVar(&placeholder, "placeholder", ".", "Shown in place of control characters (default: [display] control_placeholder from config)")
	return cmd
}

// writeDump prints one line per grid row: offset, hex cells, then char cells.
func writeDump(w io.Writer, doc *session.Document, placeholder string) error {
	bw := bufio.NewWriter(w)

	for row := 0; row < doc.Hex.Rows(); row++ {
		hexCells := doc.Hex.Row(row)
		hex := make([]string, len(hexCells))
		for i, cell := range hexCells {
			hex[i] = cell.Text
		}

		var chars strings.Builder
		for _, cell := range doc.Char.Row(row) {
			chars.WriteString(viewer.DisplayText(cell.Text, placeholder))
		}

		_, _ = fmt.Fprintf(bw, "%08x  %s  |%s|\n",
			row*grid.RowLength,
			runewidth.FillRight(strings.Join(hex, " "), dumpHexWidth),
			chars.String())
	}

	return bw.Flush()
}
