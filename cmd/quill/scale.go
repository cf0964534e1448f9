package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/eringen/quill/typography"
)

// Scale steps of h1 through h6.
var defaultSteps = []float64{1, 0.6, 0.4, 0, -0.2, -0.3}

var scaleSteps []float64

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Print the modular type scale for the configured typography",
	RunE: func(cmd *cobra.Command, args []string) error {
		typo, err := initTypography()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderScale(typo, scaleSteps))
		return nil
	},
}

func init() {
	scaleCmd.Flags().Float64SliceVar(&scaleSteps, "steps", defaultSteps, "scale steps to print")
}

func renderScale(t *typography.Typography, steps []float64) string {
	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		r := t.Scale(step)
		rows = append(rows, []string{
			formatFloat(step),
			r.FontSize.String(),
			r.LineHeight.String(),
			formatFloat(r.Lines),
			formatFloat(t.Px(r.FontSize)) + "px",
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	cfg := t.Config()
	rhythm := t.Rhythm(1)
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf(
		"base %spx × %s, ratio %s, rhythm %s",
		formatFloat(cfg.BaseFontSize), formatFloat(cfg.BaseLineHeight), formatFloat(cfg.ScaleRatio), rhythm,
	))

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))).
		Headers("STEP", "FONT SIZE", "LINE HEIGHT", "LINES", "PX").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return title + "\n" + tbl.Render()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
