package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/noteflow/aibridge/pkg/modelinfo"
	"github.com/noteflow/aibridge/pkg/providers/ollama"
	"github.com/spf13/cobra"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models installed on the local Ollama server",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

// sizeNotes maps the diagnosis note keys to display text. The keys stay
// stable so hosts can localize them.
var sizeNotes = map[string]string{
	"note.modelSmall": "small model, fast but limited reasoning",
	"note.modelEntry": "entry-size model, good default for notes",
	"note.modelMid":   "mid-size model, stronger reasoning",
	"note.modelLarge": "large model, needs a capable machine",
	"note.modelHeavy": "heavyweight model, expect slow responses",
}

func runModels(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBridge()
	if err != nil {
		return err
	}

	baseURL := b.Settings().OllamaBaseURL

	entries := ollama.ListModels(ctx, baseURL)
	if len(entries) == 0 {
		fmt.Printf("No local models found at %s\n", baseURL)

		return nil
	}

	for _, e := range entries {
		paramSize := ""
		if e.Details != nil {
			paramSize = e.Details.ParameterSize
		}
		if paramSize == "" {
			if d := ollama.ShowModel(ctx, baseURL, e.Name); d != nil {
				paramSize = d.ParameterSize
			}
		}

		d := modelinfo.Diagnose(e.Name, paramSize)
		sup := modelinfo.RateSupport(e.Name)

		name := nameStyle.Render(e.Name)
		if sup.Recommended {
			name += " " + okStyle.Render("(recommended)")
		}

		fmt.Println(name)
		fmt.Printf("  %s %s\n", dimStyle.Render("size:"), formatModelSize(e.Size, paramSize))
		fmt.Printf("  %s %s\n", dimStyle.Render("support:"), ratingLabel(d.Rating))
		fmt.Printf("  %s %d tokens\n", dimStyle.Render("suggested context:"), d.RecommendedContext)
		if note, ok := sizeNotes[d.Note]; ok {
			fmt.Printf("  %s %s\n", dimStyle.Render("note:"), note)
		}
	}

	return nil
}

func ratingLabel(r modelinfo.Rating) string {
	switch r {
	case modelinfo.RatingExcellent, modelinfo.RatingGood:
		return okStyle.Render(string(r))
	case modelinfo.RatingFair:
		return warnStyle.Render(string(r))
	case modelinfo.RatingPoor:
		return badStyle.Render(string(r))
	default:
		return dimStyle.Render(string(r))
	}
}

// formatModelSize prefers the parameter count reported by the server and
// falls back to the on-disk size.
func formatModelSize(bytes int64, paramSize string) string {
	if paramSize != "" {
		return paramSize
	}
	if bytes <= 0 {
		return "unknown"
	}

	const gb = 1 << 30
	if bytes >= gb {
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	}

	return fmt.Sprintf("%.0f MB", float64(bytes)/(1<<20))
}
