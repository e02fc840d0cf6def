package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/noteflow/aibridge/pkg/providers/provider"
	"github.com/spf13/cobra"
)

var (
	askSystem    string
	askMaxTokens int
	askNoPersona bool
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send a one-shot prompt to the selected provider",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSystem, "system", "", "extra system prompt appended after the persona")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "response token cap (0 uses the provider default)")
	askCmd.Flags().BoolVar(&askNoPersona, "no-persona", false, "skip the configured persona prompt")
}

func runAsk(_ *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBridge()
	if err != nil {
		return err
	}

	if !b.IsReady() {
		s := b.Settings()
		if !s.Enabled {
			return fmt.Errorf("the bridge is disabled, run `aibridge settings` to enable it")
		}

		return fmt.Errorf("no API key for %s, run `aibridge settings` or set %s",
			b.ProviderDisplayName(), envKeys[s.Provider])
	}

	var system []string
	if !askNoPersona {
		if frag := b.PersonaPromptFragment(); frag != "" {
			system = append(system, frag)
		}
	}
	if askSystem != "" {
		system = append(system, askSystem)
	}

	res := b.SendPrompt(ctx, provider.Request{
		System:    strings.Join(system, "\n\n"),
		Message:   strings.Join(args, " "),
		MaxTokens: askMaxTokens,
	})
	if !res.OK {
		return fmt.Errorf("%s", res.Err)
	}

	fmt.Println(res.Text)

	return nil
}
