package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/noteflow/aibridge/pkg/persona"
	"github.com/noteflow/aibridge/pkg/providers/ollama"
	"github.com/noteflow/aibridge/pkg/providers/provider"
	"github.com/noteflow/aibridge/pkg/settings"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit bridge settings interactively",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func runSettings(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBridge()
	if err != nil {
		return err
	}
	s := b.Settings()

	if err := settingsGeneral(s); err != nil {
		return err
	}

	if s.Provider == provider.Ollama {
		err = settingsOllama(ctx, s)
	} else {
		err = settingsCloud(s)
	}
	if err != nil {
		return err
	}

	if err := settingsPersona(s); err != nil {
		return err
	}

	var save bool
	if err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Save settings?").Value(&save),
	)).Run(); err != nil {
		return err
	}
	if !save {
		fmt.Println("Discarded.")

		return nil
	}

	if err := b.Save(); err != nil {
		return err
	}

	fmt.Printf("Settings saved to %s\n", bridgeDir)

	return nil
}

func settingsGeneral(s *settings.Settings) error {
	opts := make([]huh.Option[provider.ID], 0, len(provider.All()))
	for _, id := range provider.All() {
		opts = append(opts, huh.NewOption(id.DisplayName(), id))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Enable the AI bridge?").Value(&s.Enabled),
		huh.NewSelect[provider.ID]().
			Title("Provider").
			Options(opts...).
			Value(&s.Provider),
	)).Run()
}

func settingsCloud(s *settings.Settings) error {
	ps := s.ForProvider(s.Provider)

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("%s API key", s.Provider.DisplayName())).
			EchoMode(huh.EchoModePassword).
			Value(&ps.APIKey),
		huh.NewInput().
			Title("Model").
			Placeholder(s.Provider.DefaultModel()).
			Value(&ps.Model),
	)).Run()
}

// settingsOllama edits the local server URL and picks the model from a live
// listing. A previously selected model that is no longer installed is cleared
// rather than kept as a phantom choice.
func settingsOllama(ctx context.Context, s *settings.Settings) error {
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Ollama server URL").
			Value(&s.OllamaBaseURL),
	)).Run(); err != nil {
		return err
	}

	entries := ollama.ListModels(ctx, s.OllamaBaseURL)
	ps := s.ForProvider(provider.Ollama)

	if len(entries) == 0 {
		fmt.Printf("No models found at %s; install one with `ollama pull`.\n", s.OllamaBaseURL)
		ps.Model = ""

		return nil
	}

	names := make([]string, len(entries))
	opts := make([]huh.Option[string], len(entries))
	for i, e := range entries {
		names[i] = e.Name
		opts[i] = huh.NewOption(e.Name, e.Name)
	}

	if ps.Model != "" && !slices.Contains(names, ps.Model) {
		fmt.Printf("Model %q is no longer installed; pick a new one.\n", ps.Model)
		ps.Model = ""
	}
	if ps.Model == "" {
		ps.Model = names[0]
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Local model").
			Options(opts...).
			Value(&ps.Model),
	)).Run()
}

func settingsPersona(s *settings.Settings) error {
	presets := persona.Presets()
	opts := make([]huh.Option[string], 0, len(presets)+1)
	for _, p := range presets {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	opts = append(opts, huh.NewOption("Custom", persona.CustomID))

	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Persona").
			Options(opts...).
			Value(&s.Persona.Selected),
	)).Run(); err != nil {
		return err
	}

	if s.Persona.Selected != persona.CustomID {
		return nil
	}

	if s.Persona.Custom == nil {
		custom := persona.Default()
		custom.ID = persona.CustomID
		custom.Name = "Custom"
		s.Persona.Custom = &custom
	}
	c := s.Persona.Custom

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Persona name").Value(&c.Name),
		huh.NewInput().Title("Tone (e.g. warm, direct)").Value(&c.Tone),
		huh.NewInput().Title("First-person pronoun").Value(&c.FirstPerson),
		huh.NewText().Title("Speech style").Value(&c.SpeechStyle),
	)).Run()
}
