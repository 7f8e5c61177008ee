package cmd

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/atomicstack/pagekit/internal/app"
	"github.com/atomicstack/pagekit/internal/config"
	"github.com/atomicstack/pagekit/internal/ui"
)

func newRenderCmd(b *config.Binding) *cobra.Command {
	var (
		keys string
		view bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Mount the controllers, replay a key script and print the page",
		Long: "render mounts the controllers on the page, replays --keys on a simulated clock, runs every pending timer and prints the resulting HTML.\n" +
			"Scripts mix literal text with tokens: <Tab> <S-Tab> <CR> <Esc> <Space> <Up> <Down> <Home> <End> <PageUp> <PageDown> <wait:600ms> <cols:120>.",
		Example: "  pagekit render --keys '<Tab><Tab><CR>'\n  pagekit render --view --keys '<Tab><Tab><Tab><CR>fr<CR>'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(b)
			if err != nil {
				return err
			}
			steps, err := ui.ParseScript(keys)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrConfig, err)
			}
			model, err := app.Build(cfg.App, clock.NewMock())
			if err != nil {
				return err
			}
			h := ui.NewHarness(model)
			h.Run(steps)
			h.Settle()

			out := cmd.OutOrStdout()
			if view {
				_, err = fmt.Fprintln(out, ansi.Strip(h.View()))
				return err
			}
			if err := model.Document().Render(out); err != nil {
				return fmt.Errorf("render page: %w", err)
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&keys, "keys", "k", "", "key script replayed before printing")
	cmd.Flags().BoolVar(&view, "view", false, "print the terminal view instead of HTML")
	return cmd
}
