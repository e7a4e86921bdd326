package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"serviq/internal/tui"
)

// tuiCmd starts the interactive terminal UI
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	Long: `Browse orders, compose new ones, view invoices and pick invoice templates
from the terminal. Logs go to --log-file while the UI owns the screen.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Log.File == "" {
			cfg.Log.File = "serviq-tui.log"
			return setupLogger()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().String("log-file", "", "Log file (default: serviq-tui.log)")
	bindFlag(tuiCmd, "log.file", "log-file")
}

func runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.New(ctx, a.Workspace(), tui.Services{
		Orders:   a.Orders,
		Products: a.Products,
		Drafts:   a.Drafts,
		Settings: a.Settings,
		Invoices: a.Invoices,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
