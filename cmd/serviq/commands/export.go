package commands

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"serviq/cmd/serviq/output"
)

var exportAll bool

// exportCmd writes invoice images to the export directory
var exportCmd = &cobra.Command{
	Use:   "export [order numbers...]",
	Short: "Export invoices as image files",
	Long: `Render invoices one after another and write them to the export directory.

Examples:
  serviq export SRV-8431 SRV-8430
  serviq export --all --format pdf --dir ./out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every order")
	exportCmd.Flags().String("dir", "./exports", "Export directory")
	exportCmd.Flags().String("format", "png", "File format (png, pdf)")
	exportCmd.Flags().Duration("settle-delay", 0, "Pause between files (default from config)")
	bindFlag(exportCmd, "export.dir", "dir")
	bindFlag(exportCmd, "export.format", "format")
	bindFlag(exportCmd, "export.settle_delay", "settle-delay")
}

func runExport(ctx context.Context, numbers []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !exportAll && len(numbers) == 0 {
		return errors.New("pass order numbers or --all")
	}
	if exportAll && len(numbers) > 0 {
		return errors.New("--all cannot be combined with order numbers")
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var files []string
	if exportAll {
		files, err = a.Invoices.ExportBatch(ctx, nil)
	} else {
		files, err = a.Invoices.ExportByNumbers(ctx, numbers)
	}
	for _, f := range files {
		output.Success("%s", filepath.Join(cfg.Export.Dir, f))
	}
	if err != nil {
		output.Error("export stopped: %v", err)
		return err
	}
	output.Info("%d invoices exported", len(files))
	return nil
}
