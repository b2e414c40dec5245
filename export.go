package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"CareBridge/Export"
)

func newExportCmd() *cobra.Command {
	var (
		reportID string
		format   string
		out      string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a report as text or every finalized report as a workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "txt" && format != "xlsx" {
				return fmt.Errorf("unknown format %q (want txt or xlsx)", format)
			}
			if format == "txt" && reportID == "" {
				return fmt.Errorf("--report is required for txt export")
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			path, data, err := render(ctx, svc, format, reportID)
			if err != nil {
				return err
			}
			if out != "" {
				path = out
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			svc.logger.Info("export written", zap.String("path", path), zap.String("format", format))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&reportID, "report", "", "report id (txt export)")
	cmd.Flags().StringVar(&format, "format", "txt", "txt or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file (default derived from the report)")
	return cmd
}

func render(ctx context.Context, svc *service, format, reportID string) (string, []byte, error) {
	if format == "txt" {
		b, err := svc.engine.Bundle(ctx, reportID)
		if err != nil {
			return "", nil, err
		}
		return Export.ReportFileName(b), []byte(Export.ReportText(b)), nil
	}

	bundles, err := svc.engine.FinalizedBundles(ctx)
	if err != nil {
		return "", nil, err
	}
	buf, err := Export.AuditWorkbook(bundles)
	if err != nil {
		return "", nil, err
	}
	return "carebridge_reports.xlsx", buf.Bytes(), nil
}
