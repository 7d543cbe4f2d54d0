package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"route-analytics-service/internal/export"
	"route-analytics-service/internal/platform/timeutil"
	"route-analytics-service/internal/routes/core/domain"
)

var exportFlags struct {
	from, to string
	out      string
	upload   bool
	airlines []string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write routes in a date range to a Parquet file, optionally uploading it to S3.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		from, err := timeutil.ParseDate(exportFlags.from)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := timeutil.ParseDate(exportFlags.to)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		if !from.Before(to) {
			return fmt.Errorf("--from must be before --to")
		}

		ctx := cmd.Context()
		db, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repos, err := newRepositories(db, cfg.DB.Backend)
		if err != nil {
			return err
		}

		var uploader *export.Uploader
		if exportFlags.upload {
			if !cfg.Export.UploadEnabled() {
				return fmt.Errorf("--upload needs export-s3-bucket to be configured")
			}
			client, err := export.NewS3Client(ctx, cfg.Export.S3)
			if err != nil {
				return err
			}
			uploader = export.NewUploader(client, cfg.Export.S3.Bucket)
		}

		q := domain.RouteQuery{From: from, To: to, Airlines: exportFlags.airlines}
		sum, err := export.NewExporter(repos.routes, uploader, cfg.Export.Prefix).Export(ctx, q, exportFlags.out)
		if err != nil {
			return err
		}

		ok := color.New(color.FgGreen)
		ok.Fprintf(cmd.OutOrStdout(), "wrote %d routes to %s\n", sum.Rows, sum.Path)
		if sum.Key != "" {
			ok.Fprintf(cmd.OutOrStdout(), "uploaded to s3://%s/%s\n", cfg.Export.S3.Bucket, sum.Key)
		}
		return nil
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.from, "from", "", "range start, inclusive")
	f.StringVar(&exportFlags.to, "to", "", "range end, exclusive")
	f.StringVarP(&exportFlags.out, "out", "o", "routes.parquet", "output file")
	f.BoolVar(&exportFlags.upload, "upload", false, "upload the file to the configured S3 bucket")
	f.StringSliceVar(&exportFlags.airlines, "airline", nil, "restrict to airlines (repeatable)")
	_ = exportCmd.MarkFlagRequired("from")
	_ = exportCmd.MarkFlagRequired("to")
}
