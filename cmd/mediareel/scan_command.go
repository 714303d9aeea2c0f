package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediareel/internal/catalog"
)

func newScanCommand(cmdCtx *commandContext) *cobra.Command {
	var sourceFlag string
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the media catalog the next render would see",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.Paths.SourceDir
			if sourceFlag != "" {
				dir = sourceFlag
			}

			var kinds []catalog.Kind
			if kindFlag != "" {
				kind, ok := catalog.ParseKind(kindFlag)
				if !ok {
					return fmt.Errorf("unknown kind %q (want image, video, or audio)", kindFlag)
				}
				kinds = append(kinds, kind)
			}

			cat, err := catalog.Scan(cmd.Context(), catalog.Options{
				Dir:           dir,
				AudioDir:      cfg.Catalog.AudioDir,
				SortKey:       cfg.Catalog.SortKey,
				SortDirection: cfg.Catalog.SortDirection,
				Kinds:         kinds,
				FFprobeBinary: cfg.Catalog.FFprobeBinary,
				Workers:       cfg.Catalog.ProbeWorkers,
			})
			if err != nil {
				return fmt.Errorf("scan source: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, catalogTable(cat))
			fmt.Fprintf(out, "%d images, %d videos, %d audio tracks\n",
				len(cat.Images), len(cat.Videos), len(cat.Audio))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source media directory (overrides config)")
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Only list one kind: image, video, or audio")
	return cmd
}

func catalogTable(cat *catalog.Catalog) string {
	var rows [][]string
	appendAssets := func(assets []catalog.Asset) {
		for i, a := range assets {
			duration := "-"
			if a.DurationMS > 0 {
				duration = fmt.Sprintf("%.1fs", a.DurationSeconds())
			}
			size := "-"
			if a.Width > 0 && a.Height > 0 {
				size = fmt.Sprintf("%dx%d", a.Width, a.Height)
			}
			rows = append(rows, []string{
				string(a.Kind),
				strconv.Itoa(i),
				a.Path,
				duration,
				size,
			})
		}
	}
	appendAssets(cat.Images)
	appendAssets(cat.Videos)
	appendAssets(cat.Audio)

	return renderTable(
		[]string{"Kind", "Index", "Path", "Duration", "Size"},
		rows,
		2, 4,
	)
}
