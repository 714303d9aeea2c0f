package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediareel/internal/records"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the render history from the record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := records.Open(cfg.Paths.StoreFile)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.Load(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			all := store.All()
			if len(all) == 0 {
				fmt.Fprintln(out, "No renders recorded yet")
				return nil
			}

			fmt.Fprintln(out, historyTable(all))
			if top, ok := store.Peek(); ok {
				fmt.Fprintf(out, "Next render resumes at images %d, videos %d, audio track %d\n",
					top.ImagesRange.End, top.VideosRange.End, top.NextAudioIndex)
			}
			return nil
		},
	}
	return cmd
}

func historyTable(all []records.Record) string {
	rows := make([][]string, 0, len(all))
	for _, rec := range all {
		rows = append(rows, []string{
			rec.ArtifactKey,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.ImagesRange.String(),
			rec.VideosRange.String(),
			strconv.Itoa(rec.AudioIndex),
			rec.AudioUsed.Path,
		})
	}
	return renderTable(
		[]string{"Artifact", "Created", "Images", "Videos", "Track", "Audio"},
		rows,
		5,
	)
}
