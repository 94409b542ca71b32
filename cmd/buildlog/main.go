package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"buildlog/internal/config"
	"buildlog/internal/pkg/logger"
	"buildlog/pkg/fileinfo"
	"buildlog/pkg/schema"
	"buildlog/pkg/session"
	"buildlog/pkg/store"
)

func main() {
	cfg := config.Load()
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer log.Sync()

	root := newRootCmd(cfg, log)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "buildlog: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, log logger.ILogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "buildlog",
		Short:         "Inspect, validate, and convert buildlog session files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	files := store.New()
	cmd.AddCommand(newValidateCmd(cfg, log))
	cmd.AddCommand(newStatsCmd(files))
	cmd.AddCommand(newInfoCmd(files))
	cmd.AddCommand(newSlimCmd(files, log))
	cmd.AddCommand(newListCmd(cfg, files))
	cmd.AddCommand(newNewCmd(log))
	return cmd
}

func newValidateCmd(cfg *config.Config, log logger.ILogger) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a buildlog file and report every issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			result := schema.ValidateWithLimits(json.RawMessage(raw), cfg.SchemaLimits())
			out := cmd.OutOrStdout()

			if result.Valid {
				if !quiet {
					color.New(color.FgGreen).Fprintf(out, "✓ %s is valid\n", args[0])
					for _, warn := range result.Warnings {
						color.New(color.FgYellow).Fprintf(out, "  warning: %s\n", warn.Message)
						if warn.Suggestion != "" {
							fmt.Fprintf(out, "           %s\n", warn.Suggestion)
						}
					}
				}
				return nil
			}

			log.Info("validate", "document failed validation", map[string]interface{}{
				"path":   args[0],
				"issues": len(result.Errors),
			})
			color.New(color.FgRed).Fprintf(out, "✗ %s has %d issue(s)\n", args[0], len(result.Errors))
			for _, issue := range result.Errors {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return fmt.Errorf("%d validation issue(s)", len(result.Errors))
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress output, report by exit code only")
	return cmd
}

func newStatsCmd(files *store.Store) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Compute aggregate statistics for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := files.Load(args[0])
			if err != nil {
				return err
			}

			var payload any
			switch d := doc.(type) {
			case *schema.DocumentV1:
				payload = session.ComputeStatsV1(d)
			case *schema.DocumentV2:
				payload = session.ComputeStatsV2(d)
			default:
				return errors.New("unknown document version")
			}

			switch strings.ToLower(formatFlag) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			case "text":
				return writeStatsText(cmd, doc, payload)
			default:
				return fmt.Errorf("unsupported format: %s", formatFlag)
			}
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text or json")
	return cmd
}

func writeStatsText(cmd *cobra.Command, doc schema.Document, payload any) error {
	out := cmd.OutOrStdout()
	switch stats := payload.(type) {
	case session.StatsV1:
		fmt.Fprintf(out, "Events: %d\n", stats.EventCount)
		fmt.Fprintf(out, "Prompts: %d\n", stats.PromptCount)
		fmt.Fprintf(out, "Responses: %d\n", stats.ResponseCount)
		fmt.Fprintf(out, "Lines: +%d -%d\n", stats.LinesAdded, stats.LinesRemoved)
		fmt.Fprintf(out, "Files: %d\n", stats.FileCount)
		fmt.Fprintf(out, "Languages: %s\n", strings.Join(stats.Languages, ", "))
		fmt.Fprintf(out, "Duration: %s\n", fileinfo.FormatDuration(stats.Duration))
	case session.StatsV2:
		fmt.Fprintf(out, "Steps: %d\n", stats.StepCount)
		fmt.Fprintf(out, "Prompts: %d\n", stats.PromptCount)
		fmt.Fprintf(out, "Actions: %d\n", stats.ActionCount)
		fmt.Fprintf(out, "Terminal: %d\n", stats.TerminalCount)
		fmt.Fprintf(out, "Notes: %d\n", stats.NoteCount)
		fmt.Fprintf(out, "Files: %d created, %d modified\n", stats.FilesCreated, stats.FilesModified)
		fmt.Fprintf(out, "Duration: %s\n", fileinfo.FormatDuration(stats.Duration))
		fmt.Fprintf(out, "Replicable: %v\n", stats.IsReplicable)
	}
	fmt.Fprintf(out, "Size: %s\n", session.EstimateSize(doc))
	return nil
}

func newInfoCmd(files *store.Store) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show session metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := files.Load(args[0])
			if err != nil {
				return err
			}
			summary := store.Summarize(doc, args[0])

			switch strings.ToLower(formatFlag) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			case "text":
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID: %s\n", summary.ID)
				fmt.Fprintf(out, "Version: %s\n", summary.Version)
				fmt.Fprintf(out, "Title: %s\n", summary.Title)
				fmt.Fprintf(out, "Editor: %s\n", summary.Editor)
				fmt.Fprintf(out, "Created: %s\n", summary.CreatedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "Entries: %d\n", summary.EntryCount)
				fmt.Fprintf(out, "Duration: %s\n", fileinfo.FormatClock(summary.Duration))
				if summary.Status != "" {
					fmt.Fprintf(out, "Status: %s\n", summary.Status)
				}
				fmt.Fprintf(out, "Size: %s\n", summary.Size)
				return nil
			default:
				return fmt.Errorf("unsupported format: %s", formatFlag)
			}
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text or json")
	return cmd
}

func newSlimCmd(files *store.Store, log logger.ILogger) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "slim <file>",
		Short: "Convert a full-capture document to slim format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := files.Load(args[0])
			if err != nil {
				return err
			}
			v2, ok := doc.(*schema.DocumentV2)
			if !ok {
				return fmt.Errorf("%s is a version %s document, only %s can be slimmed",
					args[0], doc.DocVersion(), schema.VersionV2)
			}

			slim := session.ToSlim(v2)
			b, err := json.MarshalIndent(slim, "", "  ")
			if err != nil {
				return err
			}
			b = append(b, '\n')

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(outputPath, b, 0o644); err != nil {
				return err
			}
			log.Info("slim", "wrote slim document", map[string]interface{}{
				"source": args[0],
				"output": outputPath,
				"bytes":  len(b),
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write result to file instead of stdout")
	return cmd
}

func newListCmd(cfg *config.Config, files *store.Store) *cobra.Command {
	var (
		editor     string
		afterStr   string
		beforeStr  string
		limit      int
		formatFlag string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List buildlog files under a directory, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := dir
			if len(args) == 1 {
				root = args[0]
			}

			opts := store.ListOptions{Editor: editor, Limit: limit}
			if afterStr != "" {
				t, err := time.Parse(time.RFC3339, afterStr)
				if err != nil {
					return fmt.Errorf("invalid --after value: %w", err)
				}
				opts.After = t
			}
			if beforeStr != "" {
				t, err := time.Parse(time.RFC3339, beforeStr)
				if err != nil {
					return fmt.Errorf("invalid --before value: %w", err)
				}
				opts.Before = t
			}

			result, err := files.List(root, opts)
			if err != nil {
				return err
			}
			for _, warn := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", warn)
			}
			return writeSummaries(cmd, result.Summaries, strings.ToLower(formatFlag))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&editor, "editor", "", "filter by editor")
	flags.StringVar(&afterStr, "after", "", "include sessions created on/after the given RFC3339 timestamp")
	flags.StringVar(&beforeStr, "before", "", "include sessions created on/before the given RFC3339 timestamp")
	flags.IntVar(&limit, "limit", 0, "limit number of sessions returned (0 means no limit)")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, tsv, or json")
	flags.StringVar(&dir, "dir", cfg.Store.Root, "directory to search")

	return cmd
}

func writeSummaries(cmd *cobra.Command, items []store.Summary, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "table":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tTITLE\tVERSION\tEDITOR\tENTRIES\tDURATION\tSIZE")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				item.CreatedAt.Format("2006-01-02 15:04"),
				item.Title,
				item.Version,
				item.Editor,
				item.EntryCount,
				fileinfo.FormatClock(item.Duration),
				item.Size,
			)
		}
		return w.Flush()
	case "tsv":
		fmt.Fprintln(out, "created\tid\ttitle\tversion\teditor\tentries\tduration\tpath")
		for _, item := range items {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				item.CreatedAt.Format(time.RFC3339),
				item.ID,
				strings.ReplaceAll(item.Title, "\t", " "),
				item.Version,
				item.Editor,
				item.EntryCount,
				item.Duration,
				item.Path,
			)
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func newNewCmd(log logger.ILogger) *cobra.Command {
	var (
		editor     string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a skeleton buildlog file for a new session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			captureFormat := schema.CaptureFormat(formatFlag)
			if !captureFormat.Valid() {
				return fmt.Errorf("unsupported capture format: %s", formatFlag)
			}
			if !schema.EditorType(editor).Valid() {
				return fmt.Errorf("unsupported editor: %s", editor)
			}

			doc := &schema.DocumentV2{
				Version: schema.VersionV2,
				Format:  captureFormat,
				Metadata: schema.MetadataV2{
					ID:        uuid.NewString(),
					Title:     title,
					CreatedAt: time.Now().UTC().Format(time.RFC3339),
					Editor:    schema.EditorType(editor),
					AIProvider: &schema.ProviderInfo{
						Provider: schema.ProviderOther,
					},
				},
				Steps: []schema.Step{},
				Outcome: schema.Outcome{
					Status:  schema.StatusAbandoned,
					Summary: "session not yet recorded",
				},
			}

			b, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			b = append(b, '\n')

			name := store.SuggestFilename(doc)
			if _, err := os.Stat(name); err == nil {
				return fmt.Errorf("%s already exists", name)
			}
			if err := os.WriteFile(name, b, 0o644); err != nil {
				return err
			}

			log.Info("new", "created session skeleton", map[string]interface{}{
				"path": name,
				"id":   doc.Metadata.ID,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&editor, "editor", "other", "editor used for the session")
	cmd.Flags().StringVar(&formatFlag, "capture", "slim", "capture format: slim or full")
	return cmd
}
