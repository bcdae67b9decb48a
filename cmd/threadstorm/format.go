package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"threadstorm/internal/config"
	"threadstorm/internal/engine"
	"threadstorm/internal/store"
)

var (
	formatInput     string
	formatJSON      bool
	formatSave      bool
	formatMaxChars  int
	formatTone      string
	formatNumbering bool
	formatHook      bool
	formatCTA       bool
	formatRhythm    int
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format text into a threadstorm",
	Long: `Read long-form text from a file or stdin and format it into a
numbered sequence of posts.

Examples:
  threadstorm format --input article.txt
  cat article.txt | threadstorm format --tone casual
  threadstorm format --input article.txt --json --save`,
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().StringVarP(&formatInput, "input", "i", "", "Input file (default: stdin)")
	formatCmd.Flags().BoolVar(&formatJSON, "json", false, "Emit the result as JSON")
	formatCmd.Flags().BoolVar(&formatSave, "save", false, "Persist the result to the database")
	formatCmd.Flags().IntVar(&formatMaxChars, "max-chars", 0, "Character limit per post (default from config)")
	formatCmd.Flags().StringVar(&formatTone, "tone", "", "Tone: professional, casual, or educational")
	formatCmd.Flags().BoolVar(&formatNumbering, "numbering", true, "Append (i/n) numbering suffixes")
	formatCmd.Flags().BoolVar(&formatHook, "hook", true, "Prepend an engagement hook to the first post")
	formatCmd.Flags().BoolVar(&formatCTA, "cta", true, "Append a call-to-action to the last post")
	formatCmd.Flags().IntVar(&formatRhythm, "image-rhythm", 0, "Suggest an image every N posts (default from config)")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	content, err := readContent(formatInput)
	if err != nil {
		return err
	}

	opts := cfg.EngineOptions()
	if cmd.Flags().Changed("max-chars") {
		opts.MaxCharsPerPost = formatMaxChars
	}
	if cmd.Flags().Changed("tone") {
		opts.Tone = engine.Tone(formatTone)
	}
	if cmd.Flags().Changed("numbering") {
		opts.IncludeNumbering = formatNumbering
	}
	if cmd.Flags().Changed("hook") {
		opts.EnableHook = formatHook
	}
	if cmd.Flags().Changed("cta") {
		opts.EnableCTA = formatCTA
	}
	if cmd.Flags().Changed("image-rhythm") {
		opts.ImageRhythm = formatRhythm
	}

	ts, err := engine.Format(engine.Draft{RawContent: content, Options: opts})
	if err != nil {
		return fmt.Errorf("format content: %w", err)
	}

	var recordID string
	if formatSave {
		if err := cfg.ValidateForHistory(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
		st, err := store.NewStore(ctx, cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		rec, err := st.SaveThreadstorm(ctx, string(opts.Tone), ts)
		if err != nil {
			return fmt.Errorf("save threadstorm: %w", err)
		}
		recordID = rec.ID
	}

	if formatJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ts)
	}

	printThreadstorm(ts, recordID)
	return nil
}

func readContent(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return string(data), nil
}

func printThreadstorm(ts *engine.Threadstorm, recordID string) {
	fmt.Println("=== Threadstorm ===")
	fmt.Println()

	for _, p := range ts.Posts {
		fmt.Printf("--- Post %d (%d chars", p.Index, p.CharCount)
		if p.HasImageSuggestion {
			fmt.Printf(", image: %s", p.ImageRationale)
		}
		fmt.Println(") ---")
		fmt.Println(p.Text)
		fmt.Println()
	}

	fmt.Printf("Posts: %d\n", ts.TotalPosts)
	fmt.Printf("Characters: %d\n", ts.TotalCharacters)
	fmt.Printf("Engagement score: %.2f\n", ts.EngagementScore)

	if len(ts.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, s := range ts.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}

	if recordID != "" {
		fmt.Println()
		fmt.Printf("Saved as %s\n", recordID)
	}
}
