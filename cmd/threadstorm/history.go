package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"threadstorm/internal/config"
	"threadstorm/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously saved threadstorms",
	Long:  `List threadstorms persisted by "format --save" or the HTTP API, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForHistory(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	st, err := store.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer st.Close()

	// Ensure migrations are run
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	total, err := st.CountThreadstorms(ctx)
	if err != nil {
		return fmt.Errorf("count threadstorms: %w", err)
	}

	records, err := st.ListThreadstorms(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("list threadstorms: %w", err)
	}

	fmt.Println("=== Threadstorm History ===")
	fmt.Println()
	fmt.Printf("Database: %s\n", cfg.DatabasePath)
	fmt.Printf("Saved threadstorms: %d\n", total)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("Nothing saved yet. Run \"threadstorm format --save\" to record one.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %s\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.ID)
		fmt.Printf("  Tone: %s  Posts: %d  Characters: %d  Score: %.2f\n",
			rec.Tone, rec.TotalPosts, rec.TotalCharacters, rec.EngagementScore)
		if rec.Result != nil && len(rec.Result.Posts) > 0 {
			fmt.Printf("  Opens: %s\n", truncate(rec.Result.Posts[0].Text, 72))
		}
		fmt.Println()
	}

	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
