package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished sessions",
	Long: `Display the best sessions from the score history.

On a terminal an interactive table is shown; otherwise the scores are
printed as plain text.

Examples:
  snake scores
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole score history")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Score history cleared.")
		return
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := terminalSize()
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printScores(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the top sessions as plain text.
func printScores(store *storage.Store) error {
	sessions, err := store.TopSessions(10)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Snake")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %s\n", "Rank", "Fruits", "Time", "Tick", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %s\n", "----", "------", "----", "----", "----")

	for i, s := range sessions {
		fmt.Printf("  %-4d  %-6d  %-8s  %-6s  %s\n",
			i+1, s.FruitsEaten,
			fmt.Sprintf("%d:%02d", s.SecondsPlayed/60, s.SecondsPlayed%60),
			fmt.Sprintf("%dms", s.TickMS),
			s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Time played: %s\n",
			stats.HighScore, stats.GamesCount, tui.FormatDuration(int(stats.TotalSeconds)))
	}
	return nil
}
