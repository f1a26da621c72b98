// snake is a terminal snake game.
//
// Usage:
//
//	snake                - Play (same as 'snake play')
//	snake play           - Play a game
//	snake scores         - Show the best finished sessions
//	snake speeds         - List the speed presets
//
// Global flags:
//
//	--config <path>      - Custom snake config YAML
//	--speed <preset>     - Speed preset: slow, normal, fast, insane
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--log-file <path>    - Log destination (default: ~/.snake/snake.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSpeed    string
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic arcade game played in your terminal.

Steer the snake to the fruit, grow longer and avoid the walls and
your own tail. Finished sessions are kept in a local score history.

Available commands:
  play     - Play a game (default)
  scores   - View the best sessions
  speeds   - List speed presets

Examples:
  snake
  snake play --speed fast
  snake --config ./my-snake.yaml
  snake scores`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, insane")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.snake/snake.log", "Path to log file (empty disables logging)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(speedsCmd)
}
