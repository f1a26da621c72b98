package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var speedsCmd = &cobra.Command{
	Use:   "speeds",
	Short: "List the speed presets",
	Long:  `Shows the speed presets and the one the current config selects.`,
	Args:  cobra.NoArgs,
	Run:   runSpeeds,
}

func runSpeeds(cmd *cobra.Command, args []string) {
	current := config.DefaultSnakeConfig().Speed
	custom := 0
	if cfg, err := config.LoadSnake(flagConfig); err == nil {
		current = cfg.Speed
		custom = cfg.TickMS
	}

	fmt.Println("Speed presets:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %s\n", "Preset", "Tick")
	fmt.Printf("  %-8s  %s\n", "------", "----")

	for _, p := range config.Presets {
		marker := ""
		if p == current && custom == 0 {
			marker = "  (current)"
		}
		fmt.Printf("  %-8s  %dms%s\n", p, p.Period().Milliseconds(), marker)
	}

	fmt.Println()
	if custom > 0 {
		fmt.Printf("The config sets tick_ms: %d, which overrides the presets.\n", custom)
	}
	fmt.Println("Run 'snake play --speed <preset>' to play at a given speed.")
}
