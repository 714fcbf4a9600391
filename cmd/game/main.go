// game runs the raycaster in the current terminal.
//
// Usage:
//
//	game                 - Play the built-in map
//	game --map <file>    - Play a map loaded from a YAML file
//
// Controls: w/s forward/back, a/d strafe, q/e turn, p report position,
// Ctrl+C quit.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tomz197/raycaster/internal/config"
	"github.com/tomz197/raycaster/internal/input"
	"github.com/tomz197/raycaster/internal/loop"
	"github.com/tomz197/raycaster/internal/world"
	"golang.org/x/term"
)

var flagMap string

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "First-person raycaster in your terminal",
	Long: `Walk a tile map in a pseudo-3D first-person view drawn with characters.

Controls:
  w / s   - Forward / back
  a / d   - Strafe
  q / e   - Turn left / right
  p       - Print the player position to the debug panel
  Ctrl+C  - Quit

The map defaults to the built-in one, or $RAYCAST_MAP when set.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	rootCmd.Flags().StringVar(&flagMap, "map", config.GetEnv("RAYCAST_MAP", ""), "Path to a YAML map file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func runGame(cmd *cobra.Command, _ []string) error {
	if flagMap != "" {
		ext := strings.ToLower(filepath.Ext(flagMap))
		if !slices.Contains(world.FormatExtensions(), ext) {
			return fmt.Errorf("unsupported map format %q (expected one of %s)",
				ext, strings.Join(world.FormatExtensions(), ", "))
		}
	}
	m, err := world.Load(flagMap)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	session := loop.NewSession(os.Stdin, os.Stdout, loop.Options{Map: m})
	input.WatchResize(ctx, session.Decoder())

	return session.Run(ctx)
}
