package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sameehj/gridbot/pkg/agent"
	"github.com/sameehj/gridbot/pkg/config"
	"github.com/sameehj/gridbot/pkg/level"
	"github.com/sameehj/gridbot/pkg/logging"
	"github.com/sameehj/gridbot/pkg/path"
	"github.com/sameehj/gridbot/pkg/sandbox"
	"github.com/sameehj/gridbot/pkg/script"
	"github.com/sameehj/gridbot/pkg/session"
	"github.com/sameehj/gridbot/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridbot",
		Short: "Sandboxed maze-scripting engine",
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultConfigPath()+")")

	rootCmd.AddCommand(
		runCmd(),
		checkCmd(),
		solveCmd(),
		levelsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the --config flag, falling back to the default path
// when the file exists there and to pure defaults otherwise.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath := cmd.Flag("config").Value.String()
	if cfgPath == "" {
		if _, err := os.Stat(config.DefaultConfigPath()); err == nil {
			cfgPath = config.DefaultConfigPath()
		}
	}
	return config.Load(cfgPath)
}

func loadLevel(cfg *config.Config, name string) (*level.Level, error) {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return level.Load(name)
	}
	return level.Load(filepath.Join(cfg.LevelsPath, name+".yaml"))
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a script against a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}

			levelName, _ := cmd.Flags().GetString("level")
			lv, err := loadLevel(cfg, levelName)
			if err != nil {
				return err
			}
			world, err := lv.Build()
			if err != nil {
				return err
			}

			runner := sandbox.NewRunner(agent.New(world))
			runner.MaxOperations = cfg.MaxOperations
			runner.Logger = logging.New(cfg.LogLevel, cfg.LogFormat)

			started := time.Now()
			result := runner.Execute(string(source))
			stars, message := lv.Score(runner.Agent(), world)

			store := session.NewStore()
			run := store.Add(session.Run{
				Level:     lv.Name,
				Source:    string(source),
				Result:    result,
				Stars:     stars,
				StartedAt: started,
				EndedAt:   time.Now(),
			})

			fmt.Printf("Level: %s\n", lv.Name)
			fmt.Printf("Run:   %s\n", run.ID)
			if !result.Success {
				fmt.Printf("Failed: %s\n", result.Error)
				if hints := lv.Hints(runner.Agent()); len(hints) > 0 {
					for _, h := range hints {
						fmt.Printf("Hint: %s\n", h)
					}
				}
				os.Exit(1)
			}

			a := runner.Agent()
			optimal := lv.OptimalSteps
			if optimal <= 0 {
				optimal = path.OptimalSteps(world)
			}
			fmt.Printf("Position: %s  Facing: %s\n", a.Position(), a.Facing())
			fmt.Printf("Steps: %d  Operations: %d\n", a.Steps(), result.Operations)
			fmt.Printf("Efficiency: %s\n", path.EfficiencyRating(a.Steps(), optimal))
			fmt.Printf("%s %s\n", strings.Repeat("*", stars), message)
			return nil
		},
	}
	cmd.Flags().String("level", "level1_basics", "Level name or YAML file")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <script>",
		Short: "Validate a script without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			if err := script.Validate(string(source)); err != nil {
				fmt.Printf("Rejected: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("OK")
			return nil
		},
	}
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the shortest-path baseline for a level",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			levelName, _ := cmd.Flags().GetString("level")
			lv, err := loadLevel(cfg, levelName)
			if err != nil {
				return err
			}
			world, err := lv.Build()
			if err != nil {
				return err
			}

			route := path.ShortestPath(world, world.Start(), world.Goal())
			if route == nil {
				return fmt.Errorf("level %q has no path from start to goal", lv.Name)
			}
			fmt.Printf("Level: %s\n", lv.Name)
			fmt.Printf("Optimal steps: %d\n", len(route)-1)
			for _, pos := range route {
				fmt.Println(pos)
			}
			return nil
		},
	}
	cmd.Flags().String("level", "level1_basics", "Level name or YAML file")
	return cmd
}

func levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List available levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			levels, err := level.LoadDir(cfg.LevelsPath)
			if err != nil {
				return err
			}
			if len(levels) == 0 {
				fmt.Printf("No levels found in %s\n", cfg.LevelsPath)
				return nil
			}
			for _, lv := range levels {
				fmt.Printf("%-30s %s\n", lv.Name, lv.Description)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}
