package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	dryRun  bool
	confirm bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log actions without persisting or notifying")
	rootCmd.PersistentFlags().BoolVar(&confirm, "confirm", false, "Allow mutations on a finished game")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(createGameCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(initLineupCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players on the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <firstName> <lastName> [number]",
	Short: "Add a player to the roster",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		number := ""
		if len(args) == 3 {
			number = args[2]
		}
		body := fmt.Sprintf(`{"firstName":%q,"lastName":%q,"number":%q}`, args[0], args[1], number)
		return performPostRequest("/players/add", []byte(body))
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List all scheduled games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games")
	},
}

var createGameCmd = &cobra.Command{
	Use:   "create-game <opponent> <date> <time> <home|away>",
	Short: "Schedule a new game",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"opponent":%q,"date":%q,"time":%q,"location":%q}`, args[0], args[1], args[2], args[3])
		return performPostRequest("/games/create", []byte(body))
	},
}

var stateCmd = &cobra.Command{
	Use:   "state <gameID>",
	Short: "Show the live display state of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/game/state?gameID=" + args[0])
	},
}

var initLineupCmd = &cobra.Command{
	Use:   "init-lineup <gameID>",
	Short: "Initialize a game's lineup from the roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/game/init-lineup?gameID="+args[0], nil)
	},
}

var startCmd = &cobra.Command{
	Use:   "start <gameID>",
	Short: "Start or resume the game clock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/game/start?gameID="+args[0]+flagParams(), nil)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop <gameID>",
	Short: "Pause the game clock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/game/stop?gameID="+args[0]+flagParams(), nil)
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish <gameID>",
	Short: "End the game permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/game/finish?gameID="+args[0]+flagParams(), nil)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <gameID>",
	Short: "Reset the game's lineup to an all-bench default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/game/reset?gameID="+args[0]+flagParams(), nil)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <gameID> <playerID> <field|bench|inactive> [x] [y]",
	Short: "Move a player to a new location",
	Args:  cobra.RangeArgs(3, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[2] == "field" && len(args) != 5 {
			return fmt.Errorf("moving to the field requires x and y coordinates")
		}
		body := fmt.Sprintf(`{"gameId":%q,"playerId":%q,"target":%q}`, args[0], args[1], args[2])
		if len(args) == 5 {
			body = fmt.Sprintf(`{"gameId":%q,"playerId":%q,"target":%q,"position":{"x":%s,"y":%s}}`,
				args[0], args[1], args[2], args[3], args[4])
		}
		return performPostRequest("/lineup/move"+queryPrefix(flagParams()), []byte(body))
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the substitution plan for a game",
}

func init() {
	planCmd.AddCommand(&cobra.Command{
		Use:   "show <gameID>",
		Short: "Show the staged substitution plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performGetRequest("/plan?gameID=" + args[0])
		},
	})
	planCmd.AddCommand(&cobra.Command{
		Use:   "enter <gameID>",
		Short: "Enter substitution planning mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performPostRequest("/plan/enter?gameID="+args[0], nil)
		},
	})
	planCmd.AddCommand(&cobra.Command{
		Use:   "stage <gameID> <benchPlayerID> <fieldPlayerID>",
		Short: "Stage a bench-for-field swap",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := fmt.Sprintf(`{"gameId":%q,"benchPlayerId":%q,"fieldPlayerId":%q}`, args[0], args[1], args[2])
			return performPostRequest("/plan/stage", []byte(body))
		},
	})
	planCmd.AddCommand(&cobra.Command{
		Use:   "commit <gameID>",
		Short: "Apply the staged swaps as one batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performPostRequest("/plan/commit?gameID="+args[0]+flagParams(), nil)
		},
	})
	planCmd.AddCommand(&cobra.Command{
		Use:   "cancel <gameID>",
		Short: "Discard the staged plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performPostRequest("/plan/cancel?gameID="+args[0], nil)
		},
	})
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Download a snapshot of the roster and games",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(host + "/export")
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("export failed with status %d: %s", resp.StatusCode, body)
		}
		blob, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		if err := os.WriteFile(args[0], blob, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot file: %w", err)
		}
		fmt.Printf("Snapshot written to %s (%d bytes)\n", args[0], len(blob))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a snapshot into the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot file: %w", err)
		}
		return performPostRequest("/import", blob)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

// flagParams renders the shared dry-run and confirm flags as query
// parameters, always prefixed with '&'.
func flagParams() string {
	params := ""
	if dryRun {
		params += "&dry_run=true"
	}
	if confirm {
		params += "&confirm=true"
	}
	return params
}

// queryPrefix turns a '&'-prefixed parameter string into a standalone
// query string.
func queryPrefix(params string) string {
	if params == "" {
		return ""
	}
	return "?" + params[1:]
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

func performPostRequest(endpoint string, body []byte) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
