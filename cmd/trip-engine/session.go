// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/trip-engine/internal/store"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect stored planning sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent planning sessions",
	RunE:  runSessionList,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print one stored session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

func init() {
	sessionListCmd.Flags().Int("limit", 20, "maximum sessions to list")

	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	rootCmd.AddCommand(sessionCmd)
}

func openStore() (*store.Store, error) {
	cfg := loadPipelineConfig()
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return st, nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	sessions, err := st.Recent(limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions stored.")
		return nil
	}

	fmt.Printf("%-36s  %-10s  %-20s  %s\n", "SESSION", "STATUS", "DESTINATION", "CREATED")
	for _, s := range sessions {
		fmt.Printf("%-36s  %-10s  %-20s  %s\n",
			s.SessionID, s.Status, s.Request.Destination,
			s.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	session, err := st.GetSession(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(session)
}
