package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneybook-app/moneybook/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration

	userID     string
	ledgerType string
	month      string

	databaseURL    string
	migrationsPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moneybook-cli",
		Short: "Moneybook CLI tool",
		Long:  `A command line interface for the Moneybook settlement API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Moneybook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	settlementCmd := &cobra.Command{
		Use:   "settlement",
		Short: "Settlement operations",
	}
	settlementCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID")
	settlementCmd.PersistentFlags().StringVar(&ledgerType, "ledger", "income", "Ledger type (income or expense)")
	settlementCmd.PersistentFlags().StringVar(&month, "month", "", "Target month (YYYY-MM)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether a month is settled",
		Run: func(cmd *cobra.Command, args []string) {
			settlementStatus()
		},
	}

	settleCmd := &cobra.Command{
		Use:   "settle",
		Short: "Settle a month",
		Run: func(cmd *cobra.Command, args []string) {
			settlementAction("settle")
		},
	}

	rollbackCmd := &cobra.Command{
		Use:   "rollback",
		Short: "Roll back a settled month",
		Run: func(cmd *cobra.Command, args []string) {
			settlementAction("rollback")
		},
	}

	settlementCmd.AddCommand(statusCmd, settleCmd, rollbackCmd)
	rootCmd.AddCommand(settlementCmd)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL URL")
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrations(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrationsDown(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration rollback failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migration reverted")
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func settlementStatus() {
	client := &http.Client{Timeout: timeout}
	endpoint := fmt.Sprintf("%s/api/v1/settlements/%s/status?user_id=%s&month=%s",
		baseURL, ledgerType, url.QueryEscape(userID), url.QueryEscape(month))

	resp, err := client.Get(endpoint)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Status check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Month:   %s\n", result["month"])
	fmt.Printf("Ledger:  %s\n", result["ledger_type"])
	fmt.Printf("Settled: %v\n", result["settled"])
}

func settlementAction(action string) {
	client := &http.Client{Timeout: timeout}
	payload, _ := json.Marshal(map[string]string{
		"user_id": userID,
		"month":   month,
	})

	endpoint := fmt.Sprintf("%s/api/v1/settlements/%s/%s", baseURL, ledgerType, action)
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("%s FAILED (Status: %d)\nResponse: %s\n", action, resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
