package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chainledger/chainledger/internal/infrastructure/config"
	"github.com/chainledger/chainledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chainledger-cli",
		Short: "ChainLedger CLI tool",
		Long:  `A command line interface for interacting with the ChainLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ChainLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the full hash chain",
		Run: func(cmd *cobra.Command, args []string) {
			verifyChain()
		},
	}

	var entityID string
	var asOf string
	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0], entityID, asOf)
		},
	}
	balanceCmd.Flags().StringVar(&entityID, "entity", "", "Entity the account belongs to (required)")
	balanceCmd.Flags().StringVar(&asOf, "as-of", "", "Point-in-time balance (RFC3339)")
	balanceCmd.MarkFlagRequired("entity")

	var transactionID string
	var limit int
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "List ledger entries",
		Run: func(cmd *cobra.Command, args []string) {
			listEntries(transactionID, entityID, limit)
		},
	}
	entriesCmd.Flags().StringVar(&transactionID, "transaction", "", "Filter by transaction ID")
	entriesCmd.Flags().StringVar(&entityID, "entity", "", "Filter by entity ID")
	entriesCmd.Flags().IntVar(&limit, "limit", 50, "Max entries to return")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration operations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	}

	migrateVersionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustLoadConfig()
			version, dirty, err := postgres.MigrationVersion(cfg.DatabaseURL, cfg.MigrationsPath)
			if err != nil {
				fmt.Printf("Failed to read migration version: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Version: %d\nDirty: %v\n", version, dirty)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateVersionCmd)
	rootCmd.AddCommand(verifyCmd, balanceCmd, entriesCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func verifyChain() {
	body, status := get("/api/v1/verify", nil)
	if status != http.StatusOK {
		fmt.Printf("Verification request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		Valid        bool `json:"valid"`
		TotalEntries int  `json:"total_entries"`
		Violations   []struct {
			Position int    `json:"position"`
			EntryID  string `json:"entry_id"`
			Kind     string `json:"kind"`
			Detail   string `json:"detail"`
		} `json:"violations"`
	}
	mustUnmarshal(body, &result)

	if result.Valid {
		fmt.Printf("Chain VALID (%d entries)\n", result.TotalEntries)
		return
	}

	fmt.Printf("Chain BROKEN (%d entries, %d violations)\n", result.TotalEntries, len(result.Violations))
	for _, v := range result.Violations {
		fmt.Printf("  position=%d entry=%s kind=%s: %s\n", v.Position, v.EntryID, v.Kind, v.Detail)
	}
	os.Exit(1)
}

func showBalance(accountID, entityID, asOf string) {
	params := url.Values{}
	params.Set("entity_id", entityID)
	if asOf != "" {
		params.Set("as_of", asOf)
	}

	body, status := get("/api/v1/accounts/"+url.PathEscape(accountID)+"/balance", params)
	if status != http.StatusOK {
		fmt.Printf("Balance request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		AccountID string `json:"account_id"`
		EntityID  string `json:"entity_id"`
		Balance   string `json:"balance"`
		AsOf      string `json:"as_of,omitempty"`
	}
	mustUnmarshal(body, &result)

	fmt.Printf("Account: %s\nEntity:  %s\nBalance: %s\n", result.AccountID, result.EntityID, result.Balance)
	if result.AsOf != "" {
		fmt.Printf("As of:   %s\n", result.AsOf)
	}
}

func listEntries(transactionID, entityID string, limit int) {
	params := url.Values{}
	if transactionID != "" {
		params.Set("transaction_id", transactionID)
	}
	if entityID != "" {
		params.Set("entity_id", entityID)
	}
	params.Set("limit", fmt.Sprintf("%d", limit))

	body, status := get("/api/v1/entries", params)
	if status != http.StatusOK {
		fmt.Printf("Entries request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		Entries []struct {
			ID            string `json:"id"`
			TransactionID string `json:"transaction_id"`
			AccountID     string `json:"account_id"`
			Type          string `json:"type"`
			Amount        string `json:"amount"`
			Currency      string `json:"currency"`
			Status        string `json:"status"`
			IsReversed    bool   `json:"is_reversed"`
			CreatedAt     string `json:"created_at"`
		} `json:"entries"`
		Total int `json:"total"`
	}
	mustUnmarshal(body, &result)

	fmt.Printf("%d entries (total %d)\n", len(result.Entries), result.Total)
	for _, e := range result.Entries {
		reversed := ""
		if e.IsReversed {
			reversed = " [reversed]"
		}
		fmt.Printf("  %s %s %-6s %s %s txn=%s %s%s\n",
			e.CreatedAt, e.ID, e.Type, e.Amount, e.Currency, e.TransactionID, e.Status, reversed)
	}
}

func get(path string, params url.Values) ([]byte, int) {
	client := &http.Client{Timeout: timeout}

	target := baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	resp, err := client.Get(target)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}

func mustUnmarshal(body []byte, v any) {
	if err := json.Unmarshal(body, v); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}
}
