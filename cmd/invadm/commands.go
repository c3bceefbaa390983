package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/invadm/invadm/internal/api"
	"github.com/invadm/invadm/internal/config"
	"github.com/invadm/invadm/internal/discovery"
	"github.com/invadm/invadm/internal/tui"
	"github.com/invadm/invadm/internal/ui"
)

// Command flags
var (
	apiBaseURL     string
	requestTimeout int
	outputFormat   string
	scanTimeout    int
	skipConfirm    bool
	logLevel       string
)

func init() {
	// Common flags for backend commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&requestTimeout, "timeout", 0, "HTTP request timeout in seconds (overrides config)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(scanCmd)
}

// resolveBaseURL applies flag > config file > built-in default.
func resolveBaseURL() string {
	if apiBaseURL != "" {
		return apiBaseURL
	}
	settings, err := config.Load()
	if err != nil || settings.API.BaseURL == "" {
		return config.DefaultBaseURL
	}
	return settings.API.BaseURL
}

// newClient builds the API client with the resolved timeout.
func newClient() *api.Client {
	client := api.NewClient()

	timeout := requestTimeout
	if timeout == 0 {
		if settings, err := config.Load(); err == nil && settings.API.TimeoutSeconds > 0 {
			timeout = settings.API.TimeoutSeconds
		}
	}
	if timeout > 0 {
		client.SetTimeout(time.Duration(timeout) * time.Second)
	}
	return client
}

// dashboardCmd launches the interactive TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive inventory dashboard",
	Long: `Launch an interactive TUI dashboard for inventory administration.

The dashboard provides:
- A live table of all inventory items
- Adding, editing, and deleting items with confirmation
- Sharing text through the backend's pastebin
- Viewing the backend environment report
- Sending log messages to the backend
- Switching the backend base URL on the fly

This is the recommended way to manage inventory for most users.`,
	Example: `  # Launch the dashboard
  invadm dashboard
  # Or simply (dashboard is default):
  invadm

  # Launch against a specific backend
  invadm dashboard --api http://192.168.1.40:5000
  invadm --api http://192.168.1.40:5000`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	model := tui.NewModel(newClient(), resolveBaseURL())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// listCmd prints all inventory items
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all inventory items",
	Long: `Fetch and display every inventory item the backend has.

An empty inventory is a normal, successful result.`,
	Example: `  # List items
  invadm list

  # One line per item
  invadm list --format compact

  # JSON output for scripting
  invadm list --format json

  # List items from a specific backend
  invadm list --api http://192.168.1.40:5000`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, compact, detailed, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	baseURL := resolveBaseURL()
	client := newClient()

	items, err := client.ListItems(context.Background(), baseURL)
	if err != nil {
		return reportFailure("List inventory", baseURL, err)
	}

	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))

	case "compact":
		for _, item := range items {
			fmt.Println(item.FormatCompact())
		}

	case "detailed":
		for i, item := range items {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(item.FormatDetailed())
		}

	case "table":
		fallthrough
	default:
		fmt.Println(ui.NewHeader("Inventory List", "invadm list", map[string]string{
			"Backend": baseURL,
			"Items":   strconv.Itoa(len(items)),
		}).Render())
		fmt.Println()
		fmt.Print(ui.RenderItemTable(items))
	}

	return nil
}

// addCmd creates a new item
var addCmd = &cobra.Command{
	Use:   "add <name> <quantity> <price>",
	Short: "Add an inventory item",
	Long: `Create a new inventory item on the backend.

The backend assigns the item ID. Quantity must be a non-negative whole
number and price a non-negative decimal.`,
	Example: `  # Add 3 widgets at $9.99
  invadm add Widget 3 9.99

  # Names with spaces need quoting
  invadm add "Hex Bolt M8" 100 0.50`,
	Args: cobra.ExactArgs(3),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	fields, err := parseItemFields(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	baseURL := resolveBaseURL()
	client := newClient()

	item, err := client.CreateItem(context.Background(), baseURL, fields)
	if err != nil {
		return reportFailure("Add item", baseURL, err)
	}

	fmt.Println(ui.RenderSuccess("Item created", map[string]string{
		"ID":       strconv.Itoa(item.ID),
		"Name":     item.Name,
		"Quantity": strconv.Itoa(item.Quantity),
		"Price":    fmt.Sprintf("%.2f", item.Price),
	}))
	return nil
}

// updateCmd replaces an existing item's fields
var updateCmd = &cobra.Command{
	Use:   "update <id> <name> <quantity> <price>",
	Short: "Update an inventory item",
	Long: `Replace the name, quantity, and price of an existing item.

All three fields are sent on every update; the item ID never changes.`,
	Example: `  # Rename item 7 and restock it
  invadm update 7 Widget 25 9.99`,
	Args: cobra.ExactArgs(4),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	fields, err := parseItemFields(args[1], args[2], args[3])
	if err != nil {
		return err
	}

	baseURL := resolveBaseURL()
	client := newClient()

	item, err := client.UpdateItem(context.Background(), baseURL, id, fields)
	if err != nil {
		return reportFailure("Update item", baseURL, err)
	}

	fmt.Println(ui.RenderSuccess("Item updated", map[string]string{
		"ID":       strconv.Itoa(item.ID),
		"Name":     item.Name,
		"Quantity": strconv.Itoa(item.Quantity),
		"Price":    fmt.Sprintf("%.2f", item.Price),
	}))
	return nil
}

// deleteCmd removes an item
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an inventory item",
	Long: `Permanently delete an inventory item from the backend.

Prompts for confirmation unless --yes is given or confirm_delete is
disabled in the config file.`,
	Example: `  # Delete with confirmation prompt
  invadm delete 7

  # Delete without prompting (for scripts)
  invadm delete 7 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	baseURL := resolveBaseURL()
	client := newClient()

	confirm := !skipConfirm
	if settings, cfgErr := config.Load(); cfgErr == nil && !settings.ConfirmDelete {
		confirm = false
	}

	description := fmt.Sprintf("item #%d", id)
	if items, listErr := client.ListItems(context.Background(), baseURL); listErr == nil {
		for _, item := range items {
			if item.ID == id {
				description = item.FormatCompact()
				break
			}
		}
	}

	if confirm && !ui.ConfirmDeletion(description) {
		return nil
	}

	if err := client.DeleteItem(context.Background(), baseURL, id); err != nil {
		return reportFailure("Delete item", baseURL, err)
	}

	fmt.Println(ui.RenderSuccess("Item deleted", map[string]string{
		"Item": description,
	}))
	return nil
}

// pasteCmd shares text through the backend's pastebin
var pasteCmd = &cobra.Command{
	Use:   "paste <text>...",
	Short: "Share text via the backend pastebin",
	Long: `Send text to the backend's pastebin endpoint and print the paste URL.

Multiple arguments are joined with spaces.`,
	Example: `  invadm paste "deploy finished, all green"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runPaste,
}

func runPaste(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	baseURL := resolveBaseURL()
	client := newClient()

	paste, err := client.CreatePaste(context.Background(), baseURL, text)
	if err != nil {
		return reportFailure("Create paste", baseURL, err)
	}

	details := map[string]string{"URL": paste.URL}
	if paste.ExpiresAt != "" {
		details["Expires"] = paste.ExpiresAt
	}
	fmt.Println(ui.RenderSuccess("Paste created", details))
	return nil
}

// envCmd prints the backend environment report
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the backend environment report",
	Long: `Fetch and display the backend's environment report.

The report structure is backend-defined; keys are printed in sorted order.`,
	Example: `  invadm env

  # JSON output for scripting
  invadm env --format json`,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")
}

func runEnv(cmd *cobra.Command, args []string) error {
	baseURL := resolveBaseURL()
	client := newClient()

	env, err := client.FetchEnvironment(context.Background(), baseURL)
	if err != nil {
		return reportFailure("Fetch environment", baseURL, err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(ui.NewHeader("Backend Environment", "invadm env", map[string]string{
		"Backend": baseURL,
	}).Render())
	fmt.Println()

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-24s %v\n", k, env[k])
	}

	return nil
}

// logCmd sends a log message to the backend
var logCmd = &cobra.Command{
	Use:   "log <message>...",
	Short: "Send a log message to the backend",
	Long: fmt.Sprintf(`Send a log message to the backend's log endpoint.

Valid levels: %s. Multiple message arguments are joined with spaces.`,
		strings.Join(api.LogLevels, ", ")),
	Example: `  # Default level is info
  invadm log "nightly import finished"

  # Explicit level
  invadm log --level warning "disk almost full"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logLevel, "level", "info", "Log level")
}

func runLog(cmd *cobra.Command, args []string) error {
	if !api.ValidLogLevel(logLevel) {
		return fmt.Errorf("invalid level %q (valid: %s)", logLevel, strings.Join(api.LogLevels, ", "))
	}
	message := strings.Join(args, " ")

	baseURL := resolveBaseURL()
	client := newClient()

	receipt, err := client.CreateLogMessage(context.Background(), baseURL, logLevel, message)
	if err != nil {
		return reportFailure("Send log message", baseURL, err)
	}

	details := map[string]string{
		"Level":   receipt.Level,
		"Message": receipt.Message,
	}
	if receipt.Timestamp != "" {
		details["Timestamp"] = receipt.Timestamp
	}
	if receipt.Destination != "" {
		details["Destination"] = receipt.Destination
	}
	fmt.Println(ui.RenderSuccess("Log message accepted", details))
	return nil
}

// healthCmd checks backend health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	Long:  `Query the backend's health check endpoint and report its status.`,
	Example: `  invadm health
  invadm health --api http://192.168.1.40:5000`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	baseURL := resolveBaseURL()
	client := newClient()

	health, err := client.HealthCheck(context.Background(), baseURL)
	if err != nil {
		return reportFailure("Health check", baseURL, err)
	}

	fmt.Println(ui.RenderSuccess("Backend is healthy", map[string]string{
		"Status":   health.Status,
		"Database": health.Database,
	}))
	return nil
}

// scanCmd discovers inventory backends on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for inventory backends on the network",
	Long: `Scan for inventory backends using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from inventory backends and
displays all discovered backends with their addresses and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  invadm scan

  # Quick 3-second scan
  invadm scan --scan-timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for inventory backends (timeout: %ds)...\n\n", scanTimeout)

	backends, err := discovery.ScanForBackends(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(backends) == 0 {
		fmt.Println("No backends found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the backend is running and announcing itself via mDNS")
		fmt.Println("  - Check that your machine is on the same network segment")
		fmt.Println("  - Try increasing --scan-timeout for slower networks")
		fmt.Println("  - Use --api to specify the backend URL manually")
		return nil
	}

	fmt.Printf("Found %d backend(s):\n\n", len(backends))

	for i, backend := range backends {
		fmt.Printf("%d. %s\n", i+1, backend.Name)
		fmt.Printf("   URL: %s\n", backend.BaseURL())
		if len(backend.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", backend.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'invadm --api <url>' to open the dashboard against a backend")

	return nil
}

// parseItemFields parses and validates positional item arguments.
func parseItemFields(name, quantityRaw, priceRaw string) (api.ItemFields, error) {
	var fields api.ItemFields

	fields.Name = strings.TrimSpace(name)

	quantity, err := strconv.Atoi(quantityRaw)
	if err != nil {
		return fields, fmt.Errorf("invalid quantity %q (must be a whole number)", quantityRaw)
	}
	fields.Quantity = quantity

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		return fields, fmt.Errorf("invalid price %q (must be a number)", priceRaw)
	}
	fields.Price = price

	if err := fields.Validate(); err != nil {
		return fields, err
	}
	return fields, nil
}

// reportFailure renders a failure box and returns a terse error for the
// exit status. Transport failures get troubleshooting tips.
func reportFailure(operation, baseURL string, err error) error {
	var tips []string
	if api.IsTransportError(err) {
		tips = ui.TransportTroubleshooting(baseURL)
	}
	fmt.Println(ui.RenderFailure(operation, err, tips))
	return fmt.Errorf("%s failed", strings.ToLower(operation))
}
