package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/app"
	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an XGPApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Import", "Detect").
func newApp(operation string) (*app.XGPApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewXGPApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassphrase prompts for a passphrase without echoing it.
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}

var rootCmd = &cobra.Command{
	Use:   "xgpimport",
	Short: "Import desktop game saves into the console save store",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Game:     %s\n", cfg.Game.Name)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Game:       %s\n", cfg.Game.Name)
		fmt.Printf("Package ID: %s\n", cfg.Game.PackageID)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Backup:     %s\n", cfg.Backup.Type)
		fmt.Printf("History:    %s\n", cfg.History.Type)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage backup encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the backup encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetupKeys")
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase for the private key: ")
		if err != nil {
			return err
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if pass != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := a.SetupKeys(pass); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Println("Encryption keys generated.")
		return nil
	},
}

// detect command
var detectCmd = &cobra.Command{
	Use:   "detect [PACKAGES_ROOT]",
	Short: "Detect save stores on this machine",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Detect")
		if err != nil {
			return err
		}
		defer a.Close()

		root := ""
		if len(args) > 0 {
			root = args[0]
		}

		stores, err := a.FindStores(root)
		if err != nil {
			return err
		}

		if len(stores) == 0 {
			fmt.Println("No save stores found. Run the game once to create one.")
			return nil
		}

		for _, s := range stores {
			fmt.Printf("%s  %s\n", s.ModTime.Format("2006-01-02 15:04:05"), s.Path)
		}
		return nil
	},
}

// inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the containers of a save store",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := cmd.Flags().GetString("store")

		a, err := newApp("Inspect")
		if err != nil {
			return err
		}
		defer a.Close()

		idx, err := a.Inspect(store)
		if err != nil {
			return err
		}

		fmt.Printf("Package:  %s\n", idx.PackageName)
		fmt.Printf("Modified: %s\n", idx.MTime.Time().Format("2006-01-02 15:04:05"))
		fmt.Printf("Containers: %d\n\n", len(idx.Containers))

		for _, c := range idx.Containers {
			cloud := ""
			if c.CloudID != "" {
				cloud = "  [cloud]"
			}
			fmt.Printf("%-40s  seq:%d  %10d bytes  %s%s\n",
				c.Name,
				c.Seq,
				c.Size,
				c.ID.StorageName(),
				cloud,
			)
		}
		return nil
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import SOURCE",
	Short: "Import a desktop save into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := cmd.Flags().GetString("store")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		a, err := newApp("Import")
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Import(args[0], store, dryRun)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if res.DryRun {
			fmt.Printf("Dry run: would import %q as %d container(s):\n", res.SaveName, len(res.Containers))
		} else {
			fmt.Printf("Imported %q as %d container(s):\n", res.SaveName, len(res.Containers))
		}
		for _, name := range res.Containers {
			fmt.Printf("  %s\n", name)
		}
		if res.BackupPath != "" {
			fmt.Printf("Store backed up to %s\n", res.BackupPath)
		}
		return nil
	},
}

// backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up a save store without importing",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _ := cmd.Flags().GetString("store")

		a, err := newApp("Backup")
		if err != nil {
			return err
		}
		defer a.Close()

		dest, err := a.BackupStore(store)
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}

		fmt.Printf("Store backed up to %s\n", dest)
		return nil
	},
}

var backupDecryptCmd = &cobra.Command{
	Use:   "decrypt ARCHIVE OUTPUT",
	Short: "Decrypt an encrypted backup archive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DecryptBackup")
		if err != nil {
			return err
		}
		defer a.Close()

		pass, err := readPassphrase("Passphrase for the private key: ")
		if err != nil {
			return err
		}

		if err := a.DecryptBackup(args[0], args[1], pass); err != nil {
			return fmt.Errorf("decrypt failed: %w", err)
		}

		fmt.Printf("Decrypted to %s\n", args[1])
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View import history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(recs) == 0 {
			fmt.Println("No imports recorded.")
			return nil
		}

		for _, rec := range recs {
			duration := rec.FinishedAt.Sub(rec.StartedAt).Truncate(time.Millisecond).String()
			dry := ""
			if rec.DryRun {
				dry = "  [dry-run]"
			}
			fmt.Printf("#%d  %-20s  %s  %-9s  %d container(s)  %s%s\n",
				rec.ID,
				rec.SaveName,
				rec.StartedAt.Format("2006-01-02 15:04:05"),
				rec.Status,
				rec.Containers,
				duration,
				dry,
			)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("store", "", "Store directory (default: newest detected store)")
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("store", "", "Store directory (default: newest detected store)")
	importCmd.Flags().Bool("dry-run", false, "Report what would be imported without writing")
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().String("store", "", "Store directory (default: newest detected store)")
	backupCmd.AddCommand(backupDecryptCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of imports to show")
}
