package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fambalance/internal/config"
	"fambalance/internal/logger"
	"fambalance/internal/service"
	"fambalance/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	wipeCmd := flag.NewFlagSet("wipe", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Wipe existing data before import (WARNING: destructive)")

	// Wipe flags
	wipeYes := wipeCmd.Bool("yes", false, "Skip the confirmation prompt")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("fambalance-backup", cfg.Debug)
	ctx := context.Background()

	// no cache in front: every read and write must hit the database
	cfg.CacheSize = 0
	s, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	backupService := service.NewBackupService(s, nil, log)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, log, backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, log, backupService, *importInput, *importClear)

	case "wipe":
		wipeCmd.Parse(os.Args[2:])
		handleWipe(ctx, log, backupService, *wipeYes)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, log zerolog.Logger, backupService *service.BackupService, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("failed to create output directory")
		}
	}

	log.Info().Str("path", outputPath).Msg("exporting store")
	if err := backupService.ExportFile(ctx, outputPath); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	fileInfo, err := os.Stat(outputPath)
	if err == nil {
		log.Info().Int64("bytes", fileInfo.Size()).Msg("export complete")
	}
}

func handleImport(ctx context.Context, log zerolog.Logger, backupService *service.BackupService, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatal().Str("path", inputPath).Msg("input file does not exist")
	}

	if clearData {
		if !confirm("WARNING: This will delete all existing data. Type 'yes' to confirm: ") {
			log.Info().Msg("import cancelled")
			return
		}
		if err := backupService.Wipe(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to clear store")
		}
	}

	log.Info().Str("path", inputPath).Msg("importing store")
	keys, err := backupService.ImportFile(ctx, inputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().Strs("namespaces", keys).Msg("import complete")
}

func handleWipe(ctx context.Context, log zerolog.Logger, backupService *service.BackupService, skipPrompt bool) {
	if !skipPrompt && !confirm("WARNING: This will delete every family, member and record. Type 'yes' to confirm: ") {
		log.Info().Msg("wipe cancelled")
		return
	}
	if err := backupService.Wipe(ctx); err != nil {
		log.Fatal().Err(err).Msg("wipe failed")
	}
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}

func printUsage() {
	fmt.Println("FamBalance Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export every namespace to a JSON file")
	fmt.Println("  backup import [options]    Restore namespaces from a JSON file")
	fmt.Println("  backup wipe [options]      Delete all data and the current session")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Wipe existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Wipe Options:")
	fmt.Println("  -yes              Do not ask for confirmation")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  FAMBALANCE_STORE_TYPE    memory, sqlite, postgres or mysql (default: sqlite)")
	fmt.Println("  FAMBALANCE_DB_PATH       SQLite database path (default: ./fambalance.db)")
	fmt.Println("  FAMBALANCE_DATABASE_URL  PostgreSQL or MySQL connection URL")
}
