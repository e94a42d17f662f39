// Command md1img packs, unpacks, and inspects MD1 modem firmware
// container images.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/R0rt1z2/md1img"
)

// version is set via -ldflags at release time.
var version = "dev"

var (
	cfgFile     string
	verbose     bool
	compression string
	dryRun      bool
	backup      bool
	backupDir   string

	unpackOut string
	packOut   string
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var rootCmd = &cobra.Command{
	Use:   "md1img",
	Short: "Read and write MD1 modem firmware images",
	Long: `md1img extracts, inspects, and rebuilds MD1 firmware container
images: the header-prefixed entry format MediaTek modems ship their
firmware in, including gzip/xz payload compression and the
md1_file_map filename translation table.`,
	SilenceUsage: true,
}

var unpackCmd = &cobra.Command{
	Use:   "unpack <image>",
	Short: "Extract all entries from an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		img, err := md1img.Parse(data, md1img.WithLogger(logger))
		if err != nil {
			return err
		}
		report, err := md1img.Extract(img, unpackOut, cfg, md1img.WithLogger(logger))
		if err != nil {
			return err
		}
		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d of %d entries failed to extract: %w",
				len(failed), len(report.Results), report.Err())
		}
		if cfg.DryRun {
			fmt.Printf("dry run: %d entries would be extracted to %s\n", len(report.Results), unpackOut)
		} else {
			fmt.Printf("extracted %d entries to %s\n", len(report.Results), unpackOut)
		}
		return nil
	},
}

var packCmd = &cobra.Command{
	Use:   "pack <dir>",
	Short: "Build an image from a directory of files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		packer := md1img.NewPacker(cfg, md1img.WithWriteLogger(logger))
		if err := packer.AddDirectory(args[0]); err != nil {
			return err
		}
		img, err := packer.Build()
		if err != nil {
			return err
		}
		if err := packer.WriteFile(img, packOut); err != nil {
			return err
		}
		if !cfg.DryRun {
			fmt.Printf("packed %d entries into %s\n", img.Len(), packOut)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list <image>",
	Short: "List the entries of an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		img, err := md1img.Parse(data, md1img.WithLogger(logger))
		if err != nil {
			return err
		}
		fmt.Println(headerStyle.Render(fmt.Sprintf("%-4s %-26s %-26s %10s  %-5s",
			"#", "NAME", "MAPPED", "SIZE", "COMP")))
		for i, e := range img.Entries() {
			mapped := img.ExternalName(e.Name)
			if mapped == e.Name {
				mapped = dimStyle.Render("-")
			}
			fmt.Printf("%-4d %-26s %-26s %10d  %-5s\n",
				i+1, e.Name, mapped, e.StoredSize, e.Compression)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the md1img configuration file",
}

var configExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the effective configuration as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Save(args[0]); err != nil {
			return err
		}
		fmt.Printf("wrote configuration to %s\n", args[0])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("compression_format: %s\n", cfg.Compression)
		fmt.Printf("dry_run:            %v\n", cfg.DryRun)
		fmt.Printf("backup:             %v\n", cfg.Backup)
		fmt.Printf("backup_dir:         %s\n", cfg.BackupDir)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "JSON configuration file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	pf.StringVarP(&compression, "compression", "c", "", "compression format: none, gzip, xz")
	pf.BoolVarP(&dryRun, "dry-run", "n", false, "report writes without performing them")
	pf.BoolVarP(&backup, "backup", "b", false, "back up files before overwriting")
	pf.StringVar(&backupDir, "backup-dir", "", "directory for backups")

	unpackCmd.Flags().StringVarP(&unpackOut, "output", "o", "md1img_extracted", "destination directory")
	packCmd.Flags().StringVarP(&packOut, "output", "o", "", "output image path")
	_ = packCmd.MarkFlagRequired("output")

	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(unpackCmd, packCmd, listCmd, configCmd)
}

// newLogger builds the logger handed into the engines; verbosity is
// routed here instead of through package-level state.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "md1img"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig layers command-line flags over the optional configuration
// file; an explicitly set flag always wins.
func loadConfig(cmd *cobra.Command) (md1img.Config, error) {
	var cfg md1img.Config
	if cfgFile != "" {
		c, err := md1img.LoadConfig(cfgFile)
		if err != nil {
			return md1img.Config{}, err
		}
		cfg = c
	}
	fl := cmd.Flags()
	if fl.Changed("compression") {
		comp, err := md1img.ParseCompression(compression)
		if err != nil {
			return md1img.Config{}, err
		}
		cfg.Compression = comp
	}
	if fl.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if fl.Changed("backup") {
		cfg.Backup = backup
	}
	if fl.Changed("backup-dir") {
		cfg.BackupDir = backupDir
	}
	return cfg, nil
}

func main() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
