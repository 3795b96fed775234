// Package main provides the xlc command: it compiles a YAML or JSON workbook
// description into an xlsx document.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/adnsv/go-xlc/adapt"
	"github.com/adnsv/go-xlc/xl"
)

var (
	outputPath string
	dirPath    string
	appName    string
	stampID    bool
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "xlc",
		Short:         "Compile workbook descriptions into xlsx documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	buildCmd := &cobra.Command{
		Use:   "build [input.yaml|-]",
		Short: "Compile a YAML/JSON workbook description",
		Long: `build reads a workbook description (sheets, rows, cells and cell styles)
from a YAML or JSON file, or from stdin when the argument is "-", and writes
an xlsx document.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: run,
	}

	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path (default: input name with .xlsx)")
	buildCmd.Flags().StringVar(&dirPath, "dir", "", "Write the unzipped parts into this directory instead")
	buildCmd.Flags().StringVar(&appName, "app-name", "", "Application name recorded in docProps/app.xml")
	buildCmd.Flags().BoolVar(&stampID, "stamp-id", false, "Record a random document identifier when the input has none")
	buildCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details")

	rootCmd.AddCommand(buildCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("xlc failed", "error", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]
	if input == "-" && outputPath == "" && dirPath == "" {
		return fmt.Errorf("--output is required when reading stdin")
	}

	var r io.Reader = os.Stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	wb, err := adapt.DecodeYAML(r)
	if err != nil {
		return err
	}
	slog.Debug("decoded workbook", "input", input, "sheets", len(wb.Sheets))

	if appName != "" {
		wb.AppName = appName
	}
	if stampID && wb.Identifier == uuid.Nil {
		wb.Identifier = uuid.New()
	}

	if dirPath != "" {
		if err := xl.NewWriter(xl.NewDirStorage(dirPath)).Write(wb); err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}
		slog.Info("wrote workbook parts", "dir", dirPath)
		return nil
	}

	out := outputPath
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".xlsx"
	}
	if err := xl.WriteFile(out, wb); err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	slog.Info("wrote workbook", "output", out)
	return nil
}
