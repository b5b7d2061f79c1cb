package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/VlaDexa/misisa/services"
)

var (
	rawDir     string
	parsedDir  string
	outputPath string
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "convert [workbook]",
		Short: "Convert raw schedule workbooks to parsed JSON",
		Long: `convert parses university schedule workbooks (xls or xlsx) and
writes the four parsed courses as JSON. Without arguments it converts
every new workbook from the raw directory into the parsed directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVar(&rawDir, "raw-dir", filepath.Join("schedules", "raw"), "Directory with raw workbooks")
	rootCmd.Flags().StringVar(&parsedDir, "parsed-dir", filepath.Join("schedules", "parsed"), "Directory for parsed JSON")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	converter := services.NewConverterService(services.NewParserService())

	if len(args) == 1 {
		inputPath := args[0]
		if _, err := os.Stat(inputPath); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", inputPath)
		}

		data, err := converter.ConvertFile(inputPath, pretty)
		if err != nil {
			return err
		}

		if outputPath != "" {
			return os.WriteFile(outputPath, data, 0o644)
		}
		fmt.Println(string(data))
		return nil
	}

	return converter.ConvertDir(rawDir, parsedDir)
}
