// Command lz4d decodes a single LZ4 frame from an input file (or stdin) to
// an output file (or stdout). It is a thin adapter over internal/lz4frame:
// byte-source/sink acquisition, the error-to-exit-code mapping, and logging
// live here so the core decoder stays free of CLI concerns.
package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-lz4-frame/internal/config"
	"github.com/deploymenttheory/go-lz4-frame/internal/digest"
	"github.com/deploymenttheory/go-lz4-frame/internal/lz4frame"
	"github.com/deploymenttheory/go-lz4-frame/internal/logger"
	"github.com/deploymenttheory/go-lz4-frame/internal/report"
)

func main() {
	var (
		inputPath  string
		outputPath string
		digestMode string
		reportPath string
	)

	rootCmd := &cobra.Command{
		Use:   "lz4d",
		Short: "Decode an LZ4 frame",
		Long: `lz4d decodes a single LZ4 frame, reading from a file or stdin and
writing the original uncompressed bytes to a file or stdout.`,
		PersistentPreRun: setupLogging,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			noColor, _ := cmd.Flags().GetBool("no-color")
			logFile, _ := cmd.Flags().GetString("log-file")

			cfg := config.Config{
				InputPath:  inputPath,
				OutputPath: outputPath,
				Verbose:    verbose,
				NoColor:    noColor,
				LogFile:    logFile,
				Digest:     digestMode,
				ReportPath: reportPath,
			}
			return runDecode(cfg)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().String("log-file", "", "log to file instead of stderr")

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input file, \"-\" for stdin")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output file, \"-\" for stdout")
	rootCmd.Flags().StringVar(&digestMode, "digest", string(digest.None), "digest the decoded output: none, sha3-256, xxh64")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "write a JSON decode summary to this path")

	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logger.LevelDebug)
	} else {
		logger.SetLevel(logger.LevelInfo)
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	logFile, _ := cmd.Flags().GetString("log-file")

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logger.Errorf("failed to open log file: %v", err)
			return
		}
		logger.DisableColors()
		logger.Initialize(file, file, file, file)
		return
	}

	if noColor {
		logger.DisableColors()
	}
	logger.Initialize(os.Stderr, os.Stderr, os.Stderr, os.Stderr)
}

func runDecode(cfg config.Config) error {
	in, closeIn, err := openInput(cfg.InputPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	digestWriter, err := digest.NewWriter(digest.Mode(cfg.Digest))
	if err != nil {
		return err
	}

	var sink io.Writer = out
	if cfg.Digest != string(digest.None) {
		sink = io.MultiWriter(out, digestWriter)
	}

	startedAt := time.Now()
	sum, err := lz4frame.Decode(in, sink)
	duration := time.Since(startedAt)
	if err != nil {
		return err
	}

	logger.Infof("decoded %d bytes from %d bytes in %v (%d raw blocks, %d compressed blocks)",
		sum.OutputBytes, sum.InputBytes, duration, sum.RawBlocks, sum.CompressedBlocks)

	if cfg.Digest != string(digest.None) {
		logger.Infof("%s digest: %s", cfg.Digest, digestWriter.Sum())
	}

	if cfg.ReportPath != "" {
		rep := report.FromDecode(sum, startedAt, duration, digestWriter.Sum())
		if err := report.Write(cfg.ReportPath, rep); err != nil {
			return err
		}
	}

	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" || path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
