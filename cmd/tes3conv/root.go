package main

import (
	"github.com/julianedwards/tes3conv"
	"github.com/julianedwards/tes3conv/logger"
	"github.com/julianedwards/tes3conv/options"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	compact     bool
	overwrite   bool
	backupDir   string
	backupLimit int
	configPath  string
	verbose     bool
	logLevel    string
}

func newRootCommand(converter *tes3conv.Converter) *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tes3conv [flags] INPUT [OUTPUT]",
		Short: "Convert TES3 plugins between the binary format and JSON",
		Long: `Convert a TES3 plugin between its binary form (.esp, .esm, .omwaddon,
.tmp) and a JSON form suited to diffing and merging.

INPUT is a plugin or JSON file, or '-' to read standard input; its format
is detected from the first byte. OUTPUT selects the output format by its
extension; without it JSON is written to standard output. Records are
always written in a canonical order so that equivalent plugins produce
identical output.

An existing OUTPUT is copied to the first free numbered backup, e.g.
plugin.json to plugin.000.json, before it is replaced, unless --overwrite
is given.`,
		Example: `  tes3conv plugin.esp plugin.json
  tes3conv --compact plugin.esp > plugin.json
  tes3conv plugin.json plugin.esp
  cat plugin.esp | tes3conv - plugin.json`,
		Version:       version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, converter, f, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.compact, "compact", "c", false, "write JSON without indentation")
	flags.BoolVarP(&f.overwrite, "overwrite", "o", false, "replace OUTPUT without making a backup")
	flags.StringVar(&f.backupDir, "backup-dir", "", "directory for backups (default: next to OUTPUT)")
	flags.IntVar(&f.backupLimit, "backup-limit", options.DefaultBackupLimit, "number of numbered backup slots to try")
	flags.StringVar(&f.configPath, "config", "", "TOML config file (default: $"+options.ConfigEnvVar+")")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log backups and conversion steps")
	flags.StringVar(&f.logLevel, "log-level", "", "log threshold, e.g. debug, info, warning")

	return cmd
}

func runConvert(cmd *cobra.Command, converter *tes3conv.Converter, f *rootFlags, args []string) error {
	conf, err := options.LoadConfig(f.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("compact") {
		conf.Compact = f.compact
	}
	if flags.Changed("overwrite") {
		conf.Overwrite = f.overwrite
	}
	if flags.Changed("backup-dir") {
		conf.Backup.Dir = f.backupDir
	}
	if flags.Changed("backup-limit") {
		conf.Backup.Limit = f.backupLimit
	}
	if f.verbose {
		conf.Log.Level = "info"
	}
	if flags.Changed("log-level") {
		conf.Log.Level = f.logLevel
	}

	journal, err := logger.NewJournaler(conf.Log)
	if err != nil {
		return err
	}
	converter.Logger = journal

	opts := options.Convert{
		Input: options.Read{Path: args[0]},
		Output: options.Write{
			Compact:   conf.Compact,
			Overwrite: conf.Overwrite,
		},
		Backup: conf.Backup,
	}
	if len(args) > 1 {
		opts.Output.Path = args[1]
	}

	return converter.Convert(cmd.Context(), opts)
}
