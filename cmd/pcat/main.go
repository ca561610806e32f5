package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var directoryFlags []string
var listFlags []string
var excludeFromFlags []string
var withPaths bool
var withLineNumbers bool
var includeHidden bool
var listOnly bool
var printFlag bool
var copyFlag bool
var sshCopyFlag bool
var outputDefault string
var tokenCount bool
var tokenModel string
var verbose bool

// errUsage signals that help was already printed and the process should
// exit with code 1 without a separate error line.
var errUsage = errors.New("usage")

// resolveDirsAndExts separates scan roots from extension tokens. With -d
// every positional argument is an extension; otherwise the leading run of
// positionals that are directories become the scan roots and the rest are
// extensions.
func resolveDirsAndExts(args []string, directories []string) ([]string, []string, error) {
	if len(directories) > 0 {
		return directories, args, nil
	}
	if len(args) == 0 {
		return nil, nil, nil
	}

	split := len(args)
	for i, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			split = i
			break
		}
	}

	dirs := args[:split]
	exts := args[split:]
	if len(dirs) == 0 && len(exts) > 0 {
		return nil, nil, fmt.Errorf("no valid directories were provided: the first positional argument %q is not a directory (use -d to specify directories)", args[0])
	}
	return dirs, exts, nil
}

func validateDirectories(dirs []string) error {
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("directory not found or is not a directory: %s", dir)
		}
	}
	return nil
}

func validateFiles(files []string) error {
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("file specified in --list not found or is not a file: %s", file)
		}
	}
	return nil
}

// run executes the select → aggregate → format pipeline and hands the
// result to the already-resolved output mode.
func run(cfg Config, mode string, logger *zap.Logger) error {
	perDirectory := make([][]string, 0, len(cfg.Directories))
	for _, dir := range cfg.Directories {
		files, err := selectFiles(dir, cfg.Extensions, cfg.IncludeHidden, cfg.Excludes)
		if err != nil {
			return err
		}
		perDirectory = append(perDirectory, files)
	}

	files := aggregateFiles(perDirectory, cfg.ListedFiles)

	var output string
	if cfg.ListOnly {
		output = formatListOnly(files)
	} else {
		output = formatOutput(files, cfg, logger)
	}

	if tokenCount {
		count, err := countTokens(output, tokenModel)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d\n", count)
	}

	if output == "" {
		return nil
	}
	switch mode {
	case outputModeCopy:
		return copyToClipboard(output)
	case outputModeSSHCopy:
		return copyToOSC52(output)
	default:
		return writeStdout(output)
	}
}

// writeStdout prints the rendered output. A consumer closing the pipe early
// is a benign termination, not an error.
func writeStdout(output string) error {
	if _, err := io.WriteString(os.Stdout, output); err != nil {
		if isBrokenPipe(err) {
			return nil
		}
		return err
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "pcat [flags] [DIR ...] [EXT ...]",
	Short: "Concatenate files from directories or an explicit list into one stream",
	Long: `pcat concatenates the content of multiple files into a single formatted
stream, ready to paste into a prompt or pipe into another tool. Files are
selected by scanning directories for extensions, by listing them explicitly
with --list, or both. Use the extension token "any" to match every file.`,
	Example: `  pcat -d ./src -d ./lib js ts   # scan directories for extensions
  pcat ./src ./lib js ts         # same, positional form
  pcat -l ./a.py ./b.sh          # concatenate an explicit list of files
  pcat -d ./src js -l ./c.rs -p  # combine both, annotating paths
  pcat -d ./src any --hidden     # include hidden files (dotfiles)
  pcat -d ./src py -n --copy     # line numbers, copied to the clipboard`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputDefault != "" {
			if err := writeHomeDefaultOutputMode(outputDefault); err != nil {
				return err
			}
			if len(args) == 0 && len(directoryFlags) == 0 && len(listFlags) == 0 {
				return nil
			}
		}

		if len(args) == 0 && len(directoryFlags) == 0 && len(listFlags) == 0 {
			cmd.SetOut(os.Stderr)
			_ = cmd.Help()
			return errUsage
		}

		directories, extensions, err := resolveDirsAndExts(args, directoryFlags)
		if err != nil {
			return err
		}
		if err := validateDirectories(directories); err != nil {
			return err
		}
		if err := validateFiles(listFlags); err != nil {
			return err
		}
		if len(directories) > 0 && len(extensions) == 0 {
			return fmt.Errorf("directories were provided, but no file extensions were specified")
		}

		logger := newLogger(verbose)
		defer logger.Sync()

		// Resolve the output mode up front so conflicting flags fail
		// before any scanning or formatting work happens.
		defaultMode, err := readHomeDefaultOutputMode()
		if err != nil {
			logger.Warn("could not read output mode config", zap.Error(err))
			defaultMode = ""
		}
		mode, err := resolveOutputMode(defaultMode, printFlag, copyFlag, sshCopyFlag)
		if err != nil {
			return err
		}

		excludes, err := buildExcludeMatcher(excludeFromFlags)
		if err != nil {
			return err
		}

		cfg := Config{
			Directories:     directories,
			Extensions:      extensions,
			ListedFiles:     listFlags,
			IncludeHidden:   includeHidden,
			WithPaths:       withPaths,
			WithLineNumbers: withLineNumbers,
			ListOnly:        listOnly,
			Excludes:        excludes,
		}
		return run(cfg, mode, logger)
	},
}

func init() {
	rootCmd.Flags().StringArrayVarP(&directoryFlags, "directory", "d", nil, "Directory to scan; repeatable. With -d, all positional arguments are extensions")
	rootCmd.Flags().StringArrayVarP(&listFlags, "list", "l", nil, "Specific file to concatenate; repeatable")
	rootCmd.Flags().StringArrayVar(&excludeFromFlags, "exclude-from", nil, "File with .gitignore-style patterns to exclude from scans; repeatable")
	rootCmd.Flags().BoolVarP(&withPaths, "with-paths", "p", false, "Annotate each file with its source path")
	rootCmd.Flags().BoolVarP(&withLineNumbers, "with-line-numbers", "n", false, "Prefix each content line with its line number")
	rootCmd.Flags().BoolVar(&includeHidden, "hidden", false, "Include hidden files and directories (those starting with a dot)")
	rootCmd.Flags().BoolVar(&listOnly, "list-only", false, "List the files that would be rendered instead of their content")
	rootCmd.Flags().BoolVar(&printFlag, "print", false, "Print output to stdout (default)")
	rootCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy output to the system clipboard instead of printing")
	rootCmd.Flags().BoolVar(&sshCopyFlag, "ssh-copy", false, "Copy output through the terminal via OSC 52 (works over SSH)")
	rootCmd.Flags().StringVar(&outputDefault, "output-default", "", "Persist the default output mode (print, copy, or ssh-copy) to ~/"+pcatFileName)
	rootCmd.Flags().BoolVar(&tokenCount, "tcount", false, "Report the token count of the output on stderr")
	rootCmd.Flags().StringVar(&tokenModel, "tcount-model", defaultTokenModel, "Model whose encoding is used for --tcount")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

func main() {
	ignoreSIGPIPE()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
