// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ctc/internal/aggregator"
	"github.com/temirov/ctc/internal/config"
	"github.com/temirov/ctc/internal/ignore"
	"github.com/temirov/ctc/internal/output"
	"github.com/temirov/ctc/internal/selector"
	"github.com/temirov/ctc/internal/services/clipboard"
	"github.com/temirov/ctc/internal/tokenizer"
	"github.com/temirov/ctc/internal/types"
	"github.com/temirov/ctc/internal/utils"
)

const (
	maxFilesFlagName  = "max-files"
	maxCharsFlagName  = "max-chars"
	maxTokensFlagName = "max-tokens"
	modelFlagName     = "model"
	globalFlagName    = "global"
	forceFlagName     = "force"
	versionFlagName   = "version"
	versionTemplate   = "ctc version: %s\n"

	defaultMaxFiles  = 50
	defaultMaxChars  = 1_000_000
	defaultMaxTokens = 128_000
	defaultModelName = "gpt-3.5-turbo"

	rootUse              = "ctc"
	rootShortDescription = "ctc copies selected project files to the clipboard"
	rootLongDescription  = `ctc aggregates project files selected by glob patterns and explicit paths
into a single clipboard blob for LLM context building.

Patterns use glob syntax similar to .gitignore for familiarity:
  ctc add "**/*.go"            all Go files recursively
  ctc add "src/**/*.js"        JavaScript under src
  ctc add path/to/ignored.env  one explicit file, bypassing .gitignore`

	addUse                   = types.CommandAdd + " <entries...>"
	addShortDescription      = "add glob patterns or explicit file paths"
	removeUse                = types.CommandRemove + " <entries...>"
	removeShortDescription   = "remove glob patterns or explicit file paths"
	listUse                  = types.CommandList
	listShortDescription     = "list stored patterns and explicit files"
	clearAllUse              = types.CommandClearAll
	clearAllShortDescription = "remove all stored patterns and explicit files"
	copyUse                  = types.CommandCopy
	copyShortDescription     = "copy files matching the stored patterns to the clipboard"
	initUse                  = types.CommandInit
	initShortDescription     = "write the default application configuration file"
	copyUsageExample         = `  # Copy with default limits
  ctc copy

  # Tighter budget for a smaller context window
  ctc copy --max-files 20 --max-tokens 32k --model gpt-4o`

	maxFilesFlagDescription  = "maximum number of files to include"
	maxCharsFlagDescription  = "maximum number of characters to copy"
	maxTokensFlagDescription = "maximum number of tokens to copy"
	modelFlagDescription     = "LLM model used to estimate tokens"
	globalFlagDescription    = "write configuration to the global location"
	forceFlagDescription     = "overwrite an existing configuration file"
	versionFlagDescription   = "display application version"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorEmptyStoreMessage      = "no include patterns or explicit files configured; add entries with 'ctc add' before copying"
	errorAllReadsFailedMessage  = "every candidate file failed to read"
	errorClipboardFormat        = "copy to clipboard: %w"
	errorRejectedEntriesFormat  = "rejected %d invalid entries"
	warningRejectedEntryFormat  = "Error: rejecting invalid pattern '%s': %v\n"
	warningRejectedPathFormat   = "Error: rejecting path '%s': %v\n"

	messageCopiedToClipboard = "Files copied to clipboard."
	messageNothingToCopy     = "No files to copy after applying limits and ignore rules."
	messageConfigWritten     = "Configuration written to %s\n"
)

// Execute runs the ctc application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createAddCommand(),
		createRemoveCommand(),
		createListCommand(),
		createClearAllCommand(),
		createCopyCommand(),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createAddCommand returns the add subcommand.
func createAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   addUse,
		Short: addShortDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runAdd(arguments, command.OutOrStdout(), command.ErrOrStderr())
		},
	}
}

// createRemoveCommand returns the remove subcommand.
func createRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   removeUse,
		Short: removeShortDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return runRemove(arguments, command.OutOrStdout())
		},
	}
}

// createListCommand returns the list subcommand.
func createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   listUse,
		Short: listShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runList(command.OutOrStdout())
		},
	}
}

// createClearAllCommand returns the clear-all subcommand.
func createClearAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   clearAllUse,
		Short: clearAllShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runClearAll(command.OutOrStdout())
		},
	}
}

// copyOptions stores flag state for the copy subcommand.
type copyOptions struct {
	maxFiles  int
	maxChars  int
	maxTokens int
	modelName string
}

// createCopyCommand returns the copy subcommand.
func createCopyCommand() *cobra.Command {
	options := copyOptions{
		maxFiles:  defaultMaxFiles,
		maxChars:  defaultMaxChars,
		maxTokens: defaultMaxTokens,
		modelName: defaultModelName,
	}

	copyCommand := &cobra.Command{
		Use:     copyUse,
		Short:   copyShortDescription,
		Example: copyUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			changedFlags := map[string]bool{
				maxFilesFlagName:  command.Flags().Changed(maxFilesFlagName),
				maxCharsFlagName:  command.Flags().Changed(maxCharsFlagName),
				maxTokensFlagName: command.Flags().Changed(maxTokensFlagName),
				modelFlagName:     command.Flags().Changed(modelFlagName),
			}
			return runCopy(options, changedFlags, command.OutOrStdout(), command.ErrOrStderr(), clipboard.NewService())
		},
	}

	copyCommand.Flags().Var(&limitFlagValue{target: &options.maxFiles}, maxFilesFlagName, maxFilesFlagDescription)
	copyCommand.Flags().Var(&limitFlagValue{target: &options.maxChars}, maxCharsFlagName, maxCharsFlagDescription)
	copyCommand.Flags().Var(&limitFlagValue{target: &options.maxTokens}, maxTokensFlagName, maxTokensFlagDescription)
	copyCommand.Flags().StringVar(&options.modelName, modelFlagName, defaultModelName, modelFlagDescription)
	return copyCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), messageConfigWritten, writtenPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runAdd classifies each entry, validates glob patterns, and persists the
// store once after all entries are processed. Invalid patterns are rejected
// individually; the remaining entries still land in the store.
func runAdd(entries []string, stdout io.Writer, stderr io.Writer) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	store, loadError := config.LoadStore(workingDirectory)
	if loadError != nil {
		return loadError
	}

	var addedPatterns []string
	var addedFiles []string
	rejectedCount := 0

	for _, rawEntry := range entries {
		entryKind := config.ClassifyEntry(rawEntry)
		normalizedEntry, normalizeError := config.NormalizeEntry(rawEntry, entryKind, workingDirectory)
		if normalizeError != nil {
			fmt.Fprintf(stderr, warningRejectedPathFormat, strings.TrimSpace(rawEntry), normalizeError)
			rejectedCount++
			continue
		}
		if normalizedEntry == "" {
			continue
		}
		switch entryKind {
		case types.EntryKindPattern:
			if validationError := selector.ValidateIncludePattern(normalizedEntry); validationError != nil {
				fmt.Fprintf(stderr, warningRejectedEntryFormat, normalizedEntry, validationError)
				rejectedCount++
				continue
			}
			if store.AddPattern(normalizedEntry) {
				addedPatterns = append(addedPatterns, normalizedEntry)
			} else {
				fmt.Fprintf(stdout, "Info: glob pattern '%s' is already in the list\n", normalizedEntry)
			}
		case types.EntryKindExplicitPath:
			if store.AddExplicitFile(normalizedEntry) {
				addedFiles = append(addedFiles, normalizedEntry)
			} else {
				fmt.Fprintf(stdout, "Info: file '%s' is already in the list\n", normalizedEntry)
			}
		}
	}

	if saveError := store.Save(); saveError != nil {
		return saveError
	}

	if len(addedPatterns) > 0 {
		fmt.Fprintln(stdout, "\nAdded glob patterns:")
		for _, pattern := range addedPatterns {
			fmt.Fprintf(stdout, " - %s\n", pattern)
		}
	}
	if len(addedFiles) > 0 {
		fmt.Fprintln(stdout, "\nAdded explicit files:")
		for _, filePath := range addedFiles {
			fmt.Fprintf(stdout, " - %s\n", filePath)
		}
	}
	if len(addedPatterns) == 0 && len(addedFiles) == 0 {
		fmt.Fprintln(stdout, "\nNo new patterns or files were added.")
	}

	if rejectedCount > 0 {
		return fmt.Errorf(errorRejectedEntriesFormat, rejectedCount)
	}
	return nil
}

// runRemove deletes each entry from whichever list holds it. Removing an
// absent entry reports an informational message and succeeds.
func runRemove(entries []string, stdout io.Writer) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	store, loadError := config.LoadStore(workingDirectory)
	if loadError != nil {
		return loadError
	}

	var removedPatterns []string
	var removedFiles []string

	for _, rawEntry := range entries {
		entryKind := config.ClassifyEntry(rawEntry)
		normalizedEntry, normalizeError := config.NormalizeEntry(rawEntry, entryKind, workingDirectory)
		if normalizeError != nil {
			fmt.Fprintf(stdout, "Info: '%s' is not in the list\n", strings.TrimSpace(rawEntry))
			continue
		}
		if normalizedEntry == "" {
			continue
		}
		removedKind, removed := store.Remove(normalizedEntry)
		if !removed {
			fmt.Fprintf(stdout, "Info: '%s' is not in the list\n", normalizedEntry)
			continue
		}
		if removedKind == types.EntryKindPattern {
			removedPatterns = append(removedPatterns, normalizedEntry)
		} else {
			removedFiles = append(removedFiles, normalizedEntry)
		}
	}

	if saveError := store.Save(); saveError != nil {
		return saveError
	}

	if len(removedPatterns) > 0 {
		fmt.Fprintln(stdout, "\nRemoved glob patterns:")
		for _, pattern := range removedPatterns {
			fmt.Fprintf(stdout, " - %s\n", pattern)
		}
	}
	if len(removedFiles) > 0 {
		fmt.Fprintln(stdout, "\nRemoved explicit files:")
		for _, filePath := range removedFiles {
			fmt.Fprintf(stdout, " - %s\n", filePath)
		}
	}
	if len(removedPatterns) == 0 && len(removedFiles) == 0 {
		fmt.Fprintln(stdout, "\nNo patterns or files were removed.")
	}
	return nil
}

// runList prints both stored lists in insertion order.
func runList(stdout io.Writer) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	store, loadError := config.LoadStore(workingDirectory)
	if loadError != nil {
		return loadError
	}

	storedPatterns := store.Patterns()
	if len(storedPatterns.IncludePatterns) == 0 && len(storedPatterns.ExplicitFiles) == 0 {
		fmt.Fprintln(stdout, "No include patterns or explicit files found.")
		return nil
	}
	if len(storedPatterns.IncludePatterns) > 0 {
		fmt.Fprintln(stdout, "Current include patterns (glob):")
		for _, pattern := range storedPatterns.IncludePatterns {
			fmt.Fprintf(stdout, " - %s\n", pattern)
		}
	}
	if len(storedPatterns.ExplicitFiles) > 0 {
		fmt.Fprintln(stdout, "Current explicit files:")
		for _, filePath := range storedPatterns.ExplicitFiles {
			fmt.Fprintf(stdout, " - %s\n", filePath)
		}
	}
	return nil
}

// runClearAll empties the store and persists it.
func runClearAll(stdout io.Writer) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	store, loadError := config.LoadStore(workingDirectory)
	if loadError != nil {
		return loadError
	}

	if !store.ClearAll() {
		fmt.Fprintln(stdout, "No include patterns or explicit files to clear.")
		return nil
	}
	if saveError := store.Save(); saveError != nil {
		return saveError
	}
	fmt.Fprintln(stdout, "All include patterns and explicit files have been cleared.")
	return nil
}

// runCopy selects candidates, aggregates them under the resolved limits, and
// writes the blob to the clipboard. The summary is printed even when the
// clipboard write fails.
func runCopy(options copyOptions, changedFlags map[string]bool, stdout io.Writer, stderr io.Writer, copier clipboard.Copier) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if configurationError != nil {
		return configurationError
	}

	store, loadError := config.LoadStore(workingDirectory)
	if loadError != nil {
		return loadError
	}
	if store.IsEmpty() {
		return fmt.Errorf(errorEmptyStoreMessage)
	}

	limits := resolveLimits(options, changedFlags, applicationConfiguration.Copy)

	ignoreFilter := ignore.NewFilter(nil)
	useGitignore := applicationConfiguration.Paths.UseGitignore == nil || *applicationConfiguration.Paths.UseGitignore
	if useGitignore {
		gitignorePath := filepath.Join(workingDirectory, utils.GitIgnoreFileName)
		if gitignoreError := ignoreFilter.LoadGitignoreFile(gitignorePath); gitignoreError != nil {
			fmt.Fprintf(stderr, "Warning: failed to load %s: %v\n", gitignorePath, gitignoreError)
		}
	}
	ignoreFilter.AddRules(applicationConfiguration.Paths.Exclude)

	tokenCounter, estimatorName, usedFallback := tokenizer.NewCounter(limits.ModelName)
	if usedFallback {
		fmt.Fprintf(stderr, "Warning: model '%s' has no registered tokenizer, estimating tokens as characters/4\n", limits.ModelName)
	}

	candidates, selectionError := selector.SelectCandidates(selector.Options{
		Root:          workingDirectory,
		Patterns:      store.Patterns(),
		IgnoreFilter:  ignoreFilter,
		WarningWriter: stderr,
	})
	if selectionError != nil {
		return selectionError
	}

	blob, summary := aggregator.Aggregate(aggregator.Options{
		Candidates:    candidates,
		Limits:        limits,
		Counter:       tokenCounter,
		WarningWriter: stderr,
	})

	if summary.FilesIncluded == 0 {
		fmt.Fprintln(stdout, messageNothingToCopy)
		fmt.Fprintln(stdout, output.RenderSummary(summary, limits, estimatorName))
		if len(candidates) > 0 && summary.ReadFailures == len(candidates) {
			return fmt.Errorf(errorAllReadsFailedMessage)
		}
		return nil
	}

	clipboardError := copier.Copy(blob)
	if clipboardError == nil {
		fmt.Fprintln(stdout, messageCopiedToClipboard)
	}
	fmt.Fprintln(stdout, output.RenderSummary(summary, limits, estimatorName))
	if clipboardError != nil {
		return fmt.Errorf(errorClipboardFormat, clipboardError)
	}
	return nil
}

// resolveLimits layers precedence: built-in defaults, then application
// configuration, then any flag the user changed on the command line.
func resolveLimits(options copyOptions, changedFlags map[string]bool, configuration config.CopyCommandConfiguration) types.CopyLimits {
	limits := types.CopyLimits{
		MaxFiles:  defaultMaxFiles,
		MaxChars:  defaultMaxChars,
		MaxTokens: defaultMaxTokens,
		ModelName: defaultModelName,
	}

	if configuration.MaxFiles != nil {
		limits.MaxFiles = *configuration.MaxFiles
	}
	if configuration.MaxChars != nil {
		limits.MaxChars = *configuration.MaxChars
	}
	if configuration.MaxTokens != nil {
		limits.MaxTokens = *configuration.MaxTokens
	}
	if configuration.Model != "" {
		limits.ModelName = configuration.Model
	}

	if changedFlags[maxFilesFlagName] {
		limits.MaxFiles = options.maxFiles
	}
	if changedFlags[maxCharsFlagName] {
		limits.MaxChars = options.maxChars
	}
	if changedFlags[maxTokensFlagName] {
		limits.MaxTokens = options.maxTokens
	}
	if changedFlags[modelFlagName] {
		limits.ModelName = options.modelName
	}
	return limits
}
