// Package cli wires the Cobra command hierarchy, configuration loading, and
// structured logging for the pubx packaging task dispatcher.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pubx/internal/cleanup"
	"github.com/temirov/pubx/internal/envfile"
	"github.com/temirov/pubx/internal/execshell"
	"github.com/temirov/pubx/internal/shelltask"
	"github.com/temirov/pubx/internal/tasks"
	"github.com/temirov/pubx/internal/utils"
	"github.com/temirov/pubx/internal/version"
	"github.com/temirov/pubx/pkg/taskrunner"
)

const (
	applicationNameConstant             = "pubx"
	applicationShortDescriptionConstant = "Task dispatcher for packaging and publishing Python libraries"
	applicationLongDescriptionConstant  = "pubx sequences the installer, linter, builder, and uploader tools behind named tasks such as install, build, and publish:prod."

	configFileFlagNameConstant       = "config"
	configFileFlagUsageConstant      = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant         = "log-level"
	logLevelFlagUsageConstant        = "Override the configured log level."
	logFormatFlagNameConstant        = "log-format"
	logFormatFlagUsageConstant       = "Override the configured log format (structured or console)."
	environmentFileFlagNameConstant  = "env-file"
	environmentFileFlagUsageConstant = "Override the secrets file loaded before delegated invocations."

	configurationInitializationFlagNameConstant                      = "init"
	configurationInitializationFlagUsageConstant                     = "Write the embedded default configuration to LOCAL (./config.yaml) or user ($XDG_CONFIG_HOME/pubx/config.yaml, falling back to $HOME/.pubx/config.yaml)."
	configurationInitializationDefaultScopeConstant                  = "local"
	configurationInitializationForceFlagNameConstant                 = "force"
	configurationInitializationForceFlagUsageConstant                = "Overwrite an existing configuration file when initializing."
	configurationInitializationScopeLocalConstant                    = "local"
	configurationInitializationScopeUserConstant                     = "user"
	configurationInitializationUnsupportedScopeTemplateConstant      = "unsupported initialization scope %q"
	configurationInitializationWorkingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	configurationInitializationHomeDirectoryErrorTemplateConstant    = "unable to determine user home directory: %w"
	configurationInitializationContentUnavailableErrorConstant       = "embedded configuration content is unavailable"
	configurationInitializationDirectoryErrorTemplateConstant        = "unable to ensure configuration directory %s: %w"
	configurationInitializationExistingFileTemplateConstant          = "configuration file already exists at %s (use --force to overwrite)"
	configurationInitializationWriteErrorTemplateConstant            = "unable to write configuration file %s: %w"
	configurationInitializationSuccessMessageConstant                = "configuration file created"

	commonConfigurationKeyConstant   = "common"
	commonLogLevelConfigKeyConstant  = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant = commonConfigurationKeyConstant + ".log_format"

	environmentPrefixConstant                          = "PUBX"
	configurationNameConstant                          = "config"
	configurationTypeConstant                          = "yaml"
	configurationFileNameConstant                      = configurationNameConstant + "." + configurationTypeConstant
	configurationDirectoryPermissionConstant           = 0o755
	configurationFilePermissionConstant                = 0o600
	defaultConfigurationSearchPathConstant             = "."
	userConfigurationDirectoryNameConstant             = ".pubx"
	configurationSearchPathEnvironmentVariableConstant = "PUBX_CONFIG_SEARCH_PATH"
	xdgConfigHomeEnvironmentVariableConstant           = "XDG_CONFIG_HOME"

	configurationLoadErrorTemplateConstant          = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant             = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                 = "unable to flush logger: %w"
	customTaskDecodeErrorTemplateConstant           = "unable to decode task definition %d: %w"
	configurationInitializedMessageConstant         = "configuration initialized"
	configurationInitializedConsoleTemplateConstant = "%s | log level=%s | log format=%s | config file=%s"
	configurationLogLevelFieldConstant              = "log_level"
	configurationLogFormatFieldConstant             = "log_format"
	configurationFileFieldConstant                  = "config_file"

	environmentFileLoadedMessageConstant           = "environment file loaded"
	environmentFileMissingMessageConstant          = "environment file missing; continuing without secrets"
	environmentFilePathFieldConstant               = "path"
	environmentEntryCountFieldConstant             = "entries"
	environmentFileRequestedErrorTemplateConstant  = "environment file %s was requested but could not be loaded: %w"
	environmentFileUnreadableErrorTemplateConstant = "unable to load environment file %s: %w"

	availableTasksHeadingConstant    = "Available tasks:"
	taskListingEntryTemplateConstant = "  %-14s %s\n"

	versionFlagNameConstant                = "version"
	versionFlagUsageConstant               = "Print the application version and exit"
	versionOutputTemplateConstant          = "pubx version: %s\n"
	versionCommandUseNameConstant          = "version"
	versionCommandShortDescriptionConstant = "Print the pubx version"
	versionCommandLongDescriptionConstant  = "version prints the current pubx release identifier."
)

type loggerOutputsFactory interface {
	CreateLoggerOutputs(utils.LogLevel, utils.LogFormat) (utils.LoggerOutputs, error)
}

type configurationInitializationPlan struct {
	DirectoryPath string
	FilePath      string
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand                       *cobra.Command
	configurationLoader               *utils.ConfigurationLoader
	loggerFactory                     loggerOutputsFactory
	logger                            *zap.Logger
	consoleLogger                     *zap.Logger
	configuration                     ApplicationConfiguration
	configurationMetadata             utils.LoadedConfiguration
	configurationFilePath             string
	logLevelFlagValue                 string
	logFormatFlagValue                string
	environmentFileFlagValue          string
	commandContextAccessor            utils.CommandContextAccessor
	taskRegistry                      *tasks.Registry
	scriptRuntime                     *shelltask.ScriptRuntime
	commandRunner                     execshell.CommandRunner
	configurationInitializationScope  string
	configurationInitializationForced bool
	versionFlag                       bool
	versionResolver                   func(context.Context) string
	exitFunction                      func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	application := &Application{
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		consoleLogger:          zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		scriptRuntime:          shelltask.NewScriptRuntime(),
		commandRunner:          execshell.NewOSCommandRunner(),
	}
	application.versionResolver = application.resolveVersion
	application.exitFunction = os.Exit

	application.configurationLoader = utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		application.resolveConfigurationSearchPaths(),
	)

	embeddedConfigurationData, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	application.configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationData, embeddedConfigurationType)

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if initializationError := application.initializeConfiguration(command); initializationError != nil {
				return initializationError
			}

			if application.persistentFlagChanged(command, configurationInitializationFlagNameConstant) {
				if writeError := application.writeDefaultConfiguration(command); writeError != nil {
					return writeError
				}
				application.exitFunction(0)
			}

			if application.versionFlag {
				application.printVersion(command.Context())
				application.exitFunction(0)
			}

			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.environmentFileFlagValue, environmentFileFlagNameConstant, "", environmentFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.configurationInitializationScope,
		configurationInitializationFlagNameConstant,
		configurationInitializationDefaultScopeConstant,
		configurationInitializationFlagUsageConstant,
	)
	initializationFlag := cobraCommand.PersistentFlags().Lookup(configurationInitializationFlagNameConstant)
	if initializationFlag != nil {
		initializationFlag.NoOptDefVal = configurationInitializationDefaultScopeConstant
	}
	cobraCommand.PersistentFlags().BoolVar(
		&application.configurationInitializationForced,
		configurationInitializationForceFlagNameConstant,
		false,
		configurationInitializationForceFlagUsageConstant,
	)
	cobraCommand.PersistentFlags().BoolVar(&application.versionFlag, versionFlagNameConstant, false, versionFlagUsageConstant)

	defaultHelpFunction := cobraCommand.HelpFunc()
	cobraCommand.SetHelpFunc(func(helpTarget *cobra.Command, helpArguments []string) {
		defaultHelpFunction(helpTarget, helpArguments)
		if helpTarget == cobraCommand {
			application.printTaskListing(helpTarget.OutOrStdout())
		}
	})

	application.rootCommand = cobraCommand
	application.registerCommands(cobraCommand)

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) resolveConfigurationSearchPaths() []string {
	overrideValue := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentVariableConstant))
	if len(overrideValue) == 0 {
		defaultSearchPaths := []string{defaultConfigurationSearchPathConstant}
		userConfigurationDirectoryPaths := application.resolveUserConfigurationDirectoryPaths()
		if len(userConfigurationDirectoryPaths) > 0 {
			defaultSearchPaths = append(defaultSearchPaths, userConfigurationDirectoryPaths...)
		}

		return defaultSearchPaths
	}

	overridePaths := strings.FieldsFunc(overrideValue, func(candidate rune) bool {
		return candidate == os.PathListSeparator
	})

	cleanedPaths := make([]string, 0, len(overridePaths))
	for _, pathCandidate := range overridePaths {
		trimmedCandidate := strings.TrimSpace(pathCandidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		cleanedPaths = append(cleanedPaths, trimmedCandidate)
	}

	if len(cleanedPaths) == 0 {
		return []string{defaultConfigurationSearchPathConstant}
	}

	return cleanedPaths
}

func (application *Application) resolveUserConfigurationDirectoryPaths() []string {
	userConfigurationDirectoryPaths := make([]string, 0, 3)

	appendConfigurationDirectory := func(baseDirectoryPath string) {
		trimmedBaseDirectoryPath := strings.TrimSpace(baseDirectoryPath)
		if len(trimmedBaseDirectoryPath) == 0 {
			return
		}

		candidateDirectoryPath := filepath.Join(trimmedBaseDirectoryPath, userConfigurationDirectoryNameConstant)
		for _, existingDirectoryPath := range userConfigurationDirectoryPaths {
			if existingDirectoryPath == candidateDirectoryPath {
				return
			}
		}

		userConfigurationDirectoryPaths = append(userConfigurationDirectoryPaths, candidateDirectoryPath)
	}

	appendConfigurationDirectory(os.Getenv(xdgConfigHomeEnvironmentVariableConstant))

	userConfigurationBaseDirectoryPath, userConfigurationDirectoryError := os.UserConfigDir()
	if userConfigurationDirectoryError == nil {
		appendConfigurationDirectory(userConfigurationBaseDirectoryPath)
	}

	userHomeDirectoryPath, userHomeDirectoryError := os.UserHomeDir()
	if userHomeDirectoryError == nil {
		appendConfigurationDirectory(userHomeDirectoryPath)
	}

	return userConfigurationDirectoryPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	if application.logger == nil {
		application.logger = zap.NewNop()
	}

	application.consoleLogger = loggerOutputs.ConsoleLogger
	if application.consoleLogger == nil {
		application.consoleLogger = zap.NewNop()
	}

	application.logConfigurationInitialization()

	if registryError := application.buildTaskRegistry(); registryError != nil {
		return registryError
	}

	if command != nil {
		updatedContext := application.commandContextAccessor.WithExecutionFlags(command.Context(), utils.ExecutionFlags{
			EnvironmentFile:    application.environmentFileFlagValue,
			EnvironmentFileSet: application.persistentFlagChanged(command, environmentFileFlagNameConstant),
		})

		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

// InitializeForCommand prepares application state for the provided command name without executing command logic.
func (application *Application) InitializeForCommand(commandUse string) error {
	command := &cobra.Command{Use: commandUse}
	return application.initializeConfiguration(command)
}

// ConfigFileUsed returns the configuration file path used during initialization.
func (application *Application) ConfigFileUsed() string {
	return application.configurationMetadata.ConfigFileUsed
}

// TaskNames lists the currently registered task names.
func (application *Application) TaskNames() []string {
	if application.taskRegistry == nil {
		return nil
	}
	return application.taskRegistry.Names()
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) logConfigurationInitialization() {
	if !strings.EqualFold(strings.TrimSpace(application.configuration.Common.LogLevel), string(utils.LogLevelDebug)) {
		return
	}

	if application.humanReadableLoggingEnabled() {
		bannerMessage := fmt.Sprintf(
			configurationInitializedConsoleTemplateConstant,
			configurationInitializedMessageConstant,
			application.configuration.Common.LogLevel,
			application.configuration.Common.LogFormat,
			application.configurationMetadata.ConfigFileUsed,
		)
		application.consoleLogger.Debug(bannerMessage)
		return
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)
}

func (application *Application) buildTaskRegistry() error {
	taskRegistry := tasks.NewRegistry()
	for _, builtinTask := range tasks.BuildBuiltinTasks(application.configuration.TaskSettings()) {
		if registrationError := taskRegistry.Register(builtinTask); registrationError != nil {
			return registrationError
		}
	}

	customDefinitions, definitionsError := application.configuration.CustomTaskDefinitions()
	if definitionsError != nil {
		return definitionsError
	}
	for _, customDefinition := range customDefinitions {
		customTask, buildError := tasks.BuildCustomTask(application.scriptRuntime, customDefinition)
		if buildError != nil {
			return buildError
		}
		if registrationError := taskRegistry.Register(customTask); registrationError != nil {
			return registrationError
		}
	}

	application.taskRegistry = taskRegistry
	return nil
}

func (application *Application) buildExecutionEnvironment(command *cobra.Command, arguments []string) (*tasks.ExecutionEnvironment, error) {
	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, application.commandRunner, application.humanReadableLoggingEnabled())
	if executorError != nil {
		return nil, executorError
	}
	shellExecutor.SetExecutableOverrides(application.configuration.Tools.ExecutableOverrides())

	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return nil, workingDirectoryError
	}

	environmentVariables, environmentFileError := application.loadEnvironmentFile(command, workingDirectory)
	if environmentFileError != nil {
		return nil, environmentFileError
	}

	return &tasks.ExecutionEnvironment{
		ShellExecutor:        shellExecutor,
		ScriptRuntime:        application.scriptRuntime,
		CleanupService:       cleanup.NewService(application.logger, application.configuration.Cleanup),
		Logger:               application.logger,
		Output:               command.OutOrStdout(),
		Errors:               command.ErrOrStderr(),
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: environmentVariables,
		Arguments:            arguments,
		Settings:             application.configuration.TaskSettings(),
	}, nil
}

// resolveEnvironmentFileFlags reads the execution flags stored in the command
// context during initialization, falling back to the raw flag values when the
// context carries none.
func (application *Application) resolveEnvironmentFileFlags(command *cobra.Command) utils.ExecutionFlags {
	if command != nil {
		if storedFlags, flagsAvailable := application.commandContextAccessor.ExecutionFlags(command.Context()); flagsAvailable {
			return storedFlags
		}
	}

	return utils.ExecutionFlags{
		EnvironmentFile:    application.environmentFileFlagValue,
		EnvironmentFileSet: application.persistentFlagChanged(command, environmentFileFlagNameConstant),
	}
}

// loadEnvironmentFile reads the secrets file once per dispatch. A missing file
// is tolerated only when the default path is in play; a file named by
// --env-file must exist, and an unreadable file aborts the dispatch.
func (application *Application) loadEnvironmentFile(command *cobra.Command, workingDirectory string) (map[string]string, error) {
	executionFlags := application.resolveEnvironmentFileFlags(command)

	environmentFilePath := strings.TrimSpace(executionFlags.EnvironmentFile)
	if len(environmentFilePath) == 0 {
		environmentFilePath = application.configuration.TaskSettings().Project.EnvironmentFile
	}
	if !filepath.IsAbs(environmentFilePath) {
		environmentFilePath = filepath.Join(workingDirectory, environmentFilePath)
	}

	loadedEnvironment, loadError := envfile.NewLoader().Load(environmentFilePath)
	if loadError != nil {
		if errors.Is(loadError, envfile.ErrEnvironmentFileMissing) {
			if executionFlags.EnvironmentFileSet {
				return nil, fmt.Errorf(environmentFileRequestedErrorTemplateConstant, environmentFilePath, loadError)
			}
			application.logger.Debug(environmentFileMissingMessageConstant,
				zap.String(environmentFilePathFieldConstant, environmentFilePath))
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf(environmentFileUnreadableErrorTemplateConstant, environmentFilePath, loadError)
	}

	application.logger.Debug(environmentFileLoadedMessageConstant,
		zap.String(environmentFilePathFieldConstant, environmentFilePath),
		zap.Int(environmentEntryCountFieldConstant, len(loadedEnvironment)))
	return loadedEnvironment, nil
}

func (application *Application) runTask(command *cobra.Command, taskName string, arguments []string) error {
	executionEnvironment, environmentError := application.buildExecutionEnvironment(command, arguments)
	if environmentError != nil {
		return environmentError
	}

	executor, resolveError := taskrunner.Resolve(nil, taskrunner.Dependencies{
		Registry: application.taskRegistry,
		Logger:   application.logger,
		Output:   command.OutOrStdout(),
		Errors:   command.ErrOrStderr(),
	})
	if resolveError != nil {
		return resolveError
	}

	_, runError := executor.Run(command.Context(), taskName, executionEnvironment)
	return runError
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		taskName := arguments[0]
		if application.taskRegistry == nil {
			return &tasks.UnknownTaskError{TaskName: taskName}
		}
		if _, lookupError := application.taskRegistry.Lookup(taskName); lookupError != nil {
			return lookupError
		}
		return application.runTask(command, taskName, arguments[1:])
	}

	return command.Help()
}

// printTaskListing appends the registered task names, builtins and
// config-defined tasks alike, to the help output.
func (application *Application) printTaskListing(outputWriter io.Writer) {
	if application.taskRegistry == nil {
		return
	}

	fmt.Fprintln(outputWriter)
	fmt.Fprintln(outputWriter, availableTasksHeadingConstant)
	for _, registeredTask := range application.taskRegistry.Tasks() {
		fmt.Fprintf(outputWriter, taskListingEntryTemplateConstant, registeredTask.Name, registeredTask.Summary)
	}
}

func (application *Application) resolveVersion(executionContext context.Context) string {
	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, application.commandRunner, application.humanReadableLoggingEnabled())

	dependencies := version.Dependencies{}
	if executorError == nil {
		dependencies.GitExecutor = shellExecutor
	}

	return strings.TrimSpace(version.Detect(executionContext, dependencies))
}

func (application *Application) printVersion(executionContext context.Context) {
	fmt.Fprintf(application.rootCommand.OutOrStdout(), versionOutputTemplateConstant, application.versionResolver(executionContext))
}

func (application *Application) writeDefaultConfiguration(command *cobra.Command) error {
	initializationPlan, planError := application.resolveInitializationPlan()
	if planError != nil {
		return planError
	}

	configurationContent, _ := EmbeddedDefaultConfiguration()
	if len(configurationContent) == 0 {
		return errors.New(configurationInitializationContentUnavailableErrorConstant)
	}

	if len(initializationPlan.DirectoryPath) > 0 {
		if directoryError := os.MkdirAll(initializationPlan.DirectoryPath, configurationDirectoryPermissionConstant); directoryError != nil {
			return fmt.Errorf(configurationInitializationDirectoryErrorTemplateConstant, initializationPlan.DirectoryPath, directoryError)
		}
	}

	if _, statError := os.Stat(initializationPlan.FilePath); statError == nil && !application.configurationInitializationForced {
		return fmt.Errorf(configurationInitializationExistingFileTemplateConstant, initializationPlan.FilePath)
	}

	if writeError := os.WriteFile(initializationPlan.FilePath, configurationContent, configurationFilePermissionConstant); writeError != nil {
		return fmt.Errorf(configurationInitializationWriteErrorTemplateConstant, initializationPlan.FilePath, writeError)
	}

	fmt.Fprintf(command.OutOrStdout(), "%s: %s\n", configurationInitializationSuccessMessageConstant, initializationPlan.FilePath)
	return nil
}

func (application *Application) resolveInitializationPlan() (configurationInitializationPlan, error) {
	scope := strings.ToLower(strings.TrimSpace(application.configurationInitializationScope))
	if len(scope) == 0 {
		scope = configurationInitializationDefaultScopeConstant
	}

	switch scope {
	case configurationInitializationScopeLocalConstant:
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationWorkingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		return configurationInitializationPlan{FilePath: filepath.Join(workingDirectory, configurationFileNameConstant)}, nil
	case configurationInitializationScopeUserConstant:
		baseDirectory := strings.TrimSpace(os.Getenv(xdgConfigHomeEnvironmentVariableConstant))
		if len(baseDirectory) == 0 {
			homeDirectory, homeDirectoryError := os.UserHomeDir()
			if homeDirectoryError != nil {
				return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationHomeDirectoryErrorTemplateConstant, homeDirectoryError)
			}
			baseDirectory = homeDirectory
		}
		configurationDirectory := filepath.Join(baseDirectory, userConfigurationDirectoryNameConstant)
		return configurationInitializationPlan{
			DirectoryPath: configurationDirectory,
			FilePath:      filepath.Join(configurationDirectory, configurationFileNameConstant),
		}, nil
	default:
		return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationUnsupportedScopeTemplateConstant, scope)
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}
	flagSet := command.Root().PersistentFlags()
	changedFlag := flagSet.Lookup(flagName)
	return changedFlag != nil && changedFlag.Changed
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	if syncError == nil {
		return nil
	}

	if errors.Is(syncError, syscall.EINVAL) || errors.Is(syncError, syscall.ENOTTY) || errors.Is(syncError, syscall.EBADF) {
		return nil
	}

	return syncError
}
