package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/temirov/pubx/internal/report"
	"github.com/temirov/pubx/internal/tasks"
)

const (
	reportCommandUseNameConstant          = "report"
	reportCommandShortDescriptionConstant = "Serve the generated reports and coverage file over HTTP"
	reportCommandLongDescriptionConstant  = "report starts a local HTTP server exposing the reports directory and the coverage file until interrupted."
	reportListenFlagNameConstant          = "listen"
	reportListenFlagUsageConstant         = "Listen address for the report server."
)

// registerCommands attaches one Cobra command per dispatchable task plus the
// supporting report and version commands. Custom tasks from configuration are
// dispatched through the root command because they are only known after the
// configuration loads.
func (application *Application) registerCommands(cobraCommand *cobra.Command) {
	for _, builtinTask := range tasks.BuildBuiltinTasks(tasks.DefaultSettings()) {
		taskName := builtinTask.Name
		taskCommand := &cobra.Command{
			Use:           taskName,
			Short:         builtinTask.Summary,
			Args:          cobra.ArbitraryArgs,
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(command *cobra.Command, arguments []string) error {
				return application.runTask(command, taskName, arguments)
			},
		}
		cobraCommand.AddCommand(taskCommand)
	}

	cobraCommand.AddCommand(application.buildReportCommand())
	cobraCommand.AddCommand(application.buildVersionCommand())
}

func (application *Application) buildReportCommand() *cobra.Command {
	var listenAddressFlagValue string

	reportCommand := &cobra.Command{
		Use:           reportCommandUseNameConstant,
		Short:         reportCommandShortDescriptionConstant,
		Long:          reportCommandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			listenAddress := listenAddressFlagValue
			if !command.Flags().Changed(reportListenFlagNameConstant) && len(application.configuration.Report.ListenAddress) > 0 {
				listenAddress = application.configuration.Report.ListenAddress
			}

			taskSettings := application.configuration.TaskSettings()
			reportServer, creationError := report.NewServer(application.logger, report.ServerConfiguration{
				ListenAddress:    listenAddress,
				ReportsDirectory: taskSettings.Project.ReportsDirectory,
				CoverageFile:     taskSettings.Project.CoverageFile,
			})
			if creationError != nil {
				return creationError
			}

			serveContext, stopSignals := signal.NotifyContext(command.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stopSignals()
			return reportServer.Serve(serveContext)
		},
	}

	reportCommand.Flags().StringVar(&listenAddressFlagValue, reportListenFlagNameConstant, "", reportListenFlagUsageConstant)
	return reportCommand
}

func (application *Application) buildVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:           versionCommandUseNameConstant,
		Short:         versionCommandShortDescriptionConstant,
		Long:          versionCommandLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			application.printVersion(command.Context())
			return nil
		},
	}
}
