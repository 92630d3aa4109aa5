package cli

import (
	"fmt"

	mapstructure "github.com/go-viper/mapstructure/v2"

	"github.com/temirov/pubx/internal/cleanup"
	"github.com/temirov/pubx/internal/execshell"
	"github.com/temirov/pubx/internal/tasks"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common     ApplicationCommonConfiguration `mapstructure:"common"`
	Tools      ToolsConfiguration             `mapstructure:"tools"`
	Project    tasks.ProjectSettings          `mapstructure:"project"`
	Registries tasks.RegistrySettings         `mapstructure:"registries"`
	Cleanup    cleanup.Configuration          `mapstructure:"cleanup"`
	Report     ReportConfiguration            `mapstructure:"report"`
	Tasks      []map[string]any               `mapstructure:"tasks"`
}

// ApplicationCommonConfiguration stores logging defaults shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ToolsConfiguration overrides the executables used for delegated invocations.
type ToolsConfiguration struct {
	Installer string `mapstructure:"installer"`
	Linter    string `mapstructure:"linter"`
	Uploader  string `mapstructure:"uploader"`
	Git       string `mapstructure:"git"`
}

// ReportConfiguration stores report server settings.
type ReportConfiguration struct {
	ListenAddress string `mapstructure:"listen_address"`
}

// ExecutableOverrides maps delegated command names to configured executables.
func (configuration ToolsConfiguration) ExecutableOverrides() map[execshell.CommandName]string {
	overrides := map[execshell.CommandName]string{}
	assignOverride := func(commandName execshell.CommandName, executable string) {
		if len(executable) == 0 || executable == string(commandName) {
			return
		}
		overrides[commandName] = executable
	}
	assignOverride(execshell.CommandInstaller, configuration.Installer)
	assignOverride(execshell.CommandLinter, configuration.Linter)
	assignOverride(execshell.CommandUploader, configuration.Uploader)
	assignOverride(execshell.CommandGit, configuration.Git)
	return overrides
}

// TaskSettings projects the configuration onto the task-facing settings.
func (configuration ApplicationConfiguration) TaskSettings() tasks.Settings {
	settings := tasks.DefaultSettings()
	if len(configuration.Project.DistributionDirectory) > 0 {
		settings.Project.DistributionDirectory = configuration.Project.DistributionDirectory
	}
	if len(configuration.Project.ReportsDirectory) > 0 {
		settings.Project.ReportsDirectory = configuration.Project.ReportsDirectory
	}
	if len(configuration.Project.CoverageFile) > 0 {
		settings.Project.CoverageFile = configuration.Project.CoverageFile
	}
	if len(configuration.Project.EnvironmentFile) > 0 {
		settings.Project.EnvironmentFile = configuration.Project.EnvironmentFile
	}
	if len(configuration.Registries.Test.Name) > 0 {
		settings.Registries.Test.Name = configuration.Registries.Test.Name
	}
	if len(configuration.Registries.Test.TokenVariable) > 0 {
		settings.Registries.Test.TokenVariable = configuration.Registries.Test.TokenVariable
	}
	if len(configuration.Registries.Production.Name) > 0 {
		settings.Registries.Production.Name = configuration.Registries.Production.Name
	}
	if len(configuration.Registries.Production.TokenVariable) > 0 {
		settings.Registries.Production.TokenVariable = configuration.Registries.Production.TokenVariable
	}
	return settings
}

// CustomTaskDefinitions decodes the configured task documents into definitions.
func (configuration ApplicationConfiguration) CustomTaskDefinitions() ([]tasks.CustomTaskDefinition, error) {
	definitions := make([]tasks.CustomTaskDefinition, 0, len(configuration.Tasks))
	for definitionIndex, definitionDocument := range configuration.Tasks {
		var definition tasks.CustomTaskDefinition
		decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "mapstructure",
			Result:           &definition,
			WeaklyTypedInput: true,
		})
		if decoderError != nil {
			return nil, decoderError
		}
		if decodeError := decoder.Decode(definitionDocument); decodeError != nil {
			return nil, fmt.Errorf(customTaskDecodeErrorTemplateConstant, definitionIndex, decodeError)
		}
		definitions = append(definitions, definition)
	}
	return definitions, nil
}
