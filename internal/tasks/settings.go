package tasks

import "github.com/temirov/pubx/internal/registryauth"

const (
	defaultDistributionDirectoryConstant  = "dist"
	defaultReportsDirectoryConstant       = "reports"
	defaultCoverageFileConstant           = ".coverage"
	defaultEnvironmentFileConstant        = ".env"
	defaultTestRegistryNameConstant       = "testpypi"
	defaultProductionRegistryNameConstant = "pypi"
)

// ProjectSettings locates the project artifacts the tasks operate on.
type ProjectSettings struct {
	DistributionDirectory string `mapstructure:"distribution_directory"`
	ReportsDirectory      string `mapstructure:"reports_directory"`
	CoverageFile          string `mapstructure:"coverage_file"`
	EnvironmentFile       string `mapstructure:"environment_file"`
}

// RegistryEndpoint names a package index and the environment variable holding
// its upload token.
type RegistryEndpoint struct {
	Name          string `mapstructure:"name"`
	TokenVariable string `mapstructure:"token_variable"`
}

// RegistrySettings pairs the staging and production package indexes.
type RegistrySettings struct {
	Test       RegistryEndpoint `mapstructure:"test"`
	Production RegistryEndpoint `mapstructure:"production"`
}

// Settings aggregates the task-facing configuration.
type Settings struct {
	Project    ProjectSettings  `mapstructure:"project"`
	Registries RegistrySettings `mapstructure:"registries"`
}

// DefaultSettings returns the settings used when configuration supplies none.
func DefaultSettings() Settings {
	return Settings{
		Project: ProjectSettings{
			DistributionDirectory: defaultDistributionDirectoryConstant,
			ReportsDirectory:      defaultReportsDirectoryConstant,
			CoverageFile:          defaultCoverageFileConstant,
			EnvironmentFile:       defaultEnvironmentFileConstant,
		},
		Registries: RegistrySettings{
			Test: RegistryEndpoint{
				Name:          defaultTestRegistryNameConstant,
				TokenVariable: registryauth.EnvTestRegistryToken,
			},
			Production: RegistryEndpoint{
				Name:          defaultProductionRegistryNameConstant,
				TokenVariable: registryauth.EnvProductionRegistryToken,
			},
		},
	}
}
