package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorConstant        = "_"
	configurationKeySeparatorConstant      = "."
	embeddedConfigurationReadErrorTemplate = "unable to read embedded configuration: %w"
	configurationFileReadErrorTemplate     = "unable to read configuration file: %w"
	configurationMergeErrorTemplate        = "unable to merge configuration: %w"
	configurationDecodeErrorTemplate       = "unable to decode configuration: %w"
)

// LoadedConfiguration describes the outcome of a configuration load.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

// ConfigurationLoader resolves configuration from embedded defaults, files on a
// search path, and prefixed environment variables, in increasing precedence.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	embeddedConfiguration     []byte
	embeddedConfigurationType string
}

// NewConfigurationLoader constructs a ConfigurationLoader for the provided name, type, prefix, and search paths.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       searchPaths,
	}
}

// SetEmbeddedConfiguration registers default configuration content consulted before files and environment.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	loader.embeddedConfiguration = configurationData
	loader.embeddedConfigurationType = configurationType
}

// LoadConfiguration reads configuration into the target structure. An explicit
// file path is mandatory when provided; otherwise the search paths are probed
// and a missing file is not an error.
func (loader *ConfigurationLoader) LoadConfiguration(explicitFilePath string, defaultValues map[string]any, target any) (LoadedConfiguration, error) {
	viperInstance := viper.New()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(loader.environmentPrefix) > 0 {
		viperInstance.SetEnvPrefix(loader.environmentPrefix)
		viperInstance.SetEnvKeyReplacer(strings.NewReplacer(configurationKeySeparatorConstant, environmentKeySeparatorConstant))
		viperInstance.AutomaticEnv()
	}

	if len(loader.embeddedConfiguration) > 0 {
		embeddedViper := viper.New()
		embeddedViper.SetConfigType(loader.embeddedConfigurationType)
		if readError := embeddedViper.ReadConfig(bytes.NewReader(loader.embeddedConfiguration)); readError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationReadErrorTemplate, readError)
		}
		if mergeError := viperInstance.MergeConfigMap(embeddedViper.AllSettings()); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(configurationMergeErrorTemplate, mergeError)
		}
	}

	fileViper := viper.New()
	trimmedExplicitPath := strings.TrimSpace(explicitFilePath)
	if len(trimmedExplicitPath) > 0 {
		fileViper.SetConfigFile(trimmedExplicitPath)
	} else {
		fileViper.SetConfigName(loader.configurationName)
		fileViper.SetConfigType(loader.configurationType)
		for _, searchPath := range loader.searchPaths {
			fileViper.AddConfigPath(searchPath)
		}
	}

	configurationFileUsed := ""
	readError := fileViper.ReadInConfig()
	switch {
	case readError == nil:
		if mergeError := viperInstance.MergeConfigMap(fileViper.AllSettings()); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(configurationMergeErrorTemplate, mergeError)
		}
		configurationFileUsed = fileViper.ConfigFileUsed()
	case len(trimmedExplicitPath) > 0:
		return LoadedConfiguration{}, fmt.Errorf(configurationFileReadErrorTemplate, readError)
	default:
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &configFileNotFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationFileReadErrorTemplate, readError)
		}
	}

	if target != nil {
		if decodeError := viperInstance.Unmarshal(target); decodeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplate, decodeError)
		}
	}

	return LoadedConfiguration{ConfigFileUsed: configurationFileUsed}, nil
}
