package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pubx/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTPUBX"
	testCommonSectionKeyConstant                   = "common"
	testLogLevelKeyConstant                        = testCommonSectionKeyConstant + ".log_level"
	testDefaultLogLevelConstant                    = "info"
	testConfiguredLogLevelConstant                 = "debug"
	testOverriddenLogLevelConstant                 = "error"
	testFileLogLevelConstant                       = "warn"
	testEmbeddedLogLevelConstant                   = "debug"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "common:\n  log_level: %s\n"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
	testCaseEmbeddedMessageConstant                = "embedded configuration applies"
	testCaseDefaultsMessageConstant                = "defaults are applied"
	testCaseFileMessageConstant                    = "config file overrides embedded defaults"
	testCaseEnvironmentMessageConstant             = "environment overrides file"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		defaultLogLevel     string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             testCaseEmbeddedMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			defaultLogLevel:  testDefaultLogLevelConstant,
			expectedLogLevel: testEmbeddedLogLevelConstant,
		},
		{
			name:             testCaseDefaultsMessageConstant,
			defaultLogLevel:  testDefaultLogLevelConstant,
			expectedLogLevel: testDefaultLogLevelConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			fileLogLevel:     testConfiguredLogLevelConstant,
			expectedLogLevel: testConfiguredLogLevelConstant,
		},
		{
			name:                testCaseEnvironmentMessageConstant,
			embeddedLogLevel:    testEmbeddedLogLevelConstant,
			fileLogLevel:        testFileLogLevelConstant,
			environmentLogLevel: testOverriddenLogLevelConstant,
			expectedLogLevel:    testOverriddenLogLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()

			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileLogLevel)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentLogLevel) > 0 {
				environmentVariableName := fmt.Sprintf("%s_%s", testEnvironmentPrefixConstant, strings.ToUpper(strings.ReplaceAll(testLogLevelKeyConstant, ".", "_")))
				testInstance.Setenv(environmentVariableName, testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})

			if len(testCase.embeddedLogLevel) > 0 {
				embeddedContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedLogLevel)
				configurationLoader.SetEmbeddedConfiguration([]byte(embeddedContent), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{}
			if len(testCase.defaultLogLevel) > 0 {
				defaultValues[testLogLevelKeyConstant] = testCase.defaultLogLevel
			} else {
				defaultValues[testLogLevelKeyConstant] = ""
			}

			var loadedFixture configurationFixture
			loadedMetadata, loadError := configurationLoader.LoadConfiguration("", defaultValues, &loadedFixture)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedFixture.Common.LogLevel)

			if len(testCase.fileLogLevel) > 0 {
				require.NotEmpty(testInstance, loadedMetadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, loadedMetadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderExplicitFilePath(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testConfiguredLogLevelConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	var loadedFixture configurationFixture
	loadedMetadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &loadedFixture)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testConfiguredLogLevelConstant, loadedFixture.Common.LogLevel)
	require.Equal(testInstance, configurationFilePath, loadedMetadata.ConfigFileUsed)
}

func TestConfigurationLoaderExplicitFilePathMissingFails(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	missingFilePath := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
	_, loadError := configurationLoader.LoadConfiguration(missingFilePath, nil, &configurationFixture{})
	require.Error(testInstance, loadError)
}
