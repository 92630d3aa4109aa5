package report_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pubx/internal/report"
)

const (
	listenAddressConstant       = "127.0.0.1:0"
	reportFileNameConstant      = "lint.txt"
	reportFileContentConstant   = "all checks passed\n"
	coverageFileContentConstant = "total: 97%\n"
)

func buildReportServer(testInstance *testing.T) (*report.Server, string) {
	testInstance.Helper()

	reportsDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(reportsDirectory, reportFileNameConstant), []byte(reportFileContentConstant), 0o644))

	coverageFile := filepath.Join(testInstance.TempDir(), ".coverage")
	require.NoError(testInstance, os.WriteFile(coverageFile, []byte(coverageFileContentConstant), 0o644))

	server, creationError := report.NewServer(zap.NewNop(), report.ServerConfiguration{
		ListenAddress:    listenAddressConstant,
		ReportsDirectory: reportsDirectory,
		CoverageFile:     coverageFile,
	})
	require.NoError(testInstance, creationError)
	return server, reportsDirectory
}

func TestNewServerValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		configuration report.ServerConfiguration
		expectedError error
	}{
		{
			name:          "rejects_missing_listen_address",
			configuration: report.ServerConfiguration{ReportsDirectory: "reports"},
			expectedError: report.ErrListenAddressMissing,
		},
		{
			name:          "rejects_missing_reports_directory",
			configuration: report.ServerConfiguration{ListenAddress: listenAddressConstant},
			expectedError: report.ErrReportsDirectoryMissing,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			_, creationError := report.NewServer(zap.NewNop(), testCase.configuration)
			require.ErrorIs(subtestInstance, creationError, testCase.expectedError)
		})
	}
}

func TestServerRoutes(testInstance *testing.T) {
	server, _ := buildReportServer(testInstance)

	testCases := []struct {
		name           string
		requestPath    string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "health_endpoint_reports_ok",
			requestPath:    "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "reports_route_serves_files",
			requestPath:    "/reports/" + reportFileNameConstant,
			expectedStatus: http.StatusOK,
			expectedBody:   reportFileContentConstant,
		},
		{
			name:           "coverage_route_serves_coverage_file",
			requestPath:    "/coverage",
			expectedStatus: http.StatusOK,
			expectedBody:   coverageFileContentConstant,
		},
		{
			name:           "missing_report_returns_not_found",
			requestPath:    "/reports/absent.txt",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, testCase.requestPath, nil)

			server.Handler().ServeHTTP(recorder, request)

			require.Equal(subtestInstance, testCase.expectedStatus, recorder.Code)
			if len(testCase.expectedBody) > 0 {
				require.Equal(subtestInstance, testCase.expectedBody, recorder.Body.String())
			}
		})
	}
}
