package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AppName     = "ai-lab"
	EnvFileName = "config.env"
)

// Environment variable names.
const (
	EnvEndpoint       = "AI_SERVICE_ENDPOINT"
	EnvKey            = "AI_SERVICE_KEY"
	EnvProjectName    = "QA_PROJECT_NAME"
	EnvDeploymentName = "QA_DEPLOYMENT_NAME"
	EnvAddr           = "AI_LAB_ADDR"
	EnvLogLevel       = "LOG_LEVEL"
)

// DefaultAddr is where the web UI listens when AI_LAB_ADDR is not set.
const DefaultAddr = ":8501"

// ServiceKeys are required by every program.
var ServiceKeys = []string{EnvEndpoint, EnvKey}

// QuestionAnsweringKeys are required by the question answering programs.
var QuestionAnsweringKeys = []string{EnvEndpoint, EnvKey, EnvProjectName, EnvDeploymentName}

// Service holds the endpoint and key of an Azure AI services resource.
type Service struct {
	Endpoint string
	Key      string
}

// QuestionAnswering adds the knowledge base project and deployment to Service.
type QuestionAnswering struct {
	Service
	ProjectName    string
	DeploymentName string
}

// MissingError lists required settings that are not set.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required config: %s", strings.Join(e.Keys, ", "))
}

// Dir returns the application's config directory path.
func Dir() (string, error) {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configBase, AppName), nil
}

// LoadEnvFile loads .env from the working directory and then the config file
// in the user's config directory. Variables already present in the process
// environment win. Errors are ignored since the files may not exist.
func LoadEnvFile() {
	_ = godotenv.Load(".env")

	dir, err := Dir()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(dir, EnvFileName))
}

// Missing returns the names of any keys that are unset or blank.
func Missing(keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if strings.TrimSpace(os.Getenv(k)) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

// LoadService reads the endpoint and key. No validation of the URL or key
// format is done.
func LoadService() (Service, error) {
	if missing := Missing(ServiceKeys...); len(missing) > 0 {
		return Service{}, &MissingError{Keys: missing}
	}
	return Service{
		Endpoint: strings.TrimSpace(os.Getenv(EnvEndpoint)),
		Key:      strings.TrimSpace(os.Getenv(EnvKey)),
	}, nil
}

// LoadQuestionAnswering reads the settings of a question answering project.
func LoadQuestionAnswering() (QuestionAnswering, error) {
	if missing := Missing(QuestionAnsweringKeys...); len(missing) > 0 {
		return QuestionAnswering{}, &MissingError{Keys: missing}
	}
	return QuestionAnswering{
		Service: Service{
			Endpoint: strings.TrimSpace(os.Getenv(EnvEndpoint)),
			Key:      strings.TrimSpace(os.Getenv(EnvKey)),
		},
		ProjectName:    strings.TrimSpace(os.Getenv(EnvProjectName)),
		DeploymentName: strings.TrimSpace(os.Getenv(EnvDeploymentName)),
	}, nil
}

// Addr returns the web UI listen address.
func Addr() string {
	if addr := os.Getenv(EnvAddr); addr != "" {
		return addr
	}
	return DefaultAddr
}

// envFileOrder is the order keys are written in.
var envFileOrder = []string{EnvEndpoint, EnvKey, EnvProjectName, EnvDeploymentName}

// WriteEnvFile writes values to dir/config.env with 0600 permissions since
// the file contains the service key. Empty values are skipped. Returns the
// path written.
func WriteEnvFile(dir string, values map[string]string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(dir, EnvFileName)
	f, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	for _, key := range envFileOrder {
		val, ok := values[key]
		if !ok || val == "" {
			continue
		}
		if _, err := fmt.Fprintf(f, "%s=%q\n", key, val); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	return configPath, nil
}
