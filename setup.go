package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pranav-c01/ICT-Training/config"
	"github.com/pranav-c01/ICT-Training/internal/cli"
)

// runSetupWizard collects the service settings and saves them to the config
// file. Returns true if setup was successful and the server should start.
func runSetupWizard(withQnA bool) bool {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	fmt.Println()
	fmt.Println(titleStyle.Render("AI services lab - Setup"))
	fmt.Println()

	endpoint := os.Getenv(config.EnvEndpoint)
	key := os.Getenv(config.EnvKey)
	project := os.Getenv(config.EnvProjectName)
	deployment := os.Getenv(config.EnvDeploymentName)

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Azure AI services endpoint").
				Description("Azure portal → your AI services resource → Keys and Endpoint").
				Placeholder("https://<resource>.cognitiveservices.azure.com/").
				Value(&endpoint).
				Validate(validateEndpoint),
			huh.NewInput().
				Title("Key").
				EchoMode(huh.EchoModePassword).
				Value(&key).
				Validate(required("key is required")),
		),
	}
	if withQnA {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Question answering project name").
				Value(&project).
				Validate(required("project name is required")),
			huh.NewInput().
				Title("Deployment name").
				Description("Usually \"production\"").
				Value(&deployment).
				Validate(required("deployment name is required")),
		))
	}

	err := huh.NewForm(groups...).WithTheme(huh.ThemeBase16()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("\nSetup cancelled.")
			return false
		}
		fmt.Printf("\nError: %v\n", err)
		return false
	}

	values := map[string]string{
		config.EnvEndpoint: strings.TrimSpace(endpoint),
		config.EnvKey:      strings.TrimSpace(key),
	}
	if withQnA {
		values[config.EnvProjectName] = strings.TrimSpace(project)
		values[config.EnvDeploymentName] = strings.TrimSpace(deployment)
	}

	dir, err := config.Dir()
	if err != nil {
		fmt.Printf("\nError saving configuration: %v\n", err)
		cli.WaitOnWindows()
		return false
	}
	configPath, err := config.WriteEnvFile(dir, values)
	if err != nil {
		fmt.Printf("\nError saving configuration: %v\n", err)
		cli.WaitOnWindows()
		return false
	}

	// Set values in current process
	for k, v := range values {
		os.Setenv(k, v)
	}

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	pathStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	fmt.Println()
	fmt.Println(successStyle.Render("✓ Configuration saved"))
	fmt.Println(pathStyle.Render("  " + configPath))
	fmt.Println()

	return true
}

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// validateEndpoint only checks the shape of the URL. The service is not
// contacted.
func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return errors.New("must be a URL like https://<resource>.cognitiveservices.azure.com/")
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return errors.New("must start with https://")
	}
	return nil
}
