package main

import (
	"testing"

	"github.com/pranav-c01/ICT-Training/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApps(t *testing.T) {
	e, err := parseApps("text,qna,image")
	require.NoError(t, err)
	assert.Equal(t, enabledApps{text: true, qna: true, image: true}, e)

	e, err = parseApps(" Image , ")
	require.NoError(t, err)
	assert.Equal(t, enabledApps{image: true}, e)

	_, err = parseApps("text,speech")
	assert.ErrorContains(t, err, `unknown app "speech"`)

	_, err = parseApps("")
	assert.Error(t, err)
}

func TestLoadConfig_QnARequiresProject(t *testing.T) {
	t.Setenv(config.EnvEndpoint, "https://example.cognitiveservices.azure.com/")
	t.Setenv(config.EnvKey, "secret")
	t.Setenv(config.EnvProjectName, "")
	t.Setenv(config.EnvDeploymentName, "")

	cfg, err := loadConfig(enabledApps{text: true, image: true})
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Key)

	_, err = loadConfig(enabledApps{qna: true})
	var missing *config.MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{config.EnvProjectName, config.EnvDeploymentName}, missing.Keys)
}

func TestBuildApps_OnlyEnabled(t *testing.T) {
	apps := buildApps(enabledApps{qna: true}, config.QuestionAnswering{
		Service:        config.Service{Endpoint: "https://example.cognitiveservices.azure.com/", Key: "k"},
		ProjectName:    "LearnFAQ",
		DeploymentName: "production",
	})

	assert.Nil(t, apps.Text)
	assert.Nil(t, apps.Image)
	assert.NotNil(t, apps.QnA)
}

func TestValidateEndpoint(t *testing.T) {
	assert.NoError(t, validateEndpoint("https://lab.cognitiveservices.azure.com/"))
	assert.Error(t, validateEndpoint(""))
	assert.Error(t, validateEndpoint("lab.cognitiveservices.azure.com"))
	assert.Error(t, validateEndpoint("ftp://lab.cognitiveservices.azure.com"))
}
