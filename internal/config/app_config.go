package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/ctc/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Copy  CopyCommandConfiguration `mapstructure:"copy"`
	Paths PathConfiguration        `mapstructure:"paths"`
}

// CopyCommandConfiguration defines default limits for the copy command.
// Pointer fields distinguish "unset" from an explicit zero.
type CopyCommandConfiguration struct {
	MaxFiles  *int   `mapstructure:"max_files"`
	MaxChars  *int   `mapstructure:"max_chars"`
	MaxTokens *int   `mapstructure:"max_tokens"`
	Model     string `mapstructure:"model"`
}

// PathConfiguration configures exclusion rules applied during selection.
type PathConfiguration struct {
	Exclude      []string `mapstructure:"exclude"`
	UseGitignore *bool    `mapstructure:"use_gitignore"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The global file under the user home is applied first, then the local file
// overlays it.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Paths.Exclude = utils.DeduplicateStrings(merged.Paths.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Copy = result.Copy.merge(override.Copy)
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (config CopyCommandConfiguration) merge(override CopyCommandConfiguration) CopyCommandConfiguration {
	result := config
	if override.MaxFiles != nil {
		result.MaxFiles = cloneInt(override.MaxFiles)
	}
	if override.MaxChars != nil {
		result.MaxChars = cloneInt(override.MaxChars)
	}
	if override.MaxTokens != nil {
		result.MaxTokens = cloneInt(override.MaxTokens)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicateStrings(override.Exclude)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
