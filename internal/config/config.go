package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// RecurrencePreset is a named RRULE an operator can pass to scheduleVolunteer
// instead of spelling out a rule on the command line
type RecurrencePreset struct {
	Name  string `yaml:"name" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL       string             `yaml:"databaseURL" validate:"required"`
	VolunteerSheetID  string             `yaml:"volunteerSheetID" validate:"required"`
	VolunteersTab     string             `yaml:"volunteersTab" validate:"required"`
	RecurrencePresets []RecurrencePreset `yaml:"recurrencePresets,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rostering_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each preset
	for i, preset := range cfg.RecurrencePresets {
		if _, err := rrule.StrToRRule(preset.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurrencePresets[%d] (%s): %w", i, preset.Name, err)
		}
	}

	return nil
}

// Preset returns the RRULE string for a named preset, or an error listing
// the configured preset names when it is unknown
func (c *Config) Preset(name string) (string, error) {
	for _, preset := range c.RecurrencePresets {
		if preset.Name == name {
			return preset.RRule, nil
		}
	}

	names := make([]string, 0, len(c.RecurrencePresets))
	for _, preset := range c.RecurrencePresets {
		names = append(names, preset.Name)
	}
	return "", fmt.Errorf("unknown recurrence preset %q (configured: %v)", name, names)
}

// findConfigFile searches for rostering_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "rostering_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
