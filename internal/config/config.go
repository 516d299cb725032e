package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Board    BoardConfig    `mapstructure:"board"`
}

// ServerConfig contains process-level settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// BoardConfig contains settings for the content engine itself.
type BoardConfig struct {
	// InvitationCodeLength is the number of characters in generated
	// invitation codes.
	InvitationCodeLength int `mapstructure:"invitation_code_length" validate:"omitempty,gte=4,lte=10"`
}
