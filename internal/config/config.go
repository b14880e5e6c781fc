package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                       string   `mapstructure:"PORT"`
	DatabasePath               string   `mapstructure:"DATABASE_PATH"`
	JWTSecret                  string   `mapstructure:"JWT_SECRET"`
	UploadDir                  string   `mapstructure:"UPLOAD_DIR"`
	MaxUploadBytes             int64    `mapstructure:"MAX_UPLOAD_BYTES"`
	AllowedPhotoExts           []string `mapstructure:"ALLOWED_PHOTO_EXTS"`
	EnforceUniqueParticipation bool     `mapstructure:"ENFORCE_UNIQUE_PARTICIPATION"`
	AdminEmail                 string   `mapstructure:"ADMIN_EMAIL"`
	AdminPassword              string   `mapstructure:"ADMIN_PASSWORD"`
	ClubName                   string   `mapstructure:"CLUB_NAME"`
	DiscordBotToken            string   `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordEventsChannelID     string   `mapstructure:"DISCORD_EVENTS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "club.db")
	viper.SetDefault("UPLOAD_DIR", "static/uploads")
	viper.SetDefault("MAX_UPLOAD_BYTES", 2*1024*1024)
	viper.SetDefault("ALLOWED_PHOTO_EXTS", []string{"jpg", "jpeg", "png"})
	viper.SetDefault("ADMIN_EMAIL", "admin@club.com")
	viper.SetDefault("ADMIN_PASSWORD", "admin")
	viper.SetDefault("CLUB_NAME", "Mon Club")

	viper.BindEnv("PORT")
	viper.BindEnv("DATABASE_PATH")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("UPLOAD_DIR")
	viper.BindEnv("MAX_UPLOAD_BYTES")
	viper.BindEnv("ALLOWED_PHOTO_EXTS")
	viper.BindEnv("ENFORCE_UNIQUE_PARTICIPATION")
	viper.BindEnv("ADMIN_EMAIL")
	viper.BindEnv("ADMIN_PASSWORD")
	viper.BindEnv("CLUB_NAME")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_EVENTS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
