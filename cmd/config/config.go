package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-hotkey/pkg/logging"
	"github.com/mattsolo1/grove-hotkey/pkg/service"
)

var cfgFile string

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "hk")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HK")

	home := os.Getenv("HOME")
	dataDir := filepath.Join(home, ".local", "share", "hk")

	// Set defaults
	viper.SetDefault("vault_dir", filepath.Join(home, "notes"))
	viper.SetDefault("data_dir", dataDir)
	viper.SetDefault("settings_file", filepath.Join(dataDir, "settings.yaml"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("open_editor", false)

	defaults := logging.DefaultConfig()
	viper.SetDefault("log_level", defaults.Level)
	viper.SetDefault("log_file", "")
	viper.SetDefault("log_max_size_mb", defaults.MaxSizeMB)
	viper.SetDefault("log_max_backups", defaults.MaxBackups)
	viper.SetDefault("log_max_age_days", defaults.MaxAgeDays)

	// A missing config file is fine; defaults and env cover it.
	_ = viper.ReadInConfig()
}

// LoggingConfig reads the log_* keys.
func LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = viper.GetString("log_level")
	cfg.File = expandHome(viper.GetString("log_file"))
	cfg.MaxSizeMB = viper.GetInt("log_max_size_mb")
	cfg.MaxBackups = viper.GetInt("log_max_backups")
	cfg.MaxAgeDays = viper.GetInt("log_max_age_days")
	return cfg
}

// ServiceConfig reads the keys the service needs.
func ServiceConfig() *service.Config {
	return &service.Config{
		VaultDir:     expandHome(viper.GetString("vault_dir")),
		DataDir:      expandHome(viper.GetString("data_dir")),
		SettingsFile: expandHome(viper.GetString("settings_file")),
		Editor:       viper.GetString("editor"),
		OpenEditor:   viper.GetBool("open_editor"),
	}
}

func InitService(logger *logrus.Logger) (*service.Service, error) {
	cfg := ServiceConfig()
	if cfg.VaultDir == "" {
		return nil, fmt.Errorf("vault_dir is not set")
	}

	svc, err := service.New(cfg, service.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"vault":    cfg.VaultDir,
		"settings": cfg.SettingsFile,
		"config":   viper.ConfigFileUsed(),
	}).Debug("Service initialized")
	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/hk/config.yaml)")
	cmd.PersistentFlags().String("vault", "", "Vault directory notes are resolved against")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cobra.CheckErr(viper.BindPFlag("vault_dir", cmd.PersistentFlags().Lookup("vault")))
	cobra.CheckErr(viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level")))
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
