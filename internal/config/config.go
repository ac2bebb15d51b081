// Package config wires Viper as the flat key-value settings store: encoding
// parameters, the ffmpeg path, and the last-used state persist between runs
// the same way the original converter kept them in an INI file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vid2anim/internal/dirs"
	"vid2anim/internal/model"
)

// Settings is the persisted state: the last-used format, the full parameter
// bundle for both formats, and the tool paths.
type Settings struct {
	FFmpegPath   string
	LastVideoDir string
	Format       model.Format
	Bundle       model.ParameterBundle
}

const (
	keyFFmpegPath   = "ffmpeg_path"
	keyLastVideoDir = "last_video_path"
	keyFormat       = "format"
)

// Init wires Viper with config paths, env, defaults, and flag bindings.
// It is non-fatal: any errors are returned for optional handling by caller.
func Init(root *cobra.Command) error {
	// Ensure base directories exist
	_ = dirs.EnsureAll()

	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: VID2ANIM_*
	viper.SetEnvPrefix("VID2ANIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Bind root persistent flags to Viper keys
	_ = viper.BindPFlag(keyFFmpegPath, root.PersistentFlags().Lookup("ffmpeg"))
	_ = viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	// Read config file if present (ignore not found)
	_ = viper.ReadInConfig()

	return nil
}

func setDefaults() {
	for k, v := range model.DefaultBundle() {
		viper.SetDefault(k, v)
	}
	viper.SetDefault(keyFFmpegPath, "")
	viper.SetDefault(keyFormat, string(model.FormatAVIF))
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault(keyLastVideoDir, home)
}

// Load resolves the current settings from flags, env, config file, and
// defaults, in that precedence order.
func Load() Settings {
	bundle := model.DefaultBundle()
	for _, k := range model.BundleKeys {
		if v := viper.GetString(k); v != "" {
			bundle[k] = v
		}
	}

	format, err := model.ParseFormat(viper.GetString(keyFormat))
	if err != nil {
		format = model.FormatAVIF
	}

	return Settings{
		FFmpegPath:   viper.GetString(keyFFmpegPath),
		LastVideoDir: viper.GetString(keyLastVideoDir),
		Format:       format,
		Bundle:       bundle,
	}
}

// Save persists the settings to the config file, creating it on first use.
func Save(s Settings) error {
	for k, v := range s.Bundle {
		viper.Set(k, v)
	}
	viper.Set(keyFFmpegPath, s.FFmpegPath)
	viper.Set(keyLastVideoDir, s.LastVideoDir)
	viper.Set(keyFormat, string(s.Format))

	cfgDir, err := dirs.ConfigDir()
	if err != nil {
		return err
	}
	if err := dirs.Ensure(cfgDir); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(cfgDir, "config.yaml"))
}
