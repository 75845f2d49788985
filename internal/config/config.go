package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

type GameConfig struct {
	Size      int `json:"size"`
	MineCount int `json:"mine_count"`
	MaxSize   int `json:"max_size"` /* largest board a client may request */
}

const MinSessionTTL = time.Second

type LogConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type Config struct {
	Mode       string     `json:"mode"`
	Addr       string     `json:"addr"`
	Game       GameConfig `json:"game"`
	Jwt        JwtConfig  `json:"jwt"`
	Log        LogConfig  `json:"log"`
	SessionTTL Duration   `json:"session_ttl"`
}

func Default() Config {
	return Config{
		Mode: "development",
		Addr: ":8080",
		Game: GameConfig{Size: 10, MineCount: 10, MaxSize: 100},
		Jwt: JwtConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
		Log: LogConfig{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		SessionTTL: Duration{time.Hour},
	}
}

// ReadConfig layers the JSON file at path over [Default]. An empty path
// skips the file. Environment overrides are applied last.
func ReadConfig(path string) (Config, error) {
	config := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("unable to read config %s: %w", path, err)
		}
		if err := json.Unmarshal(b, &config); err != nil {
			return config, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}
	config.applyEnv()
	return config, config.Validate()
}

func (c *Config) applyEnv() {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	}
	if secret, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Jwt.Secret = secret
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok && development != "0" {
		c.Mode = "development"
	}
}

func (c Config) Validate() error {
	if err := mines.Validate(c.Game.Size, c.Game.MineCount); err != nil {
		return fmt.Errorf("invalid game defaults: %w", err)
	}
	if c.Game.Size > c.Game.MaxSize {
		return fmt.Errorf("%w: default size %d exceeds max_size %d",
			mines.ErrInvalidDimension, c.Game.Size, c.Game.MaxSize)
	}
	if c.Production() && c.Jwt.Secret == "" {
		return errors.New("jwt secret must be set in production")
	}
	if c.SessionTTL.Duration < MinSessionTTL {
		return fmt.Errorf("session_ttl must be at least %s", MinSessionTTL)
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":               c.Mode,
		"addr":               c.Addr,
		"game_size":          c.Game.Size,
		"game_mine_count":    c.Game.MineCount,
		"game_max_size":      c.Game.MaxSize,
		"jwt_token_lifetime": c.Jwt.TokenLifetime.Duration.String(),
		"log_path":           c.Log.Path,
		"session_ttl":        c.SessionTTL.Duration.String(),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}
