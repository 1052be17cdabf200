package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBUrl      string `mapstructure:"DB_URL"`
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	NominatimURL string `mapstructure:"NOMINATIM_URL"`
	OSRMURL      string `mapstructure:"OSRM_URL"`

	SimFoundDelay     time.Duration `mapstructure:"SIM_FOUND_DELAY"`
	SimArrivingDelay  time.Duration `mapstructure:"SIM_ARRIVING_DELAY"`
	SimCountdownStart int           `mapstructure:"SIM_COUNTDOWN_START"`
	SimTickInterval   time.Duration `mapstructure:"SIM_TICK_INTERVAL"`
}

func Load() (Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("JWT_TTL", 24*time.Hour)
	viper.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("OSRM_URL", "https://router.project-osrm.org")
	viper.SetDefault("SIM_FOUND_DELAY", 2500*time.Millisecond)
	viper.SetDefault("SIM_ARRIVING_DELAY", 5*time.Second)
	viper.SetDefault("SIM_COUNTDOWN_START", 5)
	viper.SetDefault("SIM_TICK_INTERVAL", time.Second)

	if err := viper.ReadInConfig(); err != nil {
	}

	var cfg Config
	err := viper.Unmarshal(&cfg)
	return cfg, err
}
