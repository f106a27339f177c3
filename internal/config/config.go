package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var AppEnv Config

type Config struct {
	MongoURI       string        `env:"MONGO_URI,required"`
	DBName         string        `env:"DB_NAME" envDefault:"console"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	Port           string        `env:"PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"text"`
	Currency       string        `env:"CURRENCY" envDefault:"TRY"`
}

// Load reads an optional .env file and then the process environment into
// AppEnv. Variables already set in the environment win over the file.
func Load(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		logrus.WithError(err).Debug(".env not loaded")
	}

	cfg, err := Parse()
	if err != nil {
		return err
	}
	AppEnv = cfg
	return nil
}

// Parse builds a Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	return cfg, nil
}
