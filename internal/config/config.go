package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production           bool          `env:"PRODUCTION" envDefault:"false"`
	Port                 string        `env:"PORT" envDefault:"80"`
	PostgresUrl          string        `env:"POSTGRES_URL,required"`
	RedisUrl             string        `env:"REDIS_URL" envDefault:"redis:6379"`
	LookaheadDays        int           `env:"LOOKAHEAD_DAYS" envDefault:"14"`
	MaterializeSchedule  string        `env:"MATERIALIZE_SCHEDULE" envDefault:"0 3 * * *"`
	Timezone             string        `env:"TIMEZONE" envDefault:"Local"`
	MaterializeWorkers   int           `env:"MATERIALIZE_WORKERS" envDefault:"4"`
	DeduplicateInstances bool          `env:"DEDUPLICATE_INSTANCES" envDefault:"true"`
	RunLockTTL           time.Duration `env:"RUN_LOCK_TTL" envDefault:"10m"`
	RunTimeout           time.Duration `env:"RUN_TIMEOUT" envDefault:"5m"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func LookaheadDays() int {
	return conf.LookaheadDays
}

func MaterializeSchedule() string {
	return conf.MaterializeSchedule
}

// Location returns the zone used to decide what "today" is.
func Location() (*time.Location, error) {
	return time.LoadLocation(conf.Timezone)
}

func MaterializeWorkers() int {
	return conf.MaterializeWorkers
}

func DeduplicateInstances() bool {
	return conf.DeduplicateInstances
}

func RunLockTTL() time.Duration {
	return conf.RunLockTTL
}

func RunTimeout() time.Duration {
	return conf.RunTimeout
}
