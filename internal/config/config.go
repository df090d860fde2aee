// Package config builds the validated daemon configuration from flags,
// environment variables and an optional config file.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/sweeney/fan-control/internal/gpio"
	"github.com/sweeney/fan-control/internal/logic"
	"github.com/sweeney/fan-control/internal/thermal"
)

// EnvPrefix is prepended to every environment variable, e.g. FAN_CONTROL_ON_TEMP.
const EnvPrefix = "FAN_CONTROL"

// Keys shared by flags, environment and config file.
const (
	KeyChip     = "chip"
	KeyOffset   = "offset"
	KeyOnTemp   = "on-temp"
	KeyOffTemp  = "off-temp"
	KeyInterval = "interval"
	KeyVerbose  = "verbose"
	KeySensor   = "sensor"
	KeyBroker   = "broker"
	KeyHTTP     = "http"
)

const (
	DefaultOnTemp     = 60.0
	DefaultOffTemp    = 45.0
	DefaultIntervalMs = 2000
)

// maxCelsius bounds threshold input so the milli-degree value fits any int.
const maxCelsius = math.MaxInt32 / 1000

// Config is the immutable daemon configuration.
type Config struct {
	Chip       string
	Offset     int
	Thresholds logic.Thresholds
	Interval   time.Duration
	Verbose    bool
	SensorPath string
	Broker     string // MQTT broker URL; empty disables publishing
	HTTPAddr   string // status server address; empty disables it
}

// Error reports an invalid configuration value.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewThresholds validates an on/off pair in milli-degrees Celsius.
func NewThresholds(on, off int) (logic.Thresholds, error) {
	t := logic.Thresholds{On: on, Off: off}
	if !t.Valid() {
		return logic.Thresholds{}, &Error{
			Field:  "thresholds",
			Reason: fmt.Sprintf("on temperature %.1f°C must be above off temperature %.1f°C", logic.Celsius(on), logic.Celsius(off)),
		}
	}
	return t, nil
}

// MilliCelsius converts degrees to milli-degrees, rounding to the nearest unit.
func MilliCelsius(c float64) int {
	return int(math.Round(c * 1000))
}

// New initialises a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaultValues(v)
	return v
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault(KeyChip, gpio.DefaultChip)
	v.SetDefault(KeyOnTemp, DefaultOnTemp)
	v.SetDefault(KeyOffTemp, DefaultOffTemp)
	v.SetDefault(KeyInterval, DefaultIntervalMs)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeySensor, thermal.DefaultPath)
	v.SetDefault(KeyBroker, "")
	v.SetDefault(KeyHTTP, "")
}

// ReadFile merges a YAML (or any viper-supported) config file into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

// Load resolves and validates the configuration held by v.
// The line offset has no default and must be set explicitly.
func Load(v *viper.Viper) (Config, error) {
	if !v.IsSet(KeyOffset) {
		return Config{}, &Error{Field: KeyOffset, Reason: "line offset is required"}
	}

	on, err := celsiusKey(v, KeyOnTemp)
	if err != nil {
		return Config{}, err
	}
	off, err := celsiusKey(v, KeyOffTemp)
	if err != nil {
		return Config{}, err
	}
	thresholds, err := NewThresholds(on, off)
	if err != nil {
		return Config{}, err
	}

	offset, err := intKey(v, KeyOffset)
	if err != nil {
		return Config{}, err
	}
	intervalMs, err := cast.ToInt64E(v.Get(KeyInterval))
	if err != nil {
		return Config{}, &Error{Field: KeyInterval, Reason: fmt.Sprintf("%v is not a whole number of milliseconds", v.Get(KeyInterval))}
	}
	if intervalMs <= 0 {
		return Config{}, &Error{Field: KeyInterval, Reason: fmt.Sprintf("%d ms must be > 0", intervalMs)}
	}

	verbose, err := cast.ToBoolE(v.Get(KeyVerbose))
	if err != nil {
		return Config{}, &Error{Field: KeyVerbose, Reason: fmt.Sprintf("%v is not a boolean", v.Get(KeyVerbose))}
	}

	cfg := Config{
		Chip:       v.GetString(KeyChip),
		Offset:     offset,
		Thresholds: thresholds,
		Interval:   time.Duration(intervalMs) * time.Millisecond,
		Verbose:    verbose,
		SensorPath: v.GetString(KeySensor),
		Broker:     v.GetString(KeyBroker),
		HTTPAddr:   v.GetString(KeyHTTP),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// intKey reads key as an integer. Values that do not parse are rejected
// rather than read as zero.
func intKey(v *viper.Viper, key string) (int, error) {
	n, err := cast.ToIntE(v.Get(key))
	if err != nil {
		return 0, &Error{Field: key, Reason: fmt.Sprintf("%v is not an integer", v.Get(key))}
	}
	return n, nil
}

func celsiusKey(v *viper.Viper, key string) (int, error) {
	c, err := cast.ToFloat64E(v.Get(key))
	if err != nil {
		return 0, &Error{Field: key, Reason: fmt.Sprintf("%v is not a temperature in °C", v.Get(key))}
	}
	if math.IsNaN(c) || math.IsInf(c, 0) || math.Abs(c) > maxCelsius {
		return 0, &Error{Field: key, Reason: fmt.Sprintf("%v°C is out of range", c)}
	}
	return MilliCelsius(c), nil
}

// Validate checks every invariant of c.
func (c Config) Validate() error {
	if c.Chip == "" {
		return &Error{Field: KeyChip, Reason: "chip path is empty"}
	}
	if c.Offset < 0 {
		return &Error{Field: KeyOffset, Reason: fmt.Sprintf("%d must be >= 0", c.Offset)}
	}
	if !c.Thresholds.Valid() {
		_, err := NewThresholds(c.Thresholds.On, c.Thresholds.Off)
		return err
	}
	if c.Interval <= 0 {
		return &Error{Field: KeyInterval, Reason: "poll interval must be > 0"}
	}
	if c.SensorPath == "" {
		return &Error{Field: KeySensor, Reason: "sensor path is empty"}
	}
	return nil
}
