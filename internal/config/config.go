// Package config holds the immutable configuration of indicators, risk limits
// and the signal strategy. Live position state is kept elsewhere.
package config

import (
	"encoding/json"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the range of config file versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// CurrentVersion is written by Default.
const CurrentVersion = "1.0.0"

type MACDConfig struct {
	Fast   int `yaml:"fast" json:"fast" jsonschema:"title=Fast Span,default=12" validate:"gt=0"`
	Slow   int `yaml:"slow" json:"slow" jsonschema:"title=Slow Span,default=26" validate:"gt=0,gtfield=Fast"`
	Signal int `yaml:"signal" json:"signal" jsonschema:"title=Signal Span,default=9" validate:"gt=0"`
}

type KDJConfig struct {
	N  int `yaml:"n" json:"n" jsonschema:"title=RSV Window,default=9" validate:"gt=0"`
	M1 int `yaml:"m1" json:"m1" jsonschema:"title=K Smoothing,default=3" validate:"gt=0"`
	M2 int `yaml:"m2" json:"m2" jsonschema:"title=D Smoothing,default=3" validate:"gt=0"`
}

type BollingerConfig struct {
	Period int     `yaml:"period" json:"period" jsonschema:"title=Period,default=20" validate:"gt=0"`
	K      float64 `yaml:"k" json:"k" jsonschema:"title=Band Width,description=Number of standard deviations,default=2" validate:"gt=0"`
}

// IndicatorConfig selects which indicator columns are computed.
type IndicatorConfig struct {
	MAPeriods  []int           `yaml:"ma_periods" json:"ma_periods" jsonschema:"title=MA Periods" validate:"dive,gt=0"`
	EMAPeriods []int           `yaml:"ema_periods" json:"ema_periods" jsonschema:"title=EMA Spans" validate:"dive,gt=0"`
	MACD       MACDConfig      `yaml:"macd" json:"macd"`
	KDJ        KDJConfig       `yaml:"kdj" json:"kdj"`
	RSIPeriods []int           `yaml:"rsi_periods" json:"rsi_periods" jsonschema:"title=RSI Periods" validate:"dive,gt=0"`
	Bollinger  BollingerConfig `yaml:"boll" json:"boll"`
	ATRPeriod  int             `yaml:"atr_period" json:"atr_period" jsonschema:"title=ATR Period,default=14" validate:"gt=0"`
}

// RiskConfig drives stop-loss, trailing take-profit and entry sizing.
type RiskConfig struct {
	StopLossPct     float64 `yaml:"stop_loss_pct" json:"stop_loss_pct" jsonschema:"title=Stop Loss %,default=5" validate:"gt=0,lt=100"`
	TakeProfitPct   float64 `yaml:"take_profit_pct" json:"take_profit_pct" jsonschema:"title=Trailing Take Profit %,description=Drawdown from the trailing extreme that closes the position,default=10" validate:"gt=0,lt=100"`
	RiskPercent     float64 `yaml:"risk_percent" json:"risk_percent" jsonschema:"title=Risk % Per Trade,default=2" validate:"gt=0,lte=100"`
	MaxPositionSize int     `yaml:"max_position_size" json:"max_position_size" jsonschema:"title=Max Position Size,default=100" validate:"gt=0"`
}

// StrategyConfig selects the entry/exit crossover and the policy switches.
type StrategyConfig struct {
	Name            string  `yaml:"name" json:"name" jsonschema:"title=Strategy,enum=dual_ma,enum=macd,enum=rsi,default=dual_ma" validate:"required,oneof=dual_ma macd rsi"`
	FastWindow      int     `yaml:"fast_window" json:"fast_window" jsonschema:"title=Fast MA Window,default=5" validate:"gt=0"`
	SlowWindow      int     `yaml:"slow_window" json:"slow_window" jsonschema:"title=Slow MA Window,default=20" validate:"gt=0,gtfield=FastWindow"`
	RSIPeriod       int     `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI Period,default=14" validate:"gt=0"`
	Oversold        float64 `yaml:"oversold" json:"oversold" jsonschema:"title=RSI Oversold,default=30" validate:"gte=0,lte=100,ltfield=Overbought"`
	Overbought      float64 `yaml:"overbought" json:"overbought" jsonschema:"title=RSI Overbought,default=70" validate:"gte=0,lte=100"`
	AllowShort      bool    `yaml:"allow_short" json:"allow_short" jsonschema:"title=Allow Short Entries,default=false"`
	VolumeThreshold float64 `yaml:"volume_threshold" json:"volume_threshold" jsonschema:"title=Volume Threshold,description=Bars below this volume never open positions. 0 disables the filter,default=0" validate:"gte=0"`
	Capital         float64 `yaml:"capital" json:"capital" jsonschema:"title=Capital,description=Account capital used for entry sizing,default=100000" validate:"gt=0"`
}

type Config struct {
	Version    string          `yaml:"version" json:"version" jsonschema:"title=Config Version,default=1.0.0" validate:"required"`
	Indicators IndicatorConfig `yaml:"indicators" json:"indicators"`
	Risk       RiskConfig      `yaml:"risk" json:"risk"`
	Strategy   StrategyConfig  `yaml:"strategy" json:"strategy"`
}

// Default returns the configuration with every documented default.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Indicators: IndicatorConfig{
			MAPeriods:  []int{5, 10, 20, 60},
			EMAPeriods: []int{12, 26},
			MACD:       MACDConfig{Fast: 12, Slow: 26, Signal: 9},
			KDJ:        KDJConfig{N: 9, M1: 3, M2: 3},
			RSIPeriods: []int{6, 12, 24},
			Bollinger:  BollingerConfig{Period: 20, K: 2},
			ATRPeriod:  14,
		},
		Risk: RiskConfig{
			StopLossPct:     5,
			TakeProfitPct:   10,
			RiskPercent:     2,
			MaxPositionSize: 100,
		},
		Strategy: StrategyConfig{
			Name:            "dual_ma",
			FastWindow:      5,
			SlowWindow:      20,
			RSIPeriod:       14,
			Oversold:        30,
			Overbought:      70,
			AllowShort:      false,
			VolumeThreshold: 0,
			Capital:         100000,
		},
	}
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, "invalid version constraint", err)
	}

	version, err := semver.NewVersion(c.Version)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version %q", c.Version)
	}

	if !constraint.Check(version) {
		return errors.Newf(errors.ErrCodeInvalidVersion, "config version %s is not in %s", c.Version, SupportedVersions)
	}

	return nil
}

// Parse overlays YAML onto the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// JSONSchema returns the JSON schema of Config.
func JSONSchema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
