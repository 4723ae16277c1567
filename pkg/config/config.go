package config

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DOTLINK_"

// settingKeys are the only keys the environment may set.
var settingKeys = map[string]bool{
	"home":    true,
	"repo":    true,
	"dry_run": true,
	"format":  true,
}

// Config is the effective configuration for one run.
type Config struct {
	Home   string `koanf:"home"`
	Repo   string `koanf:"repo"`
	DryRun bool   `koanf:"dry_run"`
	Format string `koanf:"format"`

	Mapping Mapping `koanf:"-"`
}

// Load reads the embedded defaults and applies DOTLINK_* overrides.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envSetting), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf(&cfg)); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	mapping, err := mappingFrom(k)
	if err != nil {
		return nil, err
	}
	cfg.Mapping = mapping

	return &cfg, nil
}

// ParseMapping builds a Mapping from a TOML document laid out like the
// embedded defaults.
func ParseMapping(data []byte) (Mapping, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return Mapping{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to parse mapping")
	}
	return mappingFrom(k)
}

// DefaultMapping returns the compiled-in mapping.
func DefaultMapping() Mapping {
	m, err := ParseMapping(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("embedded mapping is invalid: %v", err))
	}
	return m
}

func mappingFrom(k *koanf.Koanf) (Mapping, error) {
	var categories []Category
	if err := k.UnmarshalWithConf("mapping", &categories, unmarshalConf(&categories)); err != nil {
		return Mapping{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal mapping")
	}
	return NewMapping(categories...)
}

// envSetting maps DOTLINK_DRY_RUN to dry_run. Variables that are empty or
// do not name a known setting are dropped, so they leave the defaults alone.
func envSetting(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if !settingKeys[key] || value == "" {
		return "", nil
	}
	return key, value
}

func unmarshalConf(result interface{}) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           result,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
}
