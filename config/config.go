package config

import (
	"io"
	"io/ioutil"
	"net"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"

	"github.com/9seconds/geoenrich/geolib"
	"github.com/9seconds/geoenrich/providers"
)

type duration struct {
	time.Duration
}

func (dur *duration) UnmarshalText(text []byte) (err error) {
	dur.Duration, err = time.ParseDuration(string(text))
	return
}

type Config struct {
	DBPath        string       `toml:"db_path"`
	Shape         geolib.Shape `toml:"shape"`
	Locale        string       `toml:"locale"`
	CacheSize     int          `toml:"cache_size"`
	LookupTimeout duration     `toml:"lookup_timeout"`
	SkipNetworks  []string     `toml:"skip_networks"`
	Listen        string       `toml:"listen"`
	APIUser       string       `toml:"api_user"`
	APIPassword   string       `toml:"api_password"`
}

// Default returns configuration which is used if nothing is set.
func Default() *Config {
	return &Config{
		DBPath:        providers.DefaultDirectory,
		Shape:         geolib.ShapeMinimal,
		Locale:        geolib.DefaultLocale,
		CacheSize:     geolib.DefaultCacheSize,
		LookupTimeout: duration{geolib.DefaultLookupTimeout},
		SkipNetworks:  append([]string{}, providers.DefaultSkipNetworks...),
	}
}

// Decode reads TOML configuration without validation. Missing keys keep
// their default values.
func Decode(reader io.Reader) (*Config, error) {
	conf := Default()

	buf, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, errors.Annotate(err, "Cannot read config file")
	}

	if _, err := toml.Decode(string(buf), conf); err != nil {
		return nil, errors.Annotate(err, "Cannot parse config file")
	}

	return conf, nil
}

// Parse reads and validates TOML configuration.
func Parse(reader io.Reader) (*Config, error) {
	conf, err := Decode(reader)
	if err != nil {
		return nil, err
	}

	if err = conf.Validate(); err != nil {
		return nil, errors.Annotate(err, "Invalid value")
	}

	return conf, nil
}

// Validate checks configuration after all overrides are applied.
func (c *Config) Validate() error {
	if c.CacheSize <= 0 {
		return errors.Errorf("Incorrect cache size %d", c.CacheSize)
	}

	if c.LookupTimeout.Duration <= 0 {
		return errors.Errorf("Incorrect lookup timeout %s", c.LookupTimeout.Duration)
	}

	if c.Locale == "" {
		return errors.New("Locale should be set")
	}

	if c.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Listen); err != nil {
			return errors.Annotatef(err, "Incorrect host:port to listen %s", c.Listen)
		}
	}

	if (c.APIUser == "") != (c.APIPassword == "") {
		return errors.New("Both api_user and api_password should be set")
	}

	stat, err := os.Stat(c.DBPath)
	if err != nil {
		return errors.Annotatef(err, "Incorrect directory %s", c.DBPath)
	}

	if !stat.IsDir() {
		return errors.Errorf("Incorrect directory %s", c.DBPath)
	}

	return nil
}
