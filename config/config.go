package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Config represents config info
var Config ConfList

// ScenarioConf is the per-scenario part of the configuration: the hard
// move budget and the window granularity its planner runs with.
type ScenarioConf struct {
	MoveLimit int
	Window    string
}

// ConfList has contents of config.ini
type ConfList struct {
	InitialCash decimal.Decimal
	FeeRate     decimal.Decimal
	VolumeCap   decimal.Decimal

	Small ScenarioConf
	Large ScenarioConf

	DataDir    string
	ResultsDir string

	DBdriver string
	DBname   string

	IP   string
	Port int
}

// InitConfig initializes config settings. A missing config file falls back
// to the built-in defaults; malformed values are fatal.
func InitConfig(path string) error {
	conf, err := ini.Load(path)
	if err != nil {
		logrus.Warnf("config file open error: %v, using defaults", err)
		conf = ini.Empty()
	}

	trading := conf.Section("trading")
	initialCash, err := parseDecimal(trading.Key("initial_cash").MustString("1.0"))
	if err != nil {
		return fmt.Errorf("initial_cash: %w", err)
	}
	feeRate, err := parseDecimal(trading.Key("fee_rate").MustString("0.01"))
	if err != nil {
		return fmt.Errorf("fee_rate: %w", err)
	}
	volumeCap, err := parseDecimal(trading.Key("volume_cap").MustString("0.1"))
	if err != nil {
		return fmt.Errorf("volume_cap: %w", err)
	}

	Config = ConfList{
		InitialCash: initialCash,
		FeeRate:     feeRate,
		VolumeCap:   volumeCap,
		Small: ScenarioConf{
			MoveLimit: conf.Section("small").Key("move_limit").MustInt(1000),
			Window:    conf.Section("small").Key("window").MustString("year"),
		},
		Large: ScenarioConf{
			MoveLimit: conf.Section("large").Key("move_limit").MustInt(1000000),
			Window:    conf.Section("large").Key("window").MustString("month"),
		},
		DataDir:    conf.Section("data").Key("dir").MustString("./data/Stocks"),
		ResultsDir: conf.Section("data").Key("results").MustString("./results"),
		DBdriver:   conf.Section("db").Key("driver").MustString("sqlite3"),
		DBname:     conf.Section("db").Key("name").MustString("timetravel.sqlite3"),
		IP:         conf.Section("web").Key("ip").MustString("127.0.0.1"),
		Port:       conf.Section("web").Key("port").MustInt(8080),
	}
	return Config.validate()
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad decimal %q: %w", s, err)
	}
	return d, nil
}

func (c ConfList) validate() error {
	if c.InitialCash.Sign() <= 0 {
		return fmt.Errorf("initial_cash must be positive, got %s", c.InitialCash)
	}
	if c.FeeRate.Sign() < 0 || c.FeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("fee_rate must be in [0,1), got %s", c.FeeRate)
	}
	if c.VolumeCap.Sign() <= 0 || c.VolumeCap.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("volume_cap must be in (0,1], got %s", c.VolumeCap)
	}
	for _, scn := range []struct {
		name string
		conf ScenarioConf
	}{{"small", c.Small}, {"large", c.Large}} {
		if scn.conf.MoveLimit <= 0 {
			return fmt.Errorf("%s move_limit must be positive, got %d", scn.name, scn.conf.MoveLimit)
		}
		if scn.conf.Window != "year" && scn.conf.Window != "month" {
			return fmt.Errorf("%s window must be year or month, got %q", scn.name, scn.conf.Window)
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in (0,65535], got %d", c.Port)
	}
	return nil
}
