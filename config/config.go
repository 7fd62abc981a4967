package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// ListenAddrKey is the address <host:port> where the HTTP interface will listen on
	ListenAddrKey = "LISTEN_ADDR"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// SweepIntervalKey is the period in seconds between two runs of the expired records sweeper
	SweepIntervalKey = "SWEEP_INTERVAL"
	// ProbeTimeoutKey is the dial timeout in seconds of a single owner liveness probe
	ProbeTimeoutKey = "PROBE_TIMEOUT"
	// ProbesPerSecondKey caps the rate of owner liveness probes
	ProbesPerSecondKey = "PROBES_PER_SECOND"

	DbLocation = "db"

	// DBBadger and DBInMemory are the supported DB_TYPE values.
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("offerbook-daemon", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("OFFERD")
	vip.AutomaticEnv()

	vip.SetDefault(ListenAddrKey, ":9945")
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(SweepIntervalKey, 60)
	vip.SetDefault(ProbeTimeoutKey, 10)
	vip.SetDefault(ProbesPerSecondKey, 5)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetDuration returns the value of the given key as a number of seconds.
func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the location of the db files inside the datadir.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if dbType := GetString(DBTypeKey); dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"db type must be either '%s' or '%s'", DBBadger, DBInMemory,
		)
	}

	if GetInt(SweepIntervalKey) <= 0 {
		return fmt.Errorf("sweep interval must be a positive number of seconds")
	}
	if GetInt(ProbeTimeoutKey) <= 0 {
		return fmt.Errorf("probe timeout must be a positive number of seconds")
	}
	if GetInt(ProbesPerSecondKey) <= 0 {
		return fmt.Errorf("probes per second must be positive")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
