package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// PaymentWindowKey is the duration in seconds a buyer has to complete the fiat payment before the deadline
	PaymentWindowKey = "PAYMENT_WINDOW"
	// PaymentExpiryWarningKey is the remaining-seconds threshold below which the payment timer raises its expiry alert
	PaymentExpiryWarningKey = "PAYMENT_EXPIRY_WARNING"
	// PriceIntervalKey is the refresh cadence in seconds of the spot price cache
	PriceIntervalKey = "PRICE_INTERVAL"
	// OrderIntervalKey is the polling cadence in seconds for detecting incoming orders
	OrderIntervalKey = "ORDER_INTERVAL"
	// ChatIntervalKey is the polling cadence in seconds for detecting new chat messages on an open order
	ChatIntervalKey = "CHAT_INTERVAL"
	// NotificationIntervalKey is the polling cadence in seconds for the unread notification count
	NotificationIntervalKey = "NOTIFICATION_INTERVAL"
	// PriceEndpointKey is the URL of the JSON endpoint serving spot prices
	PriceEndpointKey = "PRICE_ENDPOINT"
	// PollRateLimitKey is the max number of poll requests per second shared by all observables
	PollRateLimitKey = "POLL_RATE_LIMIT"
	// PollBurstKey is the token burst of the shared poll rate limiter
	PollBurstKey = "POLL_BURST"
	// UserIdKey identifies the user the engine acts for in this session
	UserIdKey = "USER_ID"
	// UserNameKey is the display name shown to counterparties
	UserNameKey = "USER_NAME"

	DbLocation = "db"

	// DBBadger and DBInMemory are the supported DB_TYPE values.
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper

var defaultDatadir = appDataDir("peerdex-engine")

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("PEERDEX")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(PaymentWindowKey, 900)
	vip.SetDefault(PaymentExpiryWarningKey, 120)
	vip.SetDefault(PriceIntervalKey, 60)
	vip.SetDefault(OrderIntervalKey, 120)
	vip.SetDefault(ChatIntervalKey, 5)
	vip.SetDefault(NotificationIntervalKey, 30)
	vip.SetDefault(PollRateLimitKey, 10)
	vip.SetDefault(PollBurstKey, 1)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetSeconds reads an integer key expressed in seconds as a time.Duration.
func GetSeconds(key string) time.Duration {
	return time.Duration(GetInt(key)) * time.Second
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	if GetInt(PaymentWindowKey) <= 0 {
		return fmt.Errorf("%s must be a positive number of seconds", PaymentWindowKey)
	}
	if GetInt(PaymentExpiryWarningKey) >= GetInt(PaymentWindowKey) {
		return fmt.Errorf(
			"%s must be smaller than %s", PaymentExpiryWarningKey, PaymentWindowKey,
		)
	}

	for _, key := range []string{
		PriceIntervalKey, OrderIntervalKey, ChatIntervalKey,
		NotificationIntervalKey, PollRateLimitKey,
	} {
		if GetInt(key) <= 0 {
			return fmt.Errorf("%s must be a positive number", key)
		}
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if GetString(DBTypeKey) == DBBadger {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func appDataDir(appName string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}
