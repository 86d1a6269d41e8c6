package config

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/storewatch/internal/fees/domain"
	"github.com/spf13/viper"
)

// feeFile is the on-disk shape of fees.yml. Tier keys arrive as strings and
// are converted on load.
type feeFile struct {
	BaseRate     float64            `mapstructure:"baseRate"`
	TransferRate float64            `mapstructure:"transferRate"`
	VATFactor    float64            `mapstructure:"vatFactor"`
	Tiers        map[string]float64 `mapstructure:"tiers"`
}

// FeeConfigHolder exposes the current default fee schedule. The file is
// optional; without it the calibrated defaults apply. Sessions copy the
// schedule and adjust it without touching the holder.
type FeeConfigHolder struct {
	current atomic.Value // holds fees domain.Schedule
}

func NewFeeConfigHolder() (*FeeConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("fees")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/storewatch/config")
	v.AddConfigPath("/etc/storewatch")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STOREWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &FeeConfigHolder{}
	holder.current.Store(domain.DefaultSchedule())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return holder, nil
	}

	schedule, err := loadSchedule(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(schedule)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := loadSchedule(v)
		if err != nil {
			log.Printf("[fee-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[fee-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *FeeConfigHolder) Get() domain.Schedule {
	return h.current.Load().(domain.Schedule)
}

func loadSchedule(v *viper.Viper) (domain.Schedule, error) {
	var file feeFile
	if err := v.UnmarshalKey("fees", &file); err != nil {
		return domain.Schedule{}, err
	}

	schedule := domain.Schedule{
		BaseRate:     file.BaseRate,
		TransferRate: file.TransferRate,
		VATFactor:    file.VATFactor,
		Tiers:        make(map[int]float64, len(file.Tiers)),
	}
	for key, surcharge := range file.Tiers {
		tier, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || tier < 1 {
			return domain.Schedule{}, errors.New("fees.tiers keys must be positive installment counts")
		}
		schedule.Tiers[tier] = surcharge
	}

	if err := ValidateSchedule(schedule); err != nil {
		return domain.Schedule{}, err
	}
	return schedule, nil
}

// ValidateSchedule rejects schedules that cannot price an order sanely.
func ValidateSchedule(s domain.Schedule) error {
	if s.VATFactor < 1 {
		return errors.New("fees.vatFactor must be >= 1")
	}
	if s.BaseRate < 0 || s.BaseRate >= 1 || s.TransferRate < 0 || s.TransferRate >= 1 {
		return errors.New("fees rates must be in [0,1)")
	}
	if len(s.Tiers) == 0 {
		return errors.New("fees.tiers cannot be empty")
	}
	for _, surcharge := range s.Tiers {
		if surcharge < 0 {
			return errors.New("fees.tiers surcharges cannot be negative")
		}
	}
	return nil
}
