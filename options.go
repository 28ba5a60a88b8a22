package schedcore

import "time"

// config holds the resolved scheduler configuration.
type config struct {
	masterPeriod      uint16
	tickDuration      time.Duration
	rescuePeriod      time.Duration
	loadFactor        uint32
	loadWarningLevel  uint16
	loadNormalLevel   uint16
	resetAttemptLimit int
	logger            *Logger
	watchdog          Watchdog
	statusCapture     func() uint16
	resetClassMasks   ResetClassMasks
}

// Option configures a Scheduler at construction time.
type Option interface {
	apply(*config) error
}

type optionFunc func(*config) error

func (f optionFunc) apply(c *config) error { return f(c) }

// WithMasterPeriod sets the scheduling period, in ticks.
func WithMasterPeriod(ticks uint16) Option {
	return optionFunc(func(c *config) error {
		c.masterPeriod = ticks
		return nil
	})
}

// WithTickDuration sets the real-time duration of a single tick.
func WithTickDuration(d time.Duration) Option {
	return optionFunc(func(c *config) error {
		c.tickDuration = d
		return nil
	})
}

// WithRescuePeriod sets the task-abort timeout.
func WithRescuePeriod(d time.Duration) Option {
	return optionFunc(func(c *config) error {
		c.rescuePeriod = d
		return nil
	})
}

// WithLoadMeterCalibration sets the Q16 fixed-point load factor used to
// convert idle-loop tick counts into a 0-1000 load value.
func WithLoadMeterCalibration(loadFactor uint32) Option {
	return optionFunc(func(c *config) error {
		c.loadFactor = loadFactor
		return nil
	})
}

// WithLoadThresholds sets the CPULoadOverrun fault object's trip
// (warning) and release (normal) load levels.
func WithLoadThresholds(warning, normal uint16) Option {
	return optionFunc(func(c *config) error {
		c.loadWarningLevel = warning
		c.loadNormalLevel = normal
		return nil
	})
}

// WithResetAttemptLimit sets the reset-attempt limit: the scheduler
// halts for good, instead of warm-resetting, once its count of software
// resets reaches n (so n-1 warm resets are performed before the halt).
func WithResetAttemptLimit(n int) Option {
	return optionFunc(func(c *config) error {
		c.resetAttemptLimit = n
		return nil
	})
}

// WithLogger sets the structured logger used for cycle-boundary events.
func WithLogger(l *Logger) Option {
	return optionFunc(func(c *config) error {
		c.logger = l
		return nil
	})
}

// WithWatchdog sets the external watchdog kicked once per cycle.
func WithWatchdog(w Watchdog) Option {
	return optionFunc(func(c *config) error {
		c.watchdog = w
		return nil
	})
}

// WithStatusCapture sets the application status-capture hook, called
// once per cycle; a non-zero return is treated as success, matching
// APPLICATION_CaptureSystemStatus's fres convention.
func WithStatusCapture(fn func() uint16) Option {
	return optionFunc(func(c *config) error {
		c.statusCapture = fn
		return nil
	})
}

// WithResetClassMasks overrides the default (PIC RCON-derived) reset
// classification bit masks held in the scheduler's configuration.
// Nothing in the scheduler reads them: it performs no reset-cause
// classification, and ClassifyResetCause takes its masks as an argument.
func WithResetClassMasks(m ResetClassMasks) Option {
	return optionFunc(func(c *config) error {
		c.resetClassMasks = m
		return nil
	})
}

func resolveConfig(opts []Option) (*config, error) {
	c := &config{
		masterPeriod:      1000,
		tickDuration:      10 * time.Microsecond,
		rescuePeriod:      50 * time.Millisecond,
		loadFactor:        1 << 16,
		loadWarningLevel:  50,
		loadNormalLevel:   150,
		resetAttemptLimit: 5,
		watchdog:          noopWatchdog{},
		statusCapture:     func() uint16 { return 1 },
		resetClassMasks:   defaultResetClassMasks,
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o.apply(c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = defaultLogger()
	}
	return c, nil
}
