package recurrence

import (
	"io"
	"log/slog"
	"time"
)

// Engine generates occurrence date sequences from recurrence configurations.
// Generation is a pure computation: no I/O, no retained state between calls,
// safe to invoke from latency-sensitive interactive callbacks.
type Engine struct {
	opts   Options
	logger *slog.Logger
	cache  *PreviewCache
}

// EngineConfig holds construction options for an Engine
type EngineConfig struct {
	Options      Options
	CacheEnabled bool
	CacheConfig  CacheConfig
	Logger       *slog.Logger // nil discards log output
}

// DefaultEngineConfig provides sensible defaults for interactive use
var DefaultEngineConfig = EngineConfig{
	Options:      DefaultOptions,
	CacheEnabled: false,
}

// NewEngine creates an engine with default options, no cache, and discarded
// log output
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig)
}

// NewEngineWithConfig creates an engine with custom limits, an optional
// result cache, and an optional logger
func NewEngineWithConfig(config EngineConfig) *Engine {
	if config.Options.MaxOccurrences <= 0 {
		config.Options.MaxOccurrences = DefaultOptions.MaxOccurrences
	}
	if config.Options.GuardFactor <= 0 {
		config.Options.GuardFactor = DefaultOptions.GuardFactor
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var cache *PreviewCache
	if config.CacheEnabled {
		cache = NewPreviewCache(config.CacheConfig)
	}

	return &Engine{
		opts:   config.Options,
		logger: config.Logger,
		cache:  cache,
	}
}

// Close releases the engine's cache resources, if any
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

var defaultEngine = NewEngine()

// Generate computes the occurrence dates for cfg using a shared default
// engine. It is the package-level convenience form of Engine.Generate.
func Generate(cfg Config) []time.Time {
	return defaultEngine.Generate(cfg)
}

// Generate computes the ordered occurrence dates for cfg. The result is
// strictly increasing, starts no earlier than the start date, never exceeds
// the end date (when set), and contains at most the effective cap of dates.
// A configuration that cannot produce dates (no start date, end before
// start, weekly with no days selected) yields an empty result, not an error.
func (e *Engine) Generate(cfg Config) []time.Time {
	if e.cache != nil {
		key := cfg.Fingerprint()
		if dates, ok := e.cache.Get(key); ok {
			e.logger.Debug("recurrence cache hit", "key", key[:8])
			return dates
		}
		dates, stats := e.generate(cfg)
		e.cache.Set(key, dates)
		e.logDone(cfg, dates, stats)
		return dates
	}

	dates, stats := e.generate(cfg)
	e.logDone(cfg, dates, stats)
	return dates
}

// GenerateStats is Generate plus run diagnostics. It bypasses the cache so
// the reported stats always describe a fresh run.
func (e *Engine) GenerateStats(cfg Config) ([]time.Time, Stats) {
	return e.generate(cfg)
}

func (e *Engine) logDone(cfg Config, dates []time.Time, stats Stats) {
	e.logger.Debug("generated occurrences",
		"type", cfg.Type.String(),
		"interval", cfg.Interval,
		"count", len(dates),
		"steps", stats.Steps,
		"guard_tripped", stats.GuardTripped)
}

func (e *Engine) generate(cfg Config) ([]time.Time, Stats) {
	start, ok := cfg.StartDate.Get()
	if !ok {
		return nil, Stats{}
	}
	start = DateOnly(start)

	end, hasEnd := cfg.EndDate.Get()
	if hasEnd {
		end = DateOnly(end)
		if end.Before(start) {
			return nil, Stats{}
		}
	}

	interval := cfg.Interval
	if interval < minInterval {
		interval = minInterval
	}
	if interval > maxInterval {
		interval = maxInterval
	}

	limit := e.opts.MaxOccurrences
	if n, ok := cfg.MaxOccurrences.Get(); ok && n < limit {
		limit = n
	}
	if limit < 1 {
		return nil, Stats{}
	}

	// The step budget bounds calendar iterations (days, weeks, months or
	// years advanced), so generation terminates even when matches are sparse
	// or nonexistent and no end date is set.
	budget := limit * e.opts.GuardFactor

	run := span{start: start, end: end, hasEnd: hasEnd, interval: interval, limit: limit, budget: budget}

	switch cfg.Type {
	case TypeDaily:
		return run.daily()
	case TypeWeekly:
		return run.weekly(cfg.WeeklyDays)
	case TypeMonthly:
		return run.monthly(cfg.MonthlyPattern)
	case TypeYearly:
		return run.yearly()
	default:
		return nil, Stats{}
	}
}

// span carries the resolved bounds of one generation run
type span struct {
	start    time.Time
	end      time.Time
	hasEnd   bool
	interval int
	limit    int
	budget   int
}

func (s span) pastEnd(d time.Time) bool {
	return s.hasEnd && d.After(s.end)
}

func (s span) daily() ([]time.Time, Stats) {
	var out []time.Time
	var st Stats

	cur := s.start
	for {
		if s.pastEnd(cur) {
			break
		}
		out = append(out, cur)
		if len(out) >= s.limit {
			break
		}
		if st.Steps >= s.budget {
			st.GuardTripped = true
			break
		}
		st.Steps++
		cur = cur.AddDate(0, 0, s.interval)
	}
	return out, st
}

func (s span) weekly(days WeekdaySet) ([]time.Time, Stats) {
	if days.IsEmpty() {
		return nil, Stats{}
	}

	var out []time.Time
	var st Stats

	// Sunday of the week containing the start date; days of that week before
	// the start date are skipped below.
	weekStart := s.start.AddDate(0, 0, -int(s.start.Weekday()))

scan:
	for {
		for d := time.Sunday; d <= time.Saturday; d++ {
			if !days.Has(d) {
				continue
			}
			candidate := weekStart.AddDate(0, 0, int(d))
			if candidate.Before(s.start) {
				continue
			}
			if s.pastEnd(candidate) {
				break scan
			}
			out = append(out, candidate)
			if len(out) >= s.limit {
				break scan
			}
		}
		if st.Steps >= s.budget {
			st.GuardTripped = true
			break
		}
		st.Steps++
		weekStart = weekStart.AddDate(0, 0, 7*s.interval)
	}
	return out, st
}

func (s span) monthly(pattern MonthlyPattern) ([]time.Time, Stats) {
	var out []time.Time
	var st Stats

	targetDay := s.start.Day()
	targetWeekday := s.start.Weekday()
	// Ordinal is fixed from the start date: the 29th is always "the 5th such
	// weekday", never "the last", so months with only four skip it.
	targetNth := (s.start.Day()-1)/7 + 1

	for i := 0; ; i++ {
		// First of the candidate month; time.Date normalizes month overflow
		month := time.Date(s.start.Year(), s.start.Month()+time.Month(i*s.interval), 1, 0, 0, 0, 0, time.UTC)

		var candidate time.Time
		var ok bool
		if pattern == PatternByWeekday {
			candidate, ok = nthWeekdayInMonth(month, targetNth, targetWeekday)
		} else {
			candidate, ok = dayInMonth(month, targetDay)
		}

		if ok && !candidate.Before(s.start) {
			if s.pastEnd(candidate) {
				break
			}
			out = append(out, candidate)
			if len(out) >= s.limit {
				break
			}
		}
		if st.Steps >= s.budget {
			st.GuardTripped = true
			break
		}
		st.Steps++
	}
	return out, st
}

func (s span) yearly() ([]time.Time, Stats) {
	var out []time.Time
	var st Stats

	for i := 0; ; i++ {
		year := s.start.Year() + i*s.interval
		candidate := time.Date(year, s.start.Month(), s.start.Day(), 0, 0, 0, 0, time.UTC)

		// A Feb 29 start lands on Mar 1 in non-leap years; such years
		// contribute no occurrence rather than a shifted one.
		if candidate.Month() == s.start.Month() {
			if s.pastEnd(candidate) {
				break
			}
			out = append(out, candidate)
			if len(out) >= s.limit {
				break
			}
		}
		if st.Steps >= s.budget {
			st.GuardTripped = true
			break
		}
		st.Steps++
	}
	return out, st
}

// dayInMonth returns the given day-of-month within month, or false when the
// month is too short. Days past month end are skipped, never clamped.
func dayInMonth(month time.Time, day int) (time.Time, bool) {
	d := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month.Month() {
		return time.Time{}, false
	}
	return d, true
}

// nthWeekdayInMonth returns the nth occurrence of weekday w within month, or
// false when the month has fewer than n such weekdays
func nthWeekdayInMonth(month time.Time, n int, w time.Weekday) (time.Time, bool) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	day := 1 + (int(w)-int(first.Weekday())+7)%7 + (n-1)*7
	d := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month.Month() {
		return time.Time{}, false
	}
	return d, true
}
