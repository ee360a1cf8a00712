package app

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// cronScheduler runs named daily jobs on a robfig cron in the configured
// timezone. Scheduling a name again replaces the previous job.
type cronScheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func newCronScheduler(location *time.Location) *cronScheduler {
	return &cronScheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithChain(cron.Recover(cron.DefaultLogger)),
		),
		entries: make(map[string]cron.EntryID),
	}
}

func (s *cronScheduler) ScheduleDaily(name string, hour, minute int, weekdays []time.Weekday, job func()) error {
	spec, err := dailySpec(hour, minute, weekdays)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("scheduling %s (%s): %w", name, spec, err)
	}
	if previous, ok := s.entries[name]; ok {
		s.cron.Remove(previous)
	}
	s.entries[name] = id
	return nil
}

func (s *cronScheduler) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
		delete(s.entries, name)
	}
}

func (s *cronScheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron and waits for running jobs.
func (s *cronScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// dailySpec builds a standard five-field cron expression, e.g. "30 17 * * 1-5".
func dailySpec(hour, minute int, weekdays []time.Weekday) (string, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}

	dow := "*"
	if len(weekdays) > 0 && len(weekdays) < 7 {
		days := make([]string, len(weekdays))
		for i, d := range weekdays {
			days[i] = strconv.Itoa(int(d))
		}
		dow = strings.Join(days, ",")
	}
	if dow == "1,2,3,4,5" {
		dow = "1-5"
	}
	return fmt.Sprintf("%d %d * * %s", minute, hour, dow), nil
}
