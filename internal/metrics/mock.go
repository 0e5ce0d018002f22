package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	matchesRecorded       int
	rankingUpdates        int
	rankingUpdateFailures int
	processingDurations   []float64
	raceResets            int
	slackNotifSent        int
	slackNotifFailed      int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		processingDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncRankingUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingUpdates++
}

func (m *Mock) IncRankingUpdateFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankingUpdateFailures++
}

func (m *Mock) ObserveProcessingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations = append(m.processingDurations, duration)
}

func (m *Mock) IncRaceResets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raceResets++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// RankingUpdates returns the number of times IncRankingUpdates was called.
func (m *Mock) RankingUpdates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rankingUpdates
}

// RankingUpdateFailures returns the number of times IncRankingUpdateFailures was called.
func (m *Mock) RankingUpdateFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rankingUpdateFailures
}

// ProcessingDurations returns every observed duration.
func (m *Mock) ProcessingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations...)
}

// RaceResets returns the number of times IncRaceResets was called.
func (m *Mock) RaceResets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raceResets
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
