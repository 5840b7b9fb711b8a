package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu            sync.Mutex
	gamesStarted  int
	gamesFinished int
	movesApplied  int
	swapsCommited int
	moveDurations []float64
	notifSent     int
	notifFailed   int
	startupTime   float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		moveDurations: make([]float64, 0),
	}
}

func (m *Mock) IncGamesStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesStarted++
}

func (m *Mock) IncGamesFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesFinished++
}

func (m *Mock) IncMovesApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movesApplied++
}

func (m *Mock) IncSwapsCommitted(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swapsCommited += count
}

func (m *Mock) ObserveMoveDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveDurations = append(m.moveDurations, duration)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// GamesStarted returns the recorded start count.
func (m *Mock) GamesStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesStarted
}

// GamesFinished returns the recorded finish count.
func (m *Mock) GamesFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesFinished
}

// MovesApplied returns the recorded move count.
func (m *Mock) MovesApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.movesApplied
}

// SwapsCommitted returns the recorded committed swap count.
func (m *Mock) SwapsCommitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.swapsCommited
}
