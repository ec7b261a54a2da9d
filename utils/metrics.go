package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики карт
	TotalCards        int64
	ActiveCards       int64
	BlockedCards      int64
	DeletedCards      int64
	LastCardOperation time.Time

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordCardOperation записывает метрики операции с картой
func (m *Metrics) RecordCardOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCardOperation = time.Now()

	switch operation {
	case "create":
		m.TotalCards++
		m.ActiveCards++
	case "block":
		m.BlockedCards++
	case "unblock":
		m.BlockedCards--
	}

	if err != nil {
		m.recordError(err)
	}
}

// RecordCardsDeactivated записывает фактическое число деактивированных карт.
// Массовое удаление сообщает сюда RowsAffected, поэтому повторные и
// несуществующие номера на счетчики не влияют.
func (m *Metrics) RecordCardsDeactivated(count int64) {
	if count <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCardOperation = time.Now()
	m.ActiveCards -= count
	m.DeletedCards += count
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordError(err)
}

func (m *Metrics) recordError(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}

	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"total_requests":  m.TotalRequests,
		"failed_requests": m.FailedRequests,
		"average_latency": m.AverageLatency.String(),
		"total_cards":     m.TotalCards,
		"active_cards":    m.ActiveCards,
		"blocked_cards":   m.BlockedCards,
		"deleted_cards":   m.DeletedCards,
		"error_count":     m.ErrorCount,
		"last_error_time": m.LastErrorTime,
		"error_types":     m.ErrorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.TotalCards = 0
	m.ActiveCards = 0
	m.BlockedCards = 0
	m.DeletedCards = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
