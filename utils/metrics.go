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

	// Метрики журнала
	TotalTransactions   int64
	CreditTransactions  int64
	DebitTransactions   int64
	SummariesServed     int64
	LastLedgerOperation time.Time

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

// RecordTransaction записывает метрики созданной транзакции
func (m *Metrics) RecordTransaction(transactionType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalTransactions++
	m.LastLedgerOperation = time.Now()

	switch transactionType {
	case "credit":
		m.CreditTransactions++
	case "debit":
		m.DebitTransactions++
	}
}

// RecordSummary записывает метрики запроса баланса
func (m *Metrics) RecordSummary() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SummariesServed++
	m.LastLedgerOperation = time.Now()
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

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
		"total_requests":      m.TotalRequests,
		"failed_requests":     m.FailedRequests,
		"average_latency":     m.AverageLatency,
		"total_transactions":  m.TotalTransactions,
		"credit_transactions": m.CreditTransactions,
		"debit_transactions":  m.DebitTransactions,
		"summaries_served":    m.SummariesServed,
		"error_count":         m.ErrorCount,
		"last_error_time":     m.LastErrorTime,
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
	m.TotalTransactions = 0
	m.CreditTransactions = 0
	m.DebitTransactions = 0
	m.SummariesServed = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
