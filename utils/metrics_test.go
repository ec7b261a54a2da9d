package utils

import "testing"

func TestMetricsCardsDeactivatedCountsRows(t *testing.T) {
	m := GetMetrics()
	m.ResetMetrics()

	for i := 0; i < 3; i++ {
		m.RecordCardOperation("create", nil)
	}

	// Деактивировано две карты из трех
	m.RecordCardsDeactivated(2)

	if m.ActiveCards != 1 {
		t.Errorf("ActiveCards = %d, want 1", m.ActiveCards)
	}
	if m.DeletedCards != 2 {
		t.Errorf("DeletedCards = %d, want 2", m.DeletedCards)
	}
}

func TestMetricsCardsDeactivatedIgnoresZero(t *testing.T) {
	m := GetMetrics()
	m.ResetMetrics()

	m.RecordCardOperation("create", nil)

	// Повторное удаление не затронуло ни одной строки
	m.RecordCardsDeactivated(0)

	if m.ActiveCards != 1 {
		t.Errorf("ActiveCards = %d, want 1", m.ActiveCards)
	}
	if m.DeletedCards != 0 {
		t.Errorf("DeletedCards = %d, want 0", m.DeletedCards)
	}
}
