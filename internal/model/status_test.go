package model

import "testing"

func TestItemStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   ItemStatus
		expected bool
	}{
		{StatusNotStarted, false},
		{StatusInProgress, false},
		{StatusFinished, true},
		{StatusFailed, true},
	}

	for _, test := range tests {
		result := test.status.IsTerminal()
		if result != test.expected {
			t.Errorf("ItemStatus(%s).IsTerminal() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestItemStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     ItemStatus
		to       ItemStatus
		expected bool
	}{
		{StatusNotStarted, StatusInProgress, true},
		{StatusNotStarted, StatusFinished, false},
		{StatusNotStarted, StatusFailed, false},
		{StatusInProgress, StatusFinished, true},
		{StatusInProgress, StatusFailed, true},
		{StatusInProgress, StatusNotStarted, false},
		{StatusFinished, StatusInProgress, false},
		{StatusFinished, StatusFailed, false},
		{StatusFailed, StatusInProgress, false},
		{StatusFailed, StatusNotStarted, false},
	}

	for _, test := range tests {
		result := test.from.CanTransitionTo(test.to)
		if result != test.expected {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, expected %v", test.from, test.to, result, test.expected)
		}
	}
}

func TestItemStatus_String(t *testing.T) {
	status := StatusInProgress
	expected := "InProgress"
	result := status.String()

	if result != expected {
		t.Errorf("ItemStatus.String() = %s, expected %s", result, expected)
	}
}
