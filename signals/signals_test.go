package signals

import (
	"slices"
	"testing"
)

func TestSignal_SetNotifiesInOrder(t *testing.T) {
	// Arrange
	s := NewSignal(1)
	var calls []string
	s.Subscribe(func() { calls = append(calls, "a") })
	s.Subscribe(func() { calls = append(calls, "b") })

	// Act
	s.Set(2)

	// Assert
	if s.Get() != 2 {
		t.Errorf("Expected value 2, got %d", s.Get())
	}
	if !slices.Equal(calls, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", calls)
	}
}

func TestSignal_UnsubscribeRemovesOnlyThatSubscriber(t *testing.T) {
	s := NewSignal("x")
	var calls []string
	unsubA := s.Subscribe(func() { calls = append(calls, "a") })
	unsubB := s.Subscribe(func() { calls = append(calls, "b") })
	s.Subscribe(func() { calls = append(calls, "c") })

	unsubA()
	unsubB()
	unsubA()
	s.Set("y")

	if !slices.Equal(calls, []string{"c"}) {
		t.Errorf("Expected only c to be notified, got %v", calls)
	}
}

func TestSignal_Update(t *testing.T) {
	s := NewSignal(10)
	notified := 0
	s.Subscribe(func() { notified++ })

	s.Update(func(v int) int { return v + 5 })

	if s.Get() != 15 || notified != 1 {
		t.Errorf("Expected 15 and one notification, got %d and %d", s.Get(), notified)
	}
}
