package seeds_test

import (
	"testing"

	"github.com/edgi-govdata-archiving/seedgen/internal/seeds"
)

func collect(t *testing.T, sequences ...[]string) []string {
	t.Helper()
	var out []string
	for url := range seeds.Interleave(sequences...) {
		out = append(out, url)
	}
	return out
}

func TestInterleave_RoundRobin(t *testing.T) {
	out := collect(t,
		[]string{"a1", "a2", "a3"},
		[]string{"b1", "b2", "b3"},
		[]string{"c1", "c2", "c3"},
	)

	expected := []string{"a1", "b1", "c1", "a2", "b2", "c2", "a3", "b3", "c3"}
	assertSequence(t, expected, out)
}

func TestInterleave_ExhaustedSequenceDropsOut(t *testing.T) {
	out := collect(t,
		[]string{"a1"},
		[]string{"b1", "b2", "b3"},
		[]string{"c1", "c2"},
	)

	expected := []string{"a1", "b1", "c1", "b2", "c2", "b3"}
	assertSequence(t, expected, out)
}

func TestInterleave_TotalLengthEqualsSumOfInputs(t *testing.T) {
	out := collect(t,
		[]string{"a1", "a2", "a3", "a4", "a5"},
		nil,
		[]string{"b1"},
		[]string{"c1", "c2"},
	)

	if len(out) != 8 {
		t.Errorf("expected 8 elements, got %d: %v", len(out), out)
	}
}

func TestInterleave_NoInputs(t *testing.T) {
	if out := collect(t); len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}

func TestInterleave_EarlyTermination(t *testing.T) {
	// The sequence is lazy: the consumer can stop at any point without
	// draining the inputs.
	count := 0
	for range seeds.Interleave(
		[]string{"a1", "a2", "a3"},
		[]string{"b1", "b2", "b3"},
	) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("expected to consume exactly 3 elements, got %d", count)
	}
}

func assertSequence(t *testing.T, expected, actual []string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("expected %v, got %v", expected, actual)
		}
	}
}
