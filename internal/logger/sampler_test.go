package logger

import "testing"

func TestSampleGateEveryNth(t *testing.T) {
	gate := newSampleGate(3)

	want := []bool{true, false, false, true, false, false, true}
	for i, expected := range want {
		if got := gate.Allow(); got != expected {
			t.Fatalf("event %d: Allow() = %v, want %v", i+1, got, expected)
		}
	}
}

func TestSampleGateDisabledPassesEverything(t *testing.T) {
	for _, every := range []int{0, 1} {
		gate := newSampleGate(every)
		for i := 0; i < 5; i++ {
			if !gate.Allow() {
				t.Fatalf("every=%d event %d blocked", every, i+1)
			}
		}
	}
}

func TestParseSampleEvery(t *testing.T) {
	cases := map[string]int{
		"1/50":    50,
		"2/10":    5,
		"25":      25,
		" 1/10 ":  10,
		"":        0,
		"garbage": 0,
		"0/5":     0,
		"5/0":     0,
		"-3":      0,
		"5/2":     1,
	}
	for in, want := range cases {
		if got := parseSampleEvery(in); got != want {
			t.Errorf("parseSampleEvery(%q) = %d, want %d", in, got, want)
		}
	}
}
