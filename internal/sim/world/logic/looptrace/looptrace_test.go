package looptrace

import "testing"

func frames(s string) []Frame {
	out := make([]Frame, 0, len(s))
	for _, c := range s {
		out = append(out, Frame{Key: string(c), Action: "ADVANCE"})
	}
	return out
}

func TestDetect_AlternatingPair(t *testing.T) {
	l, ok := Detect(frames("ABAB"), 2, 2)
	if !ok {
		t.Fatalf("ABAB not detected")
	}
	if l.Length != 2 || l.Repeats != 2 {
		t.Fatalf("got %+v want length 2 repeats 2", l)
	}
}

func TestDetect_LongerPattern(t *testing.T) {
	l, ok := Detect(frames("AABAAB"), 2, 2)
	if !ok {
		t.Fatalf("AABAAB not detected")
	}
	if l.Length != 3 || l.Repeats != 2 {
		t.Fatalf("got %+v want length 3 repeats 2", l)
	}
}

func TestDetect_ShortHistory(t *testing.T) {
	if _, ok := Detect(frames("ABA"), 2, 2); ok {
		t.Fatalf("history shorter than minLen*minRepeats must not match")
	}
	if _, ok := Detect(nil, 2, 2); ok {
		t.Fatalf("empty history matched")
	}
}

func TestDetect_NoRepetition(t *testing.T) {
	if l, ok := Detect(frames("ABCDEF"), 2, 2); ok {
		t.Fatalf("unexpected loop %+v", l)
	}
}

func TestDetect_RepeatThreshold(t *testing.T) {
	if _, ok := Detect(frames("ABAB"), 2, 3); ok {
		t.Fatalf("two repeats matched a threshold of three")
	}
	l, ok := Detect(frames("ABABAB"), 2, 3)
	if !ok || l.Length != 2 || l.Repeats != 3 {
		t.Fatalf("ABABAB with threshold 3: got %+v ok=%v", l, ok)
	}
}

func TestDetect_ActionDistinguishesFrames(t *testing.T) {
	// Same percept key but different actions is not a repetition.
	f := []Frame{
		{Key: "A", Action: "ADVANCE"}, {Key: "B", Action: "ADVANCE"},
		{Key: "A", Action: "REORIENT"}, {Key: "B", Action: "ADVANCE"},
	}
	if l, ok := Detect(f, 2, 2); ok {
		t.Fatalf("mismatched actions detected as loop %+v", l)
	}
}
