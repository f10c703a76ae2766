// Package looptrace detects repeating percept/action patterns in an agent's
// episodic history. Detection is purely positional: it compares the most
// recent window of frames against the immediately preceding windows of the
// same length and counts consecutive exact repeats.
package looptrace

// Frame is one comparable history entry. Key summarizes the percept; Action
// names the effector that fired.
type Frame struct {
	Key    string
	Action string
}

// Loop reports a detected repetition: the pattern length in frames and how
// many consecutive times it occurred at the tail of the history.
type Loop struct {
	Length  int
	Repeats int
}

// Detect scans trailing history for a repeating pattern. minLen is the
// smallest candidate pattern length, minRepeats the repetition threshold.
// It returns false when the history is shorter than minLen*minRepeats or no
// pattern repeats at least minRepeats times.
func Detect(frames []Frame, minLen, minRepeats int) (Loop, bool) {
	if minLen < 1 {
		minLen = 1
	}
	if minRepeats < 2 {
		minRepeats = 2
	}
	n := len(frames)
	if n < minLen*minRepeats {
		return Loop{}, false
	}
	for l := minLen; l <= n/minRepeats; l++ {
		tail := frames[n-l:]
		repeats := 1
		for i := 2; n-i*l >= 0; i++ {
			if !equalWindow(tail, frames[n-i*l:n-(i-1)*l]) {
				break
			}
			repeats++
		}
		if repeats >= minRepeats {
			return Loop{Length: l, Repeats: repeats}, true
		}
	}
	return Loop{}, false
}

func equalWindow(a, b []Frame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
