package engine

import "time"

// Metrics is the live metric snapshot for a session. It is recomputed from
// scratch on every input change; nothing here carries hidden state.
type Metrics struct {
	ElapsedSeconds  float64
	RawWPM          float64
	NetWPM          float64
	Accuracy        float64
	CorrectChars    int
	TotalChars      int
	TotalCharsTyped int
}

// Compute derives all session metrics from the finalized word history, the
// target corpus, the in-progress input, and the elapsed active time.
//
// Finalized words are compared position-by-position against their targets up
// to max(typedLen, targetLen): mismatches and missing characters count toward
// the total without counting as correct. The in-progress word is only
// compared up to what has been typed so far. Characters typed beyond a
// target's length always count as total with no corresponding correct.
func Compute(history, targets []string, input string, elapsed time.Duration) Metrics {
	m := Metrics{ElapsedSeconds: elapsed.Seconds()}

	for _, typed := range history {
		m.TotalCharsTyped += len([]rune(typed)) + 1 // +1 for the separator
	}
	inputRunes := []rune(input)
	m.TotalCharsTyped += len(inputRunes)

	for i, typed := range history {
		var target string
		if i < len(targets) {
			target = targets[i]
		}
		correct, total := compareFinalized([]rune(typed), []rune(target))
		m.CorrectChars += correct
		m.TotalChars += total
	}

	if len(inputRunes) > 0 {
		var target []rune
		if len(history) < len(targets) {
			target = []rune(targets[len(history)])
		}
		for j, r := range inputRunes {
			if j < len(target) && r == target[j] {
				m.CorrectChars++
			}
			m.TotalChars++
		}
	}

	if m.TotalChars == 0 {
		m.Accuracy = 100
	} else {
		m.Accuracy = float64(m.CorrectChars) / float64(m.TotalChars) * 100
	}

	if minutes := elapsed.Minutes(); minutes > 0 {
		m.RawWPM = (float64(m.TotalCharsTyped) / 5) / minutes
	}
	m.NetWPM = m.RawWPM * m.Accuracy / 100

	return m
}

func compareFinalized(typed, target []rune) (correct, total int) {
	length := len(typed)
	if len(target) > length {
		length = len(target)
	}
	for j := 0; j < length; j++ {
		if j < len(typed) && j < len(target) && typed[j] == target[j] {
			correct++
		}
	}
	return correct, length
}
