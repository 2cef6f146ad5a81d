// Package entities contains domain entities used across the application.
package entities

// OptionLetters is the fixed answer order for every question.
var OptionLetters = [4]string{"A", "B", "C", "D"}

// Question represents one multiple-choice quiz question. Subject and
// Chapter are always attached by the store adapter from the path it
// fetched the record through, regardless of how the underlying row
// stores them.
type Question struct {
	Subject       string
	Chapter       string
	Text          string
	Options       [4]string // in A, B, C, D order
	CorrectOption string    // one of "A", "B", "C", "D"
	Explanation   string
	Image         string // image URL, empty if the question has none
}

// CorrectIndex maps the stored correct-option letter to its 0-based
// poll option index. Malformed legacy records without a recognizable
// letter fall back to 0.
func (q Question) CorrectIndex() int {
	for i, letter := range OptionLetters {
		if q.CorrectOption == letter {
			return i
		}
	}
	return 0
}
