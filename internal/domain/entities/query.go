package entities

// QuizMode identifies which quiz command family a query came from.
type QuizMode string

const (
	ModeChapter QuizMode = "chapter"
	ModeSubject QuizMode = "subject"
	ModeRandom  QuizMode = "random"
	ModeLegacy  QuizMode = "legacy"
)

// QuizQuery is one parsed quiz command. It lives for a single dispatch
// and is never persisted.
type QuizQuery struct {
	Mode     QuizMode
	RawQuery string // free-text name for chapter/subject modes
	Subject  string // fixed subject for legacy codes, empty for the mixed pool
	Count    int    // requested number of questions, always >= 1
}
