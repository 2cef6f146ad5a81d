package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itzfew/eduhub-bot/internal/domain/entities"
)

func TestParseQuizCommand(t *testing.T) {
	tests := []struct {
		text string
		want entities.QuizQuery
	}{
		{"/chapter living world 2", entities.QuizQuery{Mode: entities.ModeChapter, RawQuery: "living world", Count: 2}},
		{"/chapter living world", entities.QuizQuery{Mode: entities.ModeChapter, RawQuery: "living world", Count: 1}},
		{"/CHAPTER Living World 3", entities.QuizQuery{Mode: entities.ModeChapter, RawQuery: "living world", Count: 3}},
		{"/subject biology 5", entities.QuizQuery{Mode: entities.ModeSubject, RawQuery: "biology", Count: 5}},
		{"/subject chemistry", entities.QuizQuery{Mode: entities.ModeSubject, RawQuery: "chemistry", Count: 1}},
		{"/random", entities.QuizQuery{Mode: entities.ModeRandom, Count: 1}},
		{"/random 4", entities.QuizQuery{Mode: entities.ModeRandom, Count: 4}},
		{"/random 0", entities.QuizQuery{Mode: entities.ModeRandom, Count: 1}},
		{"/pyq", entities.QuizQuery{Mode: entities.ModeLegacy, Count: 1}},
		{"/pyq 3", entities.QuizQuery{Mode: entities.ModeLegacy, Count: 3}},
		{"/pyqb", entities.QuizQuery{Mode: entities.ModeLegacy, Subject: "Biology", Count: 1}},
		{"/pyqc 2", entities.QuizQuery{Mode: entities.ModeLegacy, Subject: "Chemistry", Count: 2}},
		{"/pyqb2", entities.QuizQuery{Mode: entities.ModeLegacy, Subject: "Biology", Count: 2}},
		{"/b1", entities.QuizQuery{Mode: entities.ModeLegacy, Subject: "Biology", Count: 1}},
		{"/c1", entities.QuizQuery{Mode: entities.ModeLegacy, Subject: "Chemistry", Count: 1}},
		{"/p1 5", entities.QuizQuery{Mode: entities.ModeLegacy, Subject: "Physics", Count: 5}},
		{"  /random 2  ", entities.QuizQuery{Mode: entities.ModeRandom, Count: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseQuizCommand(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuizCommandRejectsOtherText(t *testing.T) {
	for _, text := range []string{
		"",
		"hello",
		"/start",
		"/chapter",
		"/chapters living world",
		"/random5",
		"/pyqx",
		"/d1",
		"living world 2",
	} {
		t.Run(text, func(t *testing.T) {
			_, ok := ParseQuizCommand(text)
			assert.False(t, ok)
		})
	}
}
