package quiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank() Bank {
	return Bank{
		{ID: 1, Text: "2 + 2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{ID: 2, Text: "Capital do Brasil?", Options: []string{"Brasília", "Rio"}, CorrectAnswer: "Brasília"},
		{ID: 3, Text: "Cor do céu?", Options: []string{"Azul", "Verde"}, CorrectAnswer: "Azul"},
	}
}

func TestDefaultBankEmbedded(t *testing.T) {
	bank := DefaultBank()

	require.Len(t, bank, 16)
	for i, q := range bank {
		assert.NotEmpty(t, q.Text, "questão %d sem enunciado", i+1)
		assert.GreaterOrEqual(t, len(q.Options), 2)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}
}

func TestLoadBank(t *testing.T) {
	// Path vazio cai no banco embutido
	bank, err := LoadBank("")
	require.NoError(t, err)
	assert.Len(t, bank, 16)

	// Arquivo alternativo substitui o banco
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
questions:
  - id: 1
    question: "2 + 2?"
    options: ["3", "4"]
    correct_answer: "4"
`), 0o600))

	bank, err = LoadBank(path)
	require.NoError(t, err)
	require.Len(t, bank, 1)
	assert.Equal(t, "4", bank[0].CorrectAnswer)

	_, err = LoadBank(filepath.Join(t.TempDir(), "inexistente.yaml"))
	assert.Error(t, err)
}

func TestParseBankRejectsInvalid(t *testing.T) {
	_, err := parseBank([]byte("questions: []"))
	assert.ErrorContains(t, err, "vazio")

	_, err = parseBank([]byte(`
questions:
  - id: 1
    question: "Teste?"
    options: ["a", "b"]
    correct_answer: "c"
`))
	assert.ErrorContains(t, err, "não está entre as opções")
}

func TestRunnerHappyPath(t *testing.T) {
	r := NewRunner(testBank())

	idx, q, selected := r.Current()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "2 + 2?", q.Text)
	assert.Empty(t, selected)
	assert.InDelta(t, 1.0/3.0, r.Progress(), 0.001)

	done, err := r.Answer("4")
	require.NoError(t, err)
	assert.False(t, done)

	done, err = r.Answer("Rio") // errada de propósito
	require.NoError(t, err)
	assert.False(t, done)

	done, err = r.Answer("Azul")
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, r.Completed())

	score, err := r.Score()
	require.NoError(t, err)
	assert.Equal(t, 2, score)
}

func TestRunnerRequiresSelection(t *testing.T) {
	r := NewRunner(testBank())

	_, err := r.Answer("")
	assert.ErrorIs(t, err, ErrNoSelection)

	// O estado não avançou
	idx, _, _ := r.Current()
	assert.Equal(t, 0, idx)
}

func TestRunnerPreviousKeepsAnswer(t *testing.T) {
	r := NewRunner(testBank())

	_, _, _, err := r.Previous()
	assert.ErrorIs(t, err, ErrAtFirstQuestion)

	_, err = r.Answer("4")
	require.NoError(t, err)

	idx, q, selected, err := r.Previous()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "2 + 2?", q.Text)
	assert.Equal(t, "4", selected)

	// Reresponder sobrescreve
	_, err = r.Answer("3")
	require.NoError(t, err)
	assert.Equal(t, "3", r.Answers()[0])
}

func TestRunnerCompletedIsTerminal(t *testing.T) {
	r := NewRunner(testBank())
	r.Answer("4")
	r.Answer("Brasília")
	r.Answer("Azul")

	done, err := r.Answer("4")
	assert.True(t, done)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	_, _, _, err = r.Previous()
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestScoreBeforeCompletion(t *testing.T) {
	r := NewRunner(testBank())
	_, err := r.Score()
	assert.Error(t, err)
}

func TestBankScoreExactMatch(t *testing.T) {
	bank := testBank()

	assert.Equal(t, 3, bank.Score(map[int]string{0: "4", 1: "Brasília", 2: "Azul"}))
	// Sensível a maiúsculas e sem crédito parcial
	assert.Equal(t, 2, bank.Score(map[int]string{0: "4", 1: "brasília", 2: "Azul"}))
	assert.Equal(t, 0, bank.Score(nil))
}
