package quiz

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBankYAML []byte

type Question struct {
	ID            int      `yaml:"id" json:"id"`
	Text          string   `yaml:"question" json:"question"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer string   `yaml:"correct_answer" json:"-"`
}

// Bank é a sequência fixa e ordenada de questões do teste.
type Bank []Question

// DefaultBank carrega o banco de questões embutido no binário.
func DefaultBank() Bank {
	bank, err := parseBank(defaultBankYAML)
	if err != nil {
		// O arquivo embutido é validado em teste; se chegou aqui o binário
		// foi montado com um banco inválido.
		panic(fmt.Sprintf("banco de questões embutido inválido: %v", err))
	}
	return bank
}

// LoadBank lê um banco alternativo de um arquivo YAML. Com path vazio usa o
// banco padrão embutido.
func LoadBank(path string) (Bank, error) {
	if path == "" {
		return DefaultBank(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler banco de questões %s: %w", path, err)
	}
	return parseBank(raw)
}

func parseBank(raw []byte) (Bank, error) {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("erro ao decodificar banco de questões: %w", err)
	}

	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("banco de questões vazio")
	}

	for i, q := range doc.Questions {
		if q.Text == "" {
			return nil, fmt.Errorf("questão %d sem enunciado", i+1)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("questão %d precisa de pelo menos 2 opções", i+1)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("questão %d: resposta correta não está entre as opções", i+1)
		}
	}

	return Bank(doc.Questions), nil
}

// Score conta as posições cuja resposta registrada é exatamente igual à
// resposta correta da questão (comparação sensível a maiúsculas).
func (b Bank) Score(answers map[int]string) int {
	correct := 0
	for i, q := range b {
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct
}
