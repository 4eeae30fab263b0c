package quiz

import "errors"

var (
	ErrNoSelection      = errors.New("selecione uma resposta antes de continuar")
	ErrAlreadyCompleted = errors.New("teste já concluído")
	ErrAtFirstQuestion  = errors.New("já está na primeira questão")
)

// Runner apresenta as questões do banco uma a uma e exige exatamente uma
// resposta por questão. Estados: respondendo a questão i (0 <= i < N) ou
// concluído. Não há pulo de questão; voltar é permitido e não apaga a
// resposta já registrada.
type Runner struct {
	bank      Bank
	current   int
	answers   map[int]string
	completed bool
}

func NewRunner(bank Bank) *Runner {
	return &Runner{
		bank:    bank,
		answers: make(map[int]string),
	}
}

// Current devolve o índice e a questão em exibição, junto com a resposta já
// registrada para ela (vazia se ainda não respondida).
func (r *Runner) Current() (int, Question, string) {
	q := r.bank[r.current]
	return r.current, q, r.answers[r.current]
}

func (r *Runner) Total() int { return len(r.bank) }

func (r *Runner) Completed() bool { return r.completed }

// Progress é a fração de avanço exibida na barra, contando a questão atual.
func (r *Runner) Progress() float64 {
	return float64(r.current+1) / float64(len(r.bank))
}

// Answer registra a seleção da questão atual e avança. Na última questão o
// runner transiciona para concluído e o chamador dispara o cálculo e a
// persistência do resultado.
func (r *Runner) Answer(selection string) (bool, error) {
	if r.completed {
		return true, ErrAlreadyCompleted
	}
	if selection == "" {
		return false, ErrNoSelection
	}

	r.answers[r.current] = selection

	if r.current < len(r.bank)-1 {
		r.current++
		return false, nil
	}

	r.completed = true
	return true, nil
}

// Previous volta uma questão e devolve a seleção registrada para exibição.
func (r *Runner) Previous() (int, Question, string, error) {
	if r.completed {
		return 0, Question{}, "", ErrAlreadyCompleted
	}
	if r.current == 0 {
		return 0, Question{}, "", ErrAtFirstQuestion
	}

	r.current--
	q := r.bank[r.current]
	return r.current, q, r.answers[r.current], nil
}

// Answers devolve uma cópia do mapa de respostas registrado até aqui.
func (r *Runner) Answers() map[int]string {
	out := make(map[int]string, len(r.answers))
	for k, v := range r.answers {
		out[k] = v
	}
	return out
}

// Score só é válido após a conclusão.
func (r *Runner) Score() (int, error) {
	if !r.completed {
		return 0, errors.New("teste ainda não concluído")
	}
	return r.bank.Score(r.answers), nil
}
