package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/quiz"
	"github.com/mentisiq/funnel-api/internal/score"
	"github.com/mentisiq/funnel-api/internal/session"
)

type SubmitQuizOutput struct {
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	IQ             int    `json:"iq"`
	Saved          bool   `json:"saved"`
	Warning        string `json:"warning,omitempty"`
	// CheckoutURL é a página externa de pagamento, com o id do lead
	// embutido duas vezes (leadId e sck) para sobreviver ao redirect.
	CheckoutURL string `json:"checkout_url,omitempty"`
}

// SubmitQuizUseCase fecha uma tentativa do teste: calcula o placar, espelha o
// resultado na sessão (fallback local), persiste no banco e monta a URL do
// checkout. Falha de persistência não bloqueia o visitante; o placar já foi
// calculado e vai na resposta com um aviso.
type SubmitQuizUseCase struct {
	Results     entity.TestResultRepositoryInterface
	Bank        quiz.Bank
	CheckoutURL string
}

func NewSubmitQuizUseCase(results entity.TestResultRepositoryInterface, bank quiz.Bank, checkoutURL string) *SubmitQuizUseCase {
	return &SubmitQuizUseCase{
		Results:     results,
		Bank:        bank,
		CheckoutURL: checkoutURL,
	}
}

func (uc *SubmitQuizUseCase) Execute(ctx context.Context, sess *session.Context, leadID string, answers map[int]string) *SubmitQuizOutput {
	correct := uc.Bank.Score(answers)
	total := len(uc.Bank)

	// Espelho local antes de qualquer rede: a página de resultados renderiza
	// daqui mesmo se o banco estiver fora.
	sess.SetLastTestResults(session.TestResults{
		Score:          correct,
		TotalQuestions: total,
		LeadID:         leadID,
		CreatedAt:      time.Now(),
	})

	out := &SubmitQuizOutput{
		Score:          correct,
		TotalQuestions: total,
		IQ:             score.IQ(correct, total),
		Saved:          false,
	}

	if leadID != "" {
		sess.SetPendingLeadID(leadID)
		out.CheckoutURL = fmt.Sprintf("%s?leadId=%s&sck=%s", uc.CheckoutURL, leadID, leadID)

		result := &entity.TestResult{
			LeadID:         leadID,
			Answers:        answers,
			Score:          correct,
			TotalQuestions: total,
		}
		if err := uc.Results.Create(ctx, result); err != nil {
			logrus.Errorf("❌ Erro ao salvar resultado do lead %s: %v", leadID, err)
			out.Warning = "Seus resultados foram calculados, mas houve um erro ao salvá-los."
		} else {
			out.Saved = true
			logrus.Infof("✅ Resultado salvo: lead %s acertou %d/%d", leadID, correct, total)
		}
	} else {
		logrus.Warn("⚠️ Teste concluído sem leadId; resultado ficou apenas na sessão")
		out.Warning = "Identificador do lead ausente; resultado guardado apenas localmente."
	}

	return out
}
