package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mentisiq/funnel-api/internal/entity"
	"github.com/mentisiq/funnel-api/internal/session"
)

// Fontes possíveis do identificador, na ordem de precedência tentada.
const (
	SourceURL          = "url"
	SourceSck          = "sck"
	SourceSession      = "session"
	SourceTransaction  = "transaction"
	SourceLocalResults = "local_results"
)

// Placeholders literais que o template de redirect do provedor deveria ter
// substituído. Quando a substituição falha, o valor chega cru e precisa ser
// rejeitado.
var templatePlaceholders = map[string]bool{
	"{sck}":         true,
	"{leadId}":      true,
	"{transaction}": true,
}

// IsCanonicalLeadID aceita apenas o formato textual canônico de UUID
// (grupos hexadecimais 8-4-4-4-12) e rejeita placeholders não expandidos.
func IsCanonicalLeadID(v string) bool {
	if v == "" || templatePlaceholders[v] {
		return false
	}
	if len(v) != 36 {
		// uuid.Parse também aceita as formas urn: e com chaves; aqui só
		// vale a forma canônica que o banco gera.
		return false
	}
	_, err := uuid.Parse(v)
	return err == nil
}

type ResolveLeadInput struct {
	// Path da página atual, usado para montar a URL corrigida.
	Path    string
	Query   url.Values
	Session *session.Context
}

type Resolution struct {
	LeadID string `json:"lead_id,omitempty"`
	Source string `json:"source"`
	// CorrectedURL é preenchida quando o id veio de outra fonte que não a
	// própria URL: a página reescreve o endereço para que recargas e
	// compartilhamentos resolvam direto na primeira passada.
	CorrectedURL string `json:"corrected_url,omitempty"`
	// LocalResults é o modo degradado: nenhum id resolveu, mas a sessão
	// guarda o último resultado e a página renderiza a partir dele.
	LocalResults *session.TestResults `json:"local_results,omitempty"`
}

// ResolveLeadUseCase produz o identificador canônico do lead a partir de um
// conjunto ruidoso de candidatos: query params, sessão e, por último, uma
// consulta remota pelo id de transação do pagamento.
type ResolveLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewResolveLeadUseCase(leads entity.LeadRepositoryInterface) *ResolveLeadUseCase {
	return &ResolveLeadUseCase{Leads: leads}
}

func (uc *ResolveLeadUseCase) Execute(ctx context.Context, input ResolveLeadInput) (*Resolution, error) {
	// 1. leadId na URL: se válido, nenhuma outra fonte é consultada.
	if fromURL := input.Query.Get("leadId"); IsCanonicalLeadID(fromURL) {
		input.Session.SetCurrentLeadID(fromURL)
		return &Resolution{LeadID: fromURL, Source: SourceURL}, nil
	}

	// 2. sck: código de rastreio do provedor, reaproveitado como
	// transportador do id porque alguns checkouts descartam params custom.
	if sck := input.Query.Get("sck"); IsCanonicalLeadID(sck) {
		return uc.resolved(input, sck, SourceSck), nil
	}

	// 3. Sessão: cache durável primeiro, depois o pendente do pagamento.
	if stored := input.Session.CurrentLeadID(); IsCanonicalLeadID(stored) {
		return uc.resolved(input, stored, SourceSession), nil
	}
	if pending := input.Session.PendingLeadID(); IsCanonicalLeadID(pending) {
		return uc.resolved(input, pending, SourceSession), nil
	}

	// 4. transaction: busca remota pelo payment_id gravado no webhook.
	if tx := input.Query.Get("transaction"); tx != "" && !templatePlaceholders[tx] {
		lead, err := uc.Leads.FindByPaymentID(ctx, tx)
		if err == nil {
			return uc.resolved(input, lead.ID, SourceTransaction), nil
		}
		if !errors.Is(err, entity.ErrLeadNotFound) {
			logrus.Warnf("⚠️ Falha ao resolver lead pela transação %s: %v", tx, err)
		}
	}

	// Modo degradado: renderiza do espelho local, sem depender de id.
	if local := input.Session.LastTestResults(); local != nil {
		return &Resolution{Source: SourceLocalResults, LocalResults: local}, nil
	}

	return nil, entity.ErrUnresolvableIdentity
}

// resolved persiste o id no cache durável da sessão e monta a URL corrigida,
// tornando a resolução idempotente: na próxima passada a fonte 1 resolve.
func (uc *ResolveLeadUseCase) resolved(input ResolveLeadInput, id, source string) *Resolution {
	input.Session.SetCurrentLeadID(id)
	return &Resolution{
		LeadID:       id,
		Source:       source,
		CorrectedURL: fmt.Sprintf("%s?leadId=%s", input.Path, id),
	}
}
