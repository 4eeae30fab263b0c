// Package session guarda o estado por visitante do funil: o lead atual, o
// lead com pagamento pendente e o espelho do último resultado. Tudo vive em
// um objeto de contexto tipado, guardado em um store em memória e
// referenciado por um token opaco que o cliente envia em cada requisição.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TestResults é o espelho local do último resultado, usado como fallback
// quando o banco está indisponível ou o identificador não resolve.
type TestResults struct {
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	LeadID         string    `json:"lead_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Context é a sessão de um visitante. Todos os acessos passam por métodos
// tipados; nada de chaves de string espalhadas.
type Context struct {
	mu sync.Mutex

	currentLeadID   string
	pendingLeadID   string
	lastTestResults *TestResults

	lastSeen time.Time
}

func (c *Context) CurrentLeadID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLeadID
}

func (c *Context) SetCurrentLeadID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentLeadID = id
}

func (c *Context) PendingLeadID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLeadID
}

func (c *Context) SetPendingLeadID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingLeadID = id
}

// ClearPendingLeadID é chamado quando o pagamento é confirmado.
func (c *Context) ClearPendingLeadID() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingLeadID = ""
}

func (c *Context) LastTestResults() *TestResults {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastTestResults == nil {
		return nil
	}
	cp := *c.lastTestResults
	return &cp
}

func (c *Context) SetLastTestResults(r TestResults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastTestResults = &r
}

func (c *Context) touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSeen = time.Now()
}

func (c *Context) idleSince(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen.Before(cutoff)
}

// Store mantém as sessões em memória, com limpeza periódica das inativas.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Context
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Context),
		ttl:      ttl,
	}
	go s.cleanup()
	return s
}

// GetOrCreate devolve a sessão do token, criando uma nova se necessário.
// Token vazio ou desconhecido gera uma sessão nova com token fresco.
func (s *Store) GetOrCreate(token string) (string, *Context) {
	if token != "" {
		s.mu.RLock()
		ctx, ok := s.sessions[token]
		s.mu.RUnlock()
		if ok {
			ctx.touch()
			return token, ctx
		}
	}

	token = uuid.New().String()
	ctx := &Context{lastSeen: time.Now()}

	s.mu.Lock()
	s.sessions[token] = ctx
	s.mu.Unlock()

	return token, ctx
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for token, ctx := range s.sessions {
			if ctx.idleSince(cutoff) {
				delete(s.sessions, token)
			}
		}
		s.mu.Unlock()
	}
}
