package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mentisiq/funnel-api/internal/session"
)

// SessionTokenHeader transporta o token opaco da sessão do visitante. O
// cliente guarda o token e o reenvia em cada requisição.
const SessionTokenHeader = "X-Session-Token"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// visitorSession resolve (ou cria) a sessão do visitante e devolve o token
// no header da resposta para o cliente guardar.
func visitorSession(w http.ResponseWriter, r *http.Request, store *session.Store) *session.Context {
	token, sess := store.GetOrCreate(r.Header.Get(SessionTokenHeader))
	w.Header().Set(SessionTokenHeader, token)
	return sess
}
