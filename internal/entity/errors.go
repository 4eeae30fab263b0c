package entity

import "errors"

var (
	ErrLeadNotFound         = errors.New("lead não encontrado")
	ErrResultNotFound       = errors.New("nenhum resultado de teste encontrado")
	ErrUnresolvableIdentity = errors.New("não foi possível resolver o identificador do lead")
)
