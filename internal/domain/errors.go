package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrAlreadyReturned       = errors.New("movimiento ya devuelto")
	ErrHasOpenMovements      = errors.New("equipo con préstamos abiertos")
	ErrReferencedByMovements = errors.New("usuario referenciado por movimientos")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrStoreUnavailable      = errors.New("almacén de datos no disponible")
)
