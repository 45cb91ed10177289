package repository

import "context"

// UnitOfWork delimita una transacción que agrupa varias mutaciones de repositorio.
//
// Begin devuelve un contexto atado a la transacción; los repositorios que reciban ese
// contexto operan dentro de ella. Commit y Rollback actúan sobre la transacción del
// contexto y no hacen nada si no hay una activa.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
