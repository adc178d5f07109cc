package registration

import "context"

// Repository inserta Owner y Pet en una sola transacción.
// Si falla cualquiera de los dos INSERT no queda ninguna fila.
type Repository interface {
	Register(ctx context.Context, owner Owner, pet Pet) (Result, error)
}

// Gate es el cupo de conexiones. Acquire puede bloquear o fallar si la cola está llena.
type Gate interface {
	Acquire(ctx context.Context) (release func(), err error)
}
