package session

import "context"

// Repository is the external persistence collaborator. The engine itself is
// stateless; only the API adapter and tests touch a store.
type Repository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}
