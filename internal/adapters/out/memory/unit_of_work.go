package memory

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

var _ ports.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers changes until Commit. It holds the store's writer slot
// from Begin until Commit or Rollback, so it must always be closed by one of them.
type UnitOfWork struct {
	store  *Store
	staged map[kernel.UUID]*order.Snapshot
}

// Begin waits for the writer slot or ctx. Calling it again while a
// transaction is open is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.staged != nil {
		return nil
	}

	if err := uow.store.acquire(ctx); err != nil {
		return err
	}

	uow.staged = make(map[kernel.UUID]*order.Snapshot)
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoTransaction
	}

	uow.store.apply(uow.staged)
	uow.close()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoTransaction
	}

	uow.close()
	return nil
}

// OrderRepository reads through staged changes while a transaction is open and
// autocommits each write otherwise.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.staged == nil {
		return NewOrderRepository(uow.store)
	}
	return &OrderRepository{store: uow.store, staged: uow.staged}
}

func (uow *UnitOfWork) close() {
	uow.staged = nil
	uow.store.release()
}
