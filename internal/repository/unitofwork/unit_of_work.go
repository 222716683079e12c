package unitofwork

import (
	"context"

	"gasflow-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProductRepository() contract.ProductRepository
	CartRepository() contract.CartRepository
	OrderRepository() contract.OrderRepository
	AddressRepository() contract.AddressRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
