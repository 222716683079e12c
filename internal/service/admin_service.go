package service

import (
	"context"
	"errors"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/entity"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/repository/specification"
	"gasflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetAllUsers(ctx context.Context, page, limit int, search string) ([]*dto.UserResponse, error)
	GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	UpdateUserStatus(ctx context.Context, userId uuid.UUID, status string) error
	GetSystemLogs(level string, page, limit int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *adminService) GetAllUsers(ctx context.Context, page, limit int, search string) ([]*dto.UserResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.Limit{N: limit},
		specification.Offset{N: (page - 1) * limit},
	}
	if search != "" {
		specs = append(specs, specification.SearchNameOrEmail{Term: search})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, toUserResponse(u))
	}
	return res, nil
}

func (s *adminService) GetUserDetail(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return nil, errors.New("user not found")
	}
	return toUserResponse(user), nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userId uuid.UUID, status string) error {
	if status != string(entity.UserStatusActive) && status != string(entity.UserStatusBlocked) {
		return errors.New("invalid status")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return errors.New("user not found")
	}
	if user.IsAdmin() {
		return errors.New("cannot change admin status")
	}

	return uow.UserRepository().UpdateStatus(ctx, userId, status)
}

func (s *adminService) GetSystemLogs(level string, page, limit int) ([]logger.LogEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.logger.GetLogs(level, limit, (page-1)*limit)
}
