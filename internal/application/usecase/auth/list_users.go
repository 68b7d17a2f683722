package auth

import (
	"context"
	"fmt"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// ListUsersOutput holds every user ordered by name.
type ListUsersOutput struct {
	Users []*entity.User
}

// ListUsersUseCase lists the user directory.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute lists users.
func (uc *ListUsersUseCase) Execute(ctx context.Context) (*ListUsersOutput, error) {
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &ListUsersOutput{Users: users}, nil
}
