package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) Create(ctx context.Context, dto models.UserDto) (models.UserDto, error) {
	user := &models.User{Name: dto.Name, Email: dto.Email}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return models.UserDto{}, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return models.UserToDto(user), nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.UserDto, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.UserDto, 0, len(users))
	for i := range users {
		dtos = append(dtos, models.UserToDto(&users[i]))
	}
	return dtos, nil
}

func (s *UserService) FindUserByID(ctx context.Context, id int64) (models.UserDto, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return models.UserDto{}, err
	}
	return models.UserToDto(user), nil
}

// Update applies only the fields present in dto, a true partial update.
func (s *UserService) Update(ctx context.Context, dto models.UserUpdateDto, id int64) (models.UserDto, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return models.UserDto{}, err
	}

	updated := false
	if dto.Name != nil {
		user.Name = *dto.Name
		updated = true
	}
	if dto.Email != nil {
		user.Email = *dto.Email
		updated = true
	}
	if !updated {
		return models.UserToDto(user), nil
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return models.UserDto{}, err
	}
	return models.UserToDto(user), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}
