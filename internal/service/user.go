package service

import (
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/repo"
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// UserService — регистрация, вход и профиль сотрудника.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// RegisterInput — данные формы регистрации.
type RegisterInput struct {
	Username   string `json:"username" validate:"required,min=3,max=64"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FirstName  string `json:"firstname" validate:"required"`
	LastName   string `json:"lastname" validate:"required"`
	Rank       string `json:"rank"`
	StationID  string `json:"stationId"`
	ProfilePic string `json:"profilepic" validate:"omitempty,url"`
	Role       string `json:"role" validate:"omitempty,oneof=OFFICER ADMIN"`
}

// UpdateProfileInput — частичное обновление профиля; nil-поля не трогаются.
type UpdateProfileInput struct {
	FirstName  *string `json:"firstname" validate:"omitempty,min=1"`
	LastName   *string `json:"lastname" validate:"omitempty,min=1"`
	Rank       *string `json:"rank"`
	StationID  *string `json:"stationId"`
	ProfilePic *string `json:"profilepic" validate:"omitempty,url"`
	Password   *string `json:"password" validate:"omitempty,min=6"`
}

// UserInfo — профиль с количеством заведённых дел.
type UserInfo struct {
	*model.User
	CaseCount int64 `json:"caseCount"`
}

// Register создаёт сотрудника. Занятый username или email — ErrLoginTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return nil, err
	}

	for _, login := range []string{in.Username, in.Email} {
		existing, err := s.repo.GetUserByLogin(ctx, login)
		if err != nil && !repo.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrLoginTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:   in.Username,
		Email:      in.Email,
		Password:   string(hash),
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Rank:       in.Rank,
		StationID:  in.StationID,
		ProfilePic: in.ProfilePic,
		Role:       model.Role(in.Role),
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrLoginTaken
		}
		return nil, err
	}
	return created, nil
}

// Login проверяет пароль. Неизвестный логин и неверный пароль неразличимы для клиента.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrBadPassword
		}
		return nil, err
	}
	if user == nil {
		return nil, ErrBadPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadPassword
	}
	return user, nil
}

// Get возвращает сотрудника по id.
func (s *UserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Info(ctx context.Context, userID int64) (*UserInfo, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.CountCases(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserInfo{User: user, CaseCount: n}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*model.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	setString(updates, "first_name", in.FirstName)
	setString(updates, "last_name", in.LastName)
	setString(updates, "rank", in.Rank)
	setString(updates, "station_id", in.StationID)
	setString(updates, "profile_pic", in.ProfilePic)
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	user, err := s.repo.UpdateProfile(ctx, userID, updates)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func setString(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = strings.TrimSpace(*v)
	}
}
