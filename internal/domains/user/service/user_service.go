package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"library-backend/internal/domains/lending"
	"library-backend/internal/domains/user"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost      = 12
	refreshTokenTTL = 7 * 24 * time.Hour
)

// UserService implements user.Service. Refresh tokens are whitelisted
// in Redis so logout actually revokes them.
type UserService struct {
	repo    user.Repository
	lending lending.Service
	tokens  *jwt.Manager
	cache   cache.Cache // nil-safe, disables token revocation
}

func NewService(repo user.Repository, lendingSvc lending.Service, tokens *jwt.Manager, c cache.Cache) user.Service {
	return &UserService{
		repo:    repo,
		lending: lendingSvc,
		tokens:  tokens,
		cache:   c,
	}
}

// ========================================
// AUTH
// ========================================

func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		ProfilePicture: "default-avatar.png",
		Role:           user.RoleMember,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("👤 New user registered", map[string]interface{}{
		"user_id":  u.ID.String(),
		"username": u.Username,
	})

	return s.issueTokens(ctx, u)
}

func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, user.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*user.AuthResult, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	// The token must still be whitelisted; logout removes it.
	if s.cache != nil {
		var stored string
		hit, err := s.cache.Get(ctx, refreshKey(userID), &stored)
		if err == nil && (!hit || stored != refreshToken) {
			return nil, user.ErrInvalidToken
		}
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, refreshKey(userID)); err != nil {
		logger.Error("failed to revoke refresh token", err)
	}
	return nil
}

func (s *UserService) issueTokens(ctx context.Context, u *user.User) (*user.AuthResult, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email, u.Username, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, refreshKey(u.ID), refresh, refreshTokenTTL); err != nil {
			logger.Error("failed to store refresh token", err)
		}
	}

	return &user.AuthResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

func refreshKey(userID uuid.UUID) string {
	return "auth:refresh:" + userID.String()
}

// ========================================
// PROFILE
// ========================================

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.Profile, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.repo.ListWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	reading, err := s.repo.ListReading(ctx, userID)
	if err != nil {
		return nil, err
	}

	borrows, err := s.lending.ListUserBorrows(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &user.Profile{
		User:          u,
		Wishlist:      wishlist,
		ReadingList:   reading,
		BorrowHistory: borrows,
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		u.Username = strings.TrimSpace(req.Username)
	}
	if req.Email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req user.ChangePasswordRequest) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return user.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// ========================================
// WISHLIST
// ========================================

func (s *UserService) AddToWishlist(ctx context.Context, userID uuid.UUID, req user.AddListItemRequest) error {
	return s.repo.AddWishlistItem(ctx, user.WishlistItem{
		ID:         uuid.New(),
		UserID:     userID,
		BookTitle:  req.Title,
		BookAuthor: req.Author,
		BookCover:  req.Cover,
	})
}

func (s *UserService) GetWishlist(ctx context.Context, userID uuid.UUID) ([]user.WishlistItem, error) {
	return s.repo.ListWishlist(ctx, userID)
}

func (s *UserService) RemoveFromWishlist(ctx context.Context, userID uuid.UUID, title string) error {
	removed, err := s.repo.RemoveWishlistItem(ctx, userID, title)
	if err != nil {
		return err
	}
	if !removed {
		return user.ErrListItemNotFound
	}
	return nil
}

// ========================================
// READING LIST
// ========================================

func (s *UserService) AddToReadingList(ctx context.Context, userID uuid.UUID, req user.AddListItemRequest) error {
	return s.repo.AddReadingItem(ctx, user.ReadingListItem{
		ID:         uuid.New(),
		UserID:     userID,
		BookTitle:  req.Title,
		BookAuthor: req.Author,
		BookCover:  req.Cover,
	})
}

func (s *UserService) GetReadingList(ctx context.Context, userID uuid.UUID) ([]user.ReadingListItem, error) {
	return s.repo.ListReading(ctx, userID)
}

func (s *UserService) UpdateReadingProgress(ctx context.Context, userID uuid.UUID, title string, progress int) error {
	updated, err := s.repo.UpdateReadingProgress(ctx, userID, title, progress)
	if err != nil {
		return err
	}
	if !updated {
		return user.ErrListItemNotFound
	}
	return nil
}

func (s *UserService) RemoveFromReadingList(ctx context.Context, userID uuid.UUID, title string) error {
	removed, err := s.repo.RemoveReadingItem(ctx, userID, title)
	if err != nil {
		return err
	}
	if !removed {
		return user.ErrListItemNotFound
	}
	return nil
}
