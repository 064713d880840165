package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"identity-service/internal/domain/account"
	"identity-service/internal/infrastructure/database/postgres/models"
)

// AccountRepository implements account.Repository on top of gorm/Postgres.
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) FindByResetToken(ctx context.Context, token string) (*account.Account, error) {
	var dbModel models.AccountModel
	err := r.db.DB.WithContext(ctx).Where("reset_token = ?", token).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by reset token: %w", err)
	}

	return toAccountEntity(&dbModel), nil
}

func (r *AccountRepository) Save(ctx context.Context, a *account.Account) error {
	now := time.Now()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	dbModel := toAccountModel(a)
	if err := r.db.DB.WithContext(ctx).Save(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "email") {
			return account.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

// UpdatePasswordAndClearReset is a single conditional UPDATE guarded by the
// stored reset token, so concurrent redemptions of the same token serialize
// here: zero rows affected means the token was already redeemed or replaced.
func (r *AccountRepository) UpdatePasswordAndClearReset(ctx context.Context, id uuid.UUID, resetToken, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ? AND reset_token = ?", id, resetToken).
		Updates(map[string]interface{}{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to redeem reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrStaleResetToken
	}

	return nil
}

func (r *AccountRepository) ClearResetToken(ctx context.Context, id uuid.UUID, resetToken string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ? AND reset_token = ?", id, resetToken).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to clear reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrStaleResetToken
	}

	return nil
}

func toAccountModel(a *account.Account) *models.AccountModel {
	return &models.AccountModel{
		ID:               a.ID,
		Email:            a.Email,
		PasswordHash:     a.PasswordHash,
		Role:             a.Role,
		ResetToken:       a.ResetToken,
		ResetTokenExpiry: a.ResetTokenExpiry,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toAccountEntity(m *models.AccountModel) *account.Account {
	return &account.Account{
		ID:               m.ID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		Role:             m.Role,
		ResetToken:       m.ResetToken,
		ResetTokenExpiry: m.ResetTokenExpiry,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
