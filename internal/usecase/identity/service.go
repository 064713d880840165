package identity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"identity-service/internal/auth"
	"identity-service/internal/domain/account"
	"identity-service/internal/logger"
	"identity-service/internal/notifier"
	appErrors "identity-service/pkg/errors"
	"identity-service/pkg/utils"
)

// Service implements the identity use cases: register, login, and the
// two halves of the password-reset flow.
type Service struct {
	accounts account.Repository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	resets   *auth.ResetTokenManager
	notifier notifier.Notifier
	clock    auth.Clock

	resetLinkBaseURL string
}

func NewService(
	accounts account.Repository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenService,
	resets *auth.ResetTokenManager,
	mailer notifier.Notifier,
	clock auth.Clock,
	resetLinkBaseURL string,
) *Service {
	return &Service{
		accounts:         accounts,
		hasher:           hasher,
		tokens:           tokens,
		resets:           resets,
		notifier:         mailer,
		clock:            clock,
		resetLinkBaseURL: resetLinkBaseURL,
	}
}

// Register creates a new account with the default client role. No token is
// issued; the caller logs in separately.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AccountResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existing, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrAccountAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := &account.Account{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         account.RoleClient,
	}

	if err := s.accounts.Save(ctx, acc); err != nil {
		// Two concurrent registrations can both pass the lookup; the unique
		// index settles it.
		if errors.Is(err, account.ErrDuplicateEmail) {
			return nil, appErrors.ErrAccountAlreadyExists
		}
		return nil, err
	}

	logger.Info("Account registered",
		zap.String("account_id", acc.ID.String()),
		zap.String("email", acc.Email),
		zap.String("role", acc.Role),
		zap.String("event", "account_registered"),
	)

	return ToAccountResponse(acc), nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password surface as the same ErrInvalidCredentials so callers cannot
// enumerate accounts.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	acc, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			logger.Warn("Login attempt with unknown email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_unknown_email"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, acc.PasswordHash) {
		logger.Warn("Login attempt with invalid password",
			zap.String("account_id", acc.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(acc.Email, acc.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("Login successful",
		zap.String("account_id", acc.ID.String()),
		zap.String("role", acc.Role),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// RequestPasswordReset generates a reset token, persists it on the account,
// and emails a reset link. A repeated request replaces any pending token.
// If the email cannot be delivered the persisted token is rolled back and
// ErrNotificationFailed is returned, so no orphaned token survives.
//
// Returns ErrAccountNotFound for unknown emails; the HTTP layer collapses
// that into the same response as success.
func (s *Service) RequestPasswordReset(ctx context.Context, req *RequestResetRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	acc, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			logger.Info("Password reset requested for unknown email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_unknown_email"),
			)
			return appErrors.ErrAccountNotFound
		}
		return fmt.Errorf("failed to retrieve account: %w", err)
	}

	token, err := s.resets.Generate()
	if err != nil {
		return err
	}
	expiry := s.resets.ExpiryFrom(s.clock.Now())

	acc.SetResetToken(token, expiry)
	if err := s.accounts.Save(ctx, acc); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	subject := "Password Reset Request"
	body := fmt.Sprintf("Click the link to reset your password: %s?token=%s", s.resetLinkBaseURL, token)

	if err := s.notifier.Send(ctx, acc.Email, subject, body); err != nil {
		logger.Error("Failed to send password reset email",
			zap.String("account_id", acc.ID.String()),
			zap.String("event", "password_reset_email_failed"),
			zap.Error(err),
		)
		// Delivery failed: remove the token the user will never receive.
		// The clear is guarded by the token value so a concurrent newer
		// request is not clobbered.
		if clearErr := s.accounts.ClearResetToken(ctx, acc.ID, token); clearErr != nil &&
			!errors.Is(clearErr, account.ErrStaleResetToken) {
			logger.Error("Failed to roll back undelivered reset token",
				zap.String("account_id", acc.ID.String()),
				zap.Error(clearErr),
			)
		}
		return fmt.Errorf("%w: %v", appErrors.ErrNotificationFailed, err)
	}

	logger.Info("Password reset token issued",
		zap.String("account_id", acc.ID.String()),
		zap.Time("expires_at", expiry),
		zap.String("event", "password_reset_token_issued"),
	)

	return nil
}

// RedeemPasswordReset exchanges a valid, unexpired reset token for a new
// password. Redemption clears the token atomically with the password update,
// so the same token cannot succeed twice.
func (s *Service) RedeemPasswordReset(ctx context.Context, req *RedeemResetRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	acc, err := s.accounts.FindByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			logger.Warn("Password reset attempt with invalid token",
				zap.String("event", "password_reset_invalid_token"),
			)
			return appErrors.ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if acc.ResetTokenExpiry == nil || s.resets.IsExpired(*acc.ResetTokenExpiry, s.clock.Now()) {
		logger.Warn("Password reset attempt with expired token",
			zap.String("account_id", acc.ID.String()),
			zap.String("event", "password_reset_expired_token"),
		)
		return appErrors.ErrResetTokenExpired
	}

	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accounts.UpdatePasswordAndClearReset(ctx, acc.ID, req.Token, passwordHash); err != nil {
		if errors.Is(err, account.ErrStaleResetToken) {
			// Lost the race against another redemption or a newer request.
			return appErrors.ErrResetTokenInvalid
		}
		return err
	}

	logger.Info("Password reset successful",
		zap.String("account_id", acc.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// Profile returns the account behind a verified bearer token's subject.
func (s *Service) Profile(ctx context.Context, email string) (*AccountResponse, error) {
	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, appErrors.ErrAccountNotFound
		}
		return nil, err
	}

	return ToAccountResponse(acc), nil
}
