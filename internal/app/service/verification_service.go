package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/internal/observability"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"github.com/ikkim/kiwimarket-backend/pkg/sms"
	"github.com/ikkim/kiwimarket-backend/pkg/util"
	"gorm.io/gorm"
)

// VerificationOutcome values double as response messages.
type VerificationOutcome string

const (
	OutcomeDeny   VerificationOutcome = "DENY"
	OutcomeSignIn VerificationOutcome = "SIGNIN"
	OutcomeSignUp VerificationOutcome = "SIGNUP"
)

// VerificationResult carries a session token only for OutcomeSignIn.
type VerificationResult struct {
	Outcome VerificationOutcome
	Token   string
	UserID  uint
}

type VerificationService interface {
	RequestCode(ctx context.Context, phoneNumber string) error
	VerifyCode(phoneNumber, authNumber string) (*VerificationResult, error)
	PurgeExpiredCodes() (int64, error)
}

type verificationService struct {
	authSmsRepo  repository.AuthSmsRepository
	userRepo     repository.UserRepository
	sender       sms.Sender
	tokens       TokenIssuer
	codeTTL      time.Duration
	generateCode func() (string, error)
	now          func() time.Time
}

func NewVerificationService(
	authSmsRepo repository.AuthSmsRepository,
	userRepo repository.UserRepository,
	sender sms.Sender,
	tokens TokenIssuer,
	codeTTL time.Duration,
) VerificationService {
	return &verificationService{
		authSmsRepo:  authSmsRepo,
		userRepo:     userRepo,
		sender:       sender,
		tokens:       tokens,
		codeTTL:      codeTTL,
		generateCode: util.GenerateAuthNumber,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RequestCode stores a fresh code for the number, replacing any earlier one,
// and hands it to the SMS sender. A failed dispatch keeps the stored code.
func (s *verificationService) RequestCode(ctx context.Context, phoneNumber string) error {
	if err := util.ValidatePhoneNumber(phoneNumber); err != nil {
		logger.Warn("Verification code request rejected: invalid phone number", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	code, err := s.generateCode()
	if err != nil {
		logger.Error("Failed to generate verification code", err)
		return err
	}

	record := &model.AuthSms{
		PhoneNumber: phoneNumber,
		AuthNumber:  code,
		ExpiresAt:   s.now().Add(s.codeTTL),
	}
	if err := s.authSmsRepo.Upsert(record); err != nil {
		logger.Error("Failed to store verification code", err)
		return err
	}

	if err := s.sender.SendCode(ctx, phoneNumber, code); err != nil {
		observability.VerificationCodesSent.WithLabelValues("failed").Inc()
		logger.Error("Failed to dispatch verification code", err, map[string]interface{}{
			"expires_at": record.ExpiresAt,
		})
		return nil
	}

	observability.VerificationCodesSent.WithLabelValues("sent").Inc()
	logger.Info("Verification code issued", map[string]interface{}{
		"expires_at": record.ExpiresAt,
	})
	return nil
}

// VerifyCode consumes a matching code. Unknown numbers, expired codes and
// mismatches all yield OutcomeDeny without an error.
func (s *verificationService) VerifyCode(phoneNumber, authNumber string) (*VerificationResult, error) {
	stored, err := s.authSmsRepo.FindByPhoneNumber(phoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.deny("no code issued"), nil
		}
		return nil, err
	}

	if stored.Expired(s.now()) {
		if err := s.authSmsRepo.DeleteByPhoneNumber(phoneNumber); err != nil {
			return nil, err
		}
		return s.deny("code expired"), nil
	}

	if stored.AuthNumber != authNumber {
		return s.deny("code mismatch"), nil
	}

	// 코드 소비 전에 조회해서 DB 오류가 코드를 태우지 않게 한다
	user, err := s.userRepo.FindByPhoneNumber(phoneNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	consumed, err := s.authSmsRepo.Consume(phoneNumber, authNumber)
	if err != nil {
		return nil, err
	}
	if consumed == 0 {
		return s.deny("code already used"), nil
	}

	if user == nil {
		observability.VerificationOutcomes.WithLabelValues(string(OutcomeSignUp)).Inc()
		logger.Info("Verification succeeded for new phone number")
		return &VerificationResult{Outcome: OutcomeSignUp}, nil
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		logger.Error("Failed to issue session token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	observability.VerificationOutcomes.WithLabelValues(string(OutcomeSignIn)).Inc()
	logger.Info("Verification succeeded for existing user", map[string]interface{}{
		"user_id": user.ID,
	})
	return &VerificationResult{Outcome: OutcomeSignIn, Token: token, UserID: user.ID}, nil
}

func (s *verificationService) deny(reason string) *VerificationResult {
	observability.VerificationOutcomes.WithLabelValues(string(OutcomeDeny)).Inc()
	logger.Warn("Verification denied", map[string]interface{}{
		"reason": reason,
	})
	return &VerificationResult{Outcome: OutcomeDeny}
}

func (s *verificationService) PurgeExpiredCodes() (int64, error) {
	purged, err := s.authSmsRepo.DeleteExpired(s.now())
	if err != nil {
		return 0, err
	}

	observability.ExpiredCodesPurged.Add(float64(purged))
	if purged > 0 {
		logger.Info("Expired verification codes purged", map[string]interface{}{
			"count": purged,
		})
	}
	return purged, nil
}
