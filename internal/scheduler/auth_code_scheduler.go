package scheduler

import (
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CodePurger removes verification codes past their expiry.
type CodePurger interface {
	PurgeExpiredCodes() (int64, error)
}

// AuthCodeScheduler 만료된 인증번호 정리 스케줄러
type AuthCodeScheduler struct {
	cron   *cron.Cron
	purger CodePurger
	spec   string
}

// NewAuthCodeScheduler 인증번호 정리 스케줄러 생성
func NewAuthCodeScheduler(purger CodePurger, spec string) *AuthCodeScheduler {
	return &AuthCodeScheduler{
		cron:   cron.New(),
		purger: purger,
		spec:   spec,
	}
}

// Start 스케줄러 시작
func (s *AuthCodeScheduler) Start() error {
	// 기본값 "*/10 * * * *" = 10분마다
	_, err := s.cron.AddFunc(s.spec, s.runPurge)
	if err != nil {
		logger.Error("Failed to add cron job for auth code purge", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Auth code scheduler started successfully", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *AuthCodeScheduler) runPurge() {
	purged, err := s.purger.PurgeExpiredCodes()
	if err != nil {
		logger.Error("Failed to purge expired auth codes from scheduler", err)
		return
	}

	logger.Debug("Scheduled auth code purge finished", map[string]interface{}{
		"purged": purged,
	})
}

// Stop 스케줄러 중지
func (s *AuthCodeScheduler) Stop() {
	logger.Info("Stopping auth code scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Auth code scheduler stopped")
}
