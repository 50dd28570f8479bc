package usecase

import (
	"time"

	"MoverScan/internal/domain/models"
	"MoverScan/internal/services/session"
)

// SessionUseCase reports the current trading session.
type SessionUseCase struct {
	now func() time.Time
}

func NewSessionUseCase() *SessionUseCase {
	return &SessionUseCase{now: time.Now}
}

func (uc *SessionUseCase) WithClock(now func() time.Time) *SessionUseCase {
	uc.now = now
	return uc
}

func (uc *SessionUseCase) Current() models.SessionInfo {
	return session.Describe(uc.now())
}
