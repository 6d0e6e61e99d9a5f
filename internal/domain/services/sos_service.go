package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/models"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
	"github.com/JoshCLWren/TrailGuard/pkg/metrics"
)

// InterfaceSOSService resolves and transitions a user's SOS state.
type InterfaceSOSService interface {
	GetStatus(ctx context.Context, userID string) (models.StatusView, error)
	Activate(ctx context.Context, userID string, in ActivateSOSInput) (models.StatusView, error)
	Cancel(ctx context.Context, userID string) (models.StatusView, error)
}

// ActivateSOSInput carries the optional details of an activation.
type ActivateSOSInput struct {
	Message  *string               `json:"message" binding:"omitempty,max=2000" example:"Twisted ankle near the ridge"`
	Location *models.LocationInput `json:"location"`
}

// SOSService keeps at most one open session per user.
type SOSService struct {
	DB       *gorm.DB
	Config   *config.Config
	Cache    InterfaceCacheService
	Notifier InterfaceSOSNotifier
	Now      func() time.Time
}

// NewSOSService creates the SOS service
func NewSOSService(db *gorm.DB, cfg *config.Config, cache InterfaceCacheService, notifier InterfaceSOSNotifier) InterfaceSOSService {
	if notifier == nil {
		notifier = NoopSOSNotifier{}
	}
	return &SOSService{
		DB:       db,
		Config:   cfg,
		Cache:    cache,
		Notifier: notifier,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

func sosCacheKey(userID string) string {
	return "sos:status:" + userID
}

// activeSession returns the most recently started open session, or nil.
func activeSession(tx *gorm.DB, userID string) (*models.SOSSession, error) {
	var rows []models.SOSSession
	err := tx.Where("user_id = ? AND cancel_time IS NULL", userID).
		Order("start_time DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// 1 GetStatus resolves the current state without writing. Only transitions
// fill the cache, so a read never stores a view older than a commit.
func (s *SOSService) GetStatus(ctx context.Context, userID string) (models.StatusView, error) {
	var view models.StatusView
	if s.Cache != nil {
		if hit, err := s.Cache.Get(ctx, sosCacheKey(userID), &view); err == nil && hit {
			return view, nil
		}
	}

	sess, err := activeSession(s.DB.WithContext(ctx), userID)
	if err != nil {
		return models.StatusView{}, err
	}
	return models.NewStatusView(sess), nil
}

// 2 Activate reuses the open session or starts a new one
func (s *SOSService) Activate(ctx context.Context, userID string, in ActivateSOSInput) (models.StatusView, error) {
	now := s.Now().UTC()

	var (
		sess *models.SOSSession
		kind SOSEventType
	)
	attempt := func() error {
		return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			open, err := activeSession(tx, userID)
			if err != nil {
				return err
			}
			if open == nil {
				open = &models.SOSSession{UserID: userID, StartTime: now}
				applyActivation(open, in)
				if err := tx.Create(open).Error; err != nil {
					return err
				}
				sess, kind = open, SOSEventActivated
				s.remember(ctx, userID, models.NewStatusView(open))
				return nil
			}
			applyActivation(open, in)
			if err := tx.Save(open).Error; err != nil {
				return err
			}
			sess, kind = open, SOSEventUpdated
			s.remember(ctx, userID, models.NewStatusView(open))
			return nil
		})
	}

	err := attempt()
	if isDuplicateKey(err) {
		// another writer opened a session first; run again to reuse it
		logger.Info("sos activate for user %s raced another writer, retrying", userID)
		err = attempt()
	}
	if err != nil {
		s.forget(ctx, userID)
		return models.StatusView{}, err
	}

	view := models.NewStatusView(sess)
	s.afterTransition(userID, kind, sess, now)
	return view, nil
}

func applyActivation(sess *models.SOSSession, in ActivateSOSInput) {
	if in.Message != nil && *in.Message != "" {
		msg := *in.Message
		sess.Message = &msg
	}
	if in.Location.Complete() {
		sess.LastKnown.SetLocation(in.Location.Location())
	}
}

// 3 Cancel closes the open session; with none open it changes nothing
func (s *SOSService) Cancel(ctx context.Context, userID string) (models.StatusView, error) {
	now := s.Now().UTC()

	var cancelled, next *models.SOSSession
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		open, err := activeSession(tx, userID)
		if err != nil || open == nil {
			return err
		}
		open.CancelTime = &now
		if err := tx.Save(open).Error; err != nil {
			return err
		}
		cancelled = open
		if next, err = activeSession(tx, userID); err != nil {
			return err
		}
		s.remember(ctx, userID, models.NewStatusView(next))
		return nil
	})
	if err != nil {
		s.forget(ctx, userID)
		return models.StatusView{}, err
	}

	view := models.NewStatusView(next)
	if cancelled == nil {
		return view, nil
	}
	s.afterTransition(userID, SOSEventCancelled, cancelled, now)
	return view, nil
}

// afterTransition runs the post-commit side effects. None of them can fail
// the request.
func (s *SOSService) afterTransition(userID string, kind SOSEventType, sess *models.SOSSession, now time.Time) {
	metrics.SOSTransition(string(kind))

	event := SOSEvent{
		Type:      kind,
		UserID:    userID,
		SessionID: sess.ID,
		Message:   sess.Message,
		Location:  sess.LastKnown.Location(),
		Timestamp: now,
	}
	if err := s.Notifier.PublishSOSEvent(event); err != nil {
		logger.Warning("sos %s event for user %s not published: %v", kind, userID, err)
	}
}

// remember runs inside the transition's transaction. Writers to one user's
// sessions are serialized by the store, so cache writes land in commit order.
func (s *SOSService) remember(ctx context.Context, userID string, view models.StatusView) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, sosCacheKey(userID), view, 0); err != nil {
		logger.Warning("cache sos status for user %s: %v", userID, err)
	}
}

func (s *SOSService) forget(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, sosCacheKey(userID)); err != nil {
		logger.Warning("drop cached sos status for user %s: %v", userID, err)
	}
}
