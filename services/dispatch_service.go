package services

import (
	"context"
	"log/slog"
	"time"

	"dispatch-tracker/models"
	"dispatch-tracker/repositories"
	"dispatch-tracker/types"
)

// DispatchService dispatches pallets and boxes and mails a summary
// afterwards. A failing mail never fails the dispatch.
type DispatchService struct {
	repo     *repositories.DispatchRepository
	users    *repositories.UserRepository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewDispatchService(repo *repositories.DispatchRepository, users *repositories.UserRepository, notifier Notifier, logger *slog.Logger) *DispatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DispatchService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		logger:   logger.With("component", "dispatch"),
		now:      time.Now,
	}
}

func (s *DispatchService) DispatchPallets(ctx context.Context, palletIDs []types.SnowflakeID, sapExitID string, notes *string, userID uint) ([]repositories.PalletDispatchResult, error) {
	results, err := s.repo.DispatchPallets(ctx, palletIDs, sapExitID, notes, userID)
	if err != nil {
		return results, err
	}

	notice := DispatchNotice{SapExitID: sapExitID, Type: string(models.DispatchPallet)}
	for _, res := range results {
		if !res.Success {
			s.logger.Info("pallet skipped", "pallet_id", res.PalletID, "reason", res.Error)
			continue
		}
		notice.Pallets = append(notice.Pallets, res.PalletName)
		notice.BoxCount += res.BoxCount
	}
	if len(notice.Pallets) > 0 {
		s.logger.Info("pallets dispatched", "sap_exit_id", sapExitID, "pallets", len(notice.Pallets), "boxes", notice.BoxCount)
		s.notify(ctx, notice, notes, userID)
	}
	return results, nil
}

func (s *DispatchService) DispatchBoxes(ctx context.Context, boxIDs []types.SnowflakeID, sapExitID string, kind models.DispatchType, notes *string, userID uint) (*models.Dispatch, error) {
	dispatch, err := s.repo.DispatchBoxes(ctx, boxIDs, sapExitID, kind, notes, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("boxes dispatched", "dispatch_id", dispatch.ID, "sap_exit_id", dispatch.SapExitID, "boxes", len(boxIDs))
	s.notify(ctx, DispatchNotice{
		SapExitID: dispatch.SapExitID,
		Type:      string(dispatch.Type),
		BoxCount:  len(boxIDs),
	}, notes, userID)
	return dispatch, nil
}

func (s *DispatchService) notify(ctx context.Context, notice DispatchNotice, notes *string, userID uint) {
	if s.notifier == nil {
		return
	}
	if notes != nil {
		notice.Notes = *notes
	}
	if s.users != nil {
		if user, err := s.users.GetByID(ctx, userID); err == nil {
			notice.Operator = user.Email
		}
	}
	notice.Dispatched = s.now()

	if err := s.notifier.NotifyDispatch(ctx, notice); err != nil {
		s.logger.Warn("dispatch notification failed", "sap_exit_id", notice.SapExitID, "error", err)
	}
}

func (s *DispatchService) History(ctx context.Context, q repositories.DispatchQuery) ([]models.DispatchSummary, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *DispatchService) Details(ctx context.Context, id types.SnowflakeID) (*models.Dispatch, error) {
	return s.repo.Details(ctx, id)
}
