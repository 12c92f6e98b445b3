package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"logia/events"
	"logia/models"

	log "github.com/sirupsen/logrus"
)

// brotherService implements the BrotherService interface
type brotherService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewBrotherService creates a new brother service
func NewBrotherService(uowFactory UnitOfWorkFactory) BrotherService {
	return &brotherService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// ListBrothers returns the brothers of a grade (or all) matching the search text
func (s *brotherService) ListBrothers(ctx context.Context, grade *models.Grade, search string) ([]*models.Brother, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brothers, err := loadBrothers(ctx, uow, grade)
	if err != nil {
		return nil, err
	}

	return filterBrothers(brothers, search), nil
}

// filterBrothers keeps brothers whose name or position name contains the search text,
// ignoring case and accents
func filterBrothers(brothers []*models.Brother, search string) []*models.Brother {
	needle := models.FoldLabel(search)
	if needle == "" {
		return brothers
	}

	filtered := make([]*models.Brother, 0, len(brothers))
	for _, brother := range brothers {
		if strings.Contains(models.FoldLabel(brother.Name), needle) {
			filtered = append(filtered, brother)
			continue
		}
		if brother.PositionName != nil && strings.Contains(models.FoldLabel(*brother.PositionName), needle) {
			filtered = append(filtered, brother)
		}
	}
	return filtered
}

// loadBrothers returns all brothers, or only those of the given grade
func loadBrothers(ctx context.Context, uow UnitOfWork, grade *models.Grade) ([]*models.Brother, error) {
	if grade == nil {
		brothers, err := uow.BrotherRepository().GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get brothers: %w", err)
		}
		return brothers, nil
	}

	if !grade.IsValid() {
		return nil, fmt.Errorf("grade %q: %w", *grade, models.ErrInvalidGrade)
	}

	brothers, err := uow.BrotherRepository().GetByGrade(ctx, *grade)
	if err != nil {
		return nil, fmt.Errorf("failed to get brothers with grade %s: %w", *grade, err)
	}
	return brothers, nil
}

// GetBrother returns one brother
func (s *brotherService) GetBrother(ctx context.Context, id int64) (*models.Brother, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brother, err := uow.BrotherRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get brother: %w", err)
	}
	if brother == nil {
		return nil, fmt.Errorf("brother %d: %w", id, models.ErrBrotherNotFound)
	}

	return brother, nil
}

// GetGradeDistribution returns how many brothers hold each grade
func (s *brotherService) GetGradeDistribution(ctx context.Context) ([]models.GradeCount, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brothers, err := uow.BrotherRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get brothers: %w", err)
	}

	return GradeDistribution(brothers), nil
}

// GradeDistribution counts brothers per grade in rank order.
// Every grade is listed, with a 0% share when there are no brothers.
func GradeDistribution(brothers []*models.Brother) []models.GradeCount {
	counts := make(map[models.Grade]int, len(models.AllGrades))
	for _, brother := range brothers {
		counts[brother.Grade]++
	}

	distribution := make([]models.GradeCount, 0, len(models.AllGrades))
	for _, grade := range models.AllGrades {
		distribution = append(distribution, models.GradeCount{
			Grade:      grade,
			Count:      counts[grade],
			Percentage: percentage(counts[grade], len(brothers)),
		})
	}
	return distribution
}

// UpdateBrother changes a brother's grade and position. Moving a brother into a
// position held by someone else vacates it for the previous holder first.
func (s *brotherService) UpdateBrother(ctx context.Context, id int64, grade models.Grade, positionID *int64) (*models.Brother, error) {
	if !grade.IsValid() {
		return nil, fmt.Errorf("grade %q: %w", grade, models.ErrInvalidGrade)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	brother, err := uow.BrotherRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get brother: %w", err)
	}
	if brother == nil {
		return nil, fmt.Errorf("brother %d: %w", id, models.ErrBrotherNotFound)
	}

	if err := uow.BrotherRepository().UpdateGradeAndPosition(ctx, id, grade, brother.PositionID); err != nil {
		return nil, fmt.Errorf("failed to update brother: %w", err)
	}

	today := s.now()
	switch {
	case samePosition(brother.PositionID, positionID):
	case positionID == nil:
		if err := vacatePosition(ctx, uow, *brother.PositionID, id, today); err != nil {
			return nil, err
		}
	default:
		if _, err := reassignPosition(ctx, uow, *positionID, &id, today); err != nil {
			return nil, err
		}
	}

	updated, err := uow.BrotherRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload brother: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

func samePosition(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ImportBrothers creates brothers from spreadsheet rows in one transaction.
// Position names are matched ignoring case and accents; unknown names and
// positions already taken leave the brother without a position.
func (s *brotherService) ImportBrothers(ctx context.Context, rows []models.ImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	holders, err := uow.PositionRepository().GetHolders(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get positions: %w", err)
	}

	positionsByName := make(map[string]int64, len(holders))
	taken := make(map[int64]bool, len(holders))
	for _, holder := range holders {
		positionsByName[models.FoldLabel(holder.Position.Name)] = holder.Position.ID
		taken[holder.Position.ID] = holder.Brother != nil
	}

	brothers := make([]*models.Brother, 0, len(rows))
	for i, row := range rows {
		brother := &models.Brother{
			Name:  strings.TrimSpace(row.Name),
			Grade: row.Grade,
		}
		if !brother.Grade.IsValid() {
			brother.Grade = models.GradeApprentice
		}
		if cedula := strings.TrimSpace(row.Cedula); cedula != "" {
			brother.Cedula = &cedula
		}

		if name := models.FoldLabel(row.PositionName); name != "" {
			positionID, ok := positionsByName[name]
			switch {
			case !ok:
				log.WithFields(log.Fields{
					"row":      i + 1,
					"position": row.PositionName,
				}).Warn("Unknown position in import, brother left without position")
			case taken[positionID]:
				log.WithFields(log.Fields{
					"row":      i + 1,
					"position": row.PositionName,
				}).Warn("Position already held, brother left without position")
			default:
				brother.PositionID = &positionID
				taken[positionID] = true
			}
		}

		if err := validateStruct(brother); err != nil {
			return 0, fmt.Errorf("invalid brother in row %d: %w", i+1, err)
		}
		brothers = append(brothers, brother)
	}

	if err := uow.BrotherRepository().CreateMany(ctx, brothers); err != nil {
		return 0, fmt.Errorf("failed to import brothers: %w", err)
	}

	today := s.now()
	ids := make([]int64, 0, len(brothers))
	for _, brother := range brothers {
		ids = append(ids, brother.ID)
		if brother.PositionID == nil {
			continue
		}
		if err := uow.PositionRepository().OpenHistory(ctx, *brother.PositionID, brother.ID, today); err != nil {
			return 0, fmt.Errorf("failed to record position history: %w", err)
		}
	}

	uow.EventBus().Publish(events.BrothersImportedEvent{
		Count:      len(brothers),
		BrotherIDs: ids,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("count", len(brothers)).Info("Imported brothers")
	return len(brothers), nil
}
