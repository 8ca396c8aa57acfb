package tabs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-dashboard/internal/identity"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Service manages the dashboard's tab list.
type Service interface {
	Create(ctx context.Context, input CreateTabInput) (*Tab, error)
	Get(ctx context.Context, id uuid.UUID) (*Tab, error)
	GetBySlug(ctx context.Context, slugValue string) (*Tab, error)
	List(ctx context.Context) ([]*Tab, error)
	Rename(ctx context.Context, id uuid.UUID, name string, userID uuid.UUID) (*Tab, error)
	SetIcon(ctx context.Context, id uuid.UUID, icon *string, userID uuid.UUID) (*Tab, error)
	Reorder(ctx context.Context, id uuid.UUID, newIndex int, userID uuid.UUID) ([]*Tab, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	EnsureDefault(ctx context.Context, userID uuid.UUID) (*Tab, error)
}

// CreateTabInput captures the information needed to add a tab.
type CreateTabInput struct {
	Name   string
	Icon   *string
	UserID uuid.UUID
}

// ServiceOption configures tab service behaviour.
type ServiceOption func(*service)

// WithClock overrides the time source used by the service.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator for new tabs.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the structured logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   Repository
	logger interfaces.Logger
	now    func() time.Time
	id     func() uuid.UUID
}

// NewService constructs a tab service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultTabName is the name given to the tab created on first run.
const DefaultTabName = "Main"

func (s *service) Create(ctx context.Context, input CreateTabInput) (*Tab, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.UserID == uuid.Nil {
		return nil, ErrUserRequired
	}

	slugValue, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tab := &Tab{
		ID:        s.id(),
		Name:      name,
		Slug:      slugValue,
		Icon:      input.Icon,
		Position:  len(existing),
		CreatedBy: input.UserID,
		UpdatedBy: input.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, tab)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("tabs.created", "tab_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Tab, error) {
	if id == uuid.Nil {
		return nil, ErrTabIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slugValue string) (*Tab, error) {
	normalized, err := slug.Normalize(slugValue)
	if err != nil || normalized == "" {
		return nil, ErrSlugInvalid
	}
	return s.repo.GetBySlug(ctx, normalized)
}

func (s *service) List(ctx context.Context) ([]*Tab, error) {
	return s.repo.List(ctx)
}

// Rename changes the tab's display name. The slug is stable across renames so
// bookmarks and layout keys keep working.
func (s *service) Rename(ctx context.Context, id uuid.UUID, name string, userID uuid.UUID) (*Tab, error) {
	if id == uuid.Nil {
		return nil, ErrTabIDRequired
	}
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrNameRequired
	}

	tab, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tab.Name = trimmed
	tab.UpdatedBy = userID
	tab.UpdatedAt = s.now()
	return s.repo.Update(ctx, tab)
}

func (s *service) SetIcon(ctx context.Context, id uuid.UUID, icon *string, userID uuid.UUID) (*Tab, error) {
	if id == uuid.Nil {
		return nil, ErrTabIDRequired
	}
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}

	tab, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tab.Icon = icon
	tab.UpdatedBy = userID
	tab.UpdatedAt = s.now()
	return s.repo.Update(ctx, tab)
}

// Reorder moves a tab to a new index. The move is a pure array operation:
// remove from the current slot, insert at the target slot, then renumber
// every tab to its list index so positions stay dense.
func (s *service) Reorder(ctx context.Context, id uuid.UUID, newIndex int, userID uuid.UUID) ([]*Tab, error) {
	if id == uuid.Nil {
		return nil, ErrTabIDRequired
	}
	if userID == uuid.Nil {
		return nil, ErrUserRequired
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if newIndex < 0 || newIndex >= len(list) {
		return nil, ErrPositionOutOfRange
	}

	currentIndex := -1
	for i, tab := range list {
		if tab.ID == id {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return nil, &NotFoundError{Key: id.String()}
	}
	if currentIndex == newIndex {
		return list, nil
	}

	moved := list[currentIndex]
	list = append(list[:currentIndex], list[currentIndex+1:]...)
	list = append(list[:newIndex], append([]*Tab{moved}, list[newIndex:]...)...)

	now := s.now()
	for i, tab := range list {
		if tab.Position == i {
			continue
		}
		tab.Position = i
		tab.UpdatedBy = userID
		tab.UpdatedAt = now
		if _, err := s.repo.Update(ctx, tab); err != nil {
			return nil, fmt.Errorf("tabs: reorder persist %s: %w", tab.ID, err)
		}
	}
	return list, nil
}

// Delete removes a tab. The final remaining tab cannot be deleted so the
// dashboard always has somewhere to place widgets.
func (s *service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if id == uuid.Nil {
		return ErrTabIDRequired
	}
	if userID == uuid.Nil {
		return ErrUserRequired
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(list) <= 1 {
		return ErrLastTab
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Renumber the survivors so positions stay dense.
	now := s.now()
	index := 0
	for _, tab := range list {
		if tab.ID == id {
			continue
		}
		if tab.Position != index {
			tab.Position = index
			tab.UpdatedBy = userID
			tab.UpdatedAt = now
			if _, err := s.repo.Update(ctx, tab); err != nil {
				return fmt.Errorf("tabs: renumber after delete: %w", err)
			}
		}
		index++
	}
	s.logger.Debug("tabs.deleted", "tab_id", id)
	return nil
}

// EnsureDefault creates the initial tab when none exist. The default tab has
// a deterministic identity so repeated bootstraps converge on one record.
func (s *service) EnsureDefault(ctx context.Context, userID uuid.UUID) (*Tab, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list[0], nil
	}

	slugValue, err := slug.Normalize(DefaultTabName)
	if err != nil {
		return nil, ErrSlugInvalid
	}
	now := s.now()
	return s.repo.Create(ctx, &Tab{
		ID:        identity.TabUUID(slugValue),
		Name:      DefaultTabName,
		Slug:      slugValue,
		Position:  0,
		CreatedBy: userID,
		UpdatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// uniqueSlug normalizes the name and suffixes it until no existing tab
// claims it.
func (s *service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base, err := slug.Normalize(name)
	if err != nil || base == "" {
		return "", ErrSlugInvalid
	}

	candidate := base
	for attempt := 2; ; attempt++ {
		_, err := s.repo.GetBySlug(ctx, candidate)
		if err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				return candidate, nil
			}
			return "", err
		}
		if attempt > 50 {
			return "", ErrSlugExists
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}
