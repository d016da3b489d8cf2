package trips

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gaurav-prasanna/link2itinerary/logger"
	"github.com/gaurav-prasanna/link2itinerary/validation"
)

// Service validates input and applies seed lifecycle rules on top of a Store.
type Service struct {
	store    Store
	validate *validation.Validator
	log      logger.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(store Store, log logger.Logger) *Service {
	return &Service{
		store:    store,
		validate: validation.New(),
		log:      log.With(map[string]interface{}{"component": "trips"}),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Seed, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	checkIn, _ := time.Parse(DateLayout, req.CheckIn)
	checkOut, _ := time.Parse(DateLayout, req.CheckOut)
	if checkOut.Before(checkIn) {
		return nil, validation.Field("checkOut", "gtefield=checkIn")
	}

	now := s.now().UTC()
	seed := &Seed{
		ID:                s.newID(),
		URL:               req.URL,
		Summary:           req.Summary,
		Location:          req.Location,
		CheckIn:           req.CheckIn,
		CheckOut:          req.CheckOut,
		AccommodationName: req.AccommodationName,
		AccommodationType: req.AccommodationType,
		Metadata:          req.Metadata,
		Status:            StatusSeedCreated,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.Create(ctx, seed); err != nil {
		return nil, err
	}

	s.log.Info("trip seed created", map[string]interface{}{"tripId": seed.ID, "location": seed.Location})
	return seed, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Seed, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Seed, error) {
	return s.store.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Seed, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	seed, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(seed)
	seed.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// SetStatus moves a seed to status.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*Seed, error) {
	seed, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	seed.Status = status
	seed.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, seed); err != nil {
		return nil, err
	}

	s.log.Info("trip seed status changed", map[string]interface{}{"tripId": id, "status": string(status)})
	return seed, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) check(v interface{}) error {
	return s.validate.Struct(v)
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return validation.Field("id", "uuid")
	}
	return nil
}
