package handler

import (
	"context"

	"github.com/uma-arai/sbcntr-creekriver/internal/model"
)

// MockCampsiteRepository はテスト用のモックリポジトリです
type MockCampsiteRepository struct {
	campsites []model.Campsite
	campsite  *model.Campsite
	nextID    int64
	err       error

	called      bool
	gotID       int64
	gotCampsite model.Campsite
}

func (m *MockCampsiteRepository) ListCampsites(ctx context.Context) ([]model.Campsite, error) {
	m.called = true
	return m.campsites, m.err
}

func (m *MockCampsiteRepository) GetCampsite(ctx context.Context, id int64) (*model.Campsite, error) {
	m.called = true
	m.gotID = id
	return m.campsite, m.err
}

func (m *MockCampsiteRepository) CreateCampsite(ctx context.Context, campsite *model.Campsite) error {
	m.called = true
	m.gotCampsite = *campsite
	if m.err != nil {
		return m.err
	}
	campsite.ID = m.nextID
	return nil
}

func (m *MockCampsiteRepository) UpdateCampsite(ctx context.Context, id int64, campsite model.Campsite) error {
	m.called = true
	m.gotID = id
	m.gotCampsite = campsite
	return m.err
}

func (m *MockCampsiteRepository) DeleteCampsite(ctx context.Context, id int64) error {
	m.called = true
	m.gotID = id
	return m.err
}

// MockReservationRepository はテスト用のモックリポジトリです
type MockReservationRepository struct {
	reservations []model.Reservation
	nextID       int64
	err          error

	called         bool
	gotID          int64
	gotReservation model.Reservation
}

func (m *MockReservationRepository) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	m.called = true
	return m.reservations, m.err
}

func (m *MockReservationRepository) CreateReservation(ctx context.Context, reservation *model.Reservation) error {
	m.called = true
	m.gotReservation = *reservation
	if m.err != nil {
		return m.err
	}
	reservation.ID = m.nextID
	return nil
}

func (m *MockReservationRepository) DeleteReservation(ctx context.Context, id int64) error {
	m.called = true
	m.gotID = id
	return m.err
}
