package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RoomService handles room management within a company
type RoomService struct {
	roomRepo    booking.RoomRepository
	bookingRepo booking.BookingRepository
	logger      *zap.Logger
}

// NewRoomService creates a new room service
func NewRoomService(
	roomRepo booking.RoomRepository,
	bookingRepo booking.BookingRepository,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateRoom creates a new room for the company
func (s *RoomService) CreateRoom(ctx context.Context, tenantID uuid.UUID, input CreateRoomInput) (*RoomResponse, error) {
	room, err := booking.NewRoom(tenantID, input.Name, input.Price, input.Capacity)
	if err != nil {
		return nil, err
	}
	room.Description = input.Description

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("Room created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("room_id", room.ID.String()))

	response := ToRoomResponse(room)
	return &response, nil
}

// GetRoom returns one room of the company
func (s *RoomService) GetRoom(ctx context.Context, tenantID, roomID uuid.UUID) (*RoomResponse, error) {
	room, err := s.findRoom(ctx, tenantID, roomID)
	if err != nil {
		return nil, err
	}

	response := ToRoomResponse(room)
	return &response, nil
}

// ListRooms returns a page of the company's rooms
func (s *RoomService) ListRooms(ctx context.Context, tenantID uuid.UUID, input ListRoomsInput) (*ListRoomsResult, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}

	filter := shared.Filter{
		Page:     input.Page,
		PageSize: input.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   input.Search,
	}

	rooms, err := s.roomRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.roomRepo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = ToRoomResponse(&rooms[i])
	}

	return &ListRoomsResult{
		Rooms:      responses,
		TotalCount: total,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}, nil
}

// UpdateRoom updates a room's details
func (s *RoomService) UpdateRoom(ctx context.Context, tenantID, roomID uuid.UUID, input UpdateRoomInput) (*RoomResponse, error) {
	room, err := s.findRoom(ctx, tenantID, roomID)
	if err != nil {
		return nil, err
	}

	if err := room.Update(input.Name, input.Description, input.Price, input.Capacity); err != nil {
		return nil, err
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}

	response := ToRoomResponse(room)
	return &response, nil
}

// DeleteRoom deletes a room. Rooms that still have bookings cannot be
// deleted.
func (s *RoomService) DeleteRoom(ctx context.Context, tenantID, roomID uuid.UUID) error {
	room, err := s.findRoom(ctx, tenantID, roomID)
	if err != nil {
		return err
	}

	count, err := s.bookingRepo.CountByTenant(ctx, tenantID, booking.BookingFilter{RoomID: &room.ID})
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("ROOM_IN_USE", "Room has bookings and cannot be deleted")
	}

	if err := s.roomRepo.Delete(ctx, tenantID, roomID); err != nil {
		return err
	}

	s.logger.Info("Room deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("room_id", roomID.String()))

	return nil
}

func (s *RoomService) findRoom(ctx context.Context, tenantID, roomID uuid.UUID) (*booking.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, tenantID, roomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ROOM_NOT_FOUND", "Room not found")
		}
		return nil, err
	}
	return room, nil
}
