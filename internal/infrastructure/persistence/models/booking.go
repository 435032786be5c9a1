package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/shopspring/decimal"
)

// RoomModel is the persistence model for the Room domain entity.
type RoomModel struct {
	TenantAggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Capacity    int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room entity.
func (m *RoomModel) ToDomain() *booking.Room {
	r := &booking.Room{
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Capacity:    m.Capacity,
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Room entity.
func (m *RoomModel) FromDomain(r *booking.Room) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.Name = r.Name
	m.Description = r.Description
	m.Price = r.Price
	m.Capacity = r.Capacity
}

// RoomModelFromDomain creates a new persistence model from a domain Room entity.
func RoomModelFromDomain(r *booking.Room) *RoomModel {
	m := &RoomModel{}
	m.FromDomain(r)
	return m
}

// BookingModel is the persistence model for the Booking domain entity.
type BookingModel struct {
	TenantAggregateModel
	RoomID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	GuestName     string               `gorm:"type:varchar(200);not null"`
	GuestPhone    string               `gorm:"type:varchar(50)"`
	GuestEmail    string               `gorm:"type:varchar(200)"`
	GuestCount    int                  `gorm:"not null;default:1"`
	Type          booking.BookingType  `gorm:"type:varchar(20);not null;default:'individual'"`
	CheckIn       time.Time            `gorm:"not null;index"`
	CheckOut      time.Time            `gorm:"not null"`
	TotalAmount   decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountType  booking.DiscountType `gorm:"type:varchar(20);not null;default:'fixed'"`
	DiscountValue decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	AdvancePaid   decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	IsPaid        bool                 `gorm:"not null;default:false;index"`
	Referral      string               `gorm:"type:varchar(200)"`
	Notes         string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BookingModel) TableName() string {
	return "bookings"
}

// ToDomain converts the persistence model to a domain Booking entity.
func (m *BookingModel) ToDomain() *booking.Booking {
	b := &booking.Booking{
		RoomID:        m.RoomID,
		GuestName:     m.GuestName,
		GuestPhone:    m.GuestPhone,
		GuestEmail:    m.GuestEmail,
		GuestCount:    m.GuestCount,
		Type:          m.Type,
		CheckIn:       m.CheckIn,
		CheckOut:      m.CheckOut,
		TotalAmount:   m.TotalAmount,
		DiscountType:  m.DiscountType,
		DiscountValue: m.DiscountValue,
		AdvancePaid:   m.AdvancePaid,
		IsPaid:        m.IsPaid,
		Referral:      m.Referral,
		Notes:         m.Notes,
	}
	m.PopulateTenantAggregateRoot(&b.TenantAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Booking entity.
func (m *BookingModel) FromDomain(b *booking.Booking) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.RoomID = b.RoomID
	m.GuestName = b.GuestName
	m.GuestPhone = b.GuestPhone
	m.GuestEmail = b.GuestEmail
	m.GuestCount = b.GuestCount
	m.Type = b.Type
	m.CheckIn = b.CheckIn
	m.CheckOut = b.CheckOut
	m.TotalAmount = b.TotalAmount
	m.DiscountType = b.DiscountType
	m.DiscountValue = b.DiscountValue
	m.AdvancePaid = b.AdvancePaid
	m.IsPaid = b.IsPaid
	m.Referral = b.Referral
	m.Notes = b.Notes
}

// BookingModelFromDomain creates a new persistence model from a domain Booking entity.
func BookingModelFromDomain(b *booking.Booking) *BookingModel {
	m := &BookingModel{}
	m.FromDomain(b)
	return m
}
