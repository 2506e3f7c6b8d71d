package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Name      string         `gorm:"size:100" json:"name"`
	Password  string         `gorm:"size:255" json:"-"` // empty for token-only signups
	Role      string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	LastLogIn time.Time      `json:"last_log_in"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	LastLogIn time.Time `json:"last_log_in"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogIn: u.LastLogIn,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Parcel workflow tables
// ============================================================

// Parcel represents parcels table. Parcel is the aggregate root of the
// delivery workflow; the assigned rider fields are a denormalized snapshot
// (weak reference by id + cached name/email), kept best-effort in sync.
type Parcel struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	TrackingID string `gorm:"uniqueIndex;size:64;not null" json:"tracking_id"`
	CreatedBy  string `gorm:"index;size:100;not null" json:"created_by"`
	Title      string `gorm:"size:200;not null" json:"title"`
	Type       string `gorm:"size:50" json:"type"`

	SenderName       string `gorm:"size:100" json:"sender_name"`
	SenderContact    string `gorm:"size:30" json:"sender_contact"`
	SenderDistrict   string `gorm:"size:100;not null" json:"sender_district"`
	SenderAddress    string `gorm:"size:255" json:"sender_address"`
	ReceiverName     string `gorm:"size:100" json:"receiver_name"`
	ReceiverContact  string `gorm:"size:30" json:"receiver_contact"`
	ReceiverDistrict string `gorm:"size:100;not null" json:"receiver_district"`
	ReceiverAddress  string `gorm:"size:255" json:"receiver_address"`

	Cost            float64 `gorm:"not null" json:"cost"`
	PaymentStatus   string  `gorm:"size:20;default:'unpaid'" json:"payment_status"`
	DeliveryStatus  string  `gorm:"size:30;default:'pending';index" json:"delivery_status"`
	CashedOutStatus string  `gorm:"size:20;default:'not_cashed_out'" json:"cashed_out_status"`

	AssignedRiderID    *uint  `gorm:"index" json:"assigned_rider_id"`
	AssignedRiderName  string `gorm:"size:100" json:"assigned_rider_name,omitempty"`
	AssignedRiderEmail string `gorm:"size:100;index" json:"assigned_rider_email,omitempty"`

	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"creation_date"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	InTransitAt *time.Time `json:"in_transit_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CashedOutAt *time.Time `json:"cashed_out_at,omitempty"`
}

func (Parcel) TableName() string {
	return "parcels"
}

// IsAssigned reports whether a rider snapshot is present on the parcel
func (p *Parcel) IsAssigned() bool {
	return p.AssignedRiderID != nil
}

// Rider represents riders table
type Rider struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone         string    `gorm:"size:30" json:"phone"`
	District      string    `gorm:"size:100;index" json:"district"`
	NID           string    `gorm:"size:50" json:"nid"`
	BikeBrand     string    `gorm:"size:50" json:"bike_brand"`
	BikeRegNo     string    `gorm:"size:50" json:"bike_registration"`
	Status        string    `gorm:"size:20;default:'pending';index" json:"status"`
	WorkStatus    string    `gorm:"size:20;default:'idle'" json:"work_status"`
	TotalEarnings float64   `gorm:"default:0" json:"total_earnings"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Rider) TableName() string {
	return "riders"
}

// TrackingEvent represents tracking_events table. Rows are append-only:
// no handler or service updates or deletes them.
type TrackingEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TrackingID string    `gorm:"index;size:64;not null" json:"tracking_id"`
	ParcelID   uint      `gorm:"index;not null" json:"parcel_id"`
	Status     string    `gorm:"size:30;not null" json:"status"`
	Message    string    `gorm:"size:255;not null" json:"message"`
	Location   string    `gorm:"size:100" json:"location"`
	UpdatedBy  string    `gorm:"size:100;not null" json:"updated_by"`
	Timestamp  time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (TrackingEvent) TableName() string {
	return "tracking_events"
}

// Payment represents payments table. Append-only payment history.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ParcelID      uint      `gorm:"index;not null" json:"parcel_id"`
	Email         string    `gorm:"index;size:100;not null" json:"email"`
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentMethod string    `gorm:"size:50;not null" json:"payment_method"`
	TransactionID string    `gorm:"size:100;not null" json:"transaction_id"`
	PaidAt        time.Time `gorm:"autoCreateTime;index" json:"paid_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// AutoMigrate creates/updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Parcel{},
		&Rider{},
		&TrackingEvent{},
		&Payment{},
	)
}
