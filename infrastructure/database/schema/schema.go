// Package schema holds the gorm models used by cmd/migrate to create and
// evolve the database. Runtime queries go through infrastructure/repository.
package schema

import (
	"time"

	"github.com/lib/pq"
)

type AdminUser struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:admin_users_email_key"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	RoleID       int    `gorm:"not null;default:3"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

type Client struct {
	ID             int64          `gorm:"primaryKey"`
	FirstName      string         `gorm:"type:varchar(100);not null"`
	LastName       string         `gorm:"type:varchar(100);not null;default:''"`
	Email          string         `gorm:"type:varchar(255);not null;uniqueIndex:clients_email_key"`
	Phone          string         `gorm:"type:varchar(30);not null;default:''"`
	Company        *string        `gorm:"type:varchar(200)"`
	Nationality    *string        `gorm:"type:varchar(100)"`
	BudgetMin      *float64       `gorm:"type:numeric(14,2)"`
	BudgetMax      *float64       `gorm:"type:numeric(14,2)"`
	PreferredAreas pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	PropertyType   *string        `gorm:"type:varchar(30)"`
	LeadSource     string         `gorm:"type:varchar(100);not null;default:'website';index"`
	Status         string         `gorm:"type:varchar(20);not null;default:'new';index"`
	Notes          *string        `gorm:"type:text"`
	SessionID      *string        `gorm:"type:uuid"`
	UTMSource      string         `gorm:"type:varchar(255);not null;default:''"`
	UTMMedium      string         `gorm:"type:varchar(255);not null;default:''"`
	UTMCampaign    string         `gorm:"type:varchar(255);not null;default:''"`
	UTMTerm        string         `gorm:"type:varchar(255);not null;default:''"`
	UTMContent     string         `gorm:"type:varchar(255);not null;default:''"`
	GCLID          string         `gorm:"column:gclid;type:varchar(255);not null;default:''"`
	FBCLID         string         `gorm:"column:fbclid;type:varchar(255);not null;default:''"`
	MSCLKID        string         `gorm:"column:msclkid;type:varchar(255);not null;default:''"`
	CreatedAt      time.Time      `gorm:"type:timestamptz;not null;default:now();index"`
	UpdatedAt      time.Time      `gorm:"type:timestamptz;not null;default:now()"`
}

type Property struct {
	ID              int64          `gorm:"primaryKey"`
	ReferenceCode   string         `gorm:"type:varchar(20);not null;uniqueIndex:properties_reference_code_key"`
	Title           string         `gorm:"type:varchar(200);not null"`
	Slug            string         `gorm:"type:varchar(220);not null;uniqueIndex:properties_slug_key"`
	Description     string         `gorm:"type:text;not null;default:''"`
	DescriptionHTML string         `gorm:"column:description_html;type:text;not null;default:''"`
	Type            string         `gorm:"type:varchar(20);not null;index"`
	Listing         string         `gorm:"type:varchar(10);not null"`
	Status          string         `gorm:"type:varchar(20);not null;default:'draft';index"`
	Area            string         `gorm:"type:varchar(100);not null"`
	Address         string         `gorm:"type:varchar(300);not null;default:''"`
	SizeSqft        float64        `gorm:"type:numeric(12,2);not null;default:0"`
	PriceAED        float64        `gorm:"column:price_aed;type:numeric(14,2);not null;default:0"`
	Latitude        *float64       `gorm:"type:double precision"`
	Longitude       *float64       `gorm:"type:double precision"`
	Amenities       pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Images          pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Featured        bool           `gorm:"not null;default:false"`
	CreatedAt       time.Time      `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt       time.Time      `gorm:"type:timestamptz;not null;default:now()"`
}

type Consultation struct {
	ID              int64     `gorm:"primaryKey"`
	Reference       string    `gorm:"type:varchar(20);not null;uniqueIndex:consultations_reference_key"`
	ClientID        int64     `gorm:"not null;index"`
	Client          Client    `gorm:"constraint:OnDelete:CASCADE"`
	PropertyID      *int64    `gorm:"index"`
	Property        *Property `gorm:"constraint:OnDelete:SET NULL"`
	StartsAt        time.Time `gorm:"type:timestamptz;not null;index"`
	EndsAt          time.Time `gorm:"type:timestamptz;not null"`
	DurationMinutes int       `gorm:"not null;default:60"`
	MeetingType     string    `gorm:"type:varchar(20);not null;default:'video'"`
	Status          string    `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	CalendarEventID *string   `gorm:"type:varchar(255)"`
	Notes           *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt       time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

type Session struct {
	SessionID   string    `gorm:"primaryKey;type:uuid"`
	LandingPage string    `gorm:"type:varchar(500);not null;default:''"`
	Variant     string    `gorm:"type:varchar(50);not null;default:''"`
	Referrer    string    `gorm:"type:varchar(1000);not null;default:''"`
	UserAgent   string    `gorm:"type:varchar(500);not null;default:''"`
	IPAddress   string    `gorm:"type:varchar(64);not null;default:''"`
	UTMSource   string    `gorm:"type:varchar(255);not null;default:''"`
	UTMMedium   string    `gorm:"type:varchar(255);not null;default:''"`
	UTMCampaign string    `gorm:"type:varchar(255);not null;default:''"`
	UTMTerm     string    `gorm:"type:varchar(255);not null;default:''"`
	UTMContent  string    `gorm:"type:varchar(255);not null;default:''"`
	GCLID       string    `gorm:"column:gclid;type:varchar(255);not null;default:''"`
	FBCLID      string    `gorm:"column:fbclid;type:varchar(255);not null;default:''"`
	MSCLKID     string    `gorm:"column:msclkid;type:varchar(255);not null;default:''"`
	PageViews   int       `gorm:"not null;default:0"`
	Converted   bool      `gorm:"not null;default:false"`
	FirstSeenAt time.Time `gorm:"type:timestamptz;not null;default:now();index"`
	LastSeenAt  time.Time `gorm:"type:timestamptz;not null;default:now();index"`
}

type PageView struct {
	ID            int64     `gorm:"primaryKey"`
	SessionID     string    `gorm:"type:uuid;not null;index"`
	Session       Session   `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE"`
	Path          string    `gorm:"type:varchar(500);not null"`
	Title         string    `gorm:"type:varchar(300);not null;default:''"`
	Variant       string    `gorm:"type:varchar(50);not null;default:''"`
	Referrer      string    `gorm:"type:varchar(1000);not null;default:''"`
	TimeOnPageSec int       `gorm:"not null;default:0"`
	ViewedAt      time.Time `gorm:"type:timestamptz;not null;default:now();index"`
}

type Event struct {
	ID         int64     `gorm:"primaryKey"`
	SessionID  string    `gorm:"type:uuid;not null;index"`
	Session    Session   `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE"`
	Name       string    `gorm:"type:varchar(100);not null;index"`
	Category   string    `gorm:"type:varchar(100);not null;default:''"`
	Label      string    `gorm:"type:varchar(200);not null;default:''"`
	Value      *float64  `gorm:"type:double precision"`
	Properties []byte    `gorm:"type:jsonb"`
	OccurredAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

type Conversion struct {
	ID        int64     `gorm:"primaryKey"`
	SessionID *string   `gorm:"type:uuid;index"`
	Session   *Session  `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:SET NULL"`
	ClientID  int64     `gorm:"not null;index"`
	Client    Client    `gorm:"constraint:OnDelete:CASCADE"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Value     float64   `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();index"`
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&AdminUser{},
		&Client{},
		&Property{},
		&Consultation{},
		&Session{},
		&PageView{},
		&Event{},
		&Conversion{},
	}
}

// PostMigrate holds statements gorm tags cannot express.
var PostMigrate = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS consultations_active_start_idx
		ON consultations (starts_at)
		WHERE status IN ('scheduled', 'confirmed')`,
}
