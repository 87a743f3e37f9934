package domain

import (
	"encoding/json"
	"time"
)

type Session struct {
	SessionID   string      `json:"session_id"`
	LandingPage string      `json:"landing_page"`
	Variant     string      `json:"variant"`
	Referrer    string      `json:"referrer"`
	UserAgent   string      `json:"user_agent"`
	IPAddress   string      `json:"ip_address"`
	Attribution Attribution `json:"attribution"`
	PageViews   int         `json:"page_views"`
	Converted   bool        `json:"converted"`
	FirstSeenAt time.Time   `json:"first_seen_at"`
	LastSeenAt  time.Time   `json:"last_seen_at"`
}

type PageView struct {
	ID            int64     `json:"id"`
	SessionID     string    `json:"session_id"`
	Path          string    `json:"path"`
	Title         string    `json:"title"`
	Variant       string    `json:"variant"`
	Referrer      string    `json:"referrer"`
	TimeOnPageSec int       `json:"time_on_page_sec"`
	ViewedAt      time.Time `json:"viewed_at"`
	UserAgent     string    `json:"-"`
	IPAddress     string    `json:"-"`
}

type Event struct {
	ID         int64           `json:"id"`
	SessionID  string          `json:"session_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Label      string          `json:"label"`
	Value      *float64        `json:"value"`
	Properties json.RawMessage `json:"properties"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type ConversionType string

const (
	ConversionTypeLead         ConversionType = "lead"
	ConversionTypeConsultation ConversionType = "consultation"
)

type Conversion struct {
	ID        int64          `json:"id"`
	SessionID *string        `json:"session_id"`
	ClientID  int64          `json:"client_id"`
	Type      ConversionType `json:"type"`
	Value     float64        `json:"value"`
	CreatedAt time.Time      `json:"created_at"`
}

type SessionRequest struct {
	SessionID   string      `json:"session_id" validate:"omitempty,uuid"`
	LandingPage string      `json:"landing_page" validate:"required,max=500"`
	Variant     string      `json:"variant" validate:"max=50"`
	Referrer    string      `json:"referrer" validate:"max=1000"`
	Attribution Attribution `json:"attribution"`
	UserAgent   string      `json:"-"`
	IPAddress   string      `json:"-"`
}

type PageViewRequest struct {
	SessionID     string `json:"session_id" validate:"required,uuid"`
	Path          string `json:"path" validate:"required,max=500"`
	Title         string `json:"title" validate:"max=300"`
	Variant       string `json:"variant" validate:"max=50"`
	Referrer      string `json:"referrer" validate:"max=1000"`
	TimeOnPageSec int    `json:"time_on_page_sec" validate:"gte=0"`
	UserAgent     string `json:"-"`
	IPAddress     string `json:"-"`
}

type EventRequest struct {
	SessionID  string          `json:"session_id" validate:"required,uuid"`
	Name       string          `json:"name" validate:"required,max=100"`
	Category   string          `json:"category" validate:"max=100"`
	Label      string          `json:"label" validate:"max=200"`
	Value      *float64        `json:"value"`
	Properties json.RawMessage `json:"properties"`
}

type LeadRequest struct {
	FirstName      string   `json:"first_name" validate:"required,max=100"`
	LastName       string   `json:"last_name" validate:"max=100"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"omitempty,min=6,max=30"`
	Company        string   `json:"company" validate:"max=200"`
	Message        string   `json:"message" validate:"max=4000"`
	PropertyType   string   `json:"property_type"`
	BudgetMin      *float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax      *float64 `json:"budget_max" validate:"omitempty,gte=0"`
	PreferredAreas []string `json:"preferred_areas"`
	SessionID      string   `json:"session_id" validate:"omitempty,uuid"`
	Source         string   `json:"source" validate:"max=100"`
}
