package handler

import (
	"strings"
	"time"

	"github.com/ecomama/marketplace/internal/core/domain"
)

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *registerRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Communities ---

type locationRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type createCommunityRequest struct {
	Name        string          `json:"name"        validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"max=2000"`
	Location    locationRequest `json:"location"`
	RadiusKm    float64         `json:"radius_km"   validate:"gte=0,lte=500"`
}

func (r *createCommunityRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

type updateCommunityRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=3,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Location    *locationRequest `json:"location"`
	RadiusKm    *float64         `json:"radius_km"   validate:"omitempty,gte=0,lte=500"`
}

func (r *updateCommunityRequest) Normalize() {
	trimPtr(r.Name)
	trimPtr(r.Description)
}

// --- Memberships ---

type joinRequest struct {
	Message string `json:"message" validate:"max=500"`
}

type decideMembershipRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// --- Listings ---

type createListingRequest struct {
	Type        string     `json:"type"        validate:"required,oneof=OFFER DEMAND"`
	Category    string     `json:"category"    validate:"required,max=50"`
	Title       string     `json:"title"       validate:"required,min=3,max=120"`
	Description string     `json:"description" validate:"max=5000"`
	Price       *float64   `json:"price"       validate:"omitempty,gte=0"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (r *createListingRequest) Normalize() {
	r.Category = strings.TrimSpace(r.Category)
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

type updateListingRequest struct {
	Category    *string    `json:"category"    validate:"omitempty,max=50"`
	Title       *string    `json:"title"       validate:"omitempty,min=3,max=120"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Price       *float64   `json:"price"       validate:"omitempty,gte=0"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=ACTIVE INACTIVE EXPIRED"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func (r *updateListingRequest) Normalize() {
	trimPtr(r.Category)
	trimPtr(r.Title)
	trimPtr(r.Description)
}

// --- Events ---

type createEventRequest struct {
	Title       string    `json:"title"       validate:"required,min=3,max=120"`
	Description string    `json:"description" validate:"max=5000"`
	Location    string    `json:"location"    validate:"max=200"`
	StartsAt    time.Time `json:"starts_at"   validate:"required"`
	EndsAt      time.Time `json:"ends_at"     validate:"required"`
}

func (r *createEventRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
}

type updateEventRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=3,max=120"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Location    *string    `json:"location"    validate:"omitempty,max=200"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

func (r *updateEventRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.Location)
}

// --- Shared ---

type deletedResponse struct {
	Success bool `json:"success"`
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
