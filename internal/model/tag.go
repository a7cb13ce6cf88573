package model

import "time"

// Tag represents a QR code tag owned by a single user.
type Tag struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	QRCode      string    `json:"qrCode"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TagRequest carries the fields for creating or updating a tag.
type TagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	QRCode      string `json:"qrCode"`
}
