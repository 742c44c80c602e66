package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account holder. The user is the tenant boundary:
// every client, product and invoice belongs to exactly one user.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName   string         `gorm:"size:255;not null" json:"first_name"`
	LastName    string         `gorm:"size:255;not null" json:"last_name"`
	Email       string         `gorm:"size:255;unique;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	CompanyName *string        `gorm:"size:255" json:"company_name,omitempty"`
	Address     *string        `gorm:"type:text" json:"address,omitempty"`
	Telephone   *string        `gorm:"size:50" json:"telephone,omitempty"`
	LogoURL     *string        `gorm:"size:255" json:"logo_url,omitempty"`
	Currency    string         `gorm:"size:10;default:'CFA'" json:"currency"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clients  []Client  `gorm:"foreignKey:UserID" json:"-"`
	Products []Product `gorm:"foreignKey:UserID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
