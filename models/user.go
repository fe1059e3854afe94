package models

import "time"

type User struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"unique;not null" json:"email"`
	PasswordHash   string `json:"-"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Role           string `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	Cart           Cart   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders         []Order           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders"`
	Addresses      []ShippingAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	PaymentMethods []PaymentMethod   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"payment_methods"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type ShippingAddress struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Phone        string    `gorm:"not null" json:"phone"`
	AddressLine1 string    `gorm:"not null" json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `gorm:"not null" json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `gorm:"not null" json:"country"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PaymentMethod struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	MethodType  string    `gorm:"not null" json:"method_type"` // e.g. "mpesa", "card"
	PhoneNumber string    `json:"phone_number"`
	LastFour    string    `json:"last_four"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
