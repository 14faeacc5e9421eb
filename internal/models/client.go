package models

// Client is one row of the clients table. Text columns are nullable, so
// they are pointers: nil is NULL and "" is an explicit blank.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName *string `gorm:"type:text" json:"first_name"`
	LastName  *string `gorm:"type:text" json:"last_name"`
	Email     *string `gorm:"type:text" json:"email"`

	Phone PhoneList `gorm:"column:phone;type:text[]" json:"phone"`
}

func (Client) TableName() string {
	return "clients"
}

// Text returns a pointer to s, for filling optional text columns.
func Text(s string) *string {
	return &s
}
