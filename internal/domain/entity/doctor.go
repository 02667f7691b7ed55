package entity

// Doctor represents doctor-specific profile data
type Doctor struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint   `gorm:"not null;index" json:"user_id"`
	Name           string `gorm:"type:varchar(100);not null;index" json:"name"`
	Specialization string `gorm:"type:varchar(100);not null" json:"specialization"`
	Phone          string `gorm:"type:varchar(20)" json:"phone,omitempty"`

	// Declares the users FK for migrations only; never preloaded.
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}
