package entity

// User represents the centralized authentication table
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null;index" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// Identity is the authenticated actor of a single request.
// It is built from the session by the auth middleware and passed to usecases explicitly.
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

// IsZero reports whether no user is logged in.
func (i Identity) IsZero() bool {
	return i.UserID == 0
}
