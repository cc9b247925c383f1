package db_models

const (
	RoleCustomer  = "customer"
	RoleOrganizer = "organizer"
)

type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"size:16;default:'customer'"`
	ReferralCode string `gorm:"size:12;uniqueIndex"`

	PointBalances []PointBalance
	Transactions  []Transaction
}
