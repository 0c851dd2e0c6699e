package account

// Account represents an account record in the database.
type Account struct {
	ID      uint    `gorm:"primaryKey;autoIncrement"`
	Name    string  `gorm:"type:varchar(255);not null"`
	Pin     string  `gorm:"type:varchar(4);not null"`
	Balance float64 `gorm:"type:double precision;not null"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "bank_accounts"
}
