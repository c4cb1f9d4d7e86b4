package db_models

import "github.com/google/uuid"

type BankName struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null" json:"name"`
	Icon string `json:"icon"`
}

type BankAccount struct {
	BaseModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	BankNameID    uuid.UUID `gorm:"type:uuid;not null" json:"bank_name_id"`
	AccountNumber string    `gorm:"size:34;not null" json:"account_number"`
	IFSCCode      string    `gorm:"size:11;not null" json:"ifsc_code"`

	BankName *BankName `gorm:"foreignKey:BankNameID" json:"bank_name,omitempty"`
}
