package models

// AuditLog records account and trading activity: sign-ins, password
// changes and every committed buy or sell. Changes holds a JSON object
// such as {"symbol":"AAA","shares":10,"price":"50"}.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
