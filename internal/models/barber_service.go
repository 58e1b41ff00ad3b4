package models

import "time"

// BarberService liga um barbeiro a um serviço que ele executa.
type BarberService struct {
	BarberID  uint `gorm:"primaryKey;autoIncrement:false" json:"barber_id"`
	ServiceID uint `gorm:"primaryKey;autoIncrement:false;index" json:"service_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (BarberService) TableName() string {
	return "barber_services"
}
