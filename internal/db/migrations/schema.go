package migrations

import (
	"time"

	"github.com/google/uuid"
)

// Схема базы данных. Во время работы сервис обращается к этим таблицам через pgx,
// здесь модели нужны только для миграций.

// User пользователь маркетплейса
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PhoneNumber string    `gorm:"size:15;not null;uniqueIndex"`
	Fullname    *string   `gorm:"size:50"`
	Email       *string   `gorm:"size:254"`
	FCMToken    *string   `gorm:"column:fcm_token"`
	IsActive    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }

// Property базовая запись объявления
type Property struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title         string    `gorm:"size:100;not null"`
	Description   string    `gorm:"type:text;not null"`
	Purpose       string    `gorm:"size:10;not null;index:idx_properties_type_purpose,priority:2"`
	PropertyType  string    `gorm:"size:10;not null;index:idx_properties_type_purpose,priority:1"`
	Category      string    `gorm:"size:50;not null"`
	City          string    `gorm:"size:50;not null"`
	Location      string    `gorm:"type:text;not null"`
	Marla         int       `gorm:"not null"`
	TotalPrice    *float64  `gorm:"type:numeric(15,2)"`
	FromPrice     *float64  `gorm:"type:numeric(15,2)"`
	ToPrice       *float64  `gorm:"type:numeric(15,2)"`
	ContactName   string    `gorm:"size:50;not null"`
	ContactNumber string    `gorm:"size:50;not null"`
	IsNotified    bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

func (Property) TableName() string { return "properties" }

// PropertyHouse расширение для домов
type PropertyHouse struct {
	PropertyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Property   Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	House      string    `gorm:"size:250;not null"`
	Street     string    `gorm:"size:250;not null"`
	Bedrooms   int       `gorm:"not null"`
	Bathrooms  int       `gorm:"not null"`
}

func (PropertyHouse) TableName() string { return "property_houses" }

// PropertyPlot расширение для участков
type PropertyPlot struct {
	PropertyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Property   Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	SeriesFrom string    `gorm:"size:150;not null"`
	SeriesTo   string    `gorm:"size:150;not null"`
}

func (PropertyPlot) TableName() string { return "property_plots" }

// PropertyCommercial расширение для коммерческой недвижимости
type PropertyCommercial struct {
	PropertyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Property   Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	SeriesFrom string    `gorm:"size:150;not null"`
	SeriesTo   string    `gorm:"size:150;not null"`
	Bedrooms   *int
	Bathrooms  *int
}

func (PropertyCommercial) TableName() string { return "property_commercials" }

// Wishlist запись избранного, одна на пару пользователь-объявление
type Wishlist struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlists_user_property,priority:1"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlists_user_property,priority:2"`
	Property   Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (Wishlist) TableName() string { return "wishlists" }

// Models перечисляет модели в порядке создания таблиц
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Property{},
		&PropertyHouse{},
		&PropertyPlot{},
		&PropertyCommercial{},
		&Wishlist{},
	}
}
