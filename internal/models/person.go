package models

import "time"

type Person struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;index:idx_people_owner" json:"-"`
	GivenName  string    `gorm:"type:varchar(255);not null" json:"given_name"`
	FamilyName string    `gorm:"type:varchar(255);not null" json:"family_name"`
	OtherNames *string   `gorm:"type:varchar(255)" json:"other_names"`
	Gender     *string   `gorm:"type:varchar(50)" json:"gender"`
	BirthDate  *string   `gorm:"type:varchar(32)" json:"birth_date"`
	DeathDate  *string   `gorm:"type:varchar(32)" json:"death_date"`
	BirthPlace *string   `gorm:"type:varchar(255)" json:"birth_place"`
	Bio        *string   `gorm:"type:text" json:"bio"`
	Relation   *string   `gorm:"type:varchar(100)" json:"relation"`
	IsDeleted  bool      `gorm:"not null;default:false;index:idx_people_owner" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// DisplayName joins the given and family names.
func (p Person) DisplayName() string {
	return DisplayName(p.GivenName, p.FamilyName)
}

// DisplayName is computed at read time and never stored.
func DisplayName(givenName, familyName string) string {
	return givenName + " " + familyName
}
