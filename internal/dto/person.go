package dto

// PersonPatch carries one tri-state slot per mutable person column.
type PersonPatch struct {
	GivenName  Optional[string] `json:"given_name"`
	FamilyName Optional[string] `json:"family_name"`
	OtherNames Optional[string] `json:"other_names"`
	Gender     Optional[string] `json:"gender"`
	BirthDate  Optional[string] `json:"birth_date"`
	DeathDate  Optional[string] `json:"death_date"`
	BirthPlace Optional[string] `json:"birth_place"`
	Bio        Optional[string] `json:"bio"`
	Relation   Optional[string] `json:"relation"`
}

// Full turns every absent slot into null so the patch overwrites all columns.
func (p PersonPatch) Full() PersonPatch {
	return PersonPatch{
		GivenName:  p.GivenName.OrNull(),
		FamilyName: p.FamilyName.OrNull(),
		OtherNames: p.OtherNames.OrNull(),
		Gender:     p.Gender.OrNull(),
		BirthDate:  p.BirthDate.OrNull(),
		DeathDate:  p.DeathDate.OrNull(),
		BirthPlace: p.BirthPlace.OrNull(),
		Bio:        p.Bio.OrNull(),
		Relation:   p.Relation.OrNull(),
	}
}

// CreatePersonRequest is the body of POST /api/people
type CreatePersonRequest struct {
	GivenName  string  `json:"given_name"`
	FamilyName string  `json:"family_name"`
	OtherNames *string `json:"other_names"`
	Gender     *string `json:"gender"`
	BirthDate  *string `json:"birth_date"`
	DeathDate  *string `json:"death_date"`
	BirthPlace *string `json:"birth_place"`
	Bio        *string `json:"bio"`
	Relation   *string `json:"relation"`
}
