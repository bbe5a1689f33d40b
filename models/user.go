package models

type User struct {
	ID         int64   `json:"id"`
	GoogleID   *string `json:"g_id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	ProfilePic *string `json:"profile_pic"`
}

// NewUser is the input for creating a local user row.
type NewUser struct {
	GoogleID   *string `json:"g_id"`
	Username   string  `json:"username" validate:"required"`
	Email      string  `json:"email" validate:"required"`
	ProfilePic *string `json:"profile_pic"`
}

// GoogleUser is the identity extracted from a verified Google ID token.
type GoogleUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
	Photo      string `json:"photo,omitempty"`
}

type Profile struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	Age        *float64 `json:"age"`
	Weight     *float64 `json:"weight"`
	Height     *float64 `json:"height"`
	SkillLevel string   `json:"skill_level"`
}

// NewProfile carries loosely typed numeric input; values are sanitized
// before they reach the database.
type NewProfile struct {
	UserID     int64   `json:"user_id"`
	Age        any     `json:"age"`
	Weight     any     `json:"weight"`
	Height     any     `json:"height"`
	SkillLevel *string `json:"skill_level"`
}

type UserProfile struct {
	User    User     `json:"user"`
	Profile *Profile `json:"profile"`
}

type OnboardingForm struct {
	HeightFeet   *float64 `json:"heightFeet" validate:"omitempty,gte=0,lte=9"`
	HeightInches *float64 `json:"heightInches" validate:"omitempty,gte=0,lt=12"`
	Weight       *float64 `json:"weight" validate:"omitempty,gte=0"`
	Age          *float64 `json:"age" validate:"omitempty,gte=0,lte=130"`
	SkillLevel   string  `json:"skill_level" validate:"omitempty,skilllevel"`
}

// Session is returned by sign-in. Token must be sent as a bearer token on
// every signed-in request.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type SignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}
