package models

// Mood classifies a vent post.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodAnxious Mood = "anxious"
	MoodNeutral Mood = "neutral"
)

// Moods lists the moods the backend accepts, in display order.
var Moods = []Mood{MoodHappy, MoodSad, MoodAngry, MoodAnxious, MoodNeutral}

// Valid reports whether m is one of the accepted moods. The empty mood is not
// valid on writes; use it only as "no filter" on reads.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// Visibility controls who can see a vent.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// VentAuthor is the embedded author reference on feed vents.
type VentAuthor struct {
	ID       string `json:"_id"`
	Username string `json:"username,omitempty"`
}

// Vent is a post in the vent room.
type Vent struct {
	ID         string      `json:"_id"`
	Message    string      `json:"message"`
	Mood       Mood        `json:"mood,omitempty"`
	Visibility Visibility  `json:"visibility,omitempty"`
	User       *VentAuthor `json:"user,omitempty"`
	CreatedAt  string      `json:"createdAt,omitempty"`
	UpdatedAt  string      `json:"updatedAt,omitempty"`
}
