package models

// Emotion classifies a private reflection.
type Emotion string

const (
	EmotionHappy   Emotion = "happy"
	EmotionSad     Emotion = "sad"
	EmotionAngry   Emotion = "angry"
	EmotionAnxious Emotion = "anxious"
	EmotionNeutral Emotion = "neutral"
)

var Emotions = []Emotion{EmotionHappy, EmotionSad, EmotionAngry, EmotionAnxious, EmotionNeutral}

func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// Reflection is a private journal entry.
type Reflection struct {
	ID        string   `json:"_id"`
	Title     string   `json:"title,omitempty"`
	Content   string   `json:"content"`
	Emotion   Emotion  `json:"emotion,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}
