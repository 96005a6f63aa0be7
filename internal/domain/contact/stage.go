package contact

import "strings"

// Stage is the pipeline position of a contact.
type Stage string

const (
	StageToContact   Stage = "da contattare"
	StageContacted   Stage = "contattato"
	StageNegotiating Stage = "negoziazione"
	StageWon         Stage = "acquisito"
	StageLost        Stage = "perso"
)

// DefaultStage is assigned when no stage is given.
const DefaultStage = StageToContact

var stages = []Stage{
	StageToContact,
	StageContacted,
	StageNegotiating,
	StageWon,
	StageLost,
}

var stageTitles = map[Stage]string{
	StageToContact:   "Da Contattare",
	StageContacted:   "Contattato",
	StageNegotiating: "Negoziazione",
	StageWon:         "Acquisito",
	StageLost:        "Perso",
}

// Stages returns every stage in pipeline order.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// ParseStage matches value against the known stages ignoring case and
// surrounding whitespace. The boolean is false when nothing matches.
func ParseStage(value string) (Stage, bool) {
	needle := strings.ToLower(strings.TrimSpace(value))
	for _, stage := range stages {
		if string(stage) == needle {
			return stage, true
		}
	}
	return "", false
}

func (s Stage) IsValid() bool {
	_, ok := stageTitles[s]
	return ok
}

// Title is the human readable label of the stage.
func (s Stage) Title() string {
	return stageTitles[s]
}

func (s Stage) String() string {
	return string(s)
}
