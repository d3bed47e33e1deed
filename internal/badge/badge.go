// Package badge defines achievement badges and awards them from user activity.
package badge

// Requirement types a badge can be earned on.
const (
	RequirementQuestions       = "questions"
	RequirementAnswers         = "answers"
	RequirementAcceptedAnswers = "accepted_answers"
	RequirementReputation      = "reputation"
	RequirementVotes           = "votes"
	RequirementEarlyAdopter    = "early_adopter"
)

type Badge struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Icon             string `json:"icon"`
	RequirementType  string `json:"requirement_type"`
	RequirementValue int    `json:"requirement_value"`
}

// Defaults returns the predefined badge catalogue.
func Defaults() []Badge {
	return []Badge{
		{Name: "First Question", Description: "Asked your first question", Icon: "❓", RequirementType: RequirementQuestions, RequirementValue: 1},
		{Name: "Question Master", Description: "Asked 10 questions", Icon: "🎯", RequirementType: RequirementQuestions, RequirementValue: 10},
		{Name: "First Answer", Description: "Provided your first answer", Icon: "💬", RequirementType: RequirementAnswers, RequirementValue: 1},
		{Name: "Helpful", Description: "Provided 10 answers", Icon: "🤝", RequirementType: RequirementAnswers, RequirementValue: 10},
		{Name: "Problem Solver", Description: "Had 5 answers accepted", Icon: "✅", RequirementType: RequirementAcceptedAnswers, RequirementValue: 5},
		{Name: "Expert", Description: "Reached 1000 reputation", Icon: "👑", RequirementType: RequirementReputation, RequirementValue: 1000},
		{Name: "Popular", Description: "Reached 500 reputation", Icon: "⭐", RequirementType: RequirementReputation, RequirementValue: 500},
		{Name: "Rising Star", Description: "Reached 100 reputation", Icon: "🌟", RequirementType: RequirementReputation, RequirementValue: 100},
		{Name: "Good Citizen", Description: "Reached 50 reputation", Icon: "🌱", RequirementType: RequirementReputation, RequirementValue: 50},
		{Name: "Voter", Description: "Cast 25 votes", Icon: "🗳️", RequirementType: RequirementVotes, RequirementValue: 25},
		{Name: "Critic", Description: "Cast 100 votes", Icon: "⚖️", RequirementType: RequirementVotes, RequirementValue: 100},
		{Name: "Early Adopter", Description: "Joined in the first month", Icon: "🚀", RequirementType: RequirementEarlyAdopter, RequirementValue: 1},
	}
}
