package model

// Fixed category enumeration. Categories are small and static, so they live
// in code rather than a table; admins change them via a code change.
type TopicCategory string

const (
	CategoryGeneralUFC        TopicCategory = "GENERAL_UFC"
	CategoryUpcomingEvents    TopicCategory = "UPCOMING_EVENTS"
	CategoryFightAnalysis     TopicCategory = "FIGHT_ANALYSIS"
	CategoryUFCHistory        TopicCategory = "UFC_HISTORY"
	CategoryBulgarianFighters TopicCategory = "BULGARIAN_FIGHTERS"
	CategoryTrainingTips      TopicCategory = "TRAINING_TIPS"
	CategoryOffTopic          TopicCategory = "OFF_TOPIC"
)

type CategoryInfo struct {
	Tag          TopicCategory `json:"tag"`
	DisplayName  string        `json:"display_name"`
	Description  string        `json:"description"`
	Icon         string        `json:"icon"`
	DisplayOrder int           `json:"display_order"`
}

var categories = []CategoryInfo{
	{CategoryGeneralUFC, "General UFC Discussion", "Everything related to the UFC", "🥊", 1},
	{CategoryUpcomingEvents, "Upcoming Events", "Cards, dates and venues for upcoming UFC events", "📅", 2},
	{CategoryFightAnalysis, "Fight Analysis & Predictions", "Share breakdowns and fight predictions", "📊", 3},
	{CategoryUFCHistory, "UFC History", "Legendary fights and historic moments", "🏆", 4},
	{CategoryBulgarianFighters, "Bulgarian Fighters", "Follow the Bulgarian fighters in the UFC", "🇧🇬", 5},
	{CategoryTrainingTips, "Training Tips", "Training techniques and advice", "💪", 6},
	{CategoryOffTopic, "Off Topic", "General conversation outside the UFC", "💬", 7},
}

// Categories returns the enumeration in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

func (c TopicCategory) Valid() bool {
	for _, info := range categories {
		if info.Tag == c {
			return true
		}
	}
	return false
}

func (c TopicCategory) DisplayName() string {
	for _, info := range categories {
		if info.Tag == c {
			return info.DisplayName
		}
	}
	return string(c)
}
