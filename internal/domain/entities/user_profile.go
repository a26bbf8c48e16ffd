package entities

// UserProfile is the record submitted for classification.
// Fields are pointers so that an absent field can be told apart from a zero value.
type UserProfile struct {
	Name                 *string  `json:"name" yaml:"name" validate:"required"`
	Gender               *string  `json:"gender" yaml:"gender" validate:"required,min=1"`
	Email                *string  `json:"email" yaml:"email" validate:"required,email"`
	UsesGoogleLogin      *bool    `json:"uses_google_login" yaml:"uses_google_login" validate:"required"`
	FollowerCount        *int64   `json:"follower_count" yaml:"follower_count" validate:"required,min=0"`
	FollowingCount       *int64   `json:"following_count" yaml:"following_count" validate:"required,min=0"`
	DatasetCount         *int64   `json:"dataset_count" yaml:"dataset_count" validate:"required,min=0"`
	CodeCount            *int64   `json:"code_count" yaml:"code_count" validate:"required,min=0"`
	DiscussionCount      *int64   `json:"discussion_count" yaml:"discussion_count" validate:"required,min=0"`
	AvgReadTimeMinutes   *float64 `json:"avg_read_time_minutes" yaml:"avg_read_time_minutes" validate:"required,min=0"`
	RegistrationIPv4     *string  `json:"registration_ipv4" yaml:"registration_ipv4" validate:"required"`
	RegistrationLocation *string  `json:"registration_location" yaml:"registration_location" validate:"required"`
	VotesOnNotebooks     *int64   `json:"votes_on_notebooks" yaml:"votes_on_notebooks" validate:"required,min=0"`
	VotesOnDatasets      *int64   `json:"votes_on_datasets" yaml:"votes_on_datasets" validate:"required,min=0"`
	VotesOnDiscussions   *int64   `json:"votes_on_discussions" yaml:"votes_on_discussions" validate:"required,min=0"`
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

func int64Value(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}

func float64Value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
