package entities

// Column names of the classifier's input, in training order.
const (
	ColumnGender             = "GENDER"
	ColumnUsesGoogleLogin    = "IS_GLOGIN"
	ColumnFollowerCount      = "FOLLOWER_COUNT"
	ColumnFollowingCount     = "FOLLOWING_COUNT"
	ColumnDatasetCount       = "DATASET_COUNT"
	ColumnCodeCount          = "CODE_COUNT"
	ColumnDiscussionCount    = "DISCUSSION_COUNT"
	ColumnAvgReadTimeMinutes = "AVG_NB_READ_TIME_MIN"
	ColumnVotesOnNotebooks   = "TOTAL_VOTES_GAVE_NB"
	ColumnVotesOnDatasets    = "TOTAL_VOTES_GAVE_DS"
	ColumnVotesOnDiscussions = "TOTAL_VOTES_GAVE_DC"
)

// FeatureColumns is the schema every loaded model must have been fit on.
var FeatureColumns = []string{
	ColumnGender,
	ColumnUsesGoogleLogin,
	ColumnFollowerCount,
	ColumnFollowingCount,
	ColumnDatasetCount,
	ColumnCodeCount,
	ColumnDiscussionCount,
	ColumnAvgReadTimeMinutes,
	ColumnVotesOnNotebooks,
	ColumnVotesOnDatasets,
	ColumnVotesOnDiscussions,
}

// FeatureVector is the authoritative subset of a UserProfile.
// name, email, registration_ipv4 and registration_location never reach the model.
type FeatureVector struct {
	Gender             string
	UsesGoogleLogin    bool
	FollowerCount      int64
	FollowingCount     int64
	DatasetCount       int64
	CodeCount          int64
	DiscussionCount    int64
	AvgReadTimeMinutes float64
	VotesOnNotebooks   int64
	VotesOnDatasets    int64
	VotesOnDiscussions int64
}

// FeatureValue is one named column of a FeatureVector.
// Categorical columns carry Text; all others carry Number.
type FeatureValue struct {
	Name        string
	Categorical bool
	Text        string
	Number      float64
}

// ProjectFeatures drops the non-authoritative fields of a validated profile.
func ProjectFeatures(p *UserProfile) FeatureVector {
	return FeatureVector{
		Gender:             StringValue(p.Gender),
		UsesGoogleLogin:    boolValue(p.UsesGoogleLogin),
		FollowerCount:      int64Value(p.FollowerCount),
		FollowingCount:     int64Value(p.FollowingCount),
		DatasetCount:       int64Value(p.DatasetCount),
		CodeCount:          int64Value(p.CodeCount),
		DiscussionCount:    int64Value(p.DiscussionCount),
		AvgReadTimeMinutes: float64Value(p.AvgReadTimeMinutes),
		VotesOnNotebooks:   int64Value(p.VotesOnNotebooks),
		VotesOnDatasets:    int64Value(p.VotesOnDatasets),
		VotesOnDiscussions: int64Value(p.VotesOnDiscussions),
	}
}

// Columns returns the vector in FeatureColumns order.
func (v FeatureVector) Columns() []FeatureValue {
	login := 0.0
	if v.UsesGoogleLogin {
		login = 1
	}
	return []FeatureValue{
		{Name: ColumnGender, Categorical: true, Text: v.Gender},
		{Name: ColumnUsesGoogleLogin, Number: login},
		{Name: ColumnFollowerCount, Number: float64(v.FollowerCount)},
		{Name: ColumnFollowingCount, Number: float64(v.FollowingCount)},
		{Name: ColumnDatasetCount, Number: float64(v.DatasetCount)},
		{Name: ColumnCodeCount, Number: float64(v.CodeCount)},
		{Name: ColumnDiscussionCount, Number: float64(v.DiscussionCount)},
		{Name: ColumnAvgReadTimeMinutes, Number: v.AvgReadTimeMinutes},
		{Name: ColumnVotesOnNotebooks, Number: float64(v.VotesOnNotebooks)},
		{Name: ColumnVotesOnDatasets, Number: float64(v.VotesOnDatasets)},
		{Name: ColumnVotesOnDiscussions, Number: float64(v.VotesOnDiscussions)},
	}
}

// CategoricalColumns returns the columns a model must encode from category text,
// in FeatureColumns order.
func CategoricalColumns() []string {
	var names []string
	for _, col := range (FeatureVector{}).Columns() {
		if col.Categorical {
			names = append(names, col.Name)
		}
	}
	return names
}
