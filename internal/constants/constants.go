package constants

const (
	// AppName is used for the keyring service and log prefix.
	AppName = "matzip"

	// DateFormat is the calendar-date layout used for record dates.
	DateFormat = "2006-01-02"
	// TimeFormat is the clock layout used for record times.
	TimeFormat = "15:04"

	// RatingMin and RatingMax bound a record's rating.
	RatingMin = 0.0
	RatingMax = 5.0

	// ReviewMaxLen is the soft cap on review text.
	ReviewMaxLen = 2000

	// FeedbackMessageMaxLen bounds a feedback report message.
	FeedbackMessageMaxLen = 2000

	// RecentWindowDays is the trailing window of the weekly stats view.
	RecentWindowDays = 7

	// PhotoMaxDimension is the longest edge a stored photo is resized to.
	PhotoMaxDimension = 1280

	// DefaultTheme and DefaultLanguage seed the settings row.
	DefaultTheme    = "dark"
	DefaultLanguage = "ko"
	// DefaultBackupCadenceDays seeds the settings row; 0 disables backups.
	DefaultBackupCadenceDays = 7

	// KeyringAPIKeyUser is the keyring account name for the place-search key.
	KeyringAPIKeyUser = "places-api-key"
)
