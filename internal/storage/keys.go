package storage

// Global keys. The user list and the current-user pointer are the only state
// shared across accounts.
const (
	UsersKey       = "@zp_users_v1"
	CurrentUserKey = "@zp_current_user_v1"
)

// Per-user collection key prefixes. The version suffix belongs to the key, not
// the payload: bumping it abandons old blobs instead of migrating them in place.
const (
	transactionsPrefix = "@zp_tx_v3"
	categoriesPrefix   = "@zp_cats_v3"
	goalsPrefix        = "@zp_goals_v3"
	settingsPrefix     = "@zp_set_v3"
)

func TransactionsKey(email string) string { return transactionsPrefix + "_" + email }
func CategoriesKey(email string) string   { return categoriesPrefix + "_" + email }
func GoalsKey(email string) string        { return goalsPrefix + "_" + email }
func SettingsKey(email string) string     { return settingsPrefix + "_" + email }
