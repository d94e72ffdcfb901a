package repository

// Row change operations reported by the database change feed
const (
	ChangeOpInsert = "INSERT"
	ChangeOpUpdate = "UPDATE"
	ChangeOpDelete = "DELETE"
)

// Tables watched by the change feed
const (
	ChangeTableState   = "lottery_state"
	ChangeTableHistory = "lottery_history"
)

// RowChange is one row-level change notification. Origin is the application
// name of the connection that wrote the row.
type RowChange struct {
	Table  string `json:"table"`
	Op     string `json:"op"`
	ID     string `json:"id"`
	Origin string `json:"origin"`
}
