package event

const (
	TypeRecordsChanged  = "records.changed"
	TypeSettingsChanged = "settings.changed"
)

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event tells other processes that persisted state has changed.
type Event struct {
	Type     string
	Kind     string
	Action   string
	ID       string
	Currency string
}

func RecordsChanged(kind, action, id string) Event {
	return Event{Type: TypeRecordsChanged, Kind: kind, Action: action, ID: id}
}

func SettingsChanged(curr string) Event {
	return Event{Type: TypeSettingsChanged, Action: ActionUpdated, Currency: curr}
}
