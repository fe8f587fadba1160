package task

// Column — производное представление доски: пересчитывается из коллекции задач,
// напрямую никогда не изменяется
type Column struct {
	ID          Status  `json:"id"`
	Title       string  `json:"title"`
	Tasks       []*Task `json:"tasks"`
	WIPLimit    *int    `json:"wipLimit,omitempty"`
	Color       string  `json:"color"`
	WIPExceeded bool    `json:"wipExceeded"`
}

type ColumnSpec struct {
	ID       Status
	Title    string
	WIPLimit *int
	Color    string
}

var inProgressWIP = 5

// BoardColumns — статическое описание колонок, лимит WIP только у "в работе"
var BoardColumns = []ColumnSpec{
	{ID: StatusTodo, Title: "К выполнению", Color: "#3182CE"},
	{ID: StatusInProgress, Title: "В работе", WIPLimit: &inProgressWIP, Color: "#D69E2E"},
	{ID: StatusOverdue, Title: "Просрочено", Color: "#E53E3E"},
	{ID: StatusCompleted, Title: "Выполнено", Color: "#38A169"},
}
