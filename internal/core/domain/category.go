package domain

// CategoryType classifies a category by the kind of transactions it groups.
type CategoryType string

const (
	CategoryIncome   CategoryType = "income"
	CategoryExpense  CategoryType = "expense"
	CategoryTransfer CategoryType = "transfer"
)

// UncategorizedLabel is the literal category label applied to transactions
// whose category reference is null or cannot be resolved.
const UncategorizedLabel = "Uncategorized"

// Category classifies transactions. Categories form a tree through the
// nullable ParentID reference; traversal is always an explicit store
// lookup, never an embedded object graph.
type Category struct {
	CategoryID   string       `json:"categoryID"` // Primary Key (UUID)
	UserID       string       `json:"userID"`     // FK -> User.userID (Not Null)
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"categoryType"`
	Color        string       `json:"color"` // Hex color code for display
	Icon         string       `json:"icon"`
	ParentID     *string      `json:"parentID"` // FK -> Category.categoryID (Nullable)
	IsSystem     bool         `json:"isSystem"` // System categories cannot be deleted
	AuditFields
}

// DefaultCategorySeed describes one of the fixed categories created for a new user.
type DefaultCategorySeed struct {
	Name         string
	CategoryType CategoryType
	Color        string
	Icon         string
}

// DefaultCategories is the fixed taxonomy seeded for every new user.
var DefaultCategories = []DefaultCategorySeed{
	{Name: "Salary", CategoryType: CategoryIncome, Color: "#2ecc71", Icon: "briefcase"},
	{Name: "Investments", CategoryType: CategoryIncome, Color: "#27ae60", Icon: "trending-up"},
	{Name: "Gifts", CategoryType: CategoryIncome, Color: "#3498db", Icon: "gift"},
	{Name: "Other Income", CategoryType: CategoryIncome, Color: "#2980b9", Icon: "plus-circle"},
	{Name: "Housing", CategoryType: CategoryExpense, Color: "#e74c3c", Icon: "home"},
	{Name: "Transportation", CategoryType: CategoryExpense, Color: "#d35400", Icon: "car"},
	{Name: "Food", CategoryType: CategoryExpense, Color: "#f39c12", Icon: "shopping-cart"},
	{Name: "Utilities", CategoryType: CategoryExpense, Color: "#f1c40f", Icon: "zap"},
	{Name: "Healthcare", CategoryType: CategoryExpense, Color: "#e67e22", Icon: "activity"},
	{Name: "Personal", CategoryType: CategoryExpense, Color: "#9b59b6", Icon: "user"},
	{Name: "Entertainment", CategoryType: CategoryExpense, Color: "#8e44ad", Icon: "film"},
	{Name: "Education", CategoryType: CategoryExpense, Color: "#1abc9c", Icon: "book"},
	{Name: "Debt Payments", CategoryType: CategoryExpense, Color: "#c0392b", Icon: "credit-card"},
	{Name: "Savings", CategoryType: CategoryExpense, Color: "#16a085", Icon: "save"},
	{Name: "Other Expenses", CategoryType: CategoryExpense, Color: "#7f8c8d", Icon: "more-horizontal"},
}
