package domain

// User is a member of the household. The role tags share its primary key,
// so their relations are declared parent-side to land the foreign key on
// the tag table.
type User struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`

	Parent    *Parent    `gorm:"foreignKey:Name;references:Name" json:"-"`
	Dependent *Dependent `gorm:"foreignKey:Name;references:Name" json:"-"`
}

func (User) TableName() string { return "users" }

// Parent tags a user with purchasing privilege.
type Parent struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Parent) TableName() string { return "parents" }

// Dependent tags a user without purchasing privilege.
type Dependent struct {
	Name string `gorm:"column:name;primaryKey" json:"name"`
}

func (Dependent) TableName() string { return "dependents" }

// UserRole selects a tag table.
type UserRole string

const (
	RoleParent    UserRole = "parent"
	RoleDependent UserRole = "dependent"
)

// ItemUsage is one row of the items-used-by-user report.
type ItemUsage struct {
	UserName string  `json:"user_name"`
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
}
